package domain

// Snapshot is the full portfolio of a single landlord: every property,
// tenant, and payment scoped to that account, loaded in one read.
type Snapshot struct {
	Properties []Property `json:"properties"`
	Tenants    []Tenant   `json:"tenants"`
	Payments   []Payment  `json:"payments"`
}
