package domain

import "time"

// PropertyStatus tracks whether a unit currently has a tenant.
type PropertyStatus string

const (
	PropertyOccupied PropertyStatus = "occupied"
	PropertyVacant   PropertyStatus = "vacant"
)

// Property represents a rental unit owned by a landlord account.
// When Status is PropertyOccupied, TenantID references the tenant living in
// the unit and that tenant's PropertyID points back at this record.
type Property struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	Address   string         `json:"address"`
	Rent      float64        `json:"rent"`
	Bedrooms  int            `json:"bedrooms"`
	Bathrooms float64        `json:"bathrooms"`
	Status    PropertyStatus `json:"status"`
	TenantID  *string        `json:"tenant_id,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (p *Property) IsOccupied() bool {
	return p != nil && p.Status == PropertyOccupied && p.TenantID != nil
}
