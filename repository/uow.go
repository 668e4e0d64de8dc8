package repository

import "context"

// Repos is the set of entity repositories bound to one transaction.
type Repos struct {
	Properties PropertyRepository
	Tenants    TenantRepository
	Payments   PaymentRepository
}

// UnitOfWork runs a function against transaction-bound repositories. Every
// write issued inside fn commits or rolls back as one unit, so a multi-record
// tenancy mutation can never be observed half-applied.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(r Repos) error) error
}
