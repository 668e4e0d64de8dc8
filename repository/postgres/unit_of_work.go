package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rentfolio/backend/repository"
)

type unitOfWork struct {
	pool *pgxpool.Pool
}

// NewUnitOfWork returns a pgx-transaction-backed UnitOfWork. Repositories
// handed to the callback share one transaction; the callback's error decides
// commit versus rollback.
func NewUnitOfWork(pool *pgxpool.Pool) repository.UnitOfWork {
	return &unitOfWork{pool: pool}
}

func (u *unitOfWork) WithinTx(ctx context.Context, fn func(r repository.Repos) error) error {
	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	repos := repository.Repos{
		Properties: NewPropertyRepository(tx),
		Tenants:    NewTenantRepository(tx),
		Payments:   NewPaymentRepository(tx),
	}

	if err := fn(repos); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
