package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/rentfolio/backend/domain"
	"github.com/rentfolio/backend/repository"
)

type paymentRepository struct {
	db querier
}

// NewPaymentRepository returns a Postgres-backed implementation of PaymentRepository.
// Payments are append-only; there is no update or delete path.
func NewPaymentRepository(db querier) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) List(ctx context.Context, filter repository.PaymentFilter) ([]domain.Payment, error) {
	// The optional tenant filter is compared as text so an empty string can
	// mean "no filter" without fighting the uuid column's type inference.
	const query = `
	SELECT id, user_id, tenant_id, property_id, amount, date, month, year, created_at
	FROM payments
	WHERE user_id = $1
	  AND ($2::text = '' OR tenant_id::text = $2::text)
	ORDER BY date DESC, created_at DESC
	`
	rows, err := r.db.Query(ctx, query, filter.UserID, filter.TenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		var payment domain.Payment
		if err := rows.Scan(
			&payment.ID,
			&payment.UserID,
			&payment.TenantID,
			&payment.PropertyID,
			&payment.Amount,
			&payment.Date,
			&payment.Month,
			&payment.Year,
			&payment.CreatedAt,
		); err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}
	return payments, rows.Err()
}

func (r *paymentRepository) Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	if payment == nil {
		return nil, domain.ErrInvalidPayload
	}
	if payment.ID == "" {
		payment.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO payments (id, user_id, tenant_id, property_id, amount, date, month, year)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING created_at
	`

	if err := r.db.QueryRow(ctx, query,
		payment.ID,
		payment.UserID,
		payment.TenantID,
		payment.PropertyID,
		payment.Amount,
		payment.Date,
		payment.Month,
		payment.Year,
	).Scan(&payment.CreatedAt); err != nil {
		return nil, err
	}

	return payment, nil
}
