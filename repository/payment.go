package repository

import (
	"context"

	"github.com/rentfolio/backend/domain"
)

type PaymentFilter struct {
	UserID   string
	TenantID string
}

type PaymentRepository interface {
	List(ctx context.Context, filter PaymentFilter) ([]domain.Payment, error)
	Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error)
}
