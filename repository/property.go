package repository

import (
	"context"

	"github.com/rentfolio/backend/domain"
)

type PropertyRepository interface {
	GetByID(ctx context.Context, userID, id string) (*domain.Property, error)
	List(ctx context.Context, userID string) ([]domain.Property, error)
	Create(ctx context.Context, property *domain.Property) (*domain.Property, error)
	Update(ctx context.Context, property *domain.Property) error
	Delete(ctx context.Context, userID, id string) error
	// SetOccupancy marks the property occupied by tenantID, or vacant when
	// tenantID is nil. Status and tenant pointer always change together.
	SetOccupancy(ctx context.Context, userID, id string, tenantID *string) error
}
