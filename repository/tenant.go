package repository

import (
	"context"

	"github.com/rentfolio/backend/domain"
)

type TenantRepository interface {
	GetByID(ctx context.Context, userID, id string) (*domain.Tenant, error)
	List(ctx context.Context, userID string) ([]domain.Tenant, error)
	Create(ctx context.Context, tenant *domain.Tenant) (*domain.Tenant, error)
	Update(ctx context.Context, tenant *domain.Tenant) error
	Delete(ctx context.Context, userID, id string) error
	// SetPropertyRef points the tenant at a property, or detaches it when
	// propertyID is nil.
	SetPropertyRef(ctx context.Context, userID, id string, propertyID *string) error
	// ClearPropertyRef detaches whichever tenant references the property.
	// No-op when nothing references it.
	ClearPropertyRef(ctx context.Context, userID, propertyID string) error
}
