// Package portfolio holds every mutation that can touch the tenancy
// invariant: an occupied property and its tenant always reference each other,
// one-to-one. Multi-record writes run inside a single unit of work so the
// invariant cannot be observed half-applied.
package portfolio

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/rentfolio/backend/domain"
	"github.com/rentfolio/backend/repository"
)

type UseCase struct {
	uow        repository.UnitOfWork
	properties repository.PropertyRepository
	tenants    repository.TenantRepository
	payments   repository.PaymentRepository
	logger     *zap.Logger
}

func New(
	uow repository.UnitOfWork,
	properties repository.PropertyRepository,
	tenants repository.TenantRepository,
	payments repository.PaymentRepository,
	logger *zap.Logger,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		uow:        uow,
		properties: properties,
		tenants:    tenants,
		payments:   payments,
		logger:     logger,
	}
}

// CreatePropertyInput carries the caller-supplied fields for a new property.
// Status is not part of the input: new properties always start vacant.
type CreatePropertyInput struct {
	Address   string
	Rent      float64
	Bedrooms  int
	Bathrooms float64
}

// CreateTenantInput carries the caller-supplied fields for a new tenant.
type CreateTenantInput struct {
	Name       string
	Email      string
	Phone      string
	MoveInDate time.Time
	PropertyID *string
}

// Snapshot loads the caller's entire portfolio in one read.
func (uc *UseCase) Snapshot(ctx context.Context, userID string) (*domain.Snapshot, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}

	properties, err := uc.properties.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	tenants, err := uc.tenants.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	payments, err := uc.payments.List(ctx, repository.PaymentFilter{UserID: userID})
	if err != nil {
		return nil, err
	}

	return &domain.Snapshot{
		Properties: properties,
		Tenants:    tenants,
		Payments:   payments,
	}, nil
}

func (uc *UseCase) ListProperties(ctx context.Context, userID string) ([]domain.Property, error) {
	return uc.properties.List(ctx, userID)
}

func (uc *UseCase) GetProperty(ctx context.Context, userID, id string) (*domain.Property, error) {
	return uc.properties.GetByID(ctx, userID, id)
}

func (uc *UseCase) CreateProperty(ctx context.Context, userID string, input CreatePropertyInput) (*domain.Property, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}

	property := &domain.Property{
		UserID:    userID,
		Address:   input.Address,
		Rent:      input.Rent,
		Bedrooms:  input.Bedrooms,
		Bathrooms: input.Bathrooms,
		Status:    domain.PropertyVacant,
	}
	return uc.properties.Create(ctx, property)
}

// UpdateProperty overwrites the record verbatim, occupancy fields included.
// The caller is responsible for passing a consistent record.
func (uc *UseCase) UpdateProperty(ctx context.Context, userID string, property *domain.Property) (*domain.Property, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if property == nil || property.ID == "" {
		return nil, domain.ErrInvalidPayload
	}

	property.UserID = userID
	if err := uc.properties.Update(ctx, property); err != nil {
		return nil, err
	}
	return property, nil
}

// DeleteProperty removes the property regardless of occupancy. Any tenant
// still pointing at it is detached in the same transaction, mirroring the
// vacate that DeleteTenant performs on the property side.
func (uc *UseCase) DeleteProperty(ctx context.Context, userID, id string) error {
	if userID == "" {
		return domain.ErrUnauthorized
	}

	return uc.uow.WithinTx(ctx, func(r repository.Repos) error {
		if err := r.Tenants.ClearPropertyRef(ctx, userID, id); err != nil {
			return err
		}
		return r.Properties.Delete(ctx, userID, id)
	})
}

func (uc *UseCase) ListTenants(ctx context.Context, userID string) ([]domain.Tenant, error) {
	return uc.tenants.List(ctx, userID)
}

func (uc *UseCase) GetTenant(ctx context.Context, userID, id string) (*domain.Tenant, error) {
	return uc.tenants.GetByID(ctx, userID, id)
}

// CreateTenant inserts the tenant and, when a property is named, occupies it
// with the new tenant's id. Both writes commit or abort together.
func (uc *UseCase) CreateTenant(ctx context.Context, userID string, input CreateTenantInput) (*domain.Tenant, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}

	tenant := &domain.Tenant{
		UserID:     userID,
		Name:       input.Name,
		Email:      input.Email,
		Phone:      input.Phone,
		MoveInDate: input.MoveInDate,
		PropertyID: input.PropertyID,
	}

	err := uc.uow.WithinTx(ctx, func(r repository.Repos) error {
		created, err := r.Tenants.Create(ctx, tenant)
		if err != nil {
			return err
		}
		if created.PropertyID != nil {
			return r.Properties.SetOccupancy(ctx, userID, *created.PropertyID, &created.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tenant, nil
}

// UpdateTenant overwrites the tenant row. When the property assignment
// changed against the stored row, the old property is vacated and the new one
// occupied inside the same transaction. An unknown tenant id is a silent
// no-op: the precondition failed, nothing to report.
func (uc *UseCase) UpdateTenant(ctx context.Context, userID string, tenant *domain.Tenant) error {
	if userID == "" {
		return domain.ErrUnauthorized
	}
	if tenant == nil || tenant.ID == "" {
		return domain.ErrInvalidPayload
	}
	tenant.UserID = userID

	return uc.uow.WithinTx(ctx, func(r repository.Repos) error {
		current, err := r.Tenants.GetByID(ctx, userID, tenant.ID)
		if err != nil {
			if errors.Is(err, domain.ErrTenantNotFound) {
				return nil
			}
			return err
		}

		if !sameRef(current.PropertyID, tenant.PropertyID) {
			if current.PropertyID != nil {
				if err := r.Properties.SetOccupancy(ctx, userID, *current.PropertyID, nil); err != nil {
					return err
				}
			}
			if tenant.PropertyID != nil {
				if err := r.Properties.SetOccupancy(ctx, userID, *tenant.PropertyID, &tenant.ID); err != nil {
					return err
				}
			}
		}

		return r.Tenants.Update(ctx, tenant)
	})
}

// DeleteTenant vacates the tenant's property, if assigned, before removing
// the tenant row. An unknown tenant id is a silent no-op.
func (uc *UseCase) DeleteTenant(ctx context.Context, userID, id string) error {
	if userID == "" {
		return domain.ErrUnauthorized
	}

	return uc.uow.WithinTx(ctx, func(r repository.Repos) error {
		tenant, err := r.Tenants.GetByID(ctx, userID, id)
		if err != nil {
			if errors.Is(err, domain.ErrTenantNotFound) {
				return nil
			}
			return err
		}

		if tenant.PropertyID != nil {
			if err := r.Properties.SetOccupancy(ctx, userID, *tenant.PropertyID, nil); err != nil {
				return err
			}
		}

		return r.Tenants.Delete(ctx, userID, id)
	})
}

// AssignTenant occupies the property first, then points the tenant at it.
func (uc *UseCase) AssignTenant(ctx context.Context, userID, tenantID, propertyID string) error {
	if userID == "" {
		return domain.ErrUnauthorized
	}

	return uc.uow.WithinTx(ctx, func(r repository.Repos) error {
		if err := r.Properties.SetOccupancy(ctx, userID, propertyID, &tenantID); err != nil {
			return err
		}
		return r.Tenants.SetPropertyRef(ctx, userID, tenantID, &propertyID)
	})
}

// UnassignTenant vacates the property and clears its tenant's back-reference.
// A vacant or unknown property is a silent no-op.
func (uc *UseCase) UnassignTenant(ctx context.Context, userID, propertyID string) error {
	if userID == "" {
		return domain.ErrUnauthorized
	}

	return uc.uow.WithinTx(ctx, func(r repository.Repos) error {
		property, err := r.Properties.GetByID(ctx, userID, propertyID)
		if err != nil {
			if errors.Is(err, domain.ErrPropertyNotFound) {
				return nil
			}
			return err
		}
		if property.TenantID == nil {
			return nil
		}
		tenantID := *property.TenantID

		if err := r.Properties.SetOccupancy(ctx, userID, propertyID, nil); err != nil {
			return err
		}
		return r.Tenants.SetPropertyRef(ctx, userID, tenantID, nil)
	})
}

func sameRef(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
