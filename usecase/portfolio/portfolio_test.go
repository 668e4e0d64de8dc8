package portfolio_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rentfolio/backend/domain"
	"github.com/rentfolio/backend/repository"
	"github.com/rentfolio/backend/usecase/portfolio"
	"github.com/rentfolio/backend/usecase/rentbook"
)

// memStore is an in-memory stand-in for the Postgres repositories. It backs
// the property, tenant and payment interfaces plus the unit of work, so the
// use case under test runs against one shared state.
type memStore struct {
	properties map[string]*domain.Property
	tenants    map[string]*domain.Tenant
	payments   []domain.Payment
	seq        int
}

func newMemStore() *memStore {
	return &memStore{
		properties: make(map[string]*domain.Property),
		tenants:    make(map[string]*domain.Tenant),
	}
}

func (s *memStore) nextID() string {
	s.seq++
	return fmt.Sprintf("id-%d", s.seq)
}

func (s *memStore) WithinTx(ctx context.Context, fn func(r repository.Repos) error) error {
	return fn(repository.Repos{
		Properties: (*memPropertyRepo)(s),
		Tenants:    (*memTenantRepo)(s),
		Payments:   (*memPaymentRepo)(s),
	})
}

type memPropertyRepo memStore

func (r *memPropertyRepo) GetByID(ctx context.Context, userID, id string) (*domain.Property, error) {
	p, ok := r.properties[id]
	if !ok || p.UserID != userID {
		return nil, domain.ErrPropertyNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *memPropertyRepo) List(ctx context.Context, userID string) ([]domain.Property, error) {
	var out []domain.Property
	for _, p := range r.properties {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *memPropertyRepo) Create(ctx context.Context, property *domain.Property) (*domain.Property, error) {
	property.ID = (*memStore)(r).nextID()
	cp := *property
	r.properties[property.ID] = &cp
	return property, nil
}

func (r *memPropertyRepo) Update(ctx context.Context, property *domain.Property) error {
	if _, ok := r.properties[property.ID]; !ok {
		return domain.ErrPropertyNotFound
	}
	cp := *property
	r.properties[property.ID] = &cp
	return nil
}

func (r *memPropertyRepo) Delete(ctx context.Context, userID, id string) error {
	if _, ok := r.properties[id]; !ok {
		return domain.ErrPropertyNotFound
	}
	delete(r.properties, id)
	return nil
}

func (r *memPropertyRepo) SetOccupancy(ctx context.Context, userID, id string, tenantID *string) error {
	p, ok := r.properties[id]
	if !ok || p.UserID != userID {
		return domain.ErrPropertyNotFound
	}
	p.TenantID = tenantID
	if tenantID != nil {
		p.Status = domain.PropertyOccupied
	} else {
		p.Status = domain.PropertyVacant
	}
	return nil
}

type memTenantRepo memStore

func (r *memTenantRepo) GetByID(ctx context.Context, userID, id string) (*domain.Tenant, error) {
	t, ok := r.tenants[id]
	if !ok || t.UserID != userID {
		return nil, domain.ErrTenantNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *memTenantRepo) List(ctx context.Context, userID string) ([]domain.Tenant, error) {
	var out []domain.Tenant
	for _, t := range r.tenants {
		if t.UserID == userID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *memTenantRepo) Create(ctx context.Context, tenant *domain.Tenant) (*domain.Tenant, error) {
	tenant.ID = (*memStore)(r).nextID()
	cp := *tenant
	r.tenants[tenant.ID] = &cp
	return tenant, nil
}

func (r *memTenantRepo) Update(ctx context.Context, tenant *domain.Tenant) error {
	if _, ok := r.tenants[tenant.ID]; !ok {
		return domain.ErrTenantNotFound
	}
	cp := *tenant
	r.tenants[tenant.ID] = &cp
	return nil
}

func (r *memTenantRepo) Delete(ctx context.Context, userID, id string) error {
	if _, ok := r.tenants[id]; !ok {
		return domain.ErrTenantNotFound
	}
	delete(r.tenants, id)
	return nil
}

func (r *memTenantRepo) SetPropertyRef(ctx context.Context, userID, id string, propertyID *string) error {
	t, ok := r.tenants[id]
	if !ok || t.UserID != userID {
		return domain.ErrTenantNotFound
	}
	t.PropertyID = propertyID
	return nil
}

func (r *memTenantRepo) ClearPropertyRef(ctx context.Context, userID, propertyID string) error {
	for _, t := range r.tenants {
		if t.UserID == userID && t.PropertyID != nil && *t.PropertyID == propertyID {
			t.PropertyID = nil
		}
	}
	return nil
}

type memPaymentRepo memStore

func (r *memPaymentRepo) List(ctx context.Context, filter repository.PaymentFilter) ([]domain.Payment, error) {
	var out []domain.Payment
	for _, p := range r.payments {
		if p.UserID != filter.UserID {
			continue
		}
		if filter.TenantID != "" && p.TenantID != filter.TenantID {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *memPaymentRepo) Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	payment.ID = (*memStore)(r).nextID()
	r.payments = append(r.payments, *payment)
	return payment, nil
}

func newTestUseCase(t *testing.T) (*portfolio.UseCase, *memStore) {
	t.Helper()
	store := newMemStore()
	uc := portfolio.New(store, (*memPropertyRepo)(store), (*memTenantRepo)(store), (*memPaymentRepo)(store), nil)
	return uc, store
}

const userID = "landlord-1"

func seedProperty(t *testing.T, uc *portfolio.UseCase, address string) *domain.Property {
	t.Helper()
	p, err := uc.CreateProperty(context.Background(), userID, portfolio.CreatePropertyInput{
		Address: address,
		Rent:    1500,
	})
	require.NoError(t, err)
	return p
}

func TestCreatePropertyStartsVacant(t *testing.T) {
	uc, store := newTestUseCase(t)

	p := seedProperty(t, uc, "12 Oak Lane")
	require.Equal(t, domain.PropertyVacant, p.Status)
	require.Nil(t, p.TenantID)
	require.Equal(t, userID, store.properties[p.ID].UserID)
}

func TestCreatePropertyRequiresUser(t *testing.T) {
	uc, _ := newTestUseCase(t)

	_, err := uc.CreateProperty(context.Background(), "", portfolio.CreatePropertyInput{Address: "x"})
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestCreateTenantUnassigned(t *testing.T) {
	uc, store := newTestUseCase(t)

	tn, err := uc.CreateTenant(context.Background(), userID, portfolio.CreateTenantInput{Name: "Asha"})
	require.NoError(t, err)
	require.Nil(t, tn.PropertyID)
	require.Len(t, store.tenants, 1)
}

func TestCreateTenantOccupiesNamedProperty(t *testing.T) {
	uc, store := newTestUseCase(t)
	p := seedProperty(t, uc, "12 Oak Lane")

	tn, err := uc.CreateTenant(context.Background(), userID, portfolio.CreateTenantInput{
		Name:       "Asha",
		PropertyID: &p.ID,
	})
	require.NoError(t, err)

	got := store.properties[p.ID]
	require.Equal(t, domain.PropertyOccupied, got.Status)
	require.NotNil(t, got.TenantID)
	require.Equal(t, tn.ID, *got.TenantID)
}

func TestCreateTenantLeavesOtherPropertiesUntouched(t *testing.T) {
	uc, store := newTestUseCase(t)
	target := seedProperty(t, uc, "12 Oak Lane")
	other := seedProperty(t, uc, "9 Elm Street")

	_, err := uc.CreateTenant(context.Background(), userID, portfolio.CreateTenantInput{
		Name:       "Asha",
		PropertyID: &target.ID,
	})
	require.NoError(t, err)

	require.Equal(t, domain.PropertyVacant, store.properties[other.ID].Status)
	require.Nil(t, store.properties[other.ID].TenantID)
}

func TestAssignTenantLinksBothSides(t *testing.T) {
	uc, store := newTestUseCase(t)
	p := seedProperty(t, uc, "12 Oak Lane")
	tn, err := uc.CreateTenant(context.Background(), userID, portfolio.CreateTenantInput{Name: "Asha"})
	require.NoError(t, err)

	require.NoError(t, uc.AssignTenant(context.Background(), userID, tn.ID, p.ID))

	gotP := store.properties[p.ID]
	gotT := store.tenants[tn.ID]
	require.Equal(t, domain.PropertyOccupied, gotP.Status)
	require.Equal(t, tn.ID, *gotP.TenantID)
	require.Equal(t, p.ID, *gotT.PropertyID)
}

func TestUnassignTenantClearsBothSides(t *testing.T) {
	uc, store := newTestUseCase(t)
	p := seedProperty(t, uc, "12 Oak Lane")
	tn, err := uc.CreateTenant(context.Background(), userID, portfolio.CreateTenantInput{Name: "Asha", PropertyID: &p.ID})
	require.NoError(t, err)

	require.NoError(t, uc.UnassignTenant(context.Background(), userID, p.ID))

	gotP := store.properties[p.ID]
	gotT := store.tenants[tn.ID]
	require.Equal(t, domain.PropertyVacant, gotP.Status)
	require.Nil(t, gotP.TenantID)
	require.Nil(t, gotT.PropertyID)
}

func TestUnassignVacantPropertyIsNoOp(t *testing.T) {
	uc, store := newTestUseCase(t)
	p := seedProperty(t, uc, "12 Oak Lane")

	require.NoError(t, uc.UnassignTenant(context.Background(), userID, p.ID))
	require.Equal(t, domain.PropertyVacant, store.properties[p.ID].Status)
}

func TestUnassignUnknownPropertyIsNoOp(t *testing.T) {
	uc, _ := newTestUseCase(t)

	require.NoError(t, uc.UnassignTenant(context.Background(), userID, "missing"))
}

func TestUpdateTenantMovesBetweenProperties(t *testing.T) {
	uc, store := newTestUseCase(t)
	old := seedProperty(t, uc, "12 Oak Lane")
	next := seedProperty(t, uc, "9 Elm Street")
	tn, err := uc.CreateTenant(context.Background(), userID, portfolio.CreateTenantInput{Name: "Asha", PropertyID: &old.ID})
	require.NoError(t, err)

	moved := *store.tenants[tn.ID]
	moved.PropertyID = &next.ID
	require.NoError(t, uc.UpdateTenant(context.Background(), userID, &moved))

	require.Equal(t, domain.PropertyVacant, store.properties[old.ID].Status)
	require.Nil(t, store.properties[old.ID].TenantID)
	require.Equal(t, domain.PropertyOccupied, store.properties[next.ID].Status)
	require.Equal(t, tn.ID, *store.properties[next.ID].TenantID)
	require.Equal(t, next.ID, *store.tenants[tn.ID].PropertyID)
}

func TestUpdateTenantSameAssignmentLeavesOccupancyAlone(t *testing.T) {
	uc, store := newTestUseCase(t)
	p := seedProperty(t, uc, "12 Oak Lane")
	tn, err := uc.CreateTenant(context.Background(), userID, portfolio.CreateTenantInput{Name: "Asha", PropertyID: &p.ID})
	require.NoError(t, err)

	renamed := *store.tenants[tn.ID]
	renamed.Name = "Asha K"
	require.NoError(t, uc.UpdateTenant(context.Background(), userID, &renamed))

	require.Equal(t, "Asha K", store.tenants[tn.ID].Name)
	require.Equal(t, domain.PropertyOccupied, store.properties[p.ID].Status)
	require.Equal(t, tn.ID, *store.properties[p.ID].TenantID)
}

func TestUpdateUnknownTenantIsNoOp(t *testing.T) {
	uc, store := newTestUseCase(t)
	p := seedProperty(t, uc, "12 Oak Lane")

	ghost := &domain.Tenant{ID: "missing", Name: "Ghost", PropertyID: &p.ID}
	require.NoError(t, uc.UpdateTenant(context.Background(), userID, ghost))

	require.Empty(t, store.tenants)
	require.Equal(t, domain.PropertyVacant, store.properties[p.ID].Status)
}

func TestDeleteTenantVacatesProperty(t *testing.T) {
	uc, store := newTestUseCase(t)
	p := seedProperty(t, uc, "12 Oak Lane")
	tn, err := uc.CreateTenant(context.Background(), userID, portfolio.CreateTenantInput{Name: "Asha", PropertyID: &p.ID})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteTenant(context.Background(), userID, tn.ID))

	require.Empty(t, store.tenants)
	require.Equal(t, domain.PropertyVacant, store.properties[p.ID].Status)
	require.Nil(t, store.properties[p.ID].TenantID)
}

func TestDeleteUnassignedTenantLeavesPropertiesAlone(t *testing.T) {
	uc, store := newTestUseCase(t)
	p := seedProperty(t, uc, "12 Oak Lane")
	tn, err := uc.CreateTenant(context.Background(), userID, portfolio.CreateTenantInput{Name: "Asha"})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteTenant(context.Background(), userID, tn.ID))

	require.Empty(t, store.tenants)
	require.Equal(t, domain.PropertyVacant, store.properties[p.ID].Status)
}

func TestDeleteUnknownTenantIsNoOp(t *testing.T) {
	uc, _ := newTestUseCase(t)

	require.NoError(t, uc.DeleteTenant(context.Background(), userID, "missing"))
}

func TestDeletePropertyDetachesTenant(t *testing.T) {
	uc, store := newTestUseCase(t)
	p := seedProperty(t, uc, "12 Oak Lane")
	tn, err := uc.CreateTenant(context.Background(), userID, portfolio.CreateTenantInput{Name: "Asha", PropertyID: &p.ID})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteProperty(context.Background(), userID, p.ID))

	require.Empty(t, store.properties)
	require.Nil(t, store.tenants[tn.ID].PropertyID)
}

func TestSnapshotReturnsAllCollections(t *testing.T) {
	uc, store := newTestUseCase(t)
	p := seedProperty(t, uc, "12 Oak Lane")
	tn, err := uc.CreateTenant(context.Background(), userID, portfolio.CreateTenantInput{Name: "Asha", PropertyID: &p.ID})
	require.NoError(t, err)
	store.payments = append(store.payments, domain.Payment{
		ID: "pay-1", UserID: userID, TenantID: tn.ID, PropertyID: p.ID,
		Amount: 1500, Date: time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC), Month: 8, Year: 2026,
	})

	snap, err := uc.Snapshot(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, snap.Properties, 1)
	require.Len(t, snap.Tenants, 1)
	require.Len(t, snap.Payments, 1)
}

func TestSnapshotRequiresUser(t *testing.T) {
	uc, _ := newTestUseCase(t)

	_, err := uc.Snapshot(context.Background(), "")
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

// Assign a tenant, check the overdue position, log this month's rent, check
// again. Walks the vacant-to-paid path end to end.
func TestAssignThenPayScenario(t *testing.T) {
	uc, store := newTestUseCase(t)
	p := seedProperty(t, uc, "12 Oak Lane")
	tn, err := uc.CreateTenant(context.Background(), userID, portfolio.CreateTenantInput{Name: "Asha"})
	require.NoError(t, err)

	require.NoError(t, uc.AssignTenant(context.Background(), userID, tn.ID, p.ID))
	require.Equal(t, domain.PropertyOccupied, store.properties[p.ID].Status)
	require.Equal(t, tn.ID, *store.properties[p.ID].TenantID)
	require.Equal(t, p.ID, *store.tenants[tn.ID].PropertyID)

	now := time.Date(2026, time.August, 20, 0, 0, 0, 0, time.UTC)

	status := rentbook.Resolve(store.payments, tn.ID, 1500, now)
	require.Equal(t, domain.PaymentOverdue, status.Status)
	require.Equal(t, 1500.0, status.AmountDue)

	store.payments = append(store.payments, domain.Payment{
		UserID: userID, TenantID: tn.ID, PropertyID: p.ID,
		Amount: 1500, Date: now, Month: int(now.Month()), Year: now.Year(),
	})

	status = rentbook.Resolve(store.payments, tn.ID, 1500, now)
	require.Equal(t, domain.PaymentPaid, status.Status)
	require.Zero(t, status.AmountDue)
}
