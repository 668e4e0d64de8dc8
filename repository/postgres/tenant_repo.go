package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/rentfolio/backend/domain"
	"github.com/rentfolio/backend/repository"
)

type tenantRepository struct {
	db querier
}

// NewTenantRepository returns a Postgres-backed implementation of TenantRepository.
func NewTenantRepository(db querier) repository.TenantRepository {
	return &tenantRepository{db: db}
}

func (r *tenantRepository) GetByID(ctx context.Context, userID, id string) (*domain.Tenant, error) {
	const query = `
	SELECT id, user_id, name, email, phone, move_in_date, property_id, created_at, updated_at
	FROM tenants
	WHERE id = $1 AND user_id = $2
	`
	row := r.db.QueryRow(ctx, query, id, userID)
	return scanTenant(row)
}

func (r *tenantRepository) List(ctx context.Context, userID string) ([]domain.Tenant, error) {
	const query = `
	SELECT id, user_id, name, email, phone, move_in_date, property_id, created_at, updated_at
	FROM tenants
	WHERE user_id = $1
	ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tenants []domain.Tenant
	for rows.Next() {
		tenant, err := scanTenant(rows)
		if err != nil {
			return nil, err
		}
		tenants = append(tenants, *tenant)
	}
	return tenants, rows.Err()
}

func (r *tenantRepository) Create(ctx context.Context, tenant *domain.Tenant) (*domain.Tenant, error) {
	if tenant == nil {
		return nil, domain.ErrInvalidPayload
	}
	if tenant.ID == "" {
		tenant.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO tenants (id, user_id, name, email, phone, move_in_date, property_id)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING created_at, updated_at
	`

	if err := r.db.QueryRow(ctx, query,
		tenant.ID,
		tenant.UserID,
		tenant.Name,
		tenant.Email,
		tenant.Phone,
		tenant.MoveInDate,
		tenant.PropertyID,
	).Scan(&tenant.CreatedAt, &tenant.UpdatedAt); err != nil {
		return nil, err
	}

	return tenant, nil
}

func (r *tenantRepository) Update(ctx context.Context, tenant *domain.Tenant) error {
	if tenant == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE tenants
	SET name = $3,
		email = $4,
		phone = $5,
		move_in_date = $6,
		property_id = $7,
		updated_at = NOW()
	WHERE id = $1 AND user_id = $2
	RETURNING updated_at
	`

	if err := r.db.QueryRow(ctx, query,
		tenant.ID,
		tenant.UserID,
		tenant.Name,
		tenant.Email,
		tenant.Phone,
		tenant.MoveInDate,
		tenant.PropertyID,
	).Scan(&tenant.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrTenantNotFound
		}
		return err
	}

	return nil
}

func (r *tenantRepository) Delete(ctx context.Context, userID, id string) error {
	const query = `DELETE FROM tenants WHERE id = $1 AND user_id = $2`
	tag, err := r.db.Exec(ctx, query, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTenantNotFound
	}
	return nil
}

func (r *tenantRepository) SetPropertyRef(ctx context.Context, userID, id string, propertyID *string) error {
	const query = `
	UPDATE tenants
	SET property_id = $3,
		updated_at = NOW()
	WHERE id = $1 AND user_id = $2
	`
	tag, err := r.db.Exec(ctx, query, id, userID, propertyID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTenantNotFound
	}
	return nil
}

func (r *tenantRepository) ClearPropertyRef(ctx context.Context, userID, propertyID string) error {
	const query = `
	UPDATE tenants
	SET property_id = NULL,
		updated_at = NOW()
	WHERE property_id = $1 AND user_id = $2
	`
	_, err := r.db.Exec(ctx, query, propertyID, userID)
	return err
}

func scanTenant(row rowScanner) (*domain.Tenant, error) {
	var tenant domain.Tenant
	if err := row.Scan(
		&tenant.ID,
		&tenant.UserID,
		&tenant.Name,
		&tenant.Email,
		&tenant.Phone,
		&tenant.MoveInDate,
		&tenant.PropertyID,
		&tenant.CreatedAt,
		&tenant.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTenantNotFound
		}
		return nil, err
	}
	return &tenant, nil
}
