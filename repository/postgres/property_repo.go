package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/rentfolio/backend/domain"
	"github.com/rentfolio/backend/repository"
)

type propertyRepository struct {
	db querier
}

// NewPropertyRepository returns a Postgres-backed implementation of PropertyRepository.
func NewPropertyRepository(db querier) repository.PropertyRepository {
	return &propertyRepository{db: db}
}

func (r *propertyRepository) GetByID(ctx context.Context, userID, id string) (*domain.Property, error) {
	const query = `
	SELECT id, user_id, address, rent, bedrooms, bathrooms, status, tenant_id, created_at, updated_at
	FROM properties
	WHERE id = $1 AND user_id = $2
	`
	row := r.db.QueryRow(ctx, query, id, userID)
	return scanProperty(row)
}

func (r *propertyRepository) List(ctx context.Context, userID string) ([]domain.Property, error) {
	const query = `
	SELECT id, user_id, address, rent, bedrooms, bathrooms, status, tenant_id, created_at, updated_at
	FROM properties
	WHERE user_id = $1
	ORDER BY created_at DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var properties []domain.Property
	for rows.Next() {
		property, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		properties = append(properties, *property)
	}
	return properties, rows.Err()
}

func (r *propertyRepository) Create(ctx context.Context, property *domain.Property) (*domain.Property, error) {
	if property == nil {
		return nil, domain.ErrInvalidPayload
	}
	if property.ID == "" {
		property.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO properties (id, user_id, address, rent, bedrooms, bathrooms, status, tenant_id)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING created_at, updated_at
	`

	if err := r.db.QueryRow(ctx, query,
		property.ID,
		property.UserID,
		property.Address,
		property.Rent,
		property.Bedrooms,
		property.Bathrooms,
		property.Status,
		property.TenantID,
	).Scan(&property.CreatedAt, &property.UpdatedAt); err != nil {
		return nil, err
	}

	return property, nil
}

func (r *propertyRepository) Update(ctx context.Context, property *domain.Property) error {
	if property == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE properties
	SET address = $3,
		rent = $4,
		bedrooms = $5,
		bathrooms = $6,
		status = $7,
		tenant_id = $8,
		updated_at = NOW()
	WHERE id = $1 AND user_id = $2
	RETURNING updated_at
	`

	if err := r.db.QueryRow(ctx, query,
		property.ID,
		property.UserID,
		property.Address,
		property.Rent,
		property.Bedrooms,
		property.Bathrooms,
		property.Status,
		property.TenantID,
	).Scan(&property.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrPropertyNotFound
		}
		return err
	}

	return nil
}

func (r *propertyRepository) Delete(ctx context.Context, userID, id string) error {
	const query = `DELETE FROM properties WHERE id = $1 AND user_id = $2`
	tag, err := r.db.Exec(ctx, query, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPropertyNotFound
	}
	return nil
}

func (r *propertyRepository) SetOccupancy(ctx context.Context, userID, id string, tenantID *string) error {
	const query = `
	UPDATE properties
	SET status = $3,
		tenant_id = $4,
		updated_at = NOW()
	WHERE id = $1 AND user_id = $2
	`
	status := domain.PropertyVacant
	if tenantID != nil {
		status = domain.PropertyOccupied
	}
	tag, err := r.db.Exec(ctx, query, id, userID, status, tenantID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPropertyNotFound
	}
	return nil
}

func scanProperty(row rowScanner) (*domain.Property, error) {
	var property domain.Property
	if err := row.Scan(
		&property.ID,
		&property.UserID,
		&property.Address,
		&property.Rent,
		&property.Bedrooms,
		&property.Bathrooms,
		&property.Status,
		&property.TenantID,
		&property.CreatedAt,
		&property.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPropertyNotFound
		}
		return nil, err
	}
	return &property, nil
}
