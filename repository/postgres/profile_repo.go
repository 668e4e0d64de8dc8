package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rentfolio/backend/domain"
	"github.com/rentfolio/backend/repository"
)

// Postgres unique_violation.
const uniqueViolationCode = "23505"

type profileRepository struct {
	db querier
}

// NewProfileRepository returns a Postgres-backed implementation of ProfileRepository.
func NewProfileRepository(db querier) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	const query = `
	SELECT id, name, email, password_hash, verified, created_at, updated_at
	FROM profiles
	WHERE id = $1
	`
	row := r.db.QueryRow(ctx, query, id)
	return scanProfile(row)
}

func (r *profileRepository) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	const query = `
	SELECT id, name, email, password_hash, verified, created_at, updated_at
	FROM profiles
	WHERE email = $1
	`
	row := r.db.QueryRow(ctx, query, email)
	return scanProfile(row)
}

func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile) (*domain.Profile, error) {
	if profile == nil {
		return nil, domain.ErrInvalidPayload
	}
	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO profiles (id, name, email, password_hash, verified)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING created_at, updated_at
	`

	if err := r.db.QueryRow(ctx, query,
		profile.ID,
		profile.Name,
		profile.Email,
		profile.PasswordHash,
		profile.Verified,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}

	return profile, nil
}

func (r *profileRepository) SetVerified(ctx context.Context, email string) error {
	const query = `
	UPDATE profiles
	SET verified = TRUE,
		updated_at = NOW()
	WHERE email = $1
	`
	tag, err := r.db.Exec(ctx, query, email)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

func (r *profileRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	const query = `
	UPDATE profiles
	SET password_hash = $2,
		updated_at = NOW()
	WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query, id, passwordHash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

func scanProfile(row rowScanner) (*domain.Profile, error) {
	var profile domain.Profile
	if err := row.Scan(
		&profile.ID,
		&profile.Name,
		&profile.Email,
		&profile.PasswordHash,
		&profile.Verified,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}
