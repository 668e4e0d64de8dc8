package repository

import (
	"context"

	"github.com/rentfolio/backend/domain"
)

type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Profile, error)
	GetByEmail(ctx context.Context, email string) (*domain.Profile, error)
	Create(ctx context.Context, profile *domain.Profile) (*domain.Profile, error)
	SetVerified(ctx context.Context, email string) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}
