package repository

import (
	"context"
	"time"
)

// TokenCache stores short-lived email-verification and password-recovery
// tokens keyed by kind and address.
type TokenCache interface {
	Put(ctx context.Context, kind, email, token string, ttl time.Duration) error
	Get(ctx context.Context, kind, email string) (string, error)
	Delete(ctx context.Context, kind, email string) error
}

// Token kinds used by the auth flows.
const (
	TokenKindVerify  = "verify"
	TokenKindRecover = "recover"
)
