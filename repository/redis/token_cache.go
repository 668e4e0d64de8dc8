package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/rentfolio/backend/domain"
	"github.com/rentfolio/backend/repository"
)

type tokenCache struct {
	client *redislib.Client
}

// NewTokenCache creates a Redis-backed store for verification and recovery
// tokens. Tokens expire on their TTL; a missing key reads as ErrTokenNotFound.
func NewTokenCache(client *redislib.Client) repository.TokenCache {
	return &tokenCache{client: client}
}

func (c *tokenCache) Put(ctx context.Context, kind, email, token string, ttl time.Duration) error {
	if kind == "" || email == "" || token == "" {
		return domain.ErrInvalidPayload
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return c.client.Set(ctx, tokenKey(kind, email), token, ttl).Err()
}

func (c *tokenCache) Get(ctx context.Context, kind, email string) (string, error) {
	result, err := c.client.Get(ctx, tokenKey(kind, email)).Result()
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return "", domain.ErrTokenNotFound
		}
		return "", err
	}
	return result, nil
}

func (c *tokenCache) Delete(ctx context.Context, kind, email string) error {
	return c.client.Del(ctx, tokenKey(kind, email)).Err()
}

func tokenKey(kind, email string) string {
	return fmt.Sprintf("token:%s:%s", kind, email)
}
