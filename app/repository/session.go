package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "reader:session:"

	// The stored value is a marker; key presence is what grants access.
	sessionMarkerValue = "ok"
)

type SessionRepository struct {
	client *redis.Client
}

func NewSessionRepository(client *redis.Client) *SessionRepository {
	return &SessionRepository{client: client}
}

// Put records a freshly minted credential token. The TTL is enforced by
// Redis; no explicit revocation path exists.
func (r *SessionRepository) Put(ctx context.Context, token string, ttl time.Duration) error {
	if token == "" {
		return errors.New("session token is required")
	}
	return r.client.Set(ctx, sessionKeyPrefix+token, sessionMarkerValue, ttl).Err()
}

// Exists reports whether the token is a live credential. An expired or
// never-issued token reads the same: absent.
func (r *SessionRepository) Exists(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	_, err := r.client.Get(ctx, sessionKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
