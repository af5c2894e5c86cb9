package repository

import (
	"context"
	"time"
)

// SessionRepository keeps the ids of live admin sessions so they can be
// revoked before their token expires.
type SessionRepository interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
