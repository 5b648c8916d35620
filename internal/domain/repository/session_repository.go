package repository

import (
	"context"
	"time"
)

// SessionRepository maps opaque session ids to user ids.
type SessionRepository interface {
	Create(ctx context.Context, sid string, userID int64, ttl time.Duration) error
	// Get returns ErrNotFound for unknown or expired sessions.
	Get(ctx context.Context, sid string) (int64, error)
	Delete(ctx context.Context, sid string) error
}
