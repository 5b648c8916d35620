package redisstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/newsboard/internal/domain/repository"
)

func sessionKey(sid string) string {
	return "session:" + sid
}

// SessionRepository keeps sessions as redis hashes with a TTL.
type SessionRepository struct {
	rdb *redis.Client
}

func NewSessionRepository(rdb *redis.Client) *SessionRepository {
	return &SessionRepository{rdb: rdb}
}

func (r *SessionRepository) Create(ctx context.Context, sid string, userID int64, ttl time.Duration) error {
	key := sessionKey(sid)
	pipe := r.rdb.TxPipeline()
	pipe.HSet(ctx, key, map[string]any{
		"user_id":    userID,
		"created_at": time.Now().UTC().Format(time.RFC3339Nano),
	})
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Get(ctx context.Context, sid string) (int64, error) {
	v, err := r.rdb.HGet(ctx, sessionKey(sid), "user_id").Result()
	if errors.Is(err, redis.Nil) {
		return 0, repository.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("load session: %w", err)
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt session %s: %w", sid, err)
	}
	return id, nil
}

func (r *SessionRepository) Delete(ctx context.Context, sid string) error {
	return r.rdb.Del(ctx, sessionKey(sid)).Err()
}

var _ repository.SessionRepository = (*SessionRepository)(nil)
