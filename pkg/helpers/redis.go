package helpers

import (
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient returns a client tuned for short session and counter
// round trips.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		ClientName:   "newsboard",
		DialTimeout:  3 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
		MaxRetries:   1,
	})
}
