package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/newsboard/pkg/response"
)

const RateLimitMessage = "Too many requests, please try again later."

// Counter is a fixed-window hit counter shared by all limiter instances.
// Incr returns the hit count in the current window and the time left in it.
type Counter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
	Decr(ctx context.Context, key string) error
}

// ipFromCtx extracts the client IP from Gin context, falling back to "unknown"
func ipFromCtx(c *gin.Context) string {
	if ip := c.GetString("real_ip"); ip != "" {
		return ip
	}
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}

// KeyFunc builds the per-client part of a rate-limit key
type KeyFunc func(c *gin.Context) string

// KeyByIP limits by client IP only
func KeyByIP() KeyFunc {
	return func(c *gin.Context) string {
		return "ip:" + ipFromCtx(c)
	}
}

type AllowFunc func(*gin.Context) bool // return true for bypass limit

type RateLimitConfig struct {
	// Name separates counters of different limiters for the same client.
	Name   string
	Max    int
	Window time.Duration
	Key    KeyFunc
	Allow  AllowFunc
	// SkipSuccessful refunds the hit when the handler answers below 400.
	SkipSuccessful bool
	Metrics        *Metrics
}

// RateLimit with:
// - atomic counter per window
// - standard headers (limit/remaining/reset)
// - optional allowlist bypass and refund of successful requests
func RateLimit(counter Counter, cfg RateLimitConfig) gin.HandlerFunc {
	if counter == nil || cfg.Max <= 0 || cfg.Window <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	if cfg.Key == nil {
		cfg.Key = KeyByIP()
	}
	return func(c *gin.Context) {
		if cfg.Allow != nil && cfg.Allow(c) {
			c.Next()
			return
		}
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := "rl:" + cfg.Name + ":" + cfg.Key(c)

		count, ttl, err := counter.Incr(ctx, key, cfg.Window)
		if err != nil {
			// fail open when the counter store is unavailable
			c.Next()
			return
		}

		resetSec := int((ttl + time.Second - 1) / time.Second)
		remaining := cfg.Max - int(count)
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.Max))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.Itoa(resetSec))

		if int(count) > cfg.Max {
			if resetSec > 0 {
				c.Header("Retry-After", strconv.Itoa(resetSec))
			}
			cfg.Metrics.rateLimited(cfg.Name)
			response.Error(c, http.StatusTooManyRequests, RateLimitMessage, nil)
			return
		}

		c.Next()

		if cfg.SkipSuccessful && c.Writer.Status() < http.StatusBadRequest {
			_ = counter.Decr(context.WithoutCancel(ctx), key)
		}
	}
}
