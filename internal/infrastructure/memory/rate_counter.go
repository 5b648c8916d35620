package memory

import (
	"context"
	"sync"
	"time"
)

const sweepThreshold = 10000

type window struct {
	count     int64
	expiresAt time.Time
}

// RateCounter is a fixed-window counter for a single process.
type RateCounter struct {
	mu      sync.Mutex
	windows map[string]*window
	now     func() time.Time
}

func NewRateCounter() *RateCounter {
	return &RateCounter{windows: make(map[string]*window), now: time.Now}
}

func (c *RateCounter) Incr(_ context.Context, key string, d time.Duration) (int64, time.Duration, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	if len(c.windows) > sweepThreshold {
		for k, w := range c.windows {
			if !now.Before(w.expiresAt) {
				delete(c.windows, k)
			}
		}
	}
	w, ok := c.windows[key]
	if !ok || !now.Before(w.expiresAt) {
		w = &window{expiresAt: now.Add(d)}
		c.windows[key] = w
	}
	w.count++
	return w.count, w.expiresAt.Sub(now), nil
}

func (c *RateCounter) Decr(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if w, ok := c.windows[key]; ok && c.now().Before(w.expiresAt) && w.count > 0 {
		w.count--
	}
	return nil
}
