// Package memory holds in-process stand-ins for the redis stores. State is
// lost on restart and is not shared between instances.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/oksasatya/newsboard/internal/domain/repository"
)

type sessionEntry struct {
	userID    int64
	expiresAt time.Time
}

type SessionRepository struct {
	mu       sync.Mutex
	sessions map[string]sessionEntry
	now      func() time.Time
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{sessions: make(map[string]sessionEntry), now: time.Now}
}

func (r *SessionRepository) Create(_ context.Context, sid string, userID int64, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	for k, e := range r.sessions {
		if !now.Before(e.expiresAt) {
			delete(r.sessions, k)
		}
	}
	r.sessions[sid] = sessionEntry{userID: userID, expiresAt: now.Add(ttl)}
	return nil
}

func (r *SessionRepository) Get(_ context.Context, sid string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[sid]
	if !ok {
		return 0, repository.ErrNotFound
	}
	if !r.now().Before(e.expiresAt) {
		delete(r.sessions, sid)
		return 0, repository.ErrNotFound
	}
	return e.userID, nil
}

func (r *SessionRepository) Delete(_ context.Context, sid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sid)
	return nil
}

var _ repository.SessionRepository = (*SessionRepository)(nil)
