// Package memory is a process-local session backend. Sessions do not
// survive a restart; use it for tests and throwaway runs.
package memory

import (
	"context"
	"sync"

	"github.com/shreebalaji/traders-console/internal/core/domain"
	"github.com/shreebalaji/traders-console/internal/core/ports"
)

type SessionRepository struct {
	mu      sync.RWMutex
	records map[string]domain.Session
}

var (
	_ ports.SessionRepository = (*SessionRepository)(nil)
	_ ports.Pinger            = (*SessionRepository)(nil)
)

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{records: make(map[string]domain.Session)}
}

func (r *SessionRepository) Load(_ context.Context, key string) (domain.Session, error) {
	if key == "" {
		return domain.Session{}, domain.ErrInvalidSessionKey
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.records[key]
	if !ok {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	return s, nil
}

func (r *SessionRepository) Save(_ context.Context, key string, s domain.Session) error {
	if key == "" {
		return domain.ErrInvalidSessionKey
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[key] = s
	return nil
}

func (r *SessionRepository) Delete(_ context.Context, key string) error {
	if key == "" {
		return domain.ErrInvalidSessionKey
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.records, key)
	return nil
}

func (r *SessionRepository) Ping(context.Context) error { return nil }

// Len reports how many sessions are stored.
func (r *SessionRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}
