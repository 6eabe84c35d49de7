package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/shreebalaji/traders-console/internal/core/domain"
	"github.com/shreebalaji/traders-console/internal/core/ports"
)

// SessionStore owns the in-memory session of one owner (a browser device or
// the CLI operator) and mirrors it to the durable record under key.
//
// A new store starts in the loading state; Loading stays true until Hydrate
// has returned, so callers can refuse to render protected content before
// the durable record has been read.
type SessionStore struct {
	repo ports.SessionRepository
	key  string
	log  zerolog.Logger

	mu      sync.RWMutex
	current domain.Session
	loading bool
}

// NewSessionStore returns a store for key that has not been hydrated yet.
func NewSessionStore(repo ports.SessionRepository, key string, log zerolog.Logger) *SessionStore {
	return &SessionStore{
		repo:    repo,
		key:     key,
		log:     log.With().Str("component", "session").Logger(),
		loading: true,
	}
}

// Key returns the owner key the store persists under.
func (s *SessionStore) Key() string {
	return s.key
}

// Hydrate reads the durable record once. A record missing either field is
// treated as no session. Loading is cleared whatever the outcome; a
// repository failure is returned with the session left empty.
func (s *SessionStore) Hydrate(ctx context.Context) error {
	rec, err := s.repo.Load(ctx, s.key)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.current = domain.Session{}

	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil
		}
		return fmt.Errorf("hydrate session: %w", err)
	}
	if !rec.Complete() {
		if !rec.IsZero() {
			s.log.Warn().Str("role", string(rec.Role)).Msg("ignoring incomplete session record")
		}
		return nil
	}
	s.current = rec
	return nil
}

// Loading reports whether Hydrate has not finished yet.
func (s *SessionStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Current returns the session and whether one is established.
func (s *SessionStore) Current() (domain.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, !s.current.IsZero()
}

// Credential returns the stored credential, if any.
func (s *SessionStore) Credential() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Credential, s.current.Credential != ""
}

// Login overwrites the durable record and then the in-memory session. The
// credential is opaque here; the backend already accepted it. Memory is left
// untouched when the durable write fails.
func (s *SessionStore) Login(ctx context.Context, credential string, role domain.Role) error {
	next := domain.Session{Credential: credential, Role: role}
	if !next.Complete() {
		return domain.ErrMalformedSession
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Save(ctx, s.key, next); err != nil {
		return fmt.Errorf("login: persist session: %w", err)
	}
	s.current = next
	s.loading = false

	s.log.Info().Str("role", string(role)).Msg("session established")
	return nil
}

// Logout clears the durable record and the in-memory session under one lock.
// When the delete fails the record is overwritten with an empty session
// instead, so the next hydration finds nothing. Memory is cleared either
// way; an error is returned only when the durable record may still hold
// the credential.
func (s *SessionStore) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = domain.Session{}
	s.loading = false

	if err := s.repo.Delete(ctx, s.key); err != nil {
		if saveErr := s.repo.Save(ctx, s.key, domain.Session{}); saveErr != nil {
			return fmt.Errorf("logout: delete session: %w", errors.Join(err, saveErr))
		}
		s.log.Warn().Err(err).Msg("session delete failed; record blanked instead")
	}
	s.log.Info().Msg("session cleared")
	return nil
}
