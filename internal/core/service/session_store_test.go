package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shreebalaji/traders-console/internal/core/domain"
)

type stubSessionRepo struct {
	mu        sync.Mutex
	records   map[string]domain.Session
	loadErr   error
	saveErr   error
	deleteErr error
}

func newStubSessionRepo() *stubSessionRepo {
	return &stubSessionRepo{records: make(map[string]domain.Session)}
}

func (r *stubSessionRepo) Load(_ context.Context, key string) (domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loadErr != nil {
		return domain.Session{}, r.loadErr
	}
	s, ok := r.records[key]
	if !ok {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	return s, nil
}

func (r *stubSessionRepo) Save(_ context.Context, key string, s domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.records[key] = s
	return nil
}

func (r *stubSessionRepo) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleteErr != nil {
		return r.deleteErr
	}
	delete(r.records, key)
	return nil
}

func TestSessionStore_StartsLoading(t *testing.T) {
	s := NewSessionStore(newStubSessionRepo(), "dev-1", zerolog.Nop())
	assert.True(t, s.Loading())
	_, ok := s.Current()
	assert.False(t, ok)
	assert.Equal(t, "dev-1", s.Key())
}

func TestSessionStore_HydrateRestoresRecord(t *testing.T) {
	repo := newStubSessionRepo()
	repo.records["dev-1"] = domain.Session{Credential: "tok", Role: domain.RoleAdmin}

	s := NewSessionStore(repo, "dev-1", zerolog.Nop())
	require.NoError(t, s.Hydrate(context.Background()))

	assert.False(t, s.Loading())
	sess, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, domain.RoleAdmin, sess.Role)
	cred, ok := s.Credential()
	assert.True(t, ok)
	assert.Equal(t, "tok", cred)
}

func TestSessionStore_HydrateIgnoresHalfRecord(t *testing.T) {
	for name, rec := range map[string]domain.Session{
		"credential only": {Credential: "tok"},
		"role only":       {Role: domain.RoleClient},
		"unknown role":    {Credential: "tok", Role: "root"},
	} {
		t.Run(name, func(t *testing.T) {
			repo := newStubSessionRepo()
			repo.records["k"] = rec
			s := NewSessionStore(repo, "k", zerolog.Nop())

			require.NoError(t, s.Hydrate(context.Background()))
			_, ok := s.Current()
			assert.False(t, ok)
			assert.Equal(t, Redirect, Authorize(s, domain.RoleClient))
		})
	}
}

func TestSessionStore_HydrateRepoFailure(t *testing.T) {
	repo := newStubSessionRepo()
	repo.loadErr = errors.New("connection reset")
	s := NewSessionStore(repo, "k", zerolog.Nop())

	err := s.Hydrate(context.Background())
	require.Error(t, err)
	assert.False(t, s.Loading())
	_, ok := s.Current()
	assert.False(t, ok)
}

func TestSessionStore_LoginPersistsBeforeMemory(t *testing.T) {
	repo := newStubSessionRepo()
	s := NewSessionStore(repo, "k", zerolog.Nop())
	require.NoError(t, s.Hydrate(context.Background()))

	require.NoError(t, s.Login(context.Background(), "tok", domain.RoleClient))
	assert.Equal(t, domain.Session{Credential: "tok", Role: domain.RoleClient}, repo.records["k"])

	// A fresh store over the same repository sees the session.
	again := NewSessionStore(repo, "k", zerolog.Nop())
	require.NoError(t, again.Hydrate(context.Background()))
	sess, ok := again.Current()
	require.True(t, ok)
	assert.Equal(t, "tok", sess.Credential)
}

func TestSessionStore_LoginFailureKeepsMemory(t *testing.T) {
	repo := newStubSessionRepo()
	repo.saveErr = errors.New("disk full")
	s := NewSessionStore(repo, "k", zerolog.Nop())
	require.NoError(t, s.Hydrate(context.Background()))

	require.Error(t, s.Login(context.Background(), "tok", domain.RoleAdmin))
	_, ok := s.Current()
	assert.False(t, ok)
}

func TestSessionStore_LoginRejectsPartialSession(t *testing.T) {
	s := NewSessionStore(newStubSessionRepo(), "k", zerolog.Nop())
	assert.ErrorIs(t, s.Login(context.Background(), "", domain.RoleAdmin), domain.ErrMalformedSession)
	assert.ErrorIs(t, s.Login(context.Background(), "tok", ""), domain.ErrMalformedSession)
}

func TestSessionStore_Logout(t *testing.T) {
	repo := newStubSessionRepo()
	s := NewSessionStore(repo, "k", zerolog.Nop())
	require.NoError(t, s.Login(context.Background(), "tok", domain.RoleAdmin))

	require.NoError(t, s.Logout(context.Background()))
	_, ok := s.Current()
	assert.False(t, ok)
	_, stored := repo.records["k"]
	assert.False(t, stored)

	// Logging out twice is harmless.
	require.NoError(t, s.Logout(context.Background()))
}

func TestSessionStore_LogoutBlanksRecordWhenDeleteFails(t *testing.T) {
	repo := newStubSessionRepo()
	s := NewSessionStore(repo, "k", zerolog.Nop())
	require.NoError(t, s.Login(context.Background(), "tok", domain.RoleAdmin))
	repo.deleteErr = errors.New("transient")

	require.NoError(t, s.Logout(context.Background()))
	_, ok := s.Current()
	assert.False(t, ok)

	// The next request hydrates a fresh store from the same key.
	repo.deleteErr = nil
	next := NewSessionStore(repo, "k", zerolog.Nop())
	require.NoError(t, next.Hydrate(context.Background()))
	_, ok = next.Current()
	assert.False(t, ok)
	assert.Equal(t, Redirect, Authorize(next, domain.RoleAdmin))
}

func TestSessionStore_LogoutReportsSurvivingRecord(t *testing.T) {
	repo := newStubSessionRepo()
	s := NewSessionStore(repo, "k", zerolog.Nop())
	require.NoError(t, s.Login(context.Background(), "tok", domain.RoleAdmin))
	repo.deleteErr = errors.New("down")
	repo.saveErr = errors.New("down")

	require.Error(t, s.Logout(context.Background()))
	_, ok := s.Current()
	assert.False(t, ok)
}
