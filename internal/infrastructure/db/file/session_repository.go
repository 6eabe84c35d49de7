// Package file stores sessions in a single JSON document on local disk,
// for the CLI and for single-host deployments without a database.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/shreebalaji/traders-console/internal/core/domain"
	"github.com/shreebalaji/traders-console/internal/core/ports"
)

// EnvSessionFile overrides the default session file location.
const EnvSessionFile = "CONSOLE_SESSION_FILE"

// DefaultPath returns the session file path: $CONSOLE_SESSION_FILE if set,
// otherwise $XDG_CONFIG_HOME/traders-console/session.json, falling back to
// ~/.config when XDG_CONFIG_HOME is unset.
func DefaultPath() string {
	if p := os.Getenv(EnvSessionFile); p != "" {
		return p
	}
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), "traders-console-session.json")
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "traders-console", "session.json")
}

// SessionRepository keeps every owner's session in one file, keyed by owner.
// The directory is created 0700 and the file written 0600 because it holds
// credentials. Writes go through a temp file and a rename.
type SessionRepository struct {
	path string
	mu   sync.Mutex
}

var (
	_ ports.SessionRepository = (*SessionRepository)(nil)
	_ ports.Pinger            = (*SessionRepository)(nil)
)

func NewSessionRepository(path string) *SessionRepository {
	return &SessionRepository{path: path}
}

// Path returns the file the repository reads and writes.
func (r *SessionRepository) Path() string {
	return r.path
}

func (r *SessionRepository) Load(_ context.Context, key string) (domain.Session, error) {
	if key == "" {
		return domain.Session{}, domain.ErrInvalidSessionKey
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.read()
	if err != nil {
		return domain.Session{}, err
	}
	s, ok := all[key]
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

	all, err := r.read()
	if err != nil {
		return err
	}
	all[key] = s
	return r.write(all)
}

func (r *SessionRepository) Delete(_ context.Context, key string) error {
	if key == "" {
		return domain.ErrInvalidSessionKey
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	all, err := r.read()
	if err != nil {
		return err
	}
	if _, ok := all[key]; !ok {
		return nil
	}
	delete(all, key)
	if len(all) == 0 {
		if err := os.Remove(r.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("removing session file %s: %w", r.path, err)
		}
		return nil
	}
	return r.write(all)
}

// Ping checks that the session directory can be created.
func (r *SessionRepository) Ping(context.Context) error {
	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating session directory %s: %w", dir, err)
	}
	return nil
}

func (r *SessionRepository) read() (map[string]domain.Session, error) {
	all := make(map[string]domain.Session)
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return all, nil
		}
		return nil, fmt.Errorf("reading session file %s: %w", r.path, err)
	}
	if len(data) == 0 {
		return all, nil
	}
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("parsing session file %s: %w", r.path, err)
	}
	return all, nil
}

func (r *SessionRepository) write(all map[string]domain.Session) error {
	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling sessions: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating session directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*.json")
	if err != nil {
		return fmt.Errorf("creating temp session file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod temp session file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp session file: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("replacing session file %s: %w", r.path, err)
	}
	return nil
}
