package ports

import (
	"context"

	"github.com/shreebalaji/traders-console/internal/core/domain"
)

// SessionRepository is the durable record behind a session store: two
// string fields stored under an owner key, surviving process restarts.
// No expiry is applied; the backend decides when a credential is stale.
type SessionRepository interface {
	// Load returns domain.ErrSessionNotFound when nothing is stored for key.
	Load(ctx context.Context, key string) (domain.Session, error)
	// Save overwrites whatever is stored for key.
	Save(ctx context.Context, key string, s domain.Session) error
	// Delete removes the record. A missing record is not an error.
	Delete(ctx context.Context, key string) error
}

// Pinger is implemented by repositories that can report connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}
