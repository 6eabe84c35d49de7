package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shreebalaji/traders-console/internal/core/domain"
	"github.com/shreebalaji/traders-console/internal/core/ports"
)

const sessionTable = "console_sessions"

const createSessionTable = `CREATE TABLE IF NOT EXISTS ` + sessionTable + ` (
	owner_key  VARCHAR(128) NOT NULL PRIMARY KEY,
	credential TEXT         NOT NULL,
	role       VARCHAR(16)  NOT NULL,
	updated_at TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
)`

// SessionRepository keeps one row per owner key.
type SessionRepository struct {
	db *sql.DB
}

var (
	_ ports.SessionRepository = (*SessionRepository)(nil)
	_ ports.Pinger            = (*SessionRepository)(nil)
)

func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Load(ctx context.Context, key string) (domain.Session, error) {
	if key == "" {
		return domain.Session{}, domain.ErrInvalidSessionKey
	}
	var cred, role string
	err := r.db.QueryRowContext(ctx,
		`SELECT credential, role FROM `+sessionTable+` WHERE owner_key = ?`, key,
	).Scan(&cred, &role)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("select session: %w", err)
	}
	return domain.Session{Credential: cred, Role: domain.Role(role)}, nil
}

func (r *SessionRepository) Save(ctx context.Context, key string, s domain.Session) error {
	if key == "" {
		return domain.ErrInvalidSessionKey
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO `+sessionTable+` (owner_key, credential, role) VALUES (?, ?, ?)
		 ON DUPLICATE KEY UPDATE credential = VALUES(credential), role = VALUES(role)`,
		key, s.Credential, string(s.Role),
	)
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, key string) error {
	if key == "" {
		return domain.ErrInvalidSessionKey
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM `+sessionTable+` WHERE owner_key = ?`, key); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
