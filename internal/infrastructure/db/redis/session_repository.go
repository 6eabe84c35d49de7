package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/shreebalaji/traders-console/internal/core/domain"
	"github.com/shreebalaji/traders-console/internal/core/ports"
)

const keyPrefix = "console:session:"

// SessionRepository stores each session as a hash with the two fields
// "credential" and "role".
// Key format: console:session:<owner_key>
type SessionRepository struct {
	client *redis.Client
}

var (
	_ ports.SessionRepository = (*SessionRepository)(nil)
	_ ports.Pinger            = (*SessionRepository)(nil)
)

// NewSessionRepository wraps the given Redis client.
func NewSessionRepository(client *redis.Client) *SessionRepository {
	return &SessionRepository{client: client}
}

func (r *SessionRepository) Load(ctx context.Context, key string) (domain.Session, error) {
	if key == "" {
		return domain.Session{}, domain.ErrInvalidSessionKey
	}
	fields, err := r.client.HGetAll(ctx, keyPrefix+key).Result()
	if err != nil {
		return domain.Session{}, fmt.Errorf("load session: %w", err)
	}
	if len(fields) == 0 {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	return domain.Session{
		Credential: fields["credential"],
		Role:       domain.Role(fields["role"]),
	}, nil
}

// Save replaces both fields in one transaction so no reader sees one
// without the other.
func (r *SessionRepository) Save(ctx context.Context, key string, s domain.Session) error {
	if key == "" {
		return domain.ErrInvalidSessionKey
	}
	_, err := r.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Del(ctx, keyPrefix+key)
		p.HSet(ctx, keyPrefix+key, "credential", s.Credential, "role", string(s.Role))
		return nil
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, key string) error {
	if key == "" {
		return domain.ErrInvalidSessionKey
	}
	if err := r.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
