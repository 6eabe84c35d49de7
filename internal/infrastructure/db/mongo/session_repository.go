package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/shreebalaji/traders-console/internal/core/domain"
	"github.com/shreebalaji/traders-console/internal/core/ports"
)

const sessionCollection = "console_sessions"

// SessionRepository keeps one document per owner key, using the key as _id.
type SessionRepository struct {
	coll *mongo.Collection
}

var (
	_ ports.SessionRepository = (*SessionRepository)(nil)
	_ ports.Pinger            = (*SessionRepository)(nil)
)

func NewSessionRepository(db *mongo.Database) *SessionRepository {
	return &SessionRepository{coll: db.Collection(sessionCollection)}
}

type mongoSession struct {
	Key        string `bson:"_id"`
	Credential string `bson:"credential"`
	Role       string `bson:"role"`
	UpdatedAt  int64  `bson:"updated_at"`
}

func (r *SessionRepository) Load(ctx context.Context, key string) (domain.Session, error) {
	if key == "" {
		return domain.Session{}, domain.ErrInvalidSessionKey
	}
	var doc mongoSession
	if err := r.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Session{}, domain.ErrSessionNotFound
		}
		return domain.Session{}, fmt.Errorf("find session: %w", err)
	}
	return domain.Session{Credential: doc.Credential, Role: domain.Role(doc.Role)}, nil
}

// Save replaces the whole document, so both fields change together.
func (r *SessionRepository) Save(ctx context.Context, key string, s domain.Session) error {
	if key == "" {
		return domain.ErrInvalidSessionKey
	}
	doc := mongoSession{
		Key:        key,
		Credential: s.Credential,
		Role:       string(s.Role),
		UpdatedAt:  time.Now().UTC().Unix(),
	}
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, key string) error {
	if key == "" {
		return domain.ErrInvalidSessionKey
	}
	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Ping(ctx context.Context) error {
	return r.coll.Database().Client().Ping(ctx, readpref.Primary())
}
