package mongo

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/google/uuid"

	"github.com/shreebalaji/traders-console/internal/core/domain"
)

// Runs against a live server when MONGO_TEST_URI is set.
func TestSessionRepository_RoundTrip(t *testing.T) {
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}
	ctx := context.Background()
	client, db, err := Connect(ctx, Config{URI: uri, Database: "console_test"})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer client.Disconnect(ctx)

	repo := NewSessionRepository(db)
	key := uuid.NewString()
	defer repo.Delete(ctx, key)

	if err := repo.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}
	if _, err := repo.Load(ctx, key); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}

	for _, want := range []domain.Session{
		{Credential: "tok-1", Role: domain.RoleClient},
		{Credential: "tok-2", Role: domain.RoleAdmin},
	} {
		if err := repo.Save(ctx, key, want); err != nil {
			t.Fatalf("save: %v", err)
		}
		got, err := repo.Load(ctx, key)
		if err != nil || got != want {
			t.Fatalf("load: %+v, %v", got, err)
		}
	}

	if err := repo.Delete(ctx, key); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete(ctx, key); err != nil {
		t.Fatalf("second delete: %v", err)
	}
}
