package mysql

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/google/uuid"

	"github.com/shreebalaji/traders-console/internal/core/domain"
)

// Runs against a live server when MYSQL_TEST_DSN is set.
func TestSessionRepository_RoundTrip(t *testing.T) {
	dsn := os.Getenv("MYSQL_TEST_DSN")
	if dsn == "" {
		t.Skip("MYSQL_TEST_DSN not set")
	}
	ctx := context.Background()
	db, err := Connect(ctx, Config{DSN: dsn})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer db.Close()

	repo := NewSessionRepository(db)
	key := uuid.NewString()
	defer repo.Delete(ctx, key)

	if _, err := repo.Load(ctx, key); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	want := domain.Session{Credential: "tok", Role: domain.RoleClient}
	if err := repo.Save(ctx, key, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	want.Role = domain.RoleAdmin
	if err := repo.Save(ctx, key, want); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err := repo.Load(ctx, key)
	if err != nil || got != want {
		t.Fatalf("load: %+v, %v", got, err)
	}
	if err := repo.Delete(ctx, key); err != nil {
		t.Fatalf("delete: %v", err)
	}
}

func TestConnect_BadDSN(t *testing.T) {
	if _, err := Connect(context.Background(), Config{DSN: "not a dsn"}); err == nil {
		t.Fatalf("expected error for malformed DSN")
	}
}
