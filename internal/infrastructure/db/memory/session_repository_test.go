package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/shreebalaji/traders-console/internal/core/domain"
)

func TestSessionRepository(t *testing.T) {
	repo := NewSessionRepository()
	ctx := context.Background()

	if _, err := repo.Load(ctx, "k"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	want := domain.Session{Credential: "tok", Role: domain.RoleClient}
	if err := repo.Save(ctx, "k", want); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got, err := repo.Load(ctx, "k"); err != nil || got != want {
		t.Fatalf("load: %+v, %v", got, err)
	}
	if repo.Len() != 1 {
		t.Fatalf("expected 1 record, got %d", repo.Len())
	}
	if err := repo.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if repo.Len() != 0 {
		t.Fatalf("expected 0 records, got %d", repo.Len())
	}
	if err := repo.Save(ctx, "", want); !errors.Is(err, domain.ErrInvalidSessionKey) {
		t.Fatalf("expected ErrInvalidSessionKey, got %v", err)
	}
}
