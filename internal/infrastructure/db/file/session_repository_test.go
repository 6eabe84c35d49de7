package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shreebalaji/traders-console/internal/core/domain"
)

func TestSessionRepository_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	repo := NewSessionRepository(path)
	ctx := context.Background()

	if _, err := repo.Load(ctx, "operator"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}

	want := domain.Session{Credential: "tok", Role: domain.RoleAdmin}
	if err := repo.Save(ctx, "operator", want); err != nil {
		t.Fatalf("save: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Fatalf("expected mode 0600, got %v", info.Mode().Perm())
	}
	dirInfo, _ := os.Stat(filepath.Dir(path))
	if dirInfo.Mode().Perm() != 0700 {
		t.Fatalf("expected dir mode 0700, got %v", dirInfo.Mode().Perm())
	}

	// A second repository over the same file sees the record.
	got, err := NewSessionRepository(path).Load(ctx, "operator")
	if err != nil || got != want {
		t.Fatalf("load: %+v, %v", got, err)
	}

	if err := repo.Delete(ctx, "operator"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected file removed after last delete, got %v", err)
	}
	if err := repo.Delete(ctx, "operator"); err != nil {
		t.Fatalf("second delete: %v", err)
	}
}

func TestSessionRepository_KeepsOtherOwners(t *testing.T) {
	repo := NewSessionRepository(filepath.Join(t.TempDir(), "session.json"))
	ctx := context.Background()

	a := domain.Session{Credential: "a", Role: domain.RoleAdmin}
	b := domain.Session{Credential: "b", Role: domain.RoleClient}
	if err := repo.Save(ctx, "dev-a", a); err != nil {
		t.Fatalf("save a: %v", err)
	}
	if err := repo.Save(ctx, "dev-b", b); err != nil {
		t.Fatalf("save b: %v", err)
	}
	if err := repo.Delete(ctx, "dev-a"); err != nil {
		t.Fatalf("delete a: %v", err)
	}
	got, err := repo.Load(ctx, "dev-b")
	if err != nil || got != b {
		t.Fatalf("load b: %+v, %v", got, err)
	}
}

func TestSessionRepository_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}
	_, err := NewSessionRepository(path).Load(context.Background(), "operator")
	if err == nil || errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv(EnvSessionFile, "/tmp/explicit.json")
	if got := DefaultPath(); got != "/tmp/explicit.json" {
		t.Fatalf("unexpected path %q", got)
	}

	t.Setenv(EnvSessionFile, "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	if got := DefaultPath(); got != "/xdg/traders-console/session.json" {
		t.Fatalf("unexpected path %q", got)
	}
}
