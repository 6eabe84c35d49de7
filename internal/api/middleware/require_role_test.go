package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/shreebalaji/traders-console/internal/core/domain"
	"github.com/shreebalaji/traders-console/internal/core/ports"
	"github.com/shreebalaji/traders-console/internal/core/service"
	"github.com/shreebalaji/traders-console/internal/infrastructure/db/memory"
)

type failingRepo struct{ *memory.SessionRepository }

func (failingRepo) Load(context.Context, string) (domain.Session, error) {
	return domain.Session{}, errors.New("connection refused")
}

func serve(t *testing.T, repo ports.SessionRepository, method, device string, role domain.Role) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, "/admin/dashboard", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(deviceKey, device)

	called := false
	chain := Session(repo, zerolog.Nop())(RequireRole(role)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	}))
	if err := chain(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec, called
}

func TestRequireRole_Permits(t *testing.T) {
	repo := memory.NewSessionRepository()
	_ = repo.Save(context.Background(), "dev-1", domain.Session{Credential: "tok", Role: domain.RoleAdmin})

	rec, called := serve(t, repo, http.MethodGet, "dev-1", domain.RoleAdmin)
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("expected pass-through, got %d called=%v", rec.Code, called)
	}
}

func TestRequireRole_RedirectsWrongRole(t *testing.T) {
	repo := memory.NewSessionRepository()
	_ = repo.Save(context.Background(), "dev-1", domain.Session{Credential: "tok", Role: domain.RoleClient})

	rec, called := serve(t, repo, http.MethodGet, "dev-1", domain.RoleAdmin)
	if called {
		t.Fatalf("client must not reach admin handler")
	}
	if rec.Code != http.StatusFound || rec.Header().Get(echo.HeaderLocation) != service.LoginPath {
		t.Fatalf("expected 302 to %s, got %d %q", service.LoginPath, rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
}

func TestRequireRole_RedirectsAnonymousPostWith303(t *testing.T) {
	rec, called := serve(t, memory.NewSessionRepository(), http.MethodPost, "dev-1", domain.RoleAdmin)
	if called || rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d called=%v", rec.Code, called)
	}
}

func TestRequireRole_RedirectsOnRepoFailure(t *testing.T) {
	rec, called := serve(t, failingRepo{memory.NewSessionRepository()}, http.MethodGet, "dev-1", domain.RoleAdmin)
	if called || rec.Code != http.StatusFound {
		t.Fatalf("expected redirect on hydrate failure, got %d", rec.Code)
	}
}

func TestRequireRole_WaitsWhileLoading(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/client", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	// A store that was never hydrated is still loading.
	c.Set(sessionKey, service.NewSessionStore(memory.NewSessionRepository(), "dev-1", zerolog.Nop()))

	handler := RequireRole(domain.RoleClient)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestRequireRole_NoSessionMiddleware(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/client", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequireRole(domain.RoleClient)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})
	_ = handler(c)
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
}
