package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/shreebalaji/traders-console/internal/core/domain"
)

func TestResolveError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"echo error", echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), http.StatusBadRequest, "invalid payload"},
		{"bad cookie", fmt.Errorf("load: %w", domain.ErrInvalidSessionKey), http.StatusBadRequest, "invalid device cookie"},
		{"unknown record", domain.ErrUnknownRecord, http.StatusNotFound, "record not found"},
		{"backend", &domain.RemoteError{Status: 500, Message: "db down"}, http.StatusBadGateway, "billing backend error"},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

			code, msg := resolveError(tt.err, zerolog.Nop(), c)

			if code != tt.wantCode || msg != tt.wantMsg {
				t.Fatalf("expected %d %q, got %d %q", tt.wantCode, tt.wantMsg, code, msg)
			}
		})
	}
}

func TestHTTPErrorHandler_JSONForAcceptHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.Header.Set(echo.HeaderAccept, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	NewHTTPErrorHandler(zerolog.Nop())(errors.New("boom"), e.NewContext(req, rec))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if got := rec.Body.String(); got != "{\"error\":\"internal server error\"}\n" {
		t.Fatalf("unexpected body %q", got)
	}
}
