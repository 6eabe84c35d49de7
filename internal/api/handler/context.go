package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shreebalaji/traders-console/internal/api/middleware"
	"github.com/shreebalaji/traders-console/internal/core/service"
	"github.com/shreebalaji/traders-console/internal/infrastructure/backend"
)

// ctxSession extracts what the Device and Session middleware injected and
// fails fast when either is missing: a handler without a device id cannot
// key view state or the durable session.
func ctxSession(c echo.Context) (*service.SessionStore, string, error) {
	device := middleware.DeviceID(c)
	store := middleware.SessionStore(c)
	if device == "" || store == nil {
		return nil, "", echo.NewHTTPError(http.StatusInternalServerError, "session middleware not installed")
	}
	return store, device, nil
}

// requestContext carries the request id to the backend.
func requestContext(c echo.Context) context.Context {
	ctx := c.Request().Context()
	if id := c.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		ctx = backend.WithRequestID(ctx, id)
	}
	return ctx
}
