package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/shreebalaji/traders-console/internal/api/metrics"
	"github.com/shreebalaji/traders-console/internal/core/ports"
	"github.com/shreebalaji/traders-console/internal/core/service"
)

const sessionKey = "session"

// Session builds the device's session store and hydrates it from repo
// before the handler runs. A repository failure is logged and the request
// continues with no session, which protected routes treat as logged out.
func Session(repo ports.SessionRepository, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			store := service.NewSessionStore(repo, DeviceID(c), log)
			if err := store.Hydrate(c.Request().Context()); err != nil {
				metrics.SessionEventsTotal.WithLabelValues("hydrate_error").Inc()
				log.Warn().Err(err).Str("path", c.Path()).Msg("session hydrate failed")
			}
			c.Set(sessionKey, store)
			return next(c)
		}
	}
}

// SessionStore returns the store set by Session, or nil outside it.
func SessionStore(c echo.Context) *service.SessionStore {
	s, _ := c.Get(sessionKey).(*service.SessionStore)
	return s
}
