package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shreebalaji/traders-console/internal/api/metrics"
	"github.com/shreebalaji/traders-console/internal/core/domain"
	"github.com/shreebalaji/traders-console/internal/core/service"
)

const loadingPage = `<!DOCTYPE html><html><head><meta http-equiv="refresh" content="1"><title>Loading...</title></head><body><p>Loading...</p></body></html>`

// RequireRole guards a route group. It asks the authorizer on every request
// and either lets the request through, answers with a loading placeholder
// while the session is not hydrated, or redirects to the login page.
func RequireRole(role domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var reader service.SessionReader
			if s := SessionStore(c); s != nil {
				reader = s
			}
			verdict := service.Authorize(reader, role)
			metrics.RouteDecisionsTotal.WithLabelValues(string(role), verdict.String()).Inc()

			switch verdict {
			case service.Permit:
				return next(c)
			case service.Wait:
				c.Response().Header().Set("Retry-After", "1")
				return c.HTML(http.StatusServiceUnavailable, loadingPage)
			default:
				code := http.StatusFound
				if c.Request().Method != http.MethodGet && c.Request().Method != http.MethodHead {
					code = http.StatusSeeOther
				}
				return c.Redirect(code, service.LoginPath)
			}
		}
	}
}
