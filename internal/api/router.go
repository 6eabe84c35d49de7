package api

import (
	"crypto/rand"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/oklog/ulid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/shreebalaji/traders-console/internal/api/docs"
	"github.com/shreebalaji/traders-console/internal/api/handler"
	"github.com/shreebalaji/traders-console/internal/api/middleware"
	"github.com/shreebalaji/traders-console/internal/core/domain"
	"github.com/shreebalaji/traders-console/internal/core/ports"
	"github.com/shreebalaji/traders-console/internal/infrastructure/backend"
)

// Deps is everything the router wires into handlers.
type Deps struct {
	Backend      *backend.Client
	Sessions     ports.SessionRepository
	Workspaces   *handler.Workspaces
	Ready        []handler.Dependency
	CookieSecure bool
	Log          zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = handler.MustRenderer()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// HTTP metrics live in a registry owned by this router so several
	// routers (tests) never register the same collector twice.
	reg := prometheus.NewRegistry()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: newRequestID,
	}))
	e.Use(requestLogger(d.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "console_http",
		Registerer: reg,
	}))

	// --- Probes and docs (no session) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Ready...)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{prometheus.DefaultGatherer, reg},
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Pages ---
	h := handler.NewConsole(d.Backend, d.Workspaces, d.Log)
	pages := e.Group("", middleware.Device(d.CookieSecure), middleware.Session(d.Sessions, d.Log))

	pages.GET("/", h.Root)
	pages.GET("/login", h.LoginPage)
	pages.POST("/login", h.Login)
	pages.GET("/signup", h.SignupPage)
	pages.POST("/signup", h.Signup)
	pages.POST("/logout", h.Logout)

	admin := pages.Group("/admin", middleware.RequireRole(domain.RoleAdmin))
	admin.GET("", h.Stock)
	admin.GET("/dashboard", h.Stock)
	admin.POST("/dashboard/products", h.AddProduct)
	admin.POST("/dashboard/products/:id", h.UpdateProduct)
	admin.GET("/bills", h.Bill)
	admin.POST("/bills", h.CreateBill)
	admin.GET("/bills/suggest", h.SuggestClients)
	admin.GET("/clients", h.Clients)
	admin.POST("/clients/:id", h.UpdateClient)
	admin.GET("/history", h.History)
	admin.RouteNotFound("/*", h.AdminNotFound)

	client := pages.Group("/client", middleware.RequireRole(domain.RoleClient))
	client.GET("", h.Dashboard)
	client.GET("/dashboard", h.Dashboard)
	client.GET("/bill-history", h.Dashboard)
	client.RouteNotFound("/*", h.ClientNotFound)

	return e
}

// newRequestID issues lexically sortable ids so backend logs correlated by
// X-Request-ID also sort by time.
func newRequestID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
