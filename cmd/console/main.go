// Command console serves the Shree Balaji Traders web console.
//
// @title        Shree Balaji Traders Console
// @version      1.0
// @description  Server-rendered admin and client console in front of the billing backend.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/shreebalaji/traders-console/internal/api"
	"github.com/shreebalaji/traders-console/internal/api/handler"
	"github.com/shreebalaji/traders-console/internal/api/metrics"
	"github.com/shreebalaji/traders-console/internal/core/ports"
	"github.com/shreebalaji/traders-console/internal/infrastructure/backend"
	"github.com/shreebalaji/traders-console/internal/infrastructure/db"
	"github.com/shreebalaji/traders-console/internal/pkg/config"
	"github.com/shreebalaji/traders-console/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Development(),
		Service: "traders-console",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sessions, closeSessions, err := db.OpenSessions(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("session_backend", cfg.SessionBackend).Msg("session store unavailable")
	}
	defer func() {
		if err := closeSessions(context.Background()); err != nil {
			log.Warn().Err(err).Msg("closing session store")
		}
	}()

	client, err := backend.Connect(backend.Config{
		BaseURL: cfg.Backend.URL,
		Timeout: cfg.Backend.Timeout,
	}, log)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid backend configuration")
	}
	client = client.WithObserver(metrics.ObserveBackend)

	workspaces := handler.NewWorkspaces(0, log)
	go workspaces.Run(ctx)

	ready := []handler.Dependency{{Name: "backend", Pinger: client}}
	if p, ok := sessions.(ports.Pinger); ok {
		ready = append(ready, handler.Dependency{Name: "sessions", Pinger: p})
	}

	e := api.NewRouter(api.Deps{
		Backend:      client,
		Sessions:     sessions,
		Workspaces:   workspaces,
		Ready:        ready,
		CookieSecure: cfg.CookieSecure,
		Log:          log,
	})

	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("env", cfg.Env).
			Str("session_backend", cfg.SessionBackend).
			Str("backend_url", client.BaseURL()).
			Msg("console listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
