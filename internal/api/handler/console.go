package handler

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/shreebalaji/traders-console/internal/core/service"
	"github.com/shreebalaji/traders-console/internal/core/view"
	"github.com/shreebalaji/traders-console/internal/infrastructure/backend"
)

// Console serves the HTML pages. Every request talks to the backend with
// the credential of its own device session.
type Console struct {
	backend    *backend.Client
	workspaces *Workspaces
	log        zerolog.Logger
}

func NewConsole(b *backend.Client, ws *Workspaces, log zerolog.Logger) *Console {
	return &Console{
		backend:    b,
		workspaces: ws,
		log:        log.With().Str("component", "console").Logger(),
	}
}

// request bundles what a page handler needs.
type request struct {
	ctx    context.Context
	api    *backend.Client
	store  *service.SessionStore
	device string
}

func (h *Console) begin(c echo.Context) (*request, error) {
	store, device, err := ctxSession(c)
	if err != nil {
		return nil, err
	}
	return &request{
		ctx:    requestContext(c),
		api:    h.backend.WithCredentials(store),
		store:  store,
		device: device,
	}, nil
}

// logFailure records the cause behind a message already shown to the user.
func (h *Console) logFailure(c echo.Context, err error, msg string) {
	h.log.Warn().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg(msg)
}

// actionMessage is the user-facing text of a failed action.
func actionMessage(err error, fallback string) string {
	var ae *view.ActionError
	if errors.As(err, &ae) {
		return ae.Message
	}
	return fallback
}
