package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shreebalaji/traders-console/internal/core/domain"
	"github.com/shreebalaji/traders-console/internal/core/view"
)

type dashboardData struct {
	ClientName string
	State      view.State[domain.Bill]
	Empty      string
}

// Dashboard renders the client's own purchase history.
func (h *Console) Dashboard(c echo.Context) error {
	r, err := h.begin(c)
	if err != nil {
		return err
	}
	ws := h.workspaces.For(r.device)
	if err := ws.Dashboard.Mount(r.ctx, r.api.Bills()); err != nil {
		h.logFailure(c, err, "fetch my bills failed")
	}
	return c.Render(http.StatusOK, "dashboard.html", Page{
		Title:  "My Bills",
		Layout: "client",
		Data:   dashboardData{ClientName: ws.Dashboard.ClientName, State: ws.Dashboard.State(), Empty: view.MsgNoPurchases},
	})
}

// ClientNotFound renders unknown pages under /client inside the client
// layout.
func (h *Console) ClientNotFound(c echo.Context) error {
	return c.Render(http.StatusNotFound, "notfound.html", Page{Title: "Page Not Found", Layout: "client"})
}
