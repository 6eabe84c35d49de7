package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/shreebalaji/traders-console/internal/api/metrics"
	"github.com/shreebalaji/traders-console/internal/core/domain"
	"github.com/shreebalaji/traders-console/internal/core/view"
)

// PaymentMethods are the choices offered on the bill form.
var PaymentMethods = []string{"Cash", "UPI", "Card", "Bank Transfer"}

type stockData struct {
	State view.State[domain.Product]
	Edit  int64
	New   domain.ProductFields
	Empty string
}

type billData struct {
	Products       view.State[domain.Product]
	Draft          domain.BillDraft
	PaymentMethods []string
	NoProducts     string
	NoSuggestions  string
}

type historyData struct {
	State view.State[domain.Bill]
	Query string
	Empty string
}

type clientsData struct {
	State view.State[domain.Client]
	Edit  string
	Empty string
}

func adminPage(title, active string) Page {
	return Page{Title: title, Layout: "admin", Active: active}
}

// workspace returns the device's view state. A workspace created here (a
// POST arriving after a restart or eviction) is mounted first so writes
// have a local copy to apply to.
func (h *Console) workspace(r *request, mount func(*Workspace) error) *Workspace {
	if ws, ok := h.workspaces.Lookup(r.device); ok {
		return ws
	}
	ws := h.workspaces.For(r.device)
	if err := mount(ws); err != nil {
		h.log.Warn().Err(err).Msg("remount after missing workspace failed")
	}
	return ws
}

// Stock renders the inventory. ?edit=<item_id> opens a row for editing.
func (h *Console) Stock(c echo.Context) error {
	r, err := h.begin(c)
	if err != nil {
		return err
	}
	ws := h.workspaces.For(r.device)
	if err := ws.Stock.Mount(r.ctx, r.api.Products()); err != nil {
		h.logFailure(c, err, "fetch products failed")
	}
	edit, _ := strconv.ParseInt(c.QueryParam("edit"), 10, 64)
	return h.renderStock(c, http.StatusOK, ws, adminPage("Stock", "stock"), stockData{Edit: edit})
}

// UpdateProduct handles POST /admin/dashboard/products/:id.
func (h *Console) UpdateProduct(c echo.Context) error {
	r, err := h.begin(c)
	if err != nil {
		return err
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid item id")
	}
	var f domain.ProductFields
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	ws := h.workspace(r, func(ws *Workspace) error { return ws.Stock.Mount(r.ctx, r.api.Products()) })

	page := adminPage("Stock", "stock")
	if err := c.Validate(&f); err != nil {
		page.Error = err.Error()
		return h.renderStock(c, http.StatusUnprocessableEntity, ws, page, stockData{Edit: id})
	}
	if err := ws.Stock.Update(r.ctx, r.api.Products(), id, f); err != nil {
		h.logFailure(c, err, "update product failed")
		page.Error = actionMessage(err, view.MsgUpdateProduct)
		return h.renderStock(c, http.StatusOK, ws, page, stockData{Edit: id})
	}
	return h.renderStock(c, http.StatusOK, ws, page, stockData{})
}

// AddProduct handles POST /admin/dashboard/products.
func (h *Console) AddProduct(c echo.Context) error {
	r, err := h.begin(c)
	if err != nil {
		return err
	}
	var f domain.ProductFields
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	ws := h.workspace(r, func(ws *Workspace) error { return ws.Stock.Mount(r.ctx, r.api.Products()) })

	page := adminPage("Stock", "stock")
	if err := c.Validate(&f); err != nil {
		page.Error = err.Error()
		return h.renderStock(c, http.StatusUnprocessableEntity, ws, page, stockData{New: f})
	}
	if err := ws.Stock.Add(r.ctx, r.api.Products(), f); err != nil {
		h.logFailure(c, err, "add product failed")
		page.Error = actionMessage(err, view.MsgAddProduct)
		return h.renderStock(c, http.StatusOK, ws, page, stockData{New: f})
	}
	return h.renderStock(c, http.StatusOK, ws, page, stockData{})
}

func (h *Console) renderStock(c echo.Context, code int, ws *Workspace, page Page, data stockData) error {
	data.State = ws.Stock.State()
	data.Empty = view.MsgNoProducts
	page.Data = data
	return c.Render(code, "stock.html", page)
}

// Bill renders the bill form.
func (h *Console) Bill(c echo.Context) error {
	r, err := h.begin(c)
	if err != nil {
		return err
	}
	ws := h.workspaces.For(r.device)
	if err := ws.Bill.Mount(r.ctx, r.api.Products()); err != nil {
		h.logFailure(c, err, "fetch products failed")
	}
	ws.Bill.Outcome()
	return h.renderBill(c, http.StatusOK, ws, adminPage("Generate Bill", "bills"), domain.BillDraft{})
}

// CreateBill handles POST /admin/bills. The total is computed here from
// quantity, rate and tax; whatever the browser computed is ignored.
func (h *Console) CreateBill(c echo.Context) error {
	r, err := h.begin(c)
	if err != nil {
		return err
	}
	var d domain.BillDraft
	if err := c.Bind(&d); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	ws := h.workspace(r, func(ws *Workspace) error { return ws.Bill.Mount(r.ctx, r.api.Products()) })
	d = ws.Bill.Prepare(d)

	page := adminPage("Generate Bill", "bills")
	if err := c.Validate(&d); err != nil {
		page.Error = err.Error()
		return h.renderBill(c, http.StatusUnprocessableEntity, ws, page, d)
	}

	if err := ws.Bill.Submit(r.ctx, r.api.Bills(), d); err != nil {
		h.logFailure(c, err, "create bill failed")
	}
	page.Notice, page.Error = ws.Bill.Outcome()
	if page.Error == "" {
		d = domain.BillDraft{}
	}
	return h.renderBill(c, http.StatusOK, ws, page, d)
}

func (h *Console) renderBill(c echo.Context, code int, ws *Workspace, page Page, d domain.BillDraft) error {
	page.Data = billData{
		Products:       ws.Bill.Products(),
		Draft:          d,
		PaymentMethods: PaymentMethods,
		NoProducts:     view.MsgNoProducts,
		NoSuggestions:  view.MsgNoSuggestions,
	}
	return c.Render(code, "bill.html", page)
}

// SuggestClients godoc
//
// @Summary      Client name suggestions for the bill form
// @Description  Looks up clients by name. Every lookup is numbered; when a newer lookup from the same device was issued before this one finished, the answer is dropped and 204 is returned.
// @Tags         bills
// @Produce      json
// @Param        name  query     string  false  "Partial client name; blank clears the list"
// @Success      200   {object}  view.Suggestion
// @Success      204   "Superseded by a newer lookup"
// @Failure      302   "Not logged in as admin"
// @Router       /admin/bills/suggest [get]
func (h *Console) SuggestClients(c echo.Context) error {
	r, err := h.begin(c)
	if err != nil {
		return err
	}
	ws := h.workspaces.For(r.device)
	s, applied := ws.Bill.Suggest(r.ctx, r.api.Bills(), c.QueryParam("name"))
	if !applied {
		metrics.SuggestionsTotal.WithLabelValues("discarded").Inc()
		return c.NoContent(http.StatusNoContent)
	}
	metrics.SuggestionsTotal.WithLabelValues("applied").Inc()
	if s.Clients == nil {
		s.Clients = []domain.Client{}
	}
	return c.JSON(http.StatusOK, s)
}

// History renders all bills, filtered by ?q=.
func (h *Console) History(c echo.Context) error {
	r, err := h.begin(c)
	if err != nil {
		return err
	}
	ws := h.workspaces.For(r.device)
	if err := ws.History.Mount(r.ctx, r.api.Bills()); err != nil {
		h.logFailure(c, err, "fetch bill history failed")
	}
	q := c.QueryParam("q")
	page := adminPage("Bill History", "history")
	page.Data = historyData{State: ws.History.Filtered(q), Query: q, Empty: view.MsgNoBills}
	return c.Render(http.StatusOK, "history.html", page)
}

// Clients renders the client directory. ?edit=<id> opens a row.
func (h *Console) Clients(c echo.Context) error {
	r, err := h.begin(c)
	if err != nil {
		return err
	}
	ws := h.workspaces.For(r.device)
	if err := ws.Clients.Mount(r.ctx, r.api.Clients()); err != nil {
		h.logFailure(c, err, "fetch clients failed")
	}
	return h.renderClients(c, http.StatusOK, ws, adminPage("Clients", "clients"), c.QueryParam("edit"))
}

// UpdateClient handles POST /admin/clients/:id.
func (h *Console) UpdateClient(c echo.Context) error {
	r, err := h.begin(c)
	if err != nil {
		return err
	}
	id := c.Param("id")
	var f domain.ClientFields
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	ws := h.workspace(r, func(ws *Workspace) error { return ws.Clients.Mount(r.ctx, r.api.Clients()) })

	page := adminPage("Clients", "clients")
	if err := ws.Clients.Update(r.ctx, r.api.Clients(), id, f); err != nil {
		h.logFailure(c, err, "update client failed")
		page.Error = actionMessage(err, view.MsgUpdateClient)
		return h.renderClients(c, http.StatusOK, ws, page, id)
	}
	return h.renderClients(c, http.StatusOK, ws, page, "")
}

func (h *Console) renderClients(c echo.Context, code int, ws *Workspace, page Page, edit string) error {
	page.Data = clientsData{State: ws.Clients.State(), Edit: edit, Empty: view.MsgNoClients}
	return c.Render(code, "clients.html", page)
}

// AdminNotFound renders unknown pages under /admin inside the admin layout.
func (h *Console) AdminNotFound(c echo.Context) error {
	return c.Render(http.StatusNotFound, "notfound.html", adminPage("Page Not Found", ""))
}
