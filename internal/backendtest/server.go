// Package backendtest runs an in-process stand-in for the billing backend
// API. It speaks the same paths and payloads as the real service, keeps
// everything in memory and lets tests force failures per route.
package backendtest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/shreebalaji/traders-console/internal/core/domain"
)

type fault struct {
	status  int
	message string
}

// Server is the fake backend. The zero value is not usable; call New.
type Server struct {
	secret []byte
	echo   *echo.Echo

	mu         sync.Mutex
	seq        int64
	accounts   map[string]*account
	products   []domain.Product
	clients    []domain.Client
	bills      []domain.Bill
	faults     map[string]fault
	authSeen   []string
	requestIDs []string
	omitNewID  bool
}

// New builds a fake backend with no data.
func New() *Server {
	s := &Server{
		secret:   []byte("backendtest-secret"),
		echo:     echo.New(),
		accounts: make(map[string]*account),
		faults:   make(map[string]fault),
	}
	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.routes()
	return s
}

// Start serves the fake on a local port and returns it with its base URL
// (ending in /api). Close the returned server when done.
func (s *Server) Start() (*httptest.Server, string) {
	ts := httptest.NewServer(s.echo)
	return ts, ts.URL + "/api"
}

// ServeHTTP lets tests use the fake as a plain handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

func (s *Server) routes() {
	api := s.echo.Group("/api", s.faulty)

	api.POST("/auth/login", s.login)
	api.POST("/auth/register", s.register)

	authed := api.Group("", s.authenticate)
	authed.GET("/products", s.listProducts)
	authed.POST("/products", s.createProduct, only(domain.RoleAdmin))
	authed.PUT("/products/:item_id", s.updateProduct, only(domain.RoleAdmin))

	authed.GET("/bills/search", s.searchClients, only(domain.RoleAdmin))
	authed.POST("/bills/create", s.createBill, only(domain.RoleAdmin))
	authed.GET("/bills/history", s.history, only(domain.RoleAdmin))
	authed.GET("/bills/my-bills", s.myBills, only(domain.RoleClient))

	authed.GET("/auth/clients", s.listClients, only(domain.RoleAdmin))
	authed.PUT("/auth/client/:id", s.updateClient, only(domain.RoleAdmin))
}

// Fail makes every request to method and path (relative to /api, e.g.
// "/products") answer status with message until Heal is called.
func (s *Server) Fail(method, path string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults[method+" "+path] = fault{status: status, message: message}
}

// Heal removes every forced failure.
func (s *Server) Heal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults = make(map[string]fault)
}

// OmitCreatedID makes POST /products answer without the new item id.
func (s *Server) OmitCreatedID(omit bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.omitNewID = omit
}

// AuthHeaders returns the Authorization header of every authenticated
// request seen so far, in order. Missing headers are recorded as "".
func (s *Server) AuthHeaders() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.authSeen...)
}

// RequestIDs returns the X-Request-ID of every request seen so far.
func (s *Server) RequestIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requestIDs...)
}

func (s *Server) recordAuth(h string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authSeen = append(s.authSeen, h)
}

func (s *Server) faulty(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		path := strings.TrimPrefix(c.Request().URL.Path, "/api")
		s.mu.Lock()
		s.requestIDs = append(s.requestIDs, c.Request().Header.Get(echo.HeaderXRequestID))
		f, ok := s.faults[c.Request().Method+" "+path]
		s.mu.Unlock()
		if ok {
			return c.JSON(f.status, map[string]string{"message": f.message})
		}
		return next(c)
	}
}

// AddProduct seeds a product and returns it with its assigned id.
func (s *Server) AddProduct(f domain.ProductFields) domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	p := domain.Product{ID: domain.IntID(s.seq)}.Apply(f)
	s.products = append(s.products, p)
	return p
}

// Products returns the backend's current product list.
func (s *Server) Products() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Product(nil), s.products...)
}

// Clients returns the backend's current client list.
func (s *Server) Clients() []domain.Client {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Client(nil), s.clients...)
}

// Bills returns every bill created so far.
func (s *Server) Bills() []domain.Bill {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.Bill(nil), s.bills...)
}

func (s *Server) listProducts(c echo.Context) error {
	return c.JSON(http.StatusOK, s.Products())
}

func (s *Server) createProduct(c echo.Context) error {
	var f domain.ProductFields
	if err := c.Bind(&f); err != nil || f.Code == "" || f.Name == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "item_code and item_name are required"})
	}
	p := s.AddProduct(f)

	s.mu.Lock()
	omit := s.omitNewID
	s.mu.Unlock()
	if omit {
		return c.JSON(http.StatusCreated, map[string]string{"message": "Product added"})
	}
	return c.JSON(http.StatusCreated, p)
}

func (s *Server) updateProduct(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("item_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "invalid item id"})
	}
	var f domain.ProductFields
	if err := c.Bind(&f); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "invalid payload"})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID == domain.IntID(id) {
			s.products[i] = s.products[i].Apply(f)
			return c.JSON(http.StatusOK, map[string]string{"message": "Product updated"})
		}
	}
	return c.JSON(http.StatusNotFound, map[string]string{"message": "Product not found"})
}

func (s *Server) searchClients(c echo.Context) error {
	q := strings.ToLower(strings.TrimSpace(c.QueryParam("name")))
	out := []clientJSON{}
	for _, cl := range s.Clients() {
		if q != "" && strings.Contains(strings.ToLower(cl.Name), q) {
			out = append(out, asClientJSON(cl))
		}
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) createBill(c echo.Context) error {
	var d domain.BillDraft
	if err := c.Bind(&d); err != nil || d.ClientName == "" || d.ItemID == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "client_name and item_id are required"})
	}
	var total domain.Number
	if err := total.Set(d.TotalAmount); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "invalid total_amount"})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.bills = append(s.bills, domain.Bill{
		ID:            domain.IntID(s.seq),
		ClientName:    d.ClientName,
		ClientEmail:   d.ClientEmail,
		ClientPhone:   d.ClientPhone,
		ItemID:        domain.IntID(d.ItemID),
		ItemName:      d.ItemName,
		ItemRate:      d.ItemRate,
		Quantity:      d.Quantity,
		CGST:          d.CGST,
		SGST:          d.SGST,
		TotalAmount:   total,
		PaymentMethod: d.PaymentMethod,
		CreatedAt:     time.Now().UTC().Truncate(time.Second),
	})
	return c.JSON(http.StatusCreated, map[string]string{"message": "Bill created"})
}

func (s *Server) history(c echo.Context) error {
	return c.JSON(http.StatusOK, s.Bills())
}

func (s *Server) myBills(c echo.Context) error {
	email, _ := c.Get("email").(string)
	name, _ := c.Get("name").(string)
	out := domain.ClientBills{Client: name, Bills: []domain.Bill{}}
	for _, b := range s.Bills() {
		if strings.EqualFold(b.ClientEmail, email) || (b.ClientEmail == "" && b.ClientName == name) {
			out.Bills = append(out.Bills, b)
		}
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) listClients(c echo.Context) error {
	clients := s.Clients()
	out := make([]clientJSON, 0, len(clients))
	for _, cl := range clients {
		out = append(out, asClientJSON(cl))
	}
	return c.JSON(http.StatusOK, out)
}

// clientJSON sends the client id as a JSON number, the way the SQL-backed
// service does.
type clientJSON struct {
	domain.Client
	ID json.Number `json:"id"`
}

func asClientJSON(cl domain.Client) clientJSON {
	return clientJSON{Client: cl, ID: json.Number(cl.ID)}
}

func (s *Server) updateClient(c echo.Context) error {
	var f domain.ClientFields
	if err := c.Bind(&f); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "invalid payload"})
	}
	id := c.Param("id")

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.clients {
		if s.clients[i].ID == domain.ID(id) {
			s.clients[i] = s.clients[i].Apply(f)
			return c.JSON(http.StatusOK, map[string]string{"message": "Client updated"})
		}
	}
	return c.JSON(http.StatusNotFound, map[string]string{"message": "Client not found"})
}

func idString(n int64) string {
	return strconv.FormatInt(n, 10)
}
