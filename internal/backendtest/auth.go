package backendtest

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/shreebalaji/traders-console/internal/core/domain"
)

const tokenTTL = time.Hour

type account struct {
	user         domain.User
	passwordHash string
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

// AddUser registers an account directly and returns a valid token for it.
func (s *Server) AddUser(name, email, password string, role domain.Role) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	u := domain.User{ID: idString(s.seq), Name: name, Email: email, Role: string(role)}
	s.accounts[email] = &account{user: u, passwordHash: string(hash)}
	if role == domain.RoleClient {
		s.clients = append(s.clients, domain.Client{ID: domain.ID(u.ID), Name: name, Email: email})
	}
	tok, err := s.issue(u)
	if err != nil {
		panic(err)
	}
	return tok
}

func (s *Server) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "invalid payload"})
	}

	s.mu.Lock()
	acc, ok := s.accounts[req.Email]
	s.mu.Unlock()
	if !ok || bcrypt.CompareHashAndPassword([]byte(acc.passwordHash), []byte(req.Password)) != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Invalid credentials"})
	}

	tok, err := s.issue(acc.user)
	if err != nil {
		return err
	}
	u := acc.user
	return c.JSON(http.StatusOK, authResponse{Token: tok, User: &u})
}

func (s *Server) register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "invalid payload"})
	}
	role, ok := domain.ParseRole(req.Role)
	if req.Email == "" || req.Password == "" || !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "name, email, password and role are required"})
	}

	s.mu.Lock()
	_, exists := s.accounts[req.Email]
	s.mu.Unlock()
	if exists {
		return c.JSON(http.StatusConflict, map[string]string{"message": "User already exists"})
	}

	tok := s.AddUser(req.Name, req.Email, req.Password, role)
	s.mu.Lock()
	u := s.accounts[req.Email].user
	s.mu.Unlock()
	return c.JSON(http.StatusCreated, authResponse{Token: tok, User: &u})
}

func (s *Server) issue(u domain.User) (string, error) {
	claims := jwt.MapClaims{
		"id":    u.ID,
		"email": u.Email,
		"name":  u.Name,
		"role":  u.Role,
		"exp":   time.Now().Add(tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// authenticate validates the bearer token and stores its claims on the
// context.
func (s *Server) authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		s.recordAuth(c.Request().Header.Get("Authorization"))

		parts := strings.SplitN(c.Request().Header.Get("Authorization"), " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return c.JSON(http.StatusUnauthorized, map[string]string{"message": "No token provided"})
		}

		claims := jwt.MapClaims{}
		tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, jwt.ErrTokenSignatureInvalid
			}
			return s.secret, nil
		})
		if err != nil || !tkn.Valid {
			return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Invalid token"})
		}

		c.Set("email", claims["email"])
		c.Set("name", claims["name"])
		c.Set("role", claims["role"])
		return next(c)
	}
}

// only rejects callers whose token carries a different role.
func only(role domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			got, _ := c.Get("role").(string)
			if got != string(role) {
				return c.JSON(http.StatusForbidden, map[string]string{"message": "Access denied"})
			}
			return next(c)
		}
	}
}
