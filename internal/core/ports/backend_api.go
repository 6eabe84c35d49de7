package ports

import (
	"context"

	"github.com/shreebalaji/traders-console/internal/core/domain"
)

// LoginInput is the body of POST /auth/login.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterInput is the body of POST /auth/register.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// AuthResult is what the backend answers on login and register. Either
// field may be missing in a malformed response.
type AuthResult struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// AuthAPI covers the unauthenticated account endpoints.
type AuthAPI interface {
	Login(ctx context.Context, in LoginInput) (*AuthResult, error)
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
}

// ProductAPI covers the stock endpoints.
type ProductAPI interface {
	List(ctx context.Context) ([]domain.Product, error)
	Create(ctx context.Context, f domain.ProductFields) (*domain.Product, error)
	Update(ctx context.Context, id int64, f domain.ProductFields) error
}

// BillAPI covers bill creation, lookup and history.
type BillAPI interface {
	SearchClients(ctx context.Context, name string) ([]domain.Client, error)
	Create(ctx context.Context, d domain.BillDraft) error
	History(ctx context.Context) ([]domain.Bill, error)
	Mine(ctx context.Context) (*domain.ClientBills, error)
}

// ClientAPI covers the admin client directory.
type ClientAPI interface {
	List(ctx context.Context) ([]domain.Client, error)
	Update(ctx context.Context, id string, f domain.ClientFields) error
}

// Backend bundles every resource the console talks to.
type Backend interface {
	Auth() AuthAPI
	Products() ProductAPI
	Bills() BillAPI
	Clients() ClientAPI
}
