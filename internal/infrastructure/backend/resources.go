package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/shreebalaji/traders-console/internal/core/domain"
	"github.com/shreebalaji/traders-console/internal/core/ports"
)

type authAPI struct{ c *Client }

func (a authAPI) Login(ctx context.Context, in ports.LoginInput) (*ports.AuthResult, error) {
	var out ports.AuthResult
	if err := a.c.Do(ctx, http.MethodPost, "/auth/login", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a authAPI) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	var out ports.AuthResult
	if err := a.c.Do(ctx, http.MethodPost, "/auth/register", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type productAPI struct{ c *Client }

func (p productAPI) List(ctx context.Context) ([]domain.Product, error) {
	var out []domain.Product
	if err := p.c.Do(ctx, http.MethodGet, "/products", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create returns the product as the backend echoed it. Backends that only
// acknowledge the write yield a product with a zero ID.
func (p productAPI) Create(ctx context.Context, f domain.ProductFields) (*domain.Product, error) {
	var out domain.Product
	if err := p.c.Do(ctx, http.MethodPost, "/products", nil, f, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p productAPI) Update(ctx context.Context, id int64, f domain.ProductFields) error {
	return p.c.Do(ctx, http.MethodPut, "/products/"+strconv.FormatInt(id, 10), nil, f, nil)
}

type billAPI struct{ c *Client }

func (b billAPI) SearchClients(ctx context.Context, name string) ([]domain.Client, error) {
	var out []domain.Client
	q := url.Values{"name": {name}}
	if err := b.c.Do(ctx, http.MethodGet, "/bills/search", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (b billAPI) Create(ctx context.Context, d domain.BillDraft) error {
	return b.c.Do(ctx, http.MethodPost, "/bills/create", nil, d, nil)
}

func (b billAPI) History(ctx context.Context) ([]domain.Bill, error) {
	var out []domain.Bill
	if err := b.c.Do(ctx, http.MethodGet, "/bills/history", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (b billAPI) Mine(ctx context.Context) (*domain.ClientBills, error) {
	var out domain.ClientBills
	if err := b.c.Do(ctx, http.MethodGet, "/bills/my-bills", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type clientAPI struct{ c *Client }

func (a clientAPI) List(ctx context.Context) ([]domain.Client, error) {
	var out []domain.Client
	if err := a.c.Do(ctx, http.MethodGet, "/auth/clients", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a clientAPI) Update(ctx context.Context, id string, f domain.ClientFields) error {
	return a.c.Do(ctx, http.MethodPut, "/auth/client/"+url.PathEscape(id), nil, f, nil)
}
