package view

import (
	"context"

	"github.com/shreebalaji/traders-console/internal/core/domain"
	"github.com/shreebalaji/traders-console/internal/core/ports"
)

// Stock is the inventory screen.
type Stock struct {
	list *Collection[domain.Product, domain.IntID]
}

func NewStock() *Stock {
	return &Stock{list: NewCollection(func(p domain.Product) domain.IntID { return p.ID })}
}

// Mount fetches the product list.
func (v *Stock) Mount(ctx context.Context, api ports.ProductAPI) error {
	return v.list.Load(ctx, api.List, MsgFetchProducts)
}

func (v *Stock) State() State[domain.Product] {
	return v.list.Snapshot()
}

// Product returns the local copy of product id, used to prefill the edit form.
func (v *Stock) Product(id int64) (domain.Product, bool) {
	return v.list.Get(domain.IntID(id))
}

// Update sends the new fields for product id and, once the backend
// accepts them, applies exactly those fields to the local entry.
func (v *Stock) Update(ctx context.Context, api ports.ProductAPI, id int64, f domain.ProductFields) error {
	if _, ok := v.list.Get(domain.IntID(id)); !ok {
		return failed(MsgUpdateProduct, domain.ErrUnknownRecord)
	}
	if err := api.Update(ctx, id, f); err != nil {
		return failed(MsgUpdateProduct, err)
	}
	v.list.Replace(domain.IntID(id), func(p domain.Product) domain.Product { return p.Apply(f) })
	return nil
}

// Add creates a product. The backend assigns the id; when the response does
// not carry one the list is fetched again, since there is nothing to key the
// local entry by.
func (v *Stock) Add(ctx context.Context, api ports.ProductAPI, f domain.ProductFields) error {
	created, err := api.Create(ctx, f)
	if err != nil {
		return failedWithRemote(MsgAddProduct, err)
	}
	if created == nil || created.ID == 0 {
		return v.Mount(ctx, api)
	}
	v.list.Append(domain.Product{ID: created.ID}.Apply(f))
	return nil
}
