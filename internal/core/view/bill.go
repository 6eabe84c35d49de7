package view

import (
	"context"
	"sync"

	"github.com/shreebalaji/traders-console/internal/core/domain"
	"github.com/shreebalaji/traders-console/internal/core/ports"
)

// Bill is the bill generation screen: the product picker, the client-name
// suggestions and the outcome of the last submission.
type Bill struct {
	products *Collection[domain.Product, domain.IntID]

	suggester *Suggester

	mu      sync.Mutex
	notice  string
	failure string
}

func NewBill() *Bill {
	return &Bill{
		products:  NewCollection(func(p domain.Product) domain.IntID { return p.ID }),
		suggester: NewSuggester(),
	}
}

// Mount loads the products offered in the item picker.
func (v *Bill) Mount(ctx context.Context, api ports.ProductAPI) error {
	return v.products.Load(ctx, api.List, MsgFetchProducts)
}

func (v *Bill) Products() State[domain.Product] {
	return v.products.Snapshot()
}

// Prepare fills the item fields of d from the selected product, when the
// product is known locally.
func (v *Bill) Prepare(d domain.BillDraft) domain.BillDraft {
	if p, ok := v.products.Get(domain.IntID(d.ItemID)); ok {
		d = d.WithProduct(p)
	}
	return d
}

// Suggest runs a sequenced client-name lookup against api, which is the
// caller's own client for this request.
func (v *Bill) Suggest(ctx context.Context, api ports.BillAPI, query string) (Suggestion, bool) {
	return v.suggester.Lookup(ctx, api.SearchClients, query)
}

// Submit sends the finalized draft. On success the suggestions are reset
// and the success notice is set; on failure the generic failure text is
// kept for display.
func (v *Bill) Submit(ctx context.Context, api ports.BillAPI, d domain.BillDraft) error {
	d = v.Prepare(d).Finalize()
	err := api.Create(ctx, d)

	v.mu.Lock()
	defer v.mu.Unlock()
	if err != nil {
		ae := failed(MsgBillFailed, err)
		v.notice, v.failure = "", ae.Message
		return ae
	}
	v.notice, v.failure = MsgBillCreated, ""
	v.suggester.Reset()
	return nil
}

// Outcome returns and clears the result of the last submission.
func (v *Bill) Outcome() (notice, failure string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	notice, failure = v.notice, v.failure
	v.notice, v.failure = "", ""
	return notice, failure
}
