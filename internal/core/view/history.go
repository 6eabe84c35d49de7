package view

import (
	"context"

	"github.com/shreebalaji/traders-console/internal/core/domain"
	"github.com/shreebalaji/traders-console/internal/core/ports"
)

// BillHistory lists every bill for the admin, with a local text filter.
type BillHistory struct {
	list *Collection[domain.Bill, domain.IntID]
}

func NewBillHistory() *BillHistory {
	return &BillHistory{list: NewCollection(func(b domain.Bill) domain.IntID { return b.ID })}
}

func (v *BillHistory) Mount(ctx context.Context, api ports.BillAPI) error {
	return v.list.Load(ctx, api.History, MsgFetchHistory)
}

// Filtered returns the snapshot narrowed to bills whose client or item name
// contains query, ignoring case.
func (v *BillHistory) Filtered(query string) State[domain.Bill] {
	st := v.list.Snapshot()
	out := st.Items[:0]
	for _, b := range st.Items {
		if b.Matches(query) {
			out = append(out, b)
		}
	}
	st.Items = out
	return st
}

// ClientDashboard is a client's own purchase history.
type ClientDashboard struct {
	ClientName string
	list       *Collection[domain.Bill, domain.IntID]
}

func NewClientDashboard() *ClientDashboard {
	return &ClientDashboard{list: NewCollection(func(b domain.Bill) domain.IntID { return b.ID })}
}

// Mount fetches /bills/my-bills. The greeting falls back to "Client" when
// the backend does not name the client.
func (v *ClientDashboard) Mount(ctx context.Context, api ports.BillAPI) error {
	v.ClientName = DefaultClientName
	return v.list.Load(ctx, func(ctx context.Context) ([]domain.Bill, error) {
		mine, err := api.Mine(ctx)
		if err != nil {
			return nil, err
		}
		if mine == nil {
			return nil, nil
		}
		if mine.Client != "" {
			v.ClientName = mine.Client
		}
		return mine.Bills, nil
	}, MsgLoadMyBills)
}

func (v *ClientDashboard) State() State[domain.Bill] {
	return v.list.Snapshot()
}
