package view

import (
	"context"

	"github.com/shreebalaji/traders-console/internal/core/domain"
	"github.com/shreebalaji/traders-console/internal/core/ports"
)

// AdminClients is the admin's client directory.
type AdminClients struct {
	list *Collection[domain.Client, domain.ID]
}

func NewAdminClients() *AdminClients {
	return &AdminClients{list: NewCollection(func(c domain.Client) domain.ID { return c.ID })}
}

func (v *AdminClients) Mount(ctx context.Context, api ports.ClientAPI) error {
	return v.list.Load(ctx, api.List, MsgFetchClients)
}

func (v *AdminClients) State() State[domain.Client] {
	return v.list.Snapshot()
}

func (v *AdminClients) Client(id string) (domain.Client, bool) {
	return v.list.Get(domain.ID(id))
}

// Update saves the company details of client id and mirrors them locally
// on success.
func (v *AdminClients) Update(ctx context.Context, api ports.ClientAPI, id string, f domain.ClientFields) error {
	if _, ok := v.list.Get(domain.ID(id)); !ok {
		return failed(MsgUpdateClient, domain.ErrUnknownRecord)
	}
	if err := api.Update(ctx, id, f); err != nil {
		return failed(MsgUpdateClient, err)
	}
	v.list.Replace(domain.ID(id), func(c domain.Client) domain.Client { return c.Apply(f) })
	return nil
}
