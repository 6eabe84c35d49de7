package view

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shreebalaji/traders-console/internal/core/domain"
)

func seededProducts() *stubProducts {
	return &stubProducts{items: []domain.Product{
		{ID: 1, Code: "RICE", Name: "Basmati", Quantity: 10, Rate: 55},
		{ID: 2, Code: "DAL", Name: "Toor dal", Quantity: 4, Rate: 120},
	}}
}

func TestStock_MountLoadsProducts(t *testing.T) {
	api := seededProducts()
	v := NewStock()
	require.Equal(t, StatusLoading, v.State().Status)

	require.NoError(t, v.Mount(context.Background(), api))

	st := v.State()
	assert.Equal(t, StatusReady, st.Status)
	assert.Len(t, st.Items, 2)
	assert.False(t, st.Empty())
}

func TestStock_MountFailureShowsStaticMessage(t *testing.T) {
	api := &stubProducts{listErr: &domain.RemoteError{Status: 500, Message: "db down"}}
	v := NewStock()

	err := v.Mount(context.Background(), api)
	require.Error(t, err)

	st := v.State()
	assert.Equal(t, StatusFailed, st.Status)
	assert.Equal(t, MsgFetchProducts, st.Error)
	assert.Empty(t, st.Items)
}

func TestStock_MountEmpty(t *testing.T) {
	v := NewStock()
	require.NoError(t, v.Mount(context.Background(), &stubProducts{}))
	assert.True(t, v.State().Empty())
}

func TestStock_UpdateAppliesSubmittedFields(t *testing.T) {
	api := seededProducts()
	v := NewStock()
	require.NoError(t, v.Mount(context.Background(), api))

	f := domain.ProductFields{Code: "RICE", Name: "Basmati premium", Quantity: 8, Rate: 60}
	require.NoError(t, v.Update(context.Background(), api, 1, f))

	p, ok := v.Product(1)
	require.True(t, ok)
	assert.Equal(t, "Basmati premium", p.Name)
	assert.Equal(t, domain.Number(8), p.Quantity)
	assert.Equal(t, domain.Number(60), p.Rate)
	assert.Equal(t, 1, api.lists, "a successful update must not refetch")

	other, _ := v.Product(2)
	assert.Equal(t, "Toor dal", other.Name)
}

func TestStock_UpdateFailureLeavesListUntouched(t *testing.T) {
	api := seededProducts()
	v := NewStock()
	require.NoError(t, v.Mount(context.Background(), api))
	api.updateErr = errors.New("connection refused")

	err := v.Update(context.Background(), api, 1, domain.ProductFields{Code: "X", Name: "Y"})

	var ae *ActionError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, MsgUpdateProduct, ae.Message)
	p, _ := v.Product(1)
	assert.Equal(t, "Basmati", p.Name)
}

func TestStock_UpdateUnknownProduct(t *testing.T) {
	api := seededProducts()
	v := NewStock()
	require.NoError(t, v.Mount(context.Background(), api))

	err := v.Update(context.Background(), api, 99, domain.ProductFields{Code: "X", Name: "Y"})
	require.ErrorIs(t, err, domain.ErrUnknownRecord)
	assert.Empty(t, api.updates)
}

func TestStock_AddAppendsReturnedProduct(t *testing.T) {
	api := seededProducts()
	api.created = &domain.Product{ID: 3}
	v := NewStock()
	require.NoError(t, v.Mount(context.Background(), api))

	f := domain.ProductFields{Code: "SUG", Name: "Sugar", Quantity: 20, Rate: 42}
	require.NoError(t, v.Add(context.Background(), api, f))

	p, ok := v.Product(3)
	require.True(t, ok)
	assert.Equal(t, "Sugar", p.Name)
	assert.Len(t, v.State().Items, 3)
	assert.Equal(t, 1, api.lists)
}

func TestStock_AddWithoutIDRefetches(t *testing.T) {
	api := seededProducts()
	v := NewStock()
	require.NoError(t, v.Mount(context.Background(), api))

	require.NoError(t, v.Add(context.Background(), api, domain.ProductFields{Code: "SUG", Name: "Sugar"}))
	assert.Equal(t, 2, api.lists)
}

func TestStock_AddFailurePrefersBackendMessage(t *testing.T) {
	api := seededProducts()
	api.createErr = &domain.RemoteError{Status: 409, Message: "Item code already exists"}
	v := NewStock()
	require.NoError(t, v.Mount(context.Background(), api))

	err := v.Add(context.Background(), api, domain.ProductFields{Code: "RICE", Name: "Rice"})
	var ae *ActionError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "Item code already exists", ae.Message)

	api.createErr = errors.New("timeout")
	err = v.Add(context.Background(), api, domain.ProductFields{Code: "RICE", Name: "Rice"})
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, MsgAddProduct, ae.Message)
	assert.Len(t, v.State().Items, 2)
}
