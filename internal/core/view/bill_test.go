package view

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shreebalaji/traders-console/internal/core/domain"
)

func TestSuggester_StaleResponseDiscarded(t *testing.T) {
	slowStarted := make(chan struct{})
	releaseSlow := make(chan struct{})

	search := SearchFunc(func(_ context.Context, q string) ([]domain.Client, error) {
		if q == "as" {
			close(slowStarted)
			<-releaseSlow
			return []domain.Client{{ID: "old", Name: "Asif"}}, nil
		}
		return []domain.Client{{ID: "new", Name: "Asha"}}, nil
	})
	s := NewSuggester()

	var wg sync.WaitGroup
	var slowApplied bool
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, slowApplied = s.Lookup(context.Background(), search, "as")
	}()

	<-slowStarted
	fresh, ok := s.Lookup(context.Background(), search, "ash")
	require.True(t, ok)
	close(releaseSlow)
	wg.Wait()

	assert.False(t, slowApplied)
	cur := s.Current()
	assert.Equal(t, fresh.Seq, cur.Seq)
	require.Len(t, cur.Clients, 1)
	assert.Equal(t, domain.ID("new"), cur.Clients[0].ID)
}

func TestSuggester_BlankQueryClears(t *testing.T) {
	calls := 0
	search := SearchFunc(func(context.Context, string) ([]domain.Client, error) {
		calls++
		return []domain.Client{{ID: "c1"}}, nil
	})
	s := NewSuggester()

	_, ok := s.Lookup(context.Background(), search, "asha")
	require.True(t, ok)
	require.Len(t, s.Current().Clients, 1)

	_, ok = s.Lookup(context.Background(), search, "   ")
	require.True(t, ok)
	assert.Empty(t, s.Current().Clients)
	assert.Equal(t, 1, calls)
}

func TestSuggester_ErrorYieldsEmptyList(t *testing.T) {
	search := SearchFunc(func(context.Context, string) ([]domain.Client, error) {
		return nil, errors.New("down")
	})
	s := NewSuggester()
	got, ok := s.Lookup(context.Background(), search, "asha")
	require.True(t, ok)
	assert.Empty(t, got.Clients)
}

func TestSuggester_ResetInvalidatesInFlight(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	search := SearchFunc(func(context.Context, string) ([]domain.Client, error) {
		close(started)
		<-release
		return []domain.Client{{ID: "late"}}, nil
	})
	s := NewSuggester()

	done := make(chan bool)
	go func() {
		_, ok := s.Lookup(context.Background(), search, "asha")
		done <- ok
	}()
	<-started
	s.Reset()
	close(release)

	assert.False(t, <-done)
	assert.Empty(t, s.Current().Clients)
}

func TestSuggester_Pick(t *testing.T) {
	search := SearchFunc(func(context.Context, string) ([]domain.Client, error) {
		return []domain.Client{{ID: "c1", Name: "Asha"}}, nil
	})
	s := NewSuggester()
	s.Lookup(context.Background(), search, "a")

	c, ok := s.Pick(0)
	require.True(t, ok)
	assert.Equal(t, "Asha", c.Name)
	_, ok = s.Pick(1)
	assert.False(t, ok)
}

func TestBill_SubmitComputesTotal(t *testing.T) {
	products := seededProducts()
	bills := &stubBills{}
	v := NewBill()
	require.NoError(t, v.Mount(context.Background(), products))

	d := domain.BillDraft{
		ClientName:    "Asha",
		ItemID:        1,
		Quantity:      2,
		CGST:          9,
		SGST:          9,
		PaymentMethod: "cash",
	}
	require.NoError(t, v.Submit(context.Background(), bills, d))

	require.Len(t, bills.drafts, 1)
	sent := bills.drafts[0]
	assert.Equal(t, "Basmati", sent.ItemName)
	assert.Equal(t, domain.Number(55), sent.ItemRate)
	assert.Equal(t, "129.80", sent.TotalAmount)

	notice, failure := v.Outcome()
	assert.Equal(t, MsgBillCreated, notice)
	assert.Empty(t, failure)
	notice, _ = v.Outcome()
	assert.Empty(t, notice)
}

func TestBill_SubmitFailure(t *testing.T) {
	v := NewBill()
	require.NoError(t, v.Mount(context.Background(), seededProducts()))

	bills := &stubBills{createErr: &domain.RemoteError{Status: 400, Message: "Insufficient stock"}}
	err := v.Submit(context.Background(), bills, domain.BillDraft{ItemID: 1, Quantity: 1})
	require.Error(t, err)
	_, failure := v.Outcome()
	assert.Equal(t, MsgBillFailed, failure)
	assert.ErrorContains(t, err, "Insufficient stock")

	bills.createErr = errors.New("timeout")
	require.Error(t, v.Submit(context.Background(), bills, domain.BillDraft{ItemID: 1, Quantity: 1}))
	_, failure = v.Outcome()
	assert.Equal(t, MsgBillFailed, failure)
}

func TestBill_SuggestUsesBackend(t *testing.T) {
	bills := &stubBills{search: func(_ context.Context, q string) ([]domain.Client, error) {
		return []domain.Client{{ID: "c1", Name: q}}, nil
	}}
	v := NewBill()
	got, ok := v.Suggest(context.Background(), bills, "Ravi")
	require.True(t, ok)
	require.Len(t, got.Clients, 1)
	assert.Equal(t, "Ravi", got.Clients[0].Name)
}

func TestBill_SuggestUsesEachCallersAPI(t *testing.T) {
	first := &stubBills{search: func(context.Context, string) ([]domain.Client, error) {
		return []domain.Client{{ID: "a1", Name: "From first"}}, nil
	}}
	second := &stubBills{search: func(context.Context, string) ([]domain.Client, error) {
		return []domain.Client{{ID: "b1", Name: "From second"}}, nil
	}}
	v := NewBill()

	got, ok := v.Suggest(context.Background(), first, "from")
	require.True(t, ok)
	assert.Equal(t, "From first", got.Clients[0].Name)

	got, ok = v.Suggest(context.Background(), second, "from")
	require.True(t, ok)
	require.Len(t, got.Clients, 1)
	assert.Equal(t, "From second", got.Clients[0].Name)
	assert.Greater(t, got.Seq, uint64(1))
}
