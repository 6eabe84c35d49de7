package view

import (
	"context"
	"sync"

	"github.com/shreebalaji/traders-console/internal/core/domain"
	"github.com/shreebalaji/traders-console/internal/core/ports"
)

type stubProducts struct {
	items     []domain.Product
	listErr   error
	updateErr error
	createErr error
	created   *domain.Product
	lists     int
	updates   []domain.ProductFields
}

func (s *stubProducts) List(context.Context) ([]domain.Product, error) {
	s.lists++
	if s.listErr != nil {
		return nil, s.listErr
	}
	return append([]domain.Product(nil), s.items...), nil
}

func (s *stubProducts) Create(_ context.Context, f domain.ProductFields) (*domain.Product, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	if s.created != nil {
		s.items = append(s.items, s.created.Apply(f))
	}
	return s.created, nil
}

func (s *stubProducts) Update(_ context.Context, _ int64, f domain.ProductFields) error {
	s.updates = append(s.updates, f)
	return s.updateErr
}

type stubClients struct {
	items     []domain.Client
	listErr   error
	updateErr error
}

func (s *stubClients) List(context.Context) ([]domain.Client, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return append([]domain.Client(nil), s.items...), nil
}

func (s *stubClients) Update(context.Context, string, domain.ClientFields) error {
	return s.updateErr
}

type stubBills struct {
	mu        sync.Mutex
	history   []domain.Bill
	mine      *domain.ClientBills
	err       error
	createErr error
	drafts    []domain.BillDraft
	search    SearchFunc
}

func (s *stubBills) SearchClients(ctx context.Context, name string) ([]domain.Client, error) {
	if s.search != nil {
		return s.search(ctx, name)
	}
	return nil, nil
}

func (s *stubBills) Create(_ context.Context, d domain.BillDraft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts = append(s.drafts, d)
	return s.createErr
}

func (s *stubBills) History(context.Context) ([]domain.Bill, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.history, nil
}

func (s *stubBills) Mine(context.Context) (*domain.ClientBills, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.mine, nil
}

type stubAuth struct {
	res *ports.AuthResult
	err error
}

func (s *stubAuth) Login(context.Context, ports.LoginInput) (*ports.AuthResult, error) {
	return s.res, s.err
}

func (s *stubAuth) Register(context.Context, ports.RegisterInput) (*ports.AuthResult, error) {
	return s.res, s.err
}

type recordingSession struct {
	credential string
	role       domain.Role
	err        error
}

func (r *recordingSession) Login(_ context.Context, credential string, role domain.Role) error {
	if r.err != nil {
		return r.err
	}
	r.credential, r.role = credential, role
	return nil
}
