package view

import (
	"context"
	"strings"
	"sync"

	"github.com/shreebalaji/traders-console/internal/core/domain"
)

// SearchFunc looks up clients whose name matches query.
type SearchFunc func(ctx context.Context, query string) ([]domain.Client, error)

// Suggestion is the answer to one lookup.
type Suggestion struct {
	Seq     uint64          `json:"seq"`
	Query   string          `json:"query"`
	Clients []domain.Client `json:"clients"`
}

// Suggester sequences client-name lookups for the bill form. Every lookup
// takes a sequence number when it is issued; a response is applied only if
// no later lookup was issued meanwhile, so a slow answer to an old query
// never replaces a newer one. The search itself is supplied per call and
// carries the caller's credential.
type Suggester struct {
	mu      sync.Mutex
	issued  uint64
	current Suggestion
}

func NewSuggester() *Suggester {
	return &Suggester{}
}

// Lookup runs search for query. It returns the suggestion and true if the
// answer was applied, or false if a later lookup superseded it. A blank
// query clears the list without calling search. Lookup errors are shown as
// an empty list.
func (s *Suggester) Lookup(ctx context.Context, search SearchFunc, query string) (Suggestion, bool) {
	s.mu.Lock()
	s.issued++
	seq := s.issued
	s.mu.Unlock()

	query = strings.TrimSpace(query)
	var clients []domain.Client
	if query != "" {
		found, err := search(ctx, query)
		if err == nil {
			clients = found
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.issued {
		return Suggestion{Seq: seq, Query: query}, false
	}
	s.current = Suggestion{Seq: seq, Query: query, Clients: clients}
	return s.current, true
}

// Reset clears the list and invalidates any lookup still in flight.
func (s *Suggester) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	s.current = Suggestion{Seq: s.issued}
}

// Current returns the last applied suggestion.
func (s *Suggester) Current() Suggestion {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Pick returns the client at index i of the current list.
func (s *Suggester) Pick(i int) (domain.Client, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.current.Clients) {
		return domain.Client{}, false
	}
	return s.current.Clients[i], true
}
