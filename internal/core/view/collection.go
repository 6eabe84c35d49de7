// Package view holds the state behind each console screen: what was
// fetched from the backend, whether the fetch is still pending or failed,
// and the local copy that successful writes are applied to.
//
// The backend stays authoritative. A view never re-reads after a write; it
// applies the submitted fields to the entry with the same remote id. A
// failed write leaves the view untouched, so there is nothing to roll back.
package view

import (
	"context"
	"sync"
)

// Status is the lifecycle of a view's initial fetch.
type Status int

const (
	StatusLoading Status = iota
	StatusReady
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// State is an immutable snapshot of a collection for rendering.
type State[T any] struct {
	Status Status
	Error  string
	Items  []T
}

// Empty reports whether the fetch succeeded with no items.
func (s State[T]) Empty() bool {
	return s.Status == StatusReady && len(s.Items) == 0
}

// Collection is a UI-scoped copy of one remote resource collection, keyed
// by the remote identifier. It is safe for concurrent use.
type Collection[T any, K comparable] struct {
	key func(T) K

	mu     sync.RWMutex
	status Status
	errMsg string
	items  []T
}

// NewCollection returns an empty collection in the loading state.
func NewCollection[T any, K comparable](key func(T) K) *Collection[T, K] {
	return &Collection[T, K]{key: key, status: StatusLoading}
}

// Load runs fetch and replaces the contents. On failure the collection is
// emptied and failMsg becomes its static error; the cause is returned for
// logging. There is no retry.
func (c *Collection[T, K]) Load(ctx context.Context, fetch func(context.Context) ([]T, error), failMsg string) error {
	c.mu.Lock()
	c.status = StatusLoading
	c.errMsg = ""
	c.mu.Unlock()

	items, err := fetch(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.status = StatusFailed
		c.errMsg = failMsg
		c.items = nil
		return err
	}
	c.status = StatusReady
	c.items = append([]T(nil), items...)
	return nil
}

// Snapshot copies the current state.
func (c *Collection[T, K]) Snapshot() State[T] {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return State[T]{
		Status: c.status,
		Error:  c.errMsg,
		Items:  append([]T(nil), c.items...),
	}
}

// Get returns the entry with key k.
func (c *Collection[T, K]) Get(k K) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, it := range c.items {
		if c.key(it) == k {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// Replace applies fn to the entry with key k in place. It reports whether
// an entry matched.
func (c *Collection[T, K]) Replace(k K, fn func(T) T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, it := range c.items {
		if c.key(it) == k {
			c.items[i] = fn(it)
			return true
		}
	}
	return false
}

// Append adds an entry at the end.
func (c *Collection[T, K]) Append(it T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, it)
}
