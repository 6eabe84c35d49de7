package handler

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/shreebalaji/traders-console/internal/api/metrics"
	"github.com/shreebalaji/traders-console/internal/core/view"
)

const (
	defaultShards  = 16
	defaultIdleTTL = 2 * time.Hour
	sweepInterval  = 5 * time.Minute
)

// Workspace is the view state of one device: what each screen last fetched
// and the local copy writes are applied to.
type Workspace struct {
	Stock     *view.Stock
	Bill      *view.Bill
	History   *view.BillHistory
	Clients   *view.AdminClients
	Dashboard *view.ClientDashboard

	lastSeen time.Time
}

func newWorkspace() *Workspace {
	return &Workspace{
		Stock:     view.NewStock(),
		Bill:      view.NewBill(),
		History:   view.NewBillHistory(),
		Clients:   view.NewAdminClients(),
		Dashboard: view.NewClientDashboard(),
	}
}

type shard struct {
	mu    sync.Mutex
	items map[string]*Workspace
}

// Workspaces holds one Workspace per device, spread over shards chosen by
// hashing the device id so unrelated devices do not contend on one lock.
// Idle workspaces are evicted by Run.
type Workspaces struct {
	shards  []*shard
	idleTTL time.Duration
	now     func() time.Time
	log     zerolog.Logger
}

// NewWorkspaces creates a registry. idleTTL <= 0 uses the default.
func NewWorkspaces(idleTTL time.Duration, log zerolog.Logger) *Workspaces {
	if idleTTL <= 0 {
		idleTTL = defaultIdleTTL
	}
	w := &Workspaces{
		shards:  make([]*shard, defaultShards),
		idleTTL: idleTTL,
		now:     time.Now,
		log:     log.With().Str("component", "workspaces").Logger(),
	}
	for i := range w.shards {
		w.shards[i] = &shard{items: make(map[string]*Workspace)}
	}
	return w
}

// For returns the device's workspace, creating it on first use.
func (w *Workspaces) For(device string) *Workspace {
	s := w.shardFor(device)
	s.mu.Lock()
	defer s.mu.Unlock()
	ws, ok := s.items[device]
	if !ok {
		ws = newWorkspace()
		s.items[device] = ws
		metrics.WorkspacesActive.Inc()
	}
	ws.lastSeen = w.now()
	return ws
}

// Lookup returns the device's workspace without creating one.
func (w *Workspaces) Lookup(device string) (*Workspace, bool) {
	s := w.shardFor(device)
	s.mu.Lock()
	defer s.mu.Unlock()
	ws, ok := s.items[device]
	if ok {
		ws.lastSeen = w.now()
	}
	return ws, ok
}

// Drop discards the device's workspace, e.g. on logout.
func (w *Workspaces) Drop(device string) {
	s := w.shardFor(device)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[device]; ok {
		delete(s.items, device)
		metrics.WorkspacesActive.Dec()
	}
}

// Len reports how many workspaces are held.
func (w *Workspaces) Len() int {
	n := 0
	for _, s := range w.shards {
		s.mu.Lock()
		n += len(s.items)
		s.mu.Unlock()
	}
	return n
}

// Run evicts idle workspaces until ctx is cancelled.
func (w *Workspaces) Run(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := w.sweep(); n > 0 {
				w.log.Debug().Int("evicted", n).Msg("idle workspaces evicted")
			}
		}
	}
}

func (w *Workspaces) sweep() int {
	cutoff := w.now().Add(-w.idleTTL)
	evicted := 0
	for _, s := range w.shards {
		s.mu.Lock()
		for id, ws := range s.items {
			if ws.lastSeen.Before(cutoff) {
				delete(s.items, id)
				evicted++
			}
		}
		s.mu.Unlock()
	}
	metrics.WorkspacesActive.Sub(float64(evicted))
	return evicted
}

func (w *Workspaces) shardFor(device string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(device))
	return w.shards[h.Sum32()%uint32(len(w.shards))]
}
