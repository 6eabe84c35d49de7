// Package metrics defines and registers all custom Prometheus metrics for the
// traders console. It is the single source of truth for metric names, labels
// and help strings.
//
// Metrics are registered with the default registry on package load through
// promauto; HTTP request metrics are added separately by the router.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "console"

// ── Backend metrics ───────────────────────────────────────────────────────────

// BackendRequestsTotal counts calls to the billing backend.
// Labels:
//   - method: HTTP method
//   - path: backend path template (e.g. "/products")
//   - status: response status code, or "error" when no response arrived
var BackendRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_requests_total",
		Help:      "Total number of requests sent to the billing backend.",
	},
	[]string{"method", "path", "status"},
)

// BackendRequestDuration measures backend round trips.
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of requests to the billing backend.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "path"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionEventsTotal counts session lifecycle events.
// Label:
//   - event: "login", "logout", "hydrate_error", "login_error"
var SessionEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_events_total",
		Help:      "Total number of session lifecycle events.",
	},
	[]string{"event"},
)

// RouteDecisionsTotal counts authorizer verdicts per protected subtree.
// Labels:
//   - subtree: "admin" or "client"
//   - verdict: "permit", "redirect", "wait"
var RouteDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "route_decisions_total",
		Help:      "Total number of route authorization decisions.",
	},
	[]string{"subtree", "verdict"},
)

// ── View metrics ──────────────────────────────────────────────────────────────

// SuggestionsTotal counts client-name lookups by outcome.
// Label:
//   - result: "applied" or "discarded" (superseded by a newer lookup)
var SuggestionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "suggestions_total",
		Help:      "Total number of client-name lookups, by whether the answer was applied.",
	},
	[]string{"result"},
)

// WorkspacesActive tracks how many devices hold view state.
var WorkspacesActive = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "workspaces_active",
		Help:      "Current number of per-device workspaces held in memory.",
	},
)

// ObserveBackend records one backend round trip. Its signature matches
// backend.Observer.
func ObserveBackend(method, path string, status int, elapsed time.Duration) {
	code := "error"
	if status > 0 {
		code = strconv.Itoa(status)
	}
	BackendRequestsTotal.WithLabelValues(method, path, code).Inc()
	BackendRequestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}
