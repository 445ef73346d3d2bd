// Package metrics defines all custom Prometheus metrics for the voucher
// console. It is the single source of truth for metric names, labels, and
// help strings; registration happens at import time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "console"

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - outcome: "success", "invalid_credentials", or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// ActiveSessionStates tracks the number of in-memory per-session store sets.
var ActiveSessionStates = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_session_states",
		Help:      "Current number of live per-session store states.",
	},
)

// GuardDenialsTotal counts requests stopped by the route guard.
// Label:
//   - reason: "unauthenticated" or "wrong_role"
var GuardDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_denials_total",
		Help:      "Total number of requests denied by the route guard, by reason.",
	},
	[]string{"reason"},
)

// ── Upstream metrics ──────────────────────────────────────────────────────────

// UpstreamRequestsTotal counts calls to the remote voucher API.
// Labels:
//   - resource: first path segment of the upstream route (e.g. "plans")
//   - outcome: "ok", "error", "unauthorized", or "transport_error"
var UpstreamRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Total number of upstream API requests, by resource and outcome.",
	},
	[]string{"resource", "outcome"},
)

// UpstreamRequestDuration measures upstream round-trip time.
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of upstream API requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"resource"},
)

// ── Sales metrics ─────────────────────────────────────────────────────────────

// TicketsSoldTotal counts tickets sold through this console.
// Label:
//   - payment_method: "cash", "orange_money", or "mvola"
var TicketsSoldTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tickets_sold_total",
		Help:      "Total number of tickets sold, by payment method.",
	},
	[]string{"payment_method"},
)
