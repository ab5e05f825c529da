// Package metrics defines and registers all custom Prometheus metrics for the
// donation client. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register with the default Prometheus registry at package init; an
// embedding process decides whether and how to expose them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "donation_client"

// RequestsTotal counts backend calls by endpoint and outcome.
// Labels:
//   - endpoint: the relative path template (e.g. "/auth/login")
//   - outcome: "success", "http_error", "token_expired", or "network_error"
var RequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_total",
		Help:      "Total number of backend calls, by endpoint and outcome.",
	},
	[]string{"endpoint", "outcome"},
)

// RequestDuration measures the round-trip time of a backend call.
// Label:
//   - endpoint: the relative path template
var RequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "request_duration_seconds",
		Help:      "Duration of backend calls from request build to response decode.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"endpoint"},
)

// TokenExpiryTotal counts 401 responses that purged the stored token.
var TokenExpiryTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_expiry_total",
		Help:      "Total number of calls rejected with 401, each clearing the stored token.",
	},
)

// BackendReachable tracks the last-known reachability of the backend
// (1 reachable, 0 unreachable).
var BackendReachable = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "backend_reachable",
		Help:      "Last-known backend reachability as reported by the health probe.",
	},
)

// Outcome label values for RequestsTotal.
const (
	OutcomeSuccess      = "success"
	OutcomeHTTPError    = "http_error"
	OutcomeTokenExpired = "token_expired"
	OutcomeNetworkError = "network_error"
)
