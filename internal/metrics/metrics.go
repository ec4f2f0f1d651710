package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks request latency per route
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestCount counts requests per route and status
	HTTPRequestCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// LedgerMutationCount counts ledger mutations by ledger and operation
	LedgerMutationCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_mutations_total",
			Help: "Total number of ledger mutations",
		},
		[]string{"ledger", "operation"},
	)

	// PickDecisionCount counts pick attempts by outcome
	PickDecisionCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "project_pick_decisions_total",
			Help: "Total number of project pick attempts by outcome",
		},
		[]string{"outcome"},
	)
)

// RecordHTTPRequest records one completed HTTP request
func RecordHTTPRequest(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
	HTTPRequestCount.WithLabelValues(method, path, status).Inc()
}

// RecordLedgerMutation records one ledger mutation
func RecordLedgerMutation(ledger, operation string) {
	LedgerMutationCount.WithLabelValues(ledger, operation).Inc()
}

// RecordPickDecision records one pick attempt outcome
func RecordPickDecision(outcome string) {
	PickDecisionCount.WithLabelValues(outcome).Inc()
}
