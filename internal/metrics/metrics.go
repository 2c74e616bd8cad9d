// Package metrics holds the prometheus collectors shared by the orchestration core and the server.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RemoteRequestsTotal counts calls to the analysis service.
	RemoteRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aspectmind",
			Name:      "remote_requests_total",
			Help:      "Total requests to the analysis service by operation and status",
		},
		[]string{"operation", "status"},
	)

	// RemoteRequestDuration observes analysis service latency.
	RemoteRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "aspectmind",
			Name:      "remote_request_duration_seconds",
			Help:      "Analysis service request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"operation"},
	)

	// StaleResponsesTotal counts settled responses dropped by a generation guard.
	StaleResponsesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aspectmind",
			Name:      "stale_responses_total",
			Help:      "Responses discarded because their input was superseded",
		},
		[]string{"component"},
	)

	// ActiveSessions tracks live orchestration sessions on the server.
	ActiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "aspectmind",
			Name:      "active_sessions",
			Help:      "Number of live sessions",
		},
	)

	// HTTPRequestDuration observes action-surface request duration.
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "aspectmind",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestsTotal counts action-surface requests.
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "aspectmind",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
)

var registerOnce sync.Once

// Register registers all collectors on the default registry. Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			RemoteRequestsTotal,
			RemoteRequestDuration,
			StaleResponsesTotal,
			ActiveSessions,
			HTTPRequestDuration,
			HTTPRequestsTotal,
		)
	})
}
