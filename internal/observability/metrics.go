package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the lookup flow.
type Metrics struct {
	// Lookups by terminal outcome: loaded, not_found, transport_error.
	Lookups *prometheus.CounterVec

	// Outbound requests by target (geocode, weather) and outcome (success, error).
	UpstreamRequests *prometheus.CounterVec

	// Outbound request duration by target.
	UpstreamDuration *prometheus.HistogramVec

	// Background refreshes of the active location by outcome (success, error, skipped).
	Refreshes *prometheus.CounterVec
}

// NewMetrics creates and registers all collectors with the default registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.Lookups,
		m.UpstreamRequests,
		m.UpstreamDuration,
		m.Refreshes,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, so parallel
// tests do not trip "already registered" panics.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		Lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_lookup",
			Name:      "lookups_total",
			Help:      "Completed lookups by terminal outcome.",
		}, []string{"outcome"}),
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_lookup",
			Name:      "upstream_requests_total",
			Help:      "Outbound API requests by target and outcome.",
		}, []string{"target", "outcome"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "weather_lookup",
			Name:      "upstream_request_duration_seconds",
			Help:      "Outbound API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"target"}),
		Refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_lookup",
			Name:      "refreshes_total",
			Help:      "Background condition refreshes by outcome.",
		}, []string{"outcome"}),
	}
}
