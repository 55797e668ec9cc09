package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	LiveConnections   *prometheus.GaugeVec
	ReportsCreated    prometheus.Counter
	ReportsRejected   prometheus.Counter
	BroadcastFailures prometheus.Counter
	EnrichmentMisses  prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		LiveConnections: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "safesound_live_connections",
			Help: "Currently open live report connections by role",
		}, []string{"role"}),
		ReportsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "safesound_reports_created_total",
			Help: "Total number of reports persisted",
		}),
		ReportsRejected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "safesound_reports_rejected_total",
			Help: "Submissions rejected by validation or persistence",
		}),
		BroadcastFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "safesound_broadcast_failures_total",
			Help: "Failed deliveries to individual live connections during fan-out",
		}),
		EnrichmentMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "safesound_report_enrichment_misses_total",
			Help: "Persisted reports whose enriched form could not be fetched",
		}),
	}
}

// ConnectionOpened records a new live connection for the given role.
func (m *Metrics) ConnectionOpened(role string) {
	m.LiveConnections.WithLabelValues(role).Inc()
}

// ConnectionClosed records a live connection ending for the given role.
func (m *Metrics) ConnectionClosed(role string) {
	m.LiveConnections.WithLabelValues(role).Dec()
}
