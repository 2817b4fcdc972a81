package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "shooting_dashboard"

// Metrics holds the Prometheus counters, histograms, and gauges for the dashboard.
type Metrics struct {
	BuildsTotal      *prometheus.CounterVec // labels: outcome={success,error}
	BuildDuration    prometheus.Histogram
	IncidentsLoaded  prometheus.Gauge
	IncidentsDropped *prometheus.CounterVec // labels: reason={invalid_date,no_coordinates,unmatched}
	CountiesJoined   prometheus.Gauge
	DashboardReady   prometheus.Gauge

	// Presenter metrics.
	ChartRequests *prometheus.CounterVec // labels: chart, format={json,png,html,xlsx}

	// Snapshot publishing.
	SnapshotMessagesProduced prometheus.Counter
}

func newMetrics() *Metrics {
	return &Metrics{
		BuildsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "builds_total",
			Help:      "Dashboard builds by outcome.",
		}, []string{"outcome"}),
		BuildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Duration of a complete load-aggregate-join-chart build.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		IncidentsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "incidents_loaded",
			Help:      "Incident rows read by the last successful build.",
		}),
		IncidentsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "incidents_dropped_total",
			Help:      "Incidents left out of an aggregation, by reason.",
		}, []string{"reason"}),
		CountiesJoined: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "counties_joined",
			Help:      "Counties in the last spatial join.",
		}),
		DashboardReady: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dashboard_ready",
			Help:      "1 once a build has succeeded, 0 before.",
		}),
		ChartRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chart_requests_total",
			Help:      "Chart requests by chart id and format.",
		}, []string{"chart", "format"}),
		SnapshotMessagesProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshot_messages_produced_total",
			Help:      "Total snapshot messages written to Kafka.",
		}),
	}
}

// NewMetrics creates and registers all dashboard metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.BuildsTotal,
		m.BuildDuration,
		m.IncidentsLoaded,
		m.IncidentsDropped,
		m.CountiesJoined,
		m.DashboardReady,
		m.ChartRequests,
		m.SnapshotMessagesProduced,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}
