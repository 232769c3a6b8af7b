package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus instruments for the dashboard backend.
type Metrics struct {
	RowsLoaded  prometheus.Gauge
	RowsDropped prometheus.Gauge
	LoadSeconds prometheus.Gauge

	FilterQueries prometheus.Counter
	FilteredRows  prometheus.Histogram

	HTTPRequests *prometheus.CounterVec // labels: route, status
}

// NewMetrics creates and registers all metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RowsLoaded,
		m.RowsDropped,
		m.LoadSeconds,
		m.FilterQueries,
		m.FilteredRows,
		m.HTTPRequests,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, so
// parallel tests do not trip "already registered" panics.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RowsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "roadsafe",
			Name:      "dataset_rows",
			Help:      "Rows in the canonical dataset after cleaning.",
		}),
		RowsDropped: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "roadsafe",
			Name:      "dataset_rows_dropped",
			Help:      "Rows excluded at load time for missing required fields.",
		}),
		LoadSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "roadsafe",
			Name:      "dataset_load_seconds",
			Help:      "Wall time of the one-time dataset load.",
		}),
		FilterQueries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "roadsafe",
			Name:      "filter_queries_total",
			Help:      "Filter-and-aggregate recomputations served.",
		}),
		FilteredRows: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "roadsafe",
			Name:      "filtered_rows",
			Help:      "Row count of the filtered view per query.",
			Buckets:   prometheus.ExponentialBuckets(10, 10, 7),
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "roadsafe",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "status"}),
	}
}
