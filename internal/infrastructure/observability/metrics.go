package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all application metrics
type Metrics struct {
	// Checkout metrics
	CheckoutsInitiated *prometheus.CounterVec
	CheckoutDuration   *prometheus.HistogramVec

	// Reconciliation metrics
	ReconciliationsTotal   *prometheus.CounterVec
	ReconciliationDuration prometheus.Histogram

	// Catalog metrics
	CatalogOperations *prometheus.CounterVec

	// Processor metrics
	ProcessorRequests *prometheus.CounterVec

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers all metrics against the given registry.
// If reg is nil, prometheus.DefaultRegisterer is used.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := prometheus.WrapRegistererWith(nil, reg)

	m := &Metrics{
		CheckoutsInitiated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "checkouts_initiated_total",
				Help:      "Total number of checkout initiations by outcome",
			},
			[]string{"outcome"},
		),
		CheckoutDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "checkout_duration_seconds",
				Help:      "Checkout initiation duration in seconds",
				Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
			[]string{"outcome"},
		),
		ReconciliationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reconciliations_total",
				Help:      "Total number of order reconciliations by outcome",
			},
			[]string{"outcome"},
		),
		ReconciliationDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "reconciliation_duration_seconds",
				Help:      "Order reconciliation duration in seconds",
				Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
		),
		CatalogOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "catalog_operations_total",
				Help:      "Total number of catalog store operations",
			},
			[]string{"operation", "status"},
		),
		ProcessorRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "processor_requests_total",
				Help:      "Total number of payment processor requests",
			},
			[]string{"operation", "status"},
		),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}

	// Register all collectors
	factory.MustRegister(
		m.CheckoutsInitiated,
		m.CheckoutDuration,
		m.ReconciliationsTotal,
		m.ReconciliationDuration,
		m.CatalogOperations,
		m.ProcessorRequests,
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
	)

	return m
}
