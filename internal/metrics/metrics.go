// Package metrics provides Prometheus metrics for the type registry and the
// transports serving it.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ros2types"

// Collector holds all Prometheus metrics. It implements registry.Observer.
type Collector struct {
	// Load metrics
	Types               prometheus.Gauge
	LoadErrors          *prometheus.CounterVec
	MissingDependencies prometheus.Counter

	// Query metrics
	QueriesTotal  *prometheus.CounterVec
	RepliesTotal  *prometheus.CounterVec
	QueryErrors   *prometheus.CounterVec
	QueryDuration *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

// New creates a collector registered on a fresh registry.
func New() *Collector {
	return NewWithRegistry(prometheus.NewRegistry())
}

// NewWithRegistry creates a collector registered on reg.
func NewWithRegistry(reg *prometheus.Registry) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		Types: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "types_loaded",
				Help:      "Number of types in the registry",
			},
		),
		LoadErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "load_errors_total",
				Help:      "Total number of type files skipped while loading",
			},
			[]string{"kind"},
		),
		MissingDependencies: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "missing_dependencies_total",
				Help:      "Total number of dependencies not found while flattening schemas",
			},
		),

		QueriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "queries_total",
				Help:      "Total number of requests received",
			},
			[]string{"transport", "format"},
		),
		RepliesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "replies_total",
				Help:      "Total number of data replies sent",
			},
			[]string{"transport"},
		),
		QueryErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "query_errors_total",
				Help:      "Total number of requests answered with an error",
			},
			[]string{"transport"},
		),
		QueryDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "query_duration_seconds",
				Help:      "Time to answer a request",
				Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
			},
			[]string{"transport"},
		),

		gatherer: reg,
	}
}

// Gatherer returns the registry the collector is registered on.
func (c *Collector) Gatherer() prometheus.Gatherer { return c.gatherer }

// LoadFailed counts a skipped type file.
func (c *Collector) LoadFailed(kind string) {
	c.LoadErrors.WithLabelValues(kind).Inc()
}

// TypesLoaded sets the registry size.
func (c *Collector) TypesLoaded(total int) {
	c.Types.Set(float64(total))
}

// DependencyMissing counts a dependency skipped while flattening.
func (c *Collector) DependencyMissing() {
	c.MissingDependencies.Inc()
}

// ObserveQuery records one handled request.
func (c *Collector) ObserveQuery(transport, format string, replies int, err error, elapsed time.Duration) {
	c.QueriesTotal.WithLabelValues(transport, format).Inc()
	c.RepliesTotal.WithLabelValues(transport).Add(float64(replies))
	if err != nil {
		c.QueryErrors.WithLabelValues(transport).Inc()
	}
	c.QueryDuration.WithLabelValues(transport).Observe(elapsed.Seconds())
}
