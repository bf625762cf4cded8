// Package metrics counts and times marketplace operations on a private
// Prometheus registry.
package metrics

import (
	"time"

	"github.com/khrees2412/hireboard/internal/apperr"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the operation collectors
type Metrics struct {
	Registry *prometheus.Registry

	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// New creates the collectors and registers them on a fresh registry
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "hireboard",
				Name:      "operations_total",
				Help:      "Total number of marketplace operations by outcome.",
			},
			[]string{"operation", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "hireboard",
				Name:      "operation_duration_seconds",
				Help:      "Duration of marketplace operations.",
				Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12), // 0.5ms to ~1s
			},
			[]string{"operation"},
		),
	}
	m.Registry.MustRegister(m.operations, m.duration)
	return m
}

// Observe records one finished operation. The outcome label is "ok" or the
// error kind. A nil receiver records nothing.
func (m *Metrics) Observe(operation string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(operation, apperr.Kind(err)).Inc()
	m.duration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// WriteTextfile writes the registry in the node exporter textfile format
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
