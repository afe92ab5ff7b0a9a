// Package metrics provides Prometheus instrumentation for document store
// operations.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry manages metric registration and exposure. Store-operation metrics
// and Go runtime collectors are registered by default.
type Registry struct {
	registry *prometheus.Registry

	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
}

// NewRegistry creates a registry with the default collectors.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	operationsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "docshape_store_operations_total",
		Help: "Total document store operations by operation and outcome.",
	}, []string{"operation", "outcome"})

	operationDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "docshape_store_operation_duration_seconds",
		Help:    "Document store operation latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	reg.MustRegister(operationsTotal)
	reg.MustRegister(operationDuration)
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return &Registry{
		registry:          reg,
		operationsTotal:   operationsTotal,
		operationDuration: operationDuration,
	}
}

// ObserveOperation records one store operation with its outcome and latency.
func (r *Registry) ObserveOperation(operation string, err error, elapsed time.Duration) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	r.operationsTotal.WithLabelValues(operation, outcome).Inc()
	r.operationDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// Register adds a custom collector.
func (r *Registry) Register(collector prometheus.Collector) error {
	return r.registry.Register(collector)
}

// MustRegister adds custom collectors and panics on error.
func (r *Registry) MustRegister(cs ...prometheus.Collector) {
	r.registry.MustRegister(cs...)
}

// Handler exposes the registry in Prometheus text format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// Gatherer returns the underlying prometheus.Gatherer.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}
