// Package metrics defines the Prometheus collectors exported by the cloakroom service.
package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/eugenenazirov/cloakroom/internal/cloakroom"
)

const namespace = "cloakroom"

// Metrics groups the domain and HTTP collectors.
type Metrics struct {
	Lockers    *prometheus.GaugeVec
	Operations *prometheus.CounterVec
	ReqTotal   *prometheus.CounterVec
	ReqDur     *prometheus.HistogramVec
}

// New registers the collectors with reg, reusing collectors that are
// already registered. A nil reg falls back to the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		Lockers: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "lockers",
			Help:      "Number of lockers per state.",
		}, []string{"state"}),
		Operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Locker operations by kind and outcome.",
		}, []string{"operation", "outcome"}),
		ReqTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests handled by the server.",
		}, []string{"method", "status"}),
		ReqDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_ms",
			Help:      "HTTP request latency distribution in milliseconds.",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500},
		}, []string{"method"}),
	}

	m.Lockers = register(reg, m.Lockers)
	m.Operations = register(reg, m.Operations)
	m.ReqTotal = register(reg, m.ReqTotal)
	m.ReqDur = register(reg, m.ReqDur)
	return m
}

// SetOccupancy publishes the per-state locker counts.
func (m *Metrics) SetOccupancy(o cloakroom.Occupancy) {
	if m == nil {
		return
	}
	m.Lockers.WithLabelValues(cloakroom.Free.String()).Set(float64(o.Free))
	m.Lockers.WithLabelValues(cloakroom.ContentsBeingChanged.String()).Set(float64(o.ContentsBeingChanged))
	m.Lockers.WithLabelValues(cloakroom.Closed.String()).Set(float64(o.Closed))
}

// ObserveOperation counts one attendant operation.
func (m *Metrics) ObserveOperation(operation, outcome string) {
	if m == nil {
		return
	}
	m.Operations.WithLabelValues(operation, outcome).Inc()
}

// ObserveRequest records one completed HTTP request.
func (m *Metrics) ObserveRequest(method string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.ReqTotal.WithLabelValues(method, fmt.Sprint(status)).Inc()
	m.ReqDur.WithLabelValues(method).Observe(float64(d) / float64(time.Millisecond))
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
		panic(fmt.Errorf("register collector: %w", err))
	}
	return c
}
