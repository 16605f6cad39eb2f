package core

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "badrefining"

// PrometheusMetricsRecorder exports session operation timings and outcomes
// as Prometheus collectors.
type PrometheusMetricsRecorder struct {
	OperationDuration   *prometheus.HistogramVec
	OperationsTotal     *prometheus.CounterVec
	// ActiveModifications is the number of ledger entries applied and not yet undone.
	ActiveModifications prometheus.Gauge
}

// NewPrometheusMetricsRecorder builds the collectors and registers them on reg.
// A nil reg leaves the collectors unregistered.
func NewPrometheusMetricsRecorder(reg prometheus.Registerer) (*PrometheusMetricsRecorder, error) {
	rec := &PrometheusMetricsRecorder{
		OperationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: "session",
				Name:      "operation_duration_seconds",
				Help:      "Duration of session loads, unloads and patch families",
				Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"operation"},
		),
		OperationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: "session",
				Name:      "operations_total",
				Help:      "Session operations by outcome",
			},
			[]string{"operation", "status"},
		),
		ActiveModifications: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: "ledger",
			Name:      "active_modifications",
			Help:      "Definition fields currently holding patched values",
		}),
	}
	if reg == nil {
		return rec, nil
	}
	for _, c := range []prometheus.Collector{rec.OperationDuration, rec.OperationsTotal, rec.ActiveModifications} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return rec, nil
}

// Observe implements MetricsRecorder.
func (r *PrometheusMetricsRecorder) Observe(_ context.Context, operation string, success bool, duration time.Duration) {
	if operation == "" {
		return
	}
	status := "error"
	if success {
		status = "success"
	}
	r.OperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
	r.OperationsTotal.WithLabelValues(operation, status).Inc()
}

// SetActiveModifications implements ModificationsRecorder.
func (r *PrometheusMetricsRecorder) SetActiveModifications(n int) {
	r.ActiveModifications.Set(float64(n))
}
