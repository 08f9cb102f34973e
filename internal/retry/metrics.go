package retry

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles Prometheus collectors for retry loops.
type Metrics struct {
	Registry      *prometheus.Registry
	AttemptsTotal prometheus.Counter
	OutcomesTotal *prometheus.CounterVec
	Duration      prometheus.Histogram
}

// NewMetrics constructs and registers all metrics on a dedicated registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	attempts := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "shopcheck_retry_attempts_total",
			Help: "Total number of action attempts made by retry loops.",
		},
	)
	outcomes := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shopcheck_retry_outcomes_total",
			Help: "Total number of finished retry loops by result.",
		},
		[]string{"result"},
	)
	duration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "shopcheck_retry_duration_seconds",
			Help:    "Wall-clock time spent in a retry loop.",
			Buckets: prometheus.DefBuckets,
		},
	)

	registry.MustRegister(attempts, outcomes, duration)

	return &Metrics{
		Registry:      registry,
		AttemptsTotal: attempts,
		OutcomesTotal: outcomes,
		Duration:      duration,
	}
}

// IncAttempt increments the attempts counter.
func (m *Metrics) IncAttempt() {
	if m == nil {
		return
	}
	m.AttemptsTotal.Inc()
}

// ObserveOutcome records a finished loop.
func (m *Metrics) ObserveOutcome(o Outcome) {
	if m == nil {
		return
	}
	result := "failure"
	if o.Success {
		result = "success"
	}
	m.OutcomesTotal.WithLabelValues(result).Inc()
	m.Duration.Observe(o.Elapsed.Seconds())
}
