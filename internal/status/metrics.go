package status

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for tool invocations.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Metrics tracks tool invocation counters. A private prometheus registry
// backs the /metrics endpoint; atomic counters back the /status snapshot.
type Metrics struct {
	registry *prometheus.Registry

	invocations *prometheus.CounterVec
	duration    *prometheus.HistogramVec

	totalOK      atomic.Int64
	totalErrors  atomic.Int64
	totalLatency atomic.Int64 // nanoseconds
}

// NewMetrics builds a Metrics with its own registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		invocations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "btw",
			Name:      "tool_invocations_total",
			Help:      "Tool invocations by tool name and outcome.",
		}, []string{"tool", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "btw",
			Name:      "tool_duration_seconds",
			Help:      "Tool execution duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"tool"}),
	}

	m.registry.MustRegister(
		m.invocations,
		m.duration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// RecordInvocation records one tool call.
func (m *Metrics) RecordInvocation(tool, outcome string, latency time.Duration) {
	m.invocations.WithLabelValues(tool, outcome).Inc()
	m.duration.WithLabelValues(tool).Observe(latency.Seconds())

	if outcome == OutcomeOK {
		m.totalOK.Add(1)
	} else {
		m.totalErrors.Add(1)
	}
	m.totalLatency.Add(int64(latency))
}

// Handler returns the /metrics endpoint handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Snapshot returns a consistent point-in-time view of the counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	ok := m.totalOK.Load()
	snap := MetricsSnapshot{
		Invocations: ok,
		Errors:      m.totalErrors.Load(),
	}
	if total := ok + snap.Errors; total > 0 {
		snap.AvgLatency = time.Duration(m.totalLatency.Load() / total)
	}
	return snap
}

// MetricsSnapshot is a serializable point-in-time metrics view.
type MetricsSnapshot struct {
	Invocations int64         `json:"invocations"`
	Errors      int64         `json:"errors"`
	AvgLatency  time.Duration `json:"avg_latency_ns"`
}
