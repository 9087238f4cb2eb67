package ecc

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/kochabx/seccure/errors"
)

// Metrics exports pipeline counters and runtime gauges. A nil *Metrics is a
// no-op.
type Metrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	refs       prometheus.Gauge
	secureMem  prometheus.Gauge
}

// NewMetrics registers the collectors on reg under namespace.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		operations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Pipeline calls by operation and result.",
		}, []string{"op", "result"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Pipeline latency by operation.",
			Buckets:   prometheus.ExponentialBuckets(0.00005, 2, 14),
		}, []string{"op"}),
		refs: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "runtime_refs",
			Help:      "Live states holding the runtime.",
		}),
		secureMem: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "secure_memory_in_use_bytes",
			Help:      "Bytes allocated from the secure pool.",
		}),
	}
}

func result(err error) string {
	if err == nil {
		return "ok"
	}
	return errors.KindOf(err).String()
}

func (m *Metrics) observe(op string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(op, result(err)).Inc()
	m.duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func (m *Metrics) setRefs(n int) {
	if m == nil {
		return
	}
	m.refs.Set(float64(n))
}

func (m *Metrics) setSecureMemory(n int) {
	if m == nil {
		return
	}
	m.secureMem.Set(float64(n))
}
