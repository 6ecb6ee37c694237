package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ib-77/cslice/pkg/cslice/types"
)

// PrometheusCollector implements types.MetricsCollector backed by Prometheus.
// Metrics are registered on first use.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	partitions      *prometheus.CounterVec
	partitionChunks prometheus.Histogram
	chunksIssued    prometheus.Counter
	chunksReleased  prometheus.Counter
	recoverAttempts *prometheus.CounterVec
	workerDuration  prometheus.Histogram
}

// Compile-time assertion that PrometheusCollector implements MetricsCollector.
var _ types.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheus creates a Prometheus-backed metrics collector.
//
// Parameters:
//   - reg: Prometheus registerer (prometheus.DefaultRegisterer if nil)
//   - namespace: metrics namespace ("cslice" if empty)
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "cslice"
	}

	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.partitions = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "session",
			Name:      "partitions_total",
			Help:      "Total partitioning sessions and sub-partitions by strategy.",
		}, []string{"strategy"})

		p.partitionChunks = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "session",
			Name:      "partition_chunks",
			Help:      "Number of chunks planned per partition.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 12), // 1 .. 2048
		})

		p.chunksIssued = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "chunk",
			Name:      "issued_total",
			Help:      "Total chunk handles handed out.",
		})

		p.chunksReleased = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "chunk",
			Name:      "released_total",
			Help:      "Total chunk handles released.",
		})

		p.recoverAttempts = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "guard",
			Name:      "recover_attempts_total",
			Help:      "Recovery attempts by result (success, borrowed).",
		}, []string{"result"})

		p.workerDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "dispatch",
			Name:      "worker_duration_seconds",
			Help:      "Time a worker spent on one chunk, in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10), // 100us .. ~26s
		})

		p.reg.MustRegister(p.partitions)
		p.reg.MustRegister(p.partitionChunks)
		p.reg.MustRegister(p.chunksIssued)
		p.reg.MustRegister(p.chunksReleased)
		p.reg.MustRegister(p.recoverAttempts)
		p.reg.MustRegister(p.workerDuration)
	})
}

// RecordPartition counts a partition and observes its chunk count.
func (p *PrometheusCollector) RecordPartition(strategy string, chunks int) {
	p.ensureRegistered()
	p.partitions.WithLabelValues(strategy).Inc()
	p.partitionChunks.Observe(float64(chunks))
}

// IncrementChunksIssued counts a chunk handed out.
func (p *PrometheusCollector) IncrementChunksIssued() {
	p.ensureRegistered()
	p.chunksIssued.Inc()
}

// IncrementChunksReleased counts a chunk released.
func (p *PrometheusCollector) IncrementChunksReleased() {
	p.ensureRegistered()
	p.chunksReleased.Inc()
}

// RecordRecoverAttempt counts a recovery attempt by outcome.
func (p *PrometheusCollector) RecordRecoverAttempt(success bool) {
	p.ensureRegistered()
	result := "borrowed"
	if success {
		result = "success"
	}
	p.recoverAttempts.WithLabelValues(result).Inc()
}

// RecordWorkerDuration observes a worker duration in seconds.
func (p *PrometheusCollector) RecordWorkerDuration(seconds float64) {
	p.ensureRegistered()
	p.workerDuration.Observe(seconds)
}
