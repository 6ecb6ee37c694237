package metrics

import "github.com/ib-77/cslice/pkg/cslice/types"

// NopMetrics discards every metric.
type NopMetrics struct{}

// Compile-time assertion that NopMetrics implements MetricsCollector.
var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNop creates a new no-op metrics collector.
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

// RecordPartition discards the partition metric.
func (n *NopMetrics) RecordPartition(_ /* strategy */ string, _ /* chunks */ int) {}

// IncrementChunksIssued discards the issue counter.
func (n *NopMetrics) IncrementChunksIssued() {}

// IncrementChunksReleased discards the release counter.
func (n *NopMetrics) IncrementChunksReleased() {}

// RecordRecoverAttempt discards the recover attempt.
func (n *NopMetrics) RecordRecoverAttempt(_ /* success */ bool) {}

// RecordWorkerDuration discards the worker duration.
func (n *NopMetrics) RecordWorkerDuration(_ /* seconds */ float64) {}
