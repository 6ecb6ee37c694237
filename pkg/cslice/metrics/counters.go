package metrics

import (
	"math"
	"sync/atomic"

	"github.com/puzpuzpuz/xsync/v4"

	"github.com/ib-77/cslice/pkg/cslice/types"
)

// Counters is an in-process collector. Chunk releases arrive from every
// worker at once, so the hot counters are striped.
type Counters struct {
	partitions     *xsync.Map[string, *xsync.Counter]
	chunksIssued   *xsync.Counter
	chunksReleased *xsync.Counter
	recovered      *xsync.Counter
	borrowed       *xsync.Counter
	workerRuns     *xsync.Counter
	workerNanos    atomic.Int64
}

// Compile-time assertion that Counters implements MetricsCollector.
var _ types.MetricsCollector = (*Counters)(nil)

// Snapshot is a point-in-time copy of Counters.
type Snapshot struct {
	Partitions       map[string]int64
	ChunksIssued     int64
	ChunksReleased   int64
	Outstanding      int64
	Recovered        int64
	Borrowed         int64
	WorkerRuns       int64
	WorkerSecondsSum float64
}

// NewCounters creates an empty in-process collector.
func NewCounters() *Counters {
	return &Counters{
		partitions:     xsync.NewMap[string, *xsync.Counter](),
		chunksIssued:   xsync.NewCounter(),
		chunksReleased: xsync.NewCounter(),
		recovered:      xsync.NewCounter(),
		borrowed:       xsync.NewCounter(),
		workerRuns:     xsync.NewCounter(),
	}
}

// RecordPartition counts a partition by strategy.
func (c *Counters) RecordPartition(strategy string, _ /* chunks */ int) {
	counter, ok := c.partitions.Load(strategy)
	if !ok {
		counter, _ = c.partitions.LoadOrStore(strategy, xsync.NewCounter())
	}
	counter.Inc()
}

// IncrementChunksIssued counts a chunk handed out.
func (c *Counters) IncrementChunksIssued() {
	c.chunksIssued.Inc()
}

// IncrementChunksReleased counts a chunk released.
func (c *Counters) IncrementChunksReleased() {
	c.chunksReleased.Inc()
}

// RecordRecoverAttempt counts a recovery attempt by outcome.
func (c *Counters) RecordRecoverAttempt(success bool) {
	if success {
		c.recovered.Inc()
		return
	}
	c.borrowed.Inc()
}

// RecordWorkerDuration accumulates worker time.
func (c *Counters) RecordWorkerDuration(seconds float64) {
	c.workerRuns.Inc()
	c.workerNanos.Add(int64(math.Round(seconds * 1e9)))
}

// Snapshot returns the current values.
func (c *Counters) Snapshot() Snapshot {
	s := Snapshot{
		Partitions:       make(map[string]int64),
		ChunksIssued:     c.chunksIssued.Value(),
		ChunksReleased:   c.chunksReleased.Value(),
		Recovered:        c.recovered.Value(),
		Borrowed:         c.borrowed.Value(),
		WorkerRuns:       c.workerRuns.Value(),
		WorkerSecondsSum: float64(c.workerNanos.Load()) / 1e9,
	}
	s.Outstanding = s.ChunksIssued - s.ChunksReleased
	c.partitions.Range(func(strategy string, counter *xsync.Counter) bool {
		s.Partitions[strategy] = counter.Value()
		return true
	})
	return s
}
