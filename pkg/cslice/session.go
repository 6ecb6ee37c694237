package cslice

import (
	"github.com/eapache/queue"

	"github.com/ib-77/cslice/pkg/cslice/cell"
	"github.com/ib-77/cslice/pkg/cslice/plan"
)

// session ties the backing cell of one partitioning run to its logger and
// metrics. Every chunk, iterator and guard of the run points at it.
type session[T any] struct {
	cell    *cell.Cell[T]
	logger  Logger
	metrics MetricsCollector
}

func newSession[T any](s []T, opts ...Option) *session[T] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &session[T]{
		cell:    cell.Acquire(s),
		logger:  o.logger,
		metrics: o.metrics,
	}
}

// issue creates a chunk over region. The caller must already hold the
// reference the chunk takes over.
func (s *session[T]) issue(region plan.Region) *Chunk[T] {
	s.metrics.IncrementChunksIssued()
	return &Chunk[T]{
		sess:   s,
		region: region,
		data:   s.cell.Window(region.Start, region.End),
	}
}

// partition creates an iterator over regions. The caller must already hold
// the reference the iterator takes over.
func (s *session[T]) partition(regions []plan.Region, strategy string) *Chunks[T] {
	pending := queue.New()
	for _, r := range regions {
		pending.Add(r)
	}

	s.metrics.RecordPartition(strategy, len(regions))
	s.logger.Debug("partition planned",
		"session", s.cell.ID(),
		"strategy", strategy,
		"len", s.cell.Len(),
		"cap", s.cell.Cap(),
		"chunks", len(regions))

	return &Chunks[T]{sess: s, pending: pending}
}

func (s *session[T]) issueGuard() (*Guard[T], error) {
	if err := s.cell.IssueGuard(); err != nil {
		return nil, err
	}
	s.logger.Debug("guard issued", "session", s.cell.ID(), "outstanding", s.cell.RefCount())
	return &Guard[T]{sess: s}, nil
}

// recover hands the slice back if the caller holds the last reference.
func (s *session[T]) recover() ([]T, error) {
	out, err := s.cell.TryReconstruct()
	s.metrics.RecordRecoverAttempt(err == nil)
	if err != nil {
		s.logger.Debug("recover refused", "session", s.cell.ID(), "error", err)
		return nil, err
	}

	s.logger.Debug("storage recovered", "session", s.cell.ID(), "len", len(out), "cap", cap(out))
	return out, nil
}
