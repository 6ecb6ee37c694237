package cslice

import (
	"fmt"

	"github.com/ib-77/cslice/pkg/cslice/plan"
)

// Cat consumes contiguous chunks of one session, given in ascending order,
// into a single chunk covering all of them. Nothing is consumed when an
// error is returned.
func Cat[T any](chunks ...*Chunk[T]) (*Chunk[T], error) {
	if len(chunks) == 0 {
		return nil, ErrEmptyCat
	}

	first, last := chunks[0], chunks[len(chunks)-1]
	for i, c := range chunks {
		if c.sess != first.sess {
			return nil, fmt.Errorf("%w: %s and %s", ErrInconsistentOwner, first.ID(), c.ID())
		}
		if c.Released() {
			return nil, c.releasedErr()
		}
		if i > 0 && chunks[i-1].region.End != c.region.Start {
			return nil, fmt.Errorf("%w: %s then %s", ErrNotContiguous, chunks[i-1].region, c.region)
		}
	}

	for i, c := range chunks {
		if !c.released.CompareAndSwap(false, true) {
			for _, prev := range chunks[:i] {
				prev.released.Store(false)
			}
			return nil, c.releasedErr()
		}
	}

	sess := first.sess
	// the first chunk's reference moves to the result
	for range chunks[1:] {
		sess.cell.Release()
	}
	for range chunks {
		sess.metrics.IncrementChunksReleased()
	}
	sess.metrics.RecordPartition("cat", 1)
	return sess.issue(plan.Region{Start: first.region.Start, End: last.region.End}), nil
}
