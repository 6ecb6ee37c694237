package cslice

import (
	"fmt"
	"iter"
	"sync/atomic"

	"github.com/eapache/queue"
	"github.com/google/uuid"

	"github.com/ib-77/cslice/pkg/cslice/plan"
)

type iterState uint8

const (
	stateActive iterState = iota
	stateExhausted
)

// Chunks hands out the chunks of a partition in ascending region order.
// It owns the regions not yet handed out and holds one reference on the
// backing storage until Release.
//
// Next and All are meant for the single goroutine distributing chunks.
// Release may be called from anywhere.
type Chunks[T any] struct {
	sess     *session[T]
	pending  *queue.Queue
	state    iterState
	released atomic.Bool
}

// Next returns the chunk for the next region. Once the regions run out the
// iterator is exhausted and Next keeps returning nil, false. A released
// iterator yields nothing.
func (c *Chunks[T]) Next() (*Chunk[T], bool) {
	if c.state == stateExhausted || c.released.Load() {
		return nil, false
	}
	if c.pending.Length() == 0 {
		c.state = stateExhausted
		return nil, false
	}

	region := c.pending.Remove().(plan.Region)
	if err := c.sess.cell.Retain(); err != nil {
		c.state = stateExhausted
		return nil, false
	}
	return c.sess.issue(region), true
}

// All yields the remaining chunks.
func (c *Chunks[T]) All() iter.Seq[*Chunk[T]] {
	return func(yield func(*Chunk[T]) bool) {
		for {
			chunk, ok := c.Next()
			if !ok || !yield(chunk) {
				return
			}
		}
	}
}

// Collect returns every remaining chunk.
func (c *Chunks[T]) Collect() []*Chunk[T] {
	out := make([]*Chunk[T], 0, c.Remaining())
	for chunk := range c.All() {
		out = append(out, chunk)
	}
	return out
}

// Remaining returns how many chunks Next will still hand out.
func (c *Chunks[T]) Remaining() int {
	if c.released.Load() {
		return 0
	}
	return c.pending.Length()
}

// Exhausted reports whether Next has run past the last region.
func (c *Chunks[T]) Exhausted() bool {
	return c.state == stateExhausted
}

// Guard issues the recovery guard of the session. Only one guard exists
// per session, whichever handle asks for it.
func (c *Chunks[T]) Guard() (*Guard[T], error) {
	if c.released.Load() {
		return nil, fmt.Errorf("%w: session %s", ErrIteratorReleased, c.sess.cell.ID())
	}
	return c.sess.issueGuard()
}

// Recover hands the slice back when the iterator holds the only remaining
// reference: every chunk is released and no guard was issued. On success
// the iterator is released.
func (c *Chunks[T]) Recover() ([]T, error) {
	if c.released.Load() {
		return nil, fmt.Errorf("%w: session %s", ErrIteratorReleased, c.sess.cell.ID())
	}

	out, err := c.sess.recover()
	if err != nil {
		return nil, err
	}
	c.released.Store(true)
	return out, nil
}

// Release drops the iterator's reference. Regions not handed out yet are
// abandoned. Further calls do nothing.
func (c *Chunks[T]) Release() {
	if !c.released.CompareAndSwap(false, true) {
		return
	}
	remaining := c.sess.cell.Release()
	c.sess.logger.Debug("iterator released", "session", c.sess.cell.ID(), "outstanding", remaining)
}

// Released reports whether Release was called.
func (c *Chunks[T]) Released() bool {
	return c.released.Load()
}

// RefCount returns the outstanding references on the backing storage.
func (c *Chunks[T]) RefCount() int64 {
	return c.sess.cell.RefCount()
}

// ID identifies the session.
func (c *Chunks[T]) ID() uuid.UUID {
	return c.sess.cell.ID()
}
