package cslice

import (
	"fmt"
	"iter"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/ib-77/cslice/pkg/cslice/plan"
)

// Chunk is exclusive mutable access to one region of a partitioned slice.
// No other live chunk covers any of its indices. Indices taken by Get, Set,
// Slice and All are relative to the chunk; Region gives the absolute range.
type Chunk[T any] struct {
	sess     *session[T]
	region   plan.Region
	data     []T
	released atomic.Bool
}

// Len returns the number of elements in the chunk.
func (c *Chunk[T]) Len() int {
	return c.region.Len()
}

// Region returns the absolute range the chunk covers.
func (c *Chunk[T]) Region() plan.Region {
	return c.region
}

// Slice returns the chunk's elements. Its capacity ends at the chunk
// boundary, so append reallocates instead of writing into a neighbour.
// Indexing it out of range panics. Returns nil once released.
func (c *Chunk[T]) Slice() []T {
	if c.released.Load() {
		return nil
	}
	return c.data
}

// Get returns element i.
func (c *Chunk[T]) Get(i int) (T, error) {
	var zero T
	if err := c.check(i); err != nil {
		return zero, err
	}
	return c.data[i], nil
}

// Set stores v at element i.
func (c *Chunk[T]) Set(i int, v T) error {
	if err := c.check(i); err != nil {
		return err
	}
	c.data[i] = v
	return nil
}

func (c *Chunk[T]) check(i int) error {
	if c.released.Load() {
		return c.releasedErr()
	}
	if i < 0 || i >= len(c.data) {
		return fmt.Errorf("%w: index %d, chunk %s has %d elements", ErrIndexOutOfBounds, i, c.region, len(c.data))
	}
	return nil
}

// All yields each index with a pointer to its element, for in-place updates.
func (c *Chunk[T]) All() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		data := c.Slice()
		for i := range data {
			if !yield(i, &data[i]) {
				return
			}
		}
	}
}

// Values yields copies of the elements.
func (c *Chunk[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range c.Slice() {
			if !yield(v) {
				return
			}
		}
	}
}

// Windows yields every run of size consecutive elements, advancing by one.
// Windows overlap and are meant for reading. It yields nothing when the
// chunk is shorter than size and panics if size is less than 1.
func (c *Chunk[T]) Windows(size int) iter.Seq[[]T] {
	if size < 1 {
		panic("cslice: window size cannot be less than 1")
	}
	return func(yield func([]T) bool) {
		data := c.Slice()
		for i := 0; i+size <= len(data); i++ {
			if !yield(data[i : i+size : i+size]) {
				return
			}
		}
	}
}

// SplitAt consumes the chunk into [0, i) and [i, Len()).
func (c *Chunk[T]) SplitAt(i int) (*Chunk[T], *Chunk[T], error) {
	if i < 0 || i > c.region.Len() {
		return nil, nil, fmt.Errorf("%w: split at %d, chunk %s has %d elements", ErrIndexOutOfBounds, i, c.region, c.region.Len())
	}
	if !c.retire() {
		return nil, nil, c.releasedErr()
	}
	// the retired chunk's reference moves to the left half
	if err := c.sess.cell.Retain(); err != nil {
		return nil, nil, err
	}

	mid := c.region.Start + i
	c.sess.metrics.RecordPartition("split", 2)
	return c.sess.issue(plan.Region{Start: c.region.Start, End: mid}),
		c.sess.issue(plan.Region{Start: mid, End: c.region.End}),
		nil
}

// Chunks consumes the chunk into an iterator over sub-chunks of size
// elements, the last one possibly shorter.
func (c *Chunk[T]) Chunks(size int) (*Chunks[T], error) {
	regions, err := plan.BySize(c.region.Len(), size)
	if err != nil {
		return nil, err
	}
	return c.into(regions, "size")
}

// ChunksByCount consumes the chunk into an iterator over at most count
// sub-chunks; see plan.ByCount.
func (c *Chunk[T]) ChunksByCount(count int) (*Chunks[T], error) {
	regions, err := plan.ByCount(c.region.Len(), count)
	if err != nil {
		return nil, err
	}
	return c.into(regions, "count")
}

// EvenChunks consumes the chunk into an iterator over min(Len(), count)
// sub-chunks whose sizes differ by at most one.
func (c *Chunk[T]) EvenChunks(count int) (*Chunks[T], error) {
	regions, err := plan.Even(c.region.Len(), count)
	if err != nil {
		return nil, err
	}
	return c.into(regions, "even")
}

func (c *Chunk[T]) into(regions []plan.Region, strategy string) (*Chunks[T], error) {
	if err := plan.Validate(regions, c.region.Len()); err != nil {
		return nil, err
	}
	if !c.retire() {
		return nil, c.releasedErr()
	}

	for i := range regions {
		regions[i] = regions[i].Shift(c.region.Start)
	}
	return c.sess.partition(regions, strategy), nil
}

// Guard issues the recovery guard of the session.
func (c *Chunk[T]) Guard() (*Guard[T], error) {
	if c.released.Load() {
		return nil, c.releasedErr()
	}
	return c.sess.issueGuard()
}

// Recover hands the slice back when this chunk holds the only remaining
// reference. On success the chunk is released.
func (c *Chunk[T]) Recover() ([]T, error) {
	if c.released.Load() {
		return nil, c.releasedErr()
	}

	out, err := c.sess.recover()
	if err != nil {
		return nil, err
	}
	c.released.Store(true)
	c.sess.metrics.IncrementChunksReleased()
	return out, nil
}

// Release drops the chunk's reference. Further calls do nothing.
func (c *Chunk[T]) Release() {
	if c.retire() {
		c.sess.cell.Release()
	}
}

// Released reports whether the chunk was released or consumed.
func (c *Chunk[T]) Released() bool {
	return c.released.Load()
}

// RefCount returns the outstanding references on the backing storage.
func (c *Chunk[T]) RefCount() int64 {
	return c.sess.cell.RefCount()
}

// ID identifies the session.
func (c *Chunk[T]) ID() uuid.UUID {
	return c.sess.cell.ID()
}

// retire marks the chunk released without dropping its reference; the
// caller either drops it or hands it on.
func (c *Chunk[T]) retire() bool {
	if !c.released.CompareAndSwap(false, true) {
		return false
	}
	c.sess.metrics.IncrementChunksReleased()
	return true
}

func (c *Chunk[T]) releasedErr() error {
	return fmt.Errorf("%w: chunk %s of session %s", ErrChunkReleased, c.region, c.sess.cell.ID())
}
