package cell

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/ib-77/cslice/pkg/cslice/types"
)

// Cell is the reference-counted owner of a partitioned slice.
type Cell[T any] struct {
	id          uuid.UUID
	buf         []T
	refs        atomic.Int64
	guardIssued atomic.Bool
}

// Acquire takes ownership of s. The returned cell starts with one
// reference, owned by the caller. s must not be used afterwards; the
// elements are reachable only through views handed out by the cell.
func Acquire[T any](s []T) *Cell[T] {
	c := &Cell[T]{
		id:  uuid.New(),
		buf: s,
	}
	c.refs.Store(1)
	return c
}

// ID identifies the session the cell belongs to.
func (c *Cell[T]) ID() uuid.UUID {
	return c.id
}

// Len returns the length of the owned slice.
func (c *Cell[T]) Len() int {
	return len(c.buf)
}

// Cap returns the capacity of the owned slice.
func (c *Cell[T]) Cap() int {
	return cap(c.buf)
}

// RefCount returns the number of outstanding references. 0 means the
// slice was reconstructed.
func (c *Cell[T]) RefCount() int64 {
	return c.refs.Load()
}

// Retain adds a reference. Only a current holder may call it, so the count
// is at least one; a cell that was already reconstructed refuses.
func (c *Cell[T]) Retain() error {
	for {
		n := c.refs.Load()
		if n <= 0 {
			return fmt.Errorf("%w: session %s", types.ErrReclaimed, c.id)
		}
		if c.refs.CompareAndSwap(n, n+1) {
			return nil
		}
	}
}

// Release drops a reference and returns the remaining count.
func (c *Cell[T]) Release() int64 {
	n := c.refs.Add(-1)
	if n < 0 {
		panic(fmt.Sprintf("cell: release of unreferenced session %s", c.id))
	}
	return n
}

// IssueGuard marks the one guard of the session as issued and retains a
// reference on its behalf.
func (c *Cell[T]) IssueGuard() error {
	if !c.guardIssued.CompareAndSwap(false, true) {
		return fmt.Errorf("%w: session %s", types.ErrGuardAlreadyIssued, c.id)
	}
	if err := c.Retain(); err != nil {
		c.guardIssued.Store(false)
		return err
	}
	return nil
}

// GuardIssued reports whether IssueGuard succeeded once.
func (c *Cell[T]) GuardIssued() bool {
	return c.guardIssued.Load()
}

// Window returns the elements [start, end) with capacity capped at end,
// so appending to the window never writes past it.
func (c *Cell[T]) Window(start, end int) []T {
	return c.buf[start:end:end]
}

// TryReconstruct hands back the owned slice, with its original length and
// capacity, when the caller's reference is the only one left. Otherwise it
// returns ErrStillBorrowed and changes nothing.
func (c *Cell[T]) TryReconstruct() ([]T, error) {
	if c.refs.CompareAndSwap(1, 0) {
		return c.buf, nil
	}

	n := c.refs.Load()
	if n <= 0 {
		return nil, fmt.Errorf("%w: session %s", types.ErrReclaimed, c.id)
	}
	return nil, fmt.Errorf("%w: %d outstanding references in session %s", types.ErrStillBorrowed, n-1, c.id)
}
