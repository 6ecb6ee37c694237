package cslice

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// Guard reclaims the partitioned slice. It holds one reference on the
// backing storage and succeeds once that is the only reference left.
type Guard[T any] struct {
	sess     *session[T]
	consumed atomic.Bool
}

// Recover returns the original slice, with its length and capacity, once
// the iterator and every chunk are released. Until then it returns
// ErrStillBorrowed without changing anything, and can be called again.
// After a successful call it returns ErrGuardAlreadyConsumed.
func (g *Guard[T]) Recover() ([]T, error) {
	if g.consumed.Load() {
		return nil, g.consumedErr()
	}

	out, err := g.sess.recover()
	if errors.Is(err, ErrReclaimed) {
		// lost a race against another Recover on this guard
		return nil, g.consumedErr()
	}
	if err != nil {
		return nil, err
	}
	g.consumed.Store(true)
	return out, nil
}

// Consumed reports whether Recover succeeded.
func (g *Guard[T]) Consumed() bool {
	return g.consumed.Load()
}

// Outstanding returns how many references other than the guard's own are
// still held.
func (g *Guard[T]) Outstanding() int64 {
	if g.consumed.Load() {
		return 0
	}
	return g.sess.cell.RefCount() - 1
}

// ID identifies the session.
func (g *Guard[T]) ID() uuid.UUID {
	return g.sess.cell.ID()
}

func (g *Guard[T]) consumedErr() error {
	g.sess.logger.Warn("recover on consumed guard", "session", g.sess.cell.ID())
	return fmt.Errorf("%w: session %s", ErrGuardAlreadyConsumed, g.sess.cell.ID())
}
