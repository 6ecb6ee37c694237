package dispatch

import (
	"context"
	"sync"

	"github.com/ib-77/cslice/pkg/cslice"
)

// FromChunks hands the chunks of it out over a channel, in order. The
// iterator is released before the channel is closed. On cancellation the
// chunk in hand is released and the rest of the regions are abandoned.
func FromChunks[T any](ctx context.Context, it *cslice.Chunks[T]) <-chan *cslice.Chunk[T] {
	out := make(chan *cslice.Chunk[T])
	go feed(ctx, it, out, nil)
	return out
}

// feed marks wg done, when given, after the iterator is released and out
// is closed.
func feed[T any](ctx context.Context, it *cslice.Chunks[T], out chan<- *cslice.Chunk[T], wg *sync.WaitGroup) {
	if wg != nil {
		defer wg.Done()
	}
	defer close(out)
	defer it.Release()

	logger := GetLogger(ctx)
	if ctx.Err() != nil {
		logger.Debug("chunk feed not started", "session", it.ID(), "error", ctx.Err())
		return
	}

	for chunk := range it.All() {
		select {
		case out <- chunk:
		case <-ctx.Done():
			chunk.Release()
			logger.Debug("chunk feed cancelled",
				"session", it.ID(),
				"region", chunk.Region().String(),
				"abandoned", it.Remaining())
			return
		}
	}
}

func FromChanMany[T any](ctx context.Context, out <-chan T) []T {
	res := make([]T, 0)
	wg := &sync.WaitGroup{}
	wg.Add(1)

	go func() {
		defer wg.Done()
		for {
			select {
			case v, ok := <-out:
				if !ok {
					return
				}
				res = append(res, v)
			case <-ctx.Done():
				return
			}
		}
	}()

	wg.Wait()
	return res
}
