package dispatch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ib-77/cslice/pkg/cslice"
)

func Run[T, R any](ctx context.Context, inputCh <-chan *cslice.Chunk[T],
	engine Engine[T, R], lines int) <-chan cslice.Result[R] {
	return RunWithHandlers(ctx, inputCh, engine, CancellationHandlers[T, R]{}, nil, lines)
}

func RunWithHandlers[T, R any](ctx context.Context, inputCh <-chan *cslice.Chunk[T],
	engine Engine[T, R],
	handlers CancellationHandlers[T, R],
	onSuccess func(ctx context.Context, out cslice.Result[R]), lines int) <-chan cslice.Result[R] {

	out := make(chan cslice.Result[R])
	wg := &sync.WaitGroup{}

	for range workerLimit(ctx, lines) {
		wg.Add(1)
		go Locomotive(ctx, inputCh, out, engine, handlers, onSuccess, wg)
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	return out
}

// Dispatch feeds it to lines workers and emits one result per processed
// chunk. The output is closed only after the iterator and every chunk are
// released, so a guard on the session recovers the slice as soon as the
// output is drained. lines below 1 takes the worker count from the context.
//
// The output must be drained to the end. Cancellation handlers keep sending
// after ctx is done, so collect with a context that outlives ctx, e.g.
// FromChanMany(context.Background(), out).
func Dispatch[T, R any](ctx context.Context, it *cslice.Chunks[T],
	engine Engine[T, R],
	handlers CancellationHandlers[T, R], lines int) <-chan cslice.Result[R] {

	in := make(chan *cslice.Chunk[T])
	out := make(chan cslice.Result[R])
	wg := &sync.WaitGroup{}

	wg.Add(1)
	go feed(ctx, it, in, wg)

	for range workerLimit(ctx, lines) {
		wg.Add(1)
		go Locomotive(ctx, in, out, engine, handlers, nil, wg)
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	return out
}

// ForEach calls fn for every chunk of it, at most GetWorkerMaxCount at a
// time. The first error cancels the context given to the other calls and
// is returned once they finish. A cancelled ctx is reported only when it
// stopped chunks from being handed out. Every chunk and the iterator are
// released on return.
func ForEach[T any](ctx context.Context, it *cslice.Chunks[T],
	fn func(ctx context.Context, chunk *cslice.Chunk[T]) error) error {
	defer it.Release()

	logger := GetLogger(ctx)
	collector := GetMetricsCollector(ctx)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerLimit(ctx, 0))

	stopped := false
	for chunk := range it.All() {
		if gctx.Err() != nil {
			chunk.Release()
			stopped = true
			logger.Debug("for each stopped", "session", it.ID(), "abandoned", it.Remaining())
			break
		}

		g.Go(func() error {
			region := chunk.Region()
			defer chunk.Release()

			if err := gctx.Err(); err != nil {
				return err
			}

			start := time.Now()
			err := fn(gctx, chunk)
			collector.RecordWorkerDuration(time.Since(start).Seconds())
			if err != nil {
				return fmt.Errorf("chunk %s: %w", region, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	if stopped {
		return ctx.Err()
	}
	return nil
}

// Process partitions s into chunks of size elements, runs fn over them with
// ForEach and hands the slice back. The slice is returned even when fn
// fails, together with the error; only an invalid size returns nil.
func Process[T any](ctx context.Context, s []T, size int,
	fn func(ctx context.Context, chunk *cslice.Chunk[T]) error, opts ...cslice.Option) ([]T, error) {

	it, err := cslice.IntoChunks(s, size, opts...)
	if err != nil {
		return nil, err
	}
	guard, err := it.Guard()
	if err != nil {
		it.Release()
		return nil, err
	}

	runErr := ForEach(ctx, it, fn)

	out, err := guard.Recover()
	if err != nil {
		return nil, fmt.Errorf("recover after processing: %w", err)
	}
	return out, runErr
}
