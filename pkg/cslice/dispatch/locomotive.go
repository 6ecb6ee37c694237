package dispatch

import (
	"context"
	"sync"
	"time"

	"github.com/ib-77/cslice/pkg/cslice"
)

// Engine does the work for one chunk. The chunk is released by the caller
// once Engine returns; it must not be retained.
type Engine[T, R any] func(ctx context.Context, chunk *cslice.Chunk[T]) (R, error)

// CancellationHandlers route what is left when the context is cancelled.
// Chunks are released before any handler sees them, so handlers get the
// region only.
type CancellationHandlers[T, R any] struct {
	OnCancel            func(ctx context.Context, inputCh <-chan *cslice.Chunk[T], outCh chan<- cslice.Result[R])
	OnCancelUnprocessed func(ctx context.Context, unprocessed cslice.Region, outCh chan<- cslice.Result[R])
	OnCancelProcessed   func(ctx context.Context, processed cslice.Result[R], outCh chan<- cslice.Result[R])
}

func Locomotive[T, R any](ctx context.Context, inputCh <-chan *cslice.Chunk[T], outCh chan<- cslice.Result[R],
	engine Engine[T, R],
	handlers CancellationHandlers[T, R],
	onSuccess func(ctx context.Context, out cslice.Result[R]), wg *sync.WaitGroup) {
	defer wg.Done()

	for {
		select {
		case <-ctx.Done():
			if handlers.OnCancel != nil {
				handlers.OnCancel(ctx, inputCh, outCh)
			}
			return
		case in, ok := <-inputCh:
			if !ok {
				return
			}

			if ctx.Err() != nil {
				region := in.Region()
				in.Release()
				if handlers.OnCancelUnprocessed != nil {
					handlers.OnCancelUnprocessed(ctx, region, outCh)
				}
				if handlers.OnCancel != nil {
					handlers.OnCancel(ctx, inputCh, outCh)
				}
				return
			}

			pr := work(ctx, in, engine)

			select {
			case <-ctx.Done():
				if handlers.OnCancelProcessed != nil {
					handlers.OnCancelProcessed(ctx, pr, outCh)
				}
				if handlers.OnCancel != nil {
					handlers.OnCancel(ctx, inputCh, outCh)
				}
				return
			case outCh <- pr:
				if onSuccess != nil {
					onSuccess(ctx, pr)
				}
			}
		}
	}
}

// work runs engine over chunk and releases it.
func work[T, R any](ctx context.Context, chunk *cslice.Chunk[T], engine Engine[T, R]) cslice.Result[R] {
	region := chunk.Region()
	defer chunk.Release()

	start := time.Now()
	r, err := engine(ctx, chunk)
	GetMetricsCollector(ctx).RecordWorkerDuration(time.Since(start).Seconds())

	switch {
	case err == nil:
		return cslice.Success(region, r)
	case cslice.IsCancellationError(err):
		return cslice.Cancel[R](region, err)
	default:
		GetLogger(ctx).Debug("chunk failed", "region", region.String(), "error", err)
		return cslice.Fail[R](region, err)
	}
}
