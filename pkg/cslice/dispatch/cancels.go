package dispatch

import (
	"context"
	"errors"

	"github.com/ib-77/cslice/pkg/cslice"
)

var ErrCancelled = errors.New("operation cancelled")

// CancellingHandlers report every chunk left on cancellation as a cancelled
// result, unless process-remaining is disabled in the context.
func CancellingHandlers[T, R any]() CancellationHandlers[T, R] {
	return CancellationHandlers[T, R]{
		OnCancel:            CancelRemaining[T, R],
		OnCancelUnprocessed: CancelUnprocessed[R],
		OnCancelProcessed:   CancelResult[R],
	}
}

// CancelRemaining releases the chunks still in inputCh and reports each as
// cancelled.
func CancelRemaining[T, R any](ctx context.Context,
	inputCh <-chan *cslice.Chunk[T], outCh chan<- cslice.Result[R]) {

	required := IsProcessRemainingEnabled(ctx, true)

	for in := range inputCh {
		region := in.Region()
		in.Release()
		if required {
			outCh <- cslice.Cancel[R](region, ErrCancelled)
		}
	}
}

func CancelUnprocessed[R any](ctx context.Context, region cslice.Region, outCh chan<- cslice.Result[R]) {
	required := IsProcessRemainingEnabled(ctx, true)

	if required {
		outCh <- cslice.Cancel[R](region, ErrCancelled)
	}
}

// CancelResult delivers a result that was computed before cancellation.
func CancelResult[R any](ctx context.Context, out cslice.Result[R], outCh chan<- cslice.Result[R]) {
	required := IsProcessRemainingEnabled(ctx, true)

	if required {
		outCh <- out
	}
}
