package dispatch

import (
	"context"
	"errors"
	"sort"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ib-77/cslice/pkg/cslice"
	"github.com/ib-77/cslice/pkg/cslice/logging"
	"github.com/ib-77/cslice/pkg/cslice/metrics"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func sum(_ context.Context, chunk *cslice.Chunk[int]) (int, error) {
	total := 0
	for v := range chunk.Values() {
		total += v
	}
	return total, nil
}

func TestFromChunks(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	it, err := cslice.IntoChunks(seq(10), 3)
	require.NoError(t, err)
	guard, err := it.Guard()
	require.NoError(t, err)

	chunks := FromChanMany(ctx, FromChunks(ctx, it))
	require.Len(t, chunks, 4)
	assert.True(t, it.Released())
	for i, c := range chunks {
		assert.Equal(t, i*3, c.Region().Start)
		c.Release()
	}

	out, err := guard.Recover()
	require.NoError(t, err)
	assert.Equal(t, seq(10), out)
}

func TestFromChunks_CancelledBeforeStart(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	it, err := cslice.IntoChunks(seq(10), 3)
	require.NoError(t, err)
	guard, err := it.Guard()
	require.NoError(t, err)

	ch := FromChunks(ctx, it)
	for range ch {
		t.Fatal("cancelled feed delivered a chunk")
	}
	assert.True(t, it.Released())

	out, err := guard.Recover()
	require.NoError(t, err)
	assert.Equal(t, seq(10), out)
}

func TestRun(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	it, err := cslice.IntoChunks(seq(100), 10)
	require.NoError(t, err)
	guard, err := it.Guard()
	require.NoError(t, err)

	results := FromChanMany(ctx, Run(ctx, FromChunks(ctx, it), sum, 3))
	require.Len(t, results, 10)

	total := 0
	starts := make([]int, 0, len(results))
	for _, r := range results {
		require.True(t, r.IsSuccess(), "region %s: %v", r.Region(), r.Err())
		assert.Equal(t, 10, r.Region().Len())
		total += r.Result()
		starts = append(starts, r.Region().Start)
	}
	assert.Equal(t, 4950, total)
	sort.Ints(starts)
	assert.Equal(t, []int{0, 10, 20, 30, 40, 50, 60, 70, 80, 90}, starts)

	out, err := guard.Recover()
	require.NoError(t, err)
	assert.Equal(t, seq(100), out)
}

func TestRunWithHandlers_OnSuccess(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	it, err := cslice.IntoChunks(seq(20), 4)
	require.NoError(t, err)

	var delivered atomic.Int64
	results := FromChanMany(ctx, RunWithHandlers(ctx, FromChunks(ctx, it), sum,
		CancellationHandlers[int, int]{},
		func(_ context.Context, _ cslice.Result[int]) {
			delivered.Add(1)
		}, 2))

	assert.Len(t, results, 5)
	assert.Equal(t, int64(5), delivered.Load())
}

func TestDispatch_FailuresAndCancellations(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	engine := func(ctx context.Context, chunk *cslice.Chunk[int]) (int, error) {
		switch chunk.Region().Start {
		case 0:
			return 0, boom
		case 5:
			return 0, context.DeadlineExceeded
		}
		return sum(ctx, chunk)
	}

	ctx := context.Background()
	it, err := cslice.IntoChunks(seq(20), 5)
	require.NoError(t, err)
	guard, err := it.Guard()
	require.NoError(t, err)

	var failed, cancelled, succeeded int
	for r := range Dispatch(ctx, it, engine, CancellationHandlers[int, int]{}, 2) {
		switch {
		case r.IsSuccess():
			succeeded++
		case r.IsCancel():
			cancelled++
			assert.Equal(t, 5, r.Region().Start)
		default:
			failed++
			assert.ErrorIs(t, r.Err(), boom)
			assert.Equal(t, cslice.Region{Start: 0, End: 5}, r.Region())
		}
	}
	assert.Equal(t, 1, failed)
	assert.Equal(t, 1, cancelled)
	assert.Equal(t, 2, succeeded)

	out, err := guard.Recover()
	require.NoError(t, err)
	assert.Equal(t, seq(20), out)
}

func TestDispatch_CancelReleasesEverything(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	counters := metrics.NewCounters()
	ctx = WithObserver(ctx, logging.NewTest(t), counters)

	engine := func(ctx context.Context, chunk *cslice.Chunk[int]) (int, error) {
		if chunk.Region().Start == 40 {
			cancel()
			return 0, ctx.Err()
		}
		return sum(ctx, chunk)
	}

	it, err := cslice.IntoChunks(seq(1000), 10, cslice.WithMetrics(counters))
	require.NoError(t, err)
	guard, err := it.Guard()
	require.NoError(t, err)

	seen := map[int]bool{}
	for r := range Dispatch(ctx, it, engine, CancellingHandlers[int, int](), 4) {
		assert.False(t, seen[r.Region().Start], "region %s reported twice", r.Region())
		seen[r.Region().Start] = true
	}
	assert.True(t, seen[40])

	out, err := guard.Recover()
	require.NoError(t, err)
	assert.Equal(t, seq(1000), out)

	snap := counters.Snapshot()
	assert.Equal(t, int64(0), snap.Outstanding)
	assert.Positive(t, snap.WorkerRuns)
}

func TestCancelRemaining(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name    string
		enabled bool
		want    int
	}{
		{name: "reported", enabled: true, want: 3},
		{name: "dropped", enabled: false, want: 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctx := WithProcessOptions(context.Background(), tc.enabled)
			it, err := cslice.IntoChunks(seq(9), 3)
			require.NoError(t, err)

			in := make(chan *cslice.Chunk[int], 3)
			for c := range it.All() {
				in <- c
			}
			close(in)

			out := make(chan cslice.Result[int], 3)
			CancelRemaining(ctx, in, out)
			close(out)

			var got []cslice.Result[int]
			for r := range out {
				assert.True(t, r.IsCancel())
				assert.ErrorIs(t, r.Err(), ErrCancelled)
				got = append(got, r)
			}
			assert.Len(t, got, tc.want)

			recovered, err := it.Recover()
			require.NoError(t, err)
			assert.Equal(t, seq(9), recovered)
		})
	}
}

func TestCancelUnprocessedAndResult(t *testing.T) {
	t.Parallel()

	region := cslice.Region{Start: 3, End: 6}
	out := make(chan cslice.Result[int], 2)

	CancelUnprocessed(context.Background(), region, out)
	CancelResult(context.Background(), cslice.Success(region, 7), out)
	CancelUnprocessed(WithProcessOptions(context.Background(), false), region, out)
	close(out)

	var got []cslice.Result[int]
	for r := range out {
		got = append(got, r)
	}
	require.Len(t, got, 2)
	assert.True(t, got[0].IsCancel())
	assert.Equal(t, region, got[0].Region())
	assert.Equal(t, 7, got[1].Result())
}

func TestForEach(t *testing.T) {
	t.Parallel()

	ctx := WithWorkerOptions(context.Background(), 3)
	it, err := cslice.IntoChunks(make([]int, 1000), 64)
	require.NoError(t, err)
	guard, err := it.Guard()
	require.NoError(t, err)

	var running, peak atomic.Int64
	err = ForEach(ctx, it, func(_ context.Context, chunk *cslice.Chunk[int]) error {
		n := running.Add(1)
		defer running.Add(-1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		for i, v := range chunk.All() {
			*v = chunk.Region().Start + i
		}
		return nil
	})
	require.NoError(t, err)
	assert.True(t, it.Released())
	assert.LessOrEqual(t, peak.Load(), int64(3))

	out, err := guard.Recover()
	require.NoError(t, err)
	assert.Equal(t, seq(1000), out)
}

func TestForEach_FailFast(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	it, err := cslice.IntoChunks(seq(100), 10)
	require.NoError(t, err)
	guard, err := it.Guard()
	require.NoError(t, err)

	err = ForEach(WithWorkerOptions(context.Background(), 1), it,
		func(ctx context.Context, chunk *cslice.Chunk[int]) error {
			if chunk.Region().Start == 20 {
				return boom
			}
			return ctx.Err()
		})
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "[20, 30)")

	out, err := guard.Recover()
	require.NoError(t, err)
	assert.Equal(t, seq(100), out)
}

func TestForEach_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	it, err := cslice.IntoChunks(seq(10), 2)
	require.NoError(t, err)

	var calls atomic.Int64
	err = ForEach(ctx, it, func(context.Context, *cslice.Chunk[int]) error {
		calls.Add(1)
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int64(0), calls.Load())
	assert.True(t, it.Released())
}

func TestForEach_CancelledAfterLastChunk(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	it, err := cslice.IntoChunks(seq(4), 4)
	require.NoError(t, err)
	guard, err := it.Guard()
	require.NoError(t, err)

	err = ForEach(ctx, it, func(_ context.Context, chunk *cslice.Chunk[int]) error {
		for _, v := range chunk.All() {
			*v *= 2
		}
		cancel()
		return nil
	})
	require.NoError(t, err)
	assert.ErrorIs(t, ctx.Err(), context.Canceled)

	out, err := guard.Recover()
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 4, 6}, out)
}

func TestProcess(t *testing.T) {
	t.Parallel()

	counters := metrics.NewCounters()
	ctx := WithObserver(context.Background(), nil, counters)

	out, err := Process(ctx, make([]int, 12), 4, func(_ context.Context, chunk *cslice.Chunk[int]) error {
		marker := chunk.Region().Start/4 + 1
		for _, v := range chunk.All() {
			*v = marker
		}
		return nil
	}, cslice.WithMetrics(counters))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1, 1, 1, 2, 2, 2, 2, 3, 3, 3, 3}, out)

	snap := counters.Snapshot()
	assert.Equal(t, int64(3), snap.ChunksIssued)
	assert.Equal(t, int64(0), snap.Outstanding)
	assert.Equal(t, int64(3), snap.WorkerRuns)
	assert.Equal(t, int64(1), snap.Recovered)
}

func TestProcess_ReturnsSliceWithError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	out, err := Process(context.Background(), seq(8), 2, func(context.Context, *cslice.Chunk[int]) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, seq(8), out)

	out, err = Process(context.Background(), seq(8), 0, func(context.Context, *cslice.Chunk[int]) error {
		return nil
	})
	assert.ErrorIs(t, err, cslice.ErrInvalidPartition)
	assert.Nil(t, out)
}
