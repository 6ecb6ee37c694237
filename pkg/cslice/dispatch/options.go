package dispatch

import (
	"context"
	"runtime"

	"github.com/ib-77/cslice/pkg/cslice"
	"github.com/ib-77/cslice/pkg/cslice/logging"
	"github.com/ib-77/cslice/pkg/cslice/metrics"
)

type OptionKey string

const (
	ProcessOptionKey  OptionKey = "process_options"
	WorkerOptionKey   OptionKey = "worker_options"
	ObserverOptionKey OptionKey = "observer_options"
)

type MaxLimitOption struct {
	Value int
}

type WorkerOptions struct {
	MaxCount MaxLimitOption
}

type ProcessOptions struct {
	ProcessRemaining bool
}

// ObserverOptions carries the logger and metrics collector of the workers.
type ObserverOptions struct {
	Logger  cslice.Logger
	Metrics cslice.MetricsCollector
}

func WithProcessOptions(ctx context.Context, processRemaining bool) context.Context {
	return context.WithValue(ctx, ProcessOptionKey, ProcessOptions{ProcessRemaining: processRemaining})
}

func WithWorkerOptions(ctx context.Context, maxWorkers int) context.Context {
	return context.WithValue(ctx, WorkerOptionKey, WorkerOptions{MaxLimitOption{Value: maxWorkers}})
}

// WithObserver attaches a logger and a metrics collector. nil values fall
// back to the no-op implementations.
func WithObserver(ctx context.Context, logger cslice.Logger, collector cslice.MetricsCollector) context.Context {
	return context.WithValue(ctx, ObserverOptionKey, ObserverOptions{Logger: logger, Metrics: collector})
}

func GetWorkerMaxCount(ctx context.Context, defaultMaxWorkers int) int {
	options, ok := ctx.Value(WorkerOptionKey).(WorkerOptions)
	if ok {
		return options.MaxCount.Value
	}
	return defaultMaxWorkers
}

func IsProcessRemainingEnabled(ctx context.Context, defaultProcessRemaining bool) bool {
	options, ok := ctx.Value(ProcessOptionKey).(ProcessOptions)
	if ok {
		return options.ProcessRemaining
	}
	return defaultProcessRemaining
}

func GetLogger(ctx context.Context) cslice.Logger {
	options, ok := ctx.Value(ObserverOptionKey).(ObserverOptions)
	if ok && options.Logger != nil {
		return options.Logger
	}
	return logging.NewNop()
}

func GetMetricsCollector(ctx context.Context) cslice.MetricsCollector {
	options, ok := ctx.Value(ObserverOptionKey).(ObserverOptions)
	if ok && options.Metrics != nil {
		return options.Metrics
	}
	return metrics.NewNop()
}

// DefaultWorkers is the number of processors usable by this process.
func DefaultWorkers() int {
	return runtime.GOMAXPROCS(0)
}

// workerLimit resolves the worker count, ignoring non-positive settings.
func workerLimit(ctx context.Context, lines int) int {
	if lines > 0 {
		return lines
	}
	if n := GetWorkerMaxCount(ctx, DefaultWorkers()); n > 0 {
		return n
	}
	return DefaultWorkers()
}
