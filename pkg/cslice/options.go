package cslice

import (
	"github.com/ib-77/cslice/pkg/cslice/logging"
	"github.com/ib-77/cslice/pkg/cslice/metrics"
	"github.com/ib-77/cslice/pkg/cslice/plan"
	"github.com/ib-77/cslice/pkg/cslice/types"
)

type (
	// Logger is the structured logger used by a session.
	Logger = types.Logger
	// MetricsCollector receives partitioning metrics.
	MetricsCollector = types.MetricsCollector
	// Region is a half-open index range of the partitioned slice.
	Region = plan.Region
)

// Option configures a partitioning session.
type Option func(*sessionOptions)

type sessionOptions struct {
	logger  Logger
	metrics MetricsCollector
}

func defaultOptions() sessionOptions {
	return sessionOptions{
		logger:  logging.NewNop(),
		metrics: metrics.NewNop(),
	}
}

// WithLogger sets the session logger. Sessions log at debug level only,
// except for misuse of a consumed guard, which is a warning.
//
// Example:
//
//	it, err := cslice.IntoChunks(data, 64, cslice.WithLogger(logging.NewSlog(slog.Default())))
func WithLogger(logger Logger) Option {
	return func(o *sessionOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics sets the session metrics collector.
//
// Example:
//
//	counters := metrics.NewCounters()
//	it, err := cslice.IntoChunks(data, 64, cslice.WithMetrics(counters))
func WithMetrics(collector MetricsCollector) Option {
	return func(o *sessionOptions) {
		if collector != nil {
			o.metrics = collector
		}
	}
}
