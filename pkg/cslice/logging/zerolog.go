package logging

import (
	"github.com/rs/zerolog"

	"github.com/ib-77/cslice/pkg/cslice/types"
)

// ZerologLogger implements types.Logger on top of zerolog.
type ZerologLogger struct {
	logger zerolog.Logger
}

// Compile-time assertion that ZerologLogger implements Logger.
var _ types.Logger = (*ZerologLogger)(nil)

// NewZerolog wraps logger.
//
// Example:
//
//	zl := zerolog.New(os.Stderr).With().Timestamp().Logger()
//	it, err := cslice.IntoChunks(data, 1024, cslice.WithLogger(logging.NewZerolog(zl)))
func NewZerolog(logger zerolog.Logger) *ZerologLogger {
	return &ZerologLogger{logger: logger}
}

// Debug logs a debug-level message with optional key-value pairs.
func (l *ZerologLogger) Debug(msg string, keysAndValues ...any) {
	l.logger.Debug().Fields(keysAndValues).Msg(msg)
}

// Info logs an info-level message with optional key-value pairs.
func (l *ZerologLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Info().Fields(keysAndValues).Msg(msg)
}

// Warn logs a warning-level message with optional key-value pairs.
func (l *ZerologLogger) Warn(msg string, keysAndValues ...any) {
	l.logger.Warn().Fields(keysAndValues).Msg(msg)
}

// Error logs an error-level message with optional key-value pairs.
func (l *ZerologLogger) Error(msg string, keysAndValues ...any) {
	l.logger.Error().Fields(keysAndValues).Msg(msg)
}

// Fatal logs a fatal-level message; zerolog exits the process afterwards.
func (l *ZerologLogger) Fatal(msg string, keysAndValues ...any) {
	l.logger.Fatal().Fields(keysAndValues).Msg(msg)
}
