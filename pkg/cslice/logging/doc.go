// Package logging provides types.Logger implementations: a no-op logger
// (the default for every session), adapters for log/slog and zerolog, and
// a logger that writes through testing.T.
package logging
