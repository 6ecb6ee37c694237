package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ib-77/cslice/pkg/cslice/types"
)

func TestImplementsInterface(t *testing.T) {
	t.Parallel()

	var _ types.Logger = NewNop()
	var _ types.Logger = NewSlog(nil)
	var _ types.Logger = NewZerolog(zerolog.Nop())
	var _ types.Logger = NewTest(t)
}

func TestNopLogger(t *testing.T) {
	t.Parallel()

	l := NewNop()
	assert.NotPanics(t, func() {
		l.Debug("debug", "k", 1)
		l.Info("info")
		l.Warn("warn", "k")
		l.Error("error", "k", "v")
		l.Fatal("fatal")
	})
}

func TestSlogLogger(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	handler := slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	l := NewSlog(slog.New(handler))

	l.Debug("partition started", "chunks", 3)
	l.Warn("guard consumed", "session", "abc")

	out := buf.String()
	assert.Contains(t, out, "level=DEBUG")
	assert.Contains(t, out, `msg="partition started"`)
	assert.Contains(t, out, "chunks=3")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "session=abc")
}

func TestSlogLogger_RespectsLevel(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	l := NewSlog(slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo})))

	l.Debug("hidden")
	assert.Empty(t, buf.String())

	l.Error("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestZerologLogger(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	l := NewZerolog(zerolog.New(buf).Level(zerolog.DebugLevel))

	l.Info("recovered", "len", 12, "session", "abc")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "recovered", line["message"])
	assert.Equal(t, float64(12), line["len"])
	assert.Equal(t, "abc", line["session"])
}

func TestZerologLogger_RespectsLevel(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	l := NewZerolog(zerolog.New(buf).Level(zerolog.WarnLevel))

	l.Debug("hidden")
	l.Info("hidden")
	assert.Empty(t, buf.String())

	l.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestFormatKeyValues(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", formatKeyValues(nil))
	assert.Equal(t, "a=1 b=two", formatKeyValues([]any{"a", 1, "b", "two"}))
	assert.Equal(t, "a=1 b=<missing>", formatKeyValues([]any{"a", 1, "b"}))
}
