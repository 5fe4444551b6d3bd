package telemetry

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPrettyHandler(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, slog.LevelInfo)
	t.Cleanup(func() { Init(slog.LevelInfo) })

	Debugf("hidden %d", 1)
	Warnf("retrying attempt=%d", 2)
	L().With("submission", "abc").Info("placed")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARN: retrying attempt=2\n")
	assert.Contains(t, out, "placed submission=abc\n")
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLogLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLogLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLogLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLogLevel("bogus"))
}

func TestLatencyTracker(t *testing.T) {
	lt := NewLatencyTracker(3)
	assert.Equal(t, time.Duration(0), lt.P50())

	for _, ms := range []int{40, 10, 30, 20} {
		lt.Record(time.Duration(ms) * time.Millisecond)
	}

	// 40ms was evicted.
	assert.Equal(t, 3, lt.Count())
	assert.Equal(t, 20*time.Millisecond, lt.P50())
	assert.Equal(t, 20*time.Millisecond, lt.P99())
}
