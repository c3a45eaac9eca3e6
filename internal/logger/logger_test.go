package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// TestParseLogLevel verifies mapping from strings to zapcore.Level and handling of unknown values.
func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		" WARN ":  zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"panic":   zapcore.PanicLevel,
		"fatal":   zapcore.FatalLevel,
	}
	for s, lvl := range cases {
		got, ok := ParseLogLevel(s)
		require.True(t, ok)
		require.Equal(t, lvl, got)
	}

	_, ok := ParseLogLevel("unknown")
	require.False(t, ok)
}

// TestContextLogger checks that loggers travel through contexts and fall back to the global one.
func TestContextLogger(t *testing.T) {
	t.Parallel()

	require.Same(t, Logger(), FromContext(context.Background()))

	core, logs := observer.New(zapcore.DebugLevel)
	ctx := ToContext(context.Background(), zap.New(core).Sugar())
	ctx = WithName(ctx, "alarm-clock")
	ctx = WithKV(ctx, "component", "engine")

	InfoKV(ctx, "Tick", "time", "07:30:00")
	WarnKV(ctx, "Tone failed", "error", "no player")

	entries := logs.All()
	require.Len(t, entries, 2)
	require.Equal(t, "alarm-clock", entries[0].LoggerName)
	require.Equal(t, "engine", entries[0].ContextMap()["component"])
	require.Equal(t, "07:30:00", entries[0].ContextMap()["time"])
	require.Equal(t, zapcore.WarnLevel, entries[1].Level)
}

// TestWithMinLevel verifies the per-context level filter.
func TestWithMinLevel(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	ctx := ToContext(context.Background(), zap.New(core).Sugar())

	quiet := WithMinLevel(ctx, "warn")
	Info(quiet, "dropped")
	Warn(quiet, "kept")

	require.Equal(t, 1, logs.Len())
	require.Equal(t, "kept", logs.All()[0].Message)

	// Unknown levels leave the context untouched.
	require.Equal(t, ctx, WithMinLevel(ctx, "loud"))
}
