package logger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observe(t *testing.T, detailed bool) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	prevLogger, prevDetailed := globalLogger, detailedLogging
	globalLogger = zap.New(core).Sugar()
	detailedLogging = detailed
	t.Cleanup(func() {
		globalLogger, detailedLogging = prevLogger, prevDetailed
	})
	return logs
}

func fields(e observer.LoggedEntry) map[string]any {
	return e.ContextMap()
}

func TestLevels(t *testing.T) {
	logs := observe(t, false)
	ctx := context.Background()

	Debug(ctx, "hidden")
	Info(ctx, "loaded", "ticker", "AAPL", "rows", 250)
	Warn(ctx, "zero volume")
	ErrorWithErr(ctx, "failed", errors.New("boom"), "ticker", "MSFT")

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "AAPL", fields(entries[0])["ticker"])
	assert.EqualValues(t, 250, fields(entries[0])["rows"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	assert.Equal(t, "boom", fields(entries[2])["error"])
}

func TestDebugWhenDetailed(t *testing.T) {
	logs := observe(t, true)
	Debug(context.Background(), "visible")
	DebugSkip(context.Background(), 1, "visible too")
	assert.Equal(t, 2, logs.FilterMessageSnippet("visible").Len())
}

func TestTickerFailed(t *testing.T) {
	logs := observe(t, false)
	TickerFailed(context.Background(), "TSLA", "render", errors.New("no figure"), "rows", 10)

	require.Equal(t, 1, logs.Len())
	e := logs.All()[0]
	assert.Equal(t, zapcore.ErrorLevel, e.Level)
	f := fields(e)
	assert.Equal(t, "TICKER_FAILURE", f["type"])
	assert.Equal(t, "TSLA", f["ticker"])
	assert.Equal(t, "render", f["stage"])
	assert.EqualValues(t, 10, f["rows"])
}

func TestOperationTimer(t *testing.T) {
	logs := observe(t, true)
	op := StartOperation(context.Background(), "indicators.All", "ticker", "AAPL")
	require.NotNil(t, op.GetContext())
	op.End("columns", 80)

	failed := StartOperation(context.Background(), "metrics.Risk")
	failed.EndWithError(errors.New("nil frame"))

	assert.Equal(t, 1, logs.FilterMessage("Operation completed").Len())
	assert.Equal(t, 1, logs.FilterMessage("Operation failed").Len())
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLogLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, parseLogLevel("WARN"))
	assert.Equal(t, zapcore.InfoLevel, parseLogLevel("verbose"))
}

func TestInitWithConfig(t *testing.T) {
	prev := globalLogger
	t.Cleanup(func() { globalLogger = prev; detailedLogging = false })
	require.NoError(t, InitWithConfig(LogConfig{Level: "ERROR", Format: "console"}))
	assert.False(t, globalLogger.Desugar().Core().Enabled(zapcore.WarnLevel))
	assert.True(t, globalLogger.Desugar().Core().Enabled(zapcore.ErrorLevel))
}
