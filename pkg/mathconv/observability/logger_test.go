package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mcerrors "github.com/randalmurphal/mathconv/pkg/mathconv/errors"
)

// captureLogger returns a debug-level JSON logger and a function that
// decodes every record written so far.
func captureLogger(t *testing.T) (*slog.Logger, func() []map[string]any) {
	t.Helper()
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	records := func() []map[string]any {
		var out []map[string]any
		for _, line := range bytes.Split(buf.Bytes(), []byte("\n")) {
			if len(line) == 0 {
				continue
			}
			var m map[string]any
			require.NoError(t, json.Unmarshal(line, &m))
			out = append(out, m)
		}
		return out
	}
	return logger, records
}

func lastRecord(t *testing.T, records func() []map[string]any) map[string]any {
	t.Helper()
	all := records()
	require.NotEmpty(t, all)
	return all[len(all)-1]
}

func TestEnrichLogger(t *testing.T) {
	t.Run("adds eval_id and formula", func(t *testing.T) {
		logger, records := captureLogger(t)

		enriched := EnrichLogger(logger, "eval-1", "x + y")
		enriched.Info("test message")

		record := lastRecord(t, records)
		assert.Equal(t, "eval-1", record["eval_id"])
		assert.Equal(t, "x + y", record["formula"])
		assert.Equal(t, "test message", record["msg"])
	})

	t.Run("nil logger returns nil", func(t *testing.T) {
		assert.Nil(t, EnrichLogger(nil, "eval-1", "x"))
	})
}

func TestLogCompile(t *testing.T) {
	logger, records := captureLogger(t)

	LogCompile(logger, true, 0.25)

	record := lastRecord(t, records)
	assert.Equal(t, "DEBUG", record["level"])
	assert.Equal(t, "formula compiled", record["msg"])
	assert.Equal(t, true, record["cached"])
	assert.Equal(t, 0.25, record["duration_ms"])
}

func TestLogCompileError(t *testing.T) {
	logger, records := captureLogger(t)

	LogCompileError(logger, mcerrors.Syntaxf(3, "unexpected %q", ")"))

	record := lastRecord(t, records)
	assert.Equal(t, "WARN", record["level"])
	assert.Contains(t, record["error"], "position 3")
}

func TestLogEvaluate(t *testing.T) {
	logger, records := captureLogger(t)

	LogEvaluate(logger, "42", 1.5)

	record := lastRecord(t, records)
	assert.Equal(t, "DEBUG", record["level"])
	assert.Equal(t, "42", record["result"])
}

func TestLogEvaluateError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		level    string
		category string
	}{
		{
			name:     "function failure is a warning",
			err:      mcerrors.Thrown("Throw", []string{"a"}),
			level:    "WARN",
			category: "function",
		},
		{
			name:     "environment fault is an error",
			err:      &mcerrors.EnvironmentError{Op: "evaluate", Err: errors.New("panic: boom")},
			level:    "ERROR",
			category: "environment",
		},
		{
			name:     "cancellation is an error",
			err:      context.Canceled,
			level:    "ERROR",
			category: "environment",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, records := captureLogger(t)

			LogEvaluateError(logger, tt.err, 2)

			record := lastRecord(t, records)
			assert.Equal(t, tt.level, record["level"])
			assert.Equal(t, tt.category, record["category"])
			assert.Equal(t, tt.err.Error(), record["error"])
		})
	}
}

func TestLogStore(t *testing.T) {
	logger, records := captureLogger(t)

	LogStore(logger, "save", "tax", nil)
	LogStore(logger, "load", "missing", errors.New("not found"))

	all := records()
	require.Len(t, all, 2)
	assert.Equal(t, "DEBUG", all[0]["level"])
	assert.Equal(t, "save", all[0]["operation"])
	assert.Equal(t, "WARN", all[1]["level"])
	assert.Equal(t, "not found", all[1]["error"])
}

func TestNilLoggerHelpers(t *testing.T) {
	assert.NotPanics(t, func() {
		LogCompile(nil, false, 0)
		LogCompileError(nil, errors.New("x"))
		LogEvaluate(nil, "", 0)
		LogEvaluateError(nil, errors.New("x"), 0)
		LogStore(nil, "save", "n", nil)
	})
}

func TestTimedOperation(t *testing.T) {
	done := TimedOperation()
	time.Sleep(2 * time.Millisecond)
	assert.GreaterOrEqual(t, done(), 2.0)
}
