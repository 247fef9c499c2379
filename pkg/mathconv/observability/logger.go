// Package observability provides structured logging, metrics and tracing
// for formula compilation and evaluation.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"context"
	"log/slog"
	"time"

	mcerrors "github.com/randalmurphal/mathconv/pkg/mathconv/errors"
)

// EnrichLogger adds evaluation context to a logger.
// Returns a new logger with eval_id and formula fields.
//
// Example:
//
//	enriched := EnrichLogger(logger, "3f2c...", "x + y")
//	enriched.Debug("evaluating") // includes eval_id, formula
func EnrichLogger(logger *slog.Logger, evalID, formula string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("eval_id", evalID),
		slog.String("formula", formula),
	)
}

// LogCompile logs a formula lookup, noting whether the cache served it.
func LogCompile(logger *slog.Logger, cached bool, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("formula compiled",
		slog.Bool("cached", cached),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogCompileError logs a formula that failed to parse.
func LogCompileError(logger *slog.Logger, err error) {
	if logger == nil {
		return
	}
	logger.Warn("formula rejected",
		slog.String("error", err.Error()),
	)
}

// LogEvaluate logs a successful evaluation.
func LogEvaluate(logger *slog.Logger, result string, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("formula evaluated",
		slog.String("result", result),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogEvaluateError logs a failed evaluation. Failures raised by the formula
// itself are warnings; environment faults are errors.
func LogEvaluateError(logger *slog.Logger, err error, durationMs float64) {
	if logger == nil {
		return
	}
	category := mcerrors.Categorize(err)
	level := slog.LevelWarn
	if category == mcerrors.CategoryEnvironment {
		level = slog.LevelError
	}
	logger.Log(context.Background(), level, "formula evaluation failed",
		slog.String("error", err.Error()),
		slog.String("category", category.String()),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogStore logs a library operation.
func LogStore(logger *slog.Logger, op, name string, err error) {
	if logger == nil {
		return
	}
	if err != nil {
		logger.Warn("formula library operation failed",
			slog.String("operation", op),
			slog.String("name", name),
			slog.String("error", err.Error()),
		)
		return
	}
	logger.Debug("formula library operation",
		slog.String("operation", op),
		slog.String("name", name),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	durationMs := done()
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Microseconds()) / 1000
	}
}
