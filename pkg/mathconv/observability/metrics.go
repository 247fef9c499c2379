package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	mcerrors "github.com/randalmurphal/mathconv/pkg/mathconv/errors"
)

// MetricsRecorder records mathconv metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordParse records a formula parse with its duration and error status.
	RecordParse(ctx context.Context, duration time.Duration, err error)

	// RecordEvaluation records a formula evaluation.
	RecordEvaluation(ctx context.Context, duration time.Duration, err error)

	// RecordCacheLookup records an expression cache lookup.
	RecordCacheLookup(ctx context.Context, hit bool)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	parses       metric.Int64Counter
	parseErrors  metric.Int64Counter
	parseLatency metric.Float64Histogram
	evals        metric.Int64Counter
	evalErrors   metric.Int64Counter
	evalLatency  metric.Float64Histogram
	cacheLookups metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("mathconv")

	parses, err := meter.Int64Counter("mathconv.parse.count",
		metric.WithDescription("Number of formula parses"),
	)
	if err != nil {
		return nil, err
	}

	parseErrors, err := meter.Int64Counter("mathconv.parse.errors",
		metric.WithDescription("Number of formulas rejected by the parser"),
	)
	if err != nil {
		return nil, err
	}

	parseLatency, err := meter.Float64Histogram("mathconv.parse.latency_ms",
		metric.WithDescription("Formula parse latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	evals, err := meter.Int64Counter("mathconv.eval.count",
		metric.WithDescription("Number of formula evaluations"),
	)
	if err != nil {
		return nil, err
	}

	evalErrors, err := meter.Int64Counter("mathconv.eval.errors",
		metric.WithDescription("Number of formula evaluations ending in a hard failure"),
	)
	if err != nil {
		return nil, err
	}

	evalLatency, err := meter.Float64Histogram("mathconv.eval.latency_ms",
		metric.WithDescription("Formula evaluation latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	cacheLookups, err := meter.Int64Counter("mathconv.cache.lookups",
		metric.WithDescription("Number of expression cache lookups"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		parses:       parses,
		parseErrors:  parseErrors,
		parseLatency: parseLatency,
		evals:        evals,
		evalErrors:   evalErrors,
		evalLatency:  evalLatency,
		cacheLookups: cacheLookups,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordParse records a formula parse.
func (m *otelMetrics) RecordParse(ctx context.Context, duration time.Duration, err error) {
	m.parses.Add(ctx, 1)
	m.parseLatency.Record(ctx, milliseconds(duration))
	if err != nil {
		m.parseErrors.Add(ctx, 1)
	}
}

// RecordEvaluation records a formula evaluation. Failures are counted with
// their error category.
func (m *otelMetrics) RecordEvaluation(ctx context.Context, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.Bool("success", err == nil),
	}
	m.evals.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.evalLatency.Record(ctx, milliseconds(duration), metric.WithAttributes(attrs...))

	if err != nil {
		m.evalErrors.Add(ctx, 1, metric.WithAttributes(
			attribute.String("category", mcerrors.Categorize(err).String()),
		))
	}
}

// RecordCacheLookup records a cache lookup.
func (m *otelMetrics) RecordCacheLookup(ctx context.Context, hit bool) {
	m.cacheLookups.Add(ctx, 1, metric.WithAttributes(attribute.Bool("hit", hit)))
}

func milliseconds(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000
}
