package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracer is the mathconv tracer instance.
// Uses the global OTel tracer provider.
var tracer = otel.Tracer("mathconv")

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartConvertSpan starts a span covering one conversion.
	StartConvertSpan(ctx context.Context, formula, evalID string) (context.Context, trace.Span)

	// StartParseSpan starts a span for parsing a formula.
	// The parse span should be a child of the convert span.
	StartParseSpan(ctx context.Context, formula string) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)

	// AddSpanEvent adds an event to the current span in context.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)
}

// otelSpanManager implements SpanManager using OpenTelemetry.
type otelSpanManager struct{}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// The span manager uses the global OTel tracer provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

// StartConvertSpan starts a span covering one conversion.
func (m *otelSpanManager) StartConvertSpan(ctx context.Context, formula, evalID string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "mathconv.convert",
		trace.WithAttributes(
			attribute.String("formula", formula),
			attribute.String("eval.id", evalID),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartParseSpan starts a span for parsing a formula.
func (m *otelSpanManager) StartParseSpan(ctx context.Context, formula string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "mathconv.parse",
		trace.WithAttributes(
			attribute.String("formula", formula),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	EndSpanWithError(span, err)
}

// AddSpanEvent adds an event to the current span.
func (m *otelSpanManager) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	AddSpanEvent(ctx, name, attrs...)
}

// EndSpanWithError completes a span, optionally recording an error.
func EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// AddSpanEvent adds an event to the current span in context.
func AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
