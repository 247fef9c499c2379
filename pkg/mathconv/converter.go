package mathconv

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/randalmurphal/mathconv/pkg/mathconv/culture"
	mcerrors "github.com/randalmurphal/mathconv/pkg/mathconv/errors"
	"github.com/randalmurphal/mathconv/pkg/mathconv/expr"
	"github.com/randalmurphal/mathconv/pkg/mathconv/function"
	"github.com/randalmurphal/mathconv/pkg/mathconv/library"
	"github.com/randalmurphal/mathconv/pkg/mathconv/observability"
	"github.com/randalmurphal/mathconv/pkg/mathconv/value"
)

// Converter evaluates formulas against positional inputs. It is safe for
// concurrent use; compiled formulas are shared through its cache.
type Converter struct {
	engine  *expr.Engine
	culture *culture.Culture
	library library.Store

	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
}

// New creates a Converter.
//
// Example:
//
//	conv := mathconv.New(
//	    mathconv.WithCulture(culture.MustParse("de-DE")),
//	    mathconv.WithCacheSize(256),
//	)
func New(opts ...Option) *Converter {
	cfg := defaultConverterConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	var cache *expr.Cache
	if !cfg.noCache {
		cache = expr.NewCache(cfg.cacheSize)
	}

	c := &Converter{
		engine:  expr.NewEngine(cfg.catalogue, cache),
		culture: cfg.culture,
		library: cfg.library,
		logger:  cfg.logger,
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}
	if cfg.metricsEnabled {
		c.metrics = observability.NewMetricsRecorder()
	}
	if cfg.tracingEnabled {
		c.spans = observability.NewSpanManager()
	}
	return c
}

// Culture returns the converter's culture.
func (c *Converter) Culture() *culture.Culture {
	return c.culture
}

// Catalogue returns the functions available to formulas.
func (c *Converter) Catalogue() *function.Catalogue {
	return c.engine.Catalogue()
}

// Library returns the formula library, or nil when none is configured.
func (c *Converter) Library() library.Store {
	return c.library
}

// CacheStats returns a snapshot of the expression cache counters. The
// snapshot is zero when caching is disabled.
func (c *Converter) CacheStats() expr.CacheStats {
	if cache := c.engine.Cache(); cache != nil {
		return cache.Stats()
	}
	return expr.CacheStats{}
}

// Compile parses formula, or returns the cached program for it.
func (c *Converter) Compile(formula string) (*expr.Program, error) {
	if strings.TrimSpace(formula) == "" {
		return nil, emptyFormula()
	}
	p, _, err := c.engine.Compile(formula)
	return p, err
}

// Convert evaluates formula with inputs bound to x, y, z, Var3 ... Var9 in
// order. Inputs are Go values converted with value.FromAny; missing inputs
// are null.
//
// Example:
//
//	v, err := conv.Convert(ctx, "x + y", 2, 3) // 5
func (c *Converter) Convert(ctx context.Context, formula string, inputs ...any) (value.Value, error) {
	return c.ConvertIn(ctx, c.culture, formula, inputs...)
}

// ConvertIn is like Convert but evaluates under culture cult instead of
// the converter's culture.
func (c *Converter) ConvertIn(ctx context.Context, cult *culture.Culture, formula string, inputs ...any) (value.Value, error) {
	if len(inputs) > expr.Slots {
		return value.Null(), fmt.Errorf("%w: got %d", ErrTooManyInputs, len(inputs))
	}
	vals := make([]value.Value, len(inputs))
	for i, in := range inputs {
		vals[i] = value.FromAny(in)
	}
	return c.evaluate(ctx, cult, formula, vals)
}

// ConvertValues evaluates formula with already converted inputs.
func (c *Converter) ConvertValues(ctx context.Context, formula string, inputs []value.Value) (value.Value, error) {
	return c.evaluate(ctx, c.culture, formula, inputs)
}

// ConvertNamed evaluates the library formula stored under name.
// Returns ErrNoLibrary without a library and library.ErrNotFound for an
// unknown name.
func (c *Converter) ConvertNamed(ctx context.Context, name string, inputs ...any) (value.Value, error) {
	if c.library == nil {
		return value.Null(), ErrNoLibrary
	}
	formula, err := c.library.Load(name)
	observability.LogStore(c.logger, "load", name, err)
	if err != nil {
		return value.Null(), fmt.Errorf("load formula %q: %w", name, err)
	}
	return c.Convert(ctx, formula, inputs...)
}

// Close releases the formula library, if any.
func (c *Converter) Close() error {
	if c.library == nil {
		return nil
	}
	return c.library.Close()
}

// evaluate runs one conversion with logging, metrics and tracing.
func (c *Converter) evaluate(ctx context.Context, cult *culture.Culture, formula string, inputs []value.Value) (result value.Value, err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if cult == nil {
		cult = c.culture
	}

	evalID := uuid.NewString()
	logger := observability.EnrichLogger(c.logger, evalID, formula)

	var span trace.Span
	ctx, span = c.spans.StartConvertSpan(ctx, formula, evalID)
	defer func() {
		c.spans.EndSpanWithError(span, err)
	}()

	env, err := expr.NewEnv(ctx, cult, inputs...)
	if err != nil {
		return value.Null(), err
	}

	prog, err := c.compile(ctx, logger, formula)
	if err != nil {
		return value.Null(), err
	}

	done := observability.TimedOperation()
	result, err = prog.Eval(env)
	duration, durationMs := elapsed(done)
	c.metrics.RecordEvaluation(ctx, duration, err)

	if err != nil {
		observability.LogEvaluateError(logger, err, durationMs)
		return value.Null(), err
	}
	observability.LogEvaluate(logger, value.Display(result, cult), durationMs)
	return result, nil
}

// compile resolves the program for formula, recording cache and parse
// signals.
func (c *Converter) compile(ctx context.Context, logger *slog.Logger, formula string) (*expr.Program, error) {
	if strings.TrimSpace(formula) == "" {
		err := emptyFormula()
		c.metrics.RecordParse(ctx, 0, err)
		observability.LogCompileError(logger, err)
		return nil, err
	}

	parseCtx, parseSpan := c.spans.StartParseSpan(ctx, formula)
	done := observability.TimedOperation()
	prog, hit, err := c.engine.Compile(formula)
	duration, durationMs := elapsed(done)

	if c.engine.Cache() != nil {
		c.metrics.RecordCacheLookup(ctx, hit)
		c.spans.AddSpanEvent(parseCtx, "cache.lookup", attribute.Bool("hit", hit))
	}
	if !hit {
		c.metrics.RecordParse(ctx, duration, err)
	}
	c.spans.EndSpanWithError(parseSpan, err)

	if err != nil {
		observability.LogCompileError(logger, err)
		return nil, err
	}
	observability.LogCompile(logger, hit, durationMs)
	return prog, nil
}

func elapsed(done func() float64) (time.Duration, float64) {
	ms := done()
	return time.Duration(ms * float64(time.Millisecond)), ms
}

func emptyFormula() error {
	return fmt.Errorf("%w: %w", ErrEmptyFormula, mcerrors.Syntaxf(0, "empty formula"))
}
