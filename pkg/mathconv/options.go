package mathconv

import (
	"log/slog"

	"github.com/randalmurphal/mathconv/pkg/mathconv/config"
	"github.com/randalmurphal/mathconv/pkg/mathconv/culture"
	"github.com/randalmurphal/mathconv/pkg/mathconv/function"
	"github.com/randalmurphal/mathconv/pkg/mathconv/library"
)

// converterConfig holds configuration for a Converter.
type converterConfig struct {
	culture   *culture.Culture
	catalogue *function.Catalogue
	cacheSize int
	noCache   bool
	library   library.Store

	logger         *slog.Logger
	metricsEnabled bool
	tracingEnabled bool
}

// defaultConverterConfig returns the default configuration.
func defaultConverterConfig() converterConfig {
	return converterConfig{
		culture:   culture.Invariant(),
		cacheSize: config.DefaultCacheSize,
	}
}

// Option configures a Converter.
type Option func(*converterConfig)

// WithCulture sets the culture used to parse numbers from strings and to
// display numbers and dates.
// Default: invariant culture
func WithCulture(c *culture.Culture) Option {
	return func(cfg *converterConfig) {
		if c != nil {
			cfg.culture = c
		}
	}
}

// WithCatalogue sets the functions available to formulas.
// Default: the built-in functions
//
// Example:
//
//	cat := function.NewCatalogue()
//	cat.MustRegister(function.OneNumber("Double", func(f float64) float64 {
//	    return f * 2
//	}))
//	conv := mathconv.New(mathconv.WithCatalogue(cat))
func WithCatalogue(cat *function.Catalogue) Option {
	return func(cfg *converterConfig) {
		cfg.catalogue = cat
	}
}

// WithCacheSize bounds the number of compiled formulas kept.
// Default: 1024. Zero or a negative size means unbounded.
func WithCacheSize(n int) Option {
	return func(cfg *converterConfig) {
		cfg.cacheSize = n
	}
}

// WithoutCache compiles the formula on every evaluation.
func WithoutCache() Option {
	return func(cfg *converterConfig) {
		cfg.noCache = true
	}
}

// WithLibrary sets the store ConvertNamed loads formulas from.
// The converter takes ownership: Close closes the store.
func WithLibrary(store library.Store) Option {
	return func(cfg *converterConfig) {
		cfg.library = store
	}
}

// WithLogger sets the logger for conversion events.
// Default: no logging
//
// Each evaluation logs through a child logger carrying eval_id and formula.
// Compilation and successful evaluation log at Debug, formula failures at
// Warn and environment faults at Error.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *converterConfig) {
		cfg.logger = logger
	}
}

// WithMetrics enables OpenTelemetry metrics.
// Default: disabled
//
// When enabled, records:
//   - mathconv.parse.count, mathconv.parse.errors, mathconv.parse.latency_ms
//   - mathconv.eval.count, mathconv.eval.errors, mathconv.eval.latency_ms
//   - mathconv.cache.lookups
//
// Metrics use the global OTel meter provider.
func WithMetrics(enabled bool) Option {
	return func(cfg *converterConfig) {
		cfg.metricsEnabled = enabled
	}
}

// WithTracing enables OpenTelemetry tracing.
// Default: disabled
//
// When enabled, each conversion gets a mathconv.convert span, with a child
// mathconv.parse span whenever the formula is compiled.
// Spans use the global OTel tracer provider.
func WithTracing(enabled bool) Option {
	return func(cfg *converterConfig) {
		cfg.tracingEnabled = enabled
	}
}

// FromSettings translates loaded settings into options. A library path
// opens a SQLite store, which the resulting converter owns.
func FromSettings(s config.Settings) ([]Option, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	c, err := s.CultureValue()
	if err != nil {
		return nil, err
	}

	opts := []Option{
		WithCulture(c),
		WithMetrics(s.Metrics),
		WithTracing(s.Tracing),
	}
	if s.CacheSize != 0 {
		opts = append(opts, WithCacheSize(s.CacheSize))
	}
	if s.DisableCache {
		opts = append(opts, WithoutCache())
	}
	if s.Library != "" {
		store, err := library.NewSQLiteStore(s.Library)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithLibrary(store))
	}
	return opts, nil
}
