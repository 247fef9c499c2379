package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/randalmurphal/mathconv/pkg/mathconv/culture"
)

// DefaultCacheSize is the expression cache bound used when none is given.
const DefaultCacheSize = 1024

// ErrInvalidSettings is wrapped by every validation failure.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings configures a Converter.
type Settings struct {
	// Culture is a BCP 47 tag such as "en-US". Empty means invariant.
	Culture string `yaml:"culture" json:"culture" mapstructure:"culture"`

	// CacheSize bounds the expression cache. Zero selects DefaultCacheSize.
	CacheSize int `yaml:"cache_size" json:"cache_size" mapstructure:"cache_size"`

	// DisableCache compiles every formula on each evaluation.
	DisableCache bool `yaml:"disable_cache" json:"disable_cache" mapstructure:"disable_cache"`

	// Metrics records OpenTelemetry metrics for parse and evaluation.
	Metrics bool `yaml:"metrics" json:"metrics" mapstructure:"metrics"`

	// Tracing records OpenTelemetry spans for each conversion.
	Tracing bool `yaml:"tracing" json:"tracing" mapstructure:"tracing"`

	// LogLevel is one of debug, info, warn or error. Empty means info.
	LogLevel string `yaml:"log_level" json:"log_level" mapstructure:"log_level"`

	// Library is the path of a SQLite formula library. Empty means none.
	Library string `yaml:"library" json:"library" mapstructure:"library"`
}

// Default returns settings with every default applied.
func Default() Settings {
	s := Settings{}
	s.applyDefaults()
	return s
}

func (s *Settings) applyDefaults() {
	if s.CacheSize == 0 {
		s.CacheSize = DefaultCacheSize
	}
	if s.LogLevel == "" {
		s.LogLevel = "info"
	}
}

// Validate checks that the settings can build a Converter.
func (s Settings) Validate() error {
	if s.CacheSize < 0 {
		return fmt.Errorf("%w: cache_size must not be negative, got %d", ErrInvalidSettings, s.CacheSize)
	}
	if _, err := parseLevel(s.LogLevel); err != nil {
		return err
	}
	if _, err := culture.Parse(s.Culture); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	return nil
}

// CultureValue resolves the Culture setting.
func (s Settings) CultureValue() (*culture.Culture, error) {
	return culture.Parse(s.Culture)
}

// Level maps LogLevel to a slog level. Unknown names map to info.
func (s Settings) Level() slog.Level {
	lvl, err := parseLevel(s.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func parseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: unknown log_level %q", ErrInvalidSettings, name)
	}
}
