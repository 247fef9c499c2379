package mathconv

import (
	"context"
	"sync"

	"github.com/randalmurphal/mathconv/pkg/mathconv/value"
)

var (
	defaultMu       sync.Mutex
	defaultConv     *Converter
	defaultResolved bool
)

// Default returns the process-wide converter. The first call resolves it:
// the converter registered with SetDefault, or one built with default
// options.
func Default() *Converter {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultConv == nil {
		defaultConv = New()
	}
	defaultResolved = true
	return defaultConv
}

// SetDefault registers the process-wide converter. It must be called
// before the first use of Default; afterwards it returns
// ErrDefaultAlreadyResolved.
func SetDefault(c *Converter) error {
	if c == nil {
		return ErrNilConverter
	}

	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultResolved {
		return ErrDefaultAlreadyResolved
	}
	defaultConv = c
	return nil
}

// Convert evaluates formula with the default converter.
func Convert(ctx context.Context, formula string, inputs ...any) (value.Value, error) {
	return Default().Convert(ctx, formula, inputs...)
}
