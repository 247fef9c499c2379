package mathconv

import (
	"errors"

	"github.com/randalmurphal/mathconv/pkg/mathconv/expr"
)

// Sentinel errors for conversions.
var (
	// ErrTooManyInputs indicates more than ten inputs were supplied.
	ErrTooManyInputs = expr.ErrTooManyInputs

	// ErrEmptyFormula indicates a blank formula. It is also a syntax error.
	ErrEmptyFormula = errors.New("empty formula")

	// ErrNoLibrary indicates ConvertNamed was called on a converter
	// without a formula library.
	ErrNoLibrary = errors.New("no formula library configured")

	// ErrDefaultAlreadyResolved indicates SetDefault was called after the
	// default converter was first used.
	ErrDefaultAlreadyResolved = errors.New("default converter already resolved")

	// ErrNilConverter indicates SetDefault was called with nil.
	ErrNilConverter = errors.New("converter cannot be nil")
)
