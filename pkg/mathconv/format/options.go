package format

import "github.com/randalmurphal/mathconv/pkg/mathconv/culture"

// MissingAction specifies how to handle a hole whose index has no argument.
type MissingAction int

const (
	// MissingError returns an error when an index is out of range.
	// This is the default behavior.
	MissingError MissingAction = iota

	// MissingEmpty replaces the hole with an empty string.
	MissingEmpty

	// MissingKeep keeps the hole as-is.
	MissingKeep
)

// Option configures a Formatter.
type Option func(*Formatter)

// WithMissingAction sets how out-of-range indexes are handled.
//
// Default: MissingError
//
// Example:
//
//	f := NewFormatter(WithMissingAction(MissingKeep))
//	s, _ := f.Format("{0} {1}", []value.Value{value.String("a")})
//	// s: "a {1}"
func WithMissingAction(action MissingAction) Option {
	return func(f *Formatter) {
		f.missingAction = action
	}
}

// WithCulture sets the culture used for number and date specifiers.
//
// Default: culture.Invariant()
func WithCulture(c *culture.Culture) Option {
	return func(f *Formatter) {
		if c != nil {
			f.culture = c
		}
	}
}
