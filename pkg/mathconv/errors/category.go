// Package errors defines the hard failures raised while parsing and
// evaluating formulas, and classifies errors for TryCatch suppression.
//
// Failures come in two tiers:
//   - Hard failures are returned as errors and abort the evaluation.
//   - Soft failures never surface here: they degrade to a null value.
//
// Among hard failures, domain errors (syntax, arity, unresolved names and
// errors raised by functions) may be suppressed by TryCatch. Environment
// faults (cancellation, recovered panics, anything unclassified) never are.
package errors

import (
	"context"
	"errors"
)

// Category represents how a hard failure may be handled.
type Category int

const (
	// CategorySyntax covers lexing and parsing failures, including wrong
	// argument counts and unresolved identifiers.
	CategorySyntax Category = iota

	// CategoryFunction covers failures deliberately raised by a function
	// during evaluation (Throw, Round precision, Format/Join arguments).
	CategoryFunction

	// CategoryEnvironment covers faults outside the formula's control.
	// These are never suppressed.
	CategoryEnvironment
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategorySyntax:
		return "syntax"
	case CategoryFunction:
		return "function"
	case CategoryEnvironment:
		return "environment"
	default:
		return "unknown"
	}
}

// Categorize determines the category of err.
func Categorize(err error) Category {
	if err == nil {
		return CategoryEnvironment
	}

	var envErr *EnvironmentError
	if errors.As(err, &envErr) {
		return CategoryEnvironment
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return CategoryEnvironment
	}

	var syntaxErr *SyntaxError
	if errors.As(err, &syntaxErr) {
		return CategorySyntax
	}
	var arityErr *ArityError
	if errors.As(err, &arityErr) {
		return CategorySyntax
	}
	var unresolvedErr *UnresolvedError
	if errors.As(err, &unresolvedErr) {
		return CategorySyntax
	}

	var fnErr *FunctionError
	if errors.As(err, &fnErr) {
		return CategoryFunction
	}

	// Unknown errors are environment faults (fail safe).
	return CategoryEnvironment
}

// IsSuppressible reports whether TryCatch may swallow err and move on to
// its next argument.
func IsSuppressible(err error) bool {
	if err == nil {
		return false
	}
	return Categorize(err) != CategoryEnvironment
}

// IsSyntax reports whether err was raised while parsing a formula.
func IsSyntax(err error) bool {
	return err != nil && Categorize(err) == CategorySyntax
}
