package errors

import (
	"fmt"
	"strings"
)

// SyntaxError indicates malformed formula text.
type SyntaxError struct {
	// Pos is the byte offset in the source where the problem was detected.
	Pos int
	Msg string
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at position %d: %s", e.Pos, e.Msg)
}

// Syntaxf creates a SyntaxError with a formatted message.
func Syntaxf(pos int, format string, args ...any) *SyntaxError {
	return &SyntaxError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// ArityError indicates a function called with an argument count it does
// not accept. It is raised at parse time.
type ArityError struct {
	Func  string
	Count int
	Pos   int
}

// Error implements the error interface.
func (e *ArityError) Error() string {
	return fmt.Sprintf("the function %s does not accept %d argument%s", e.Func, e.Count, plural(e.Count))
}

// UnresolvedError indicates an identifier that is neither a variable nor a
// known function.
type UnresolvedError struct {
	Name string
	Pos  int
}

// Error implements the error interface.
func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("unresolved symbol %q at position %d", e.Name, e.Pos)
}

// FunctionError is a hard failure raised by a function during evaluation.
type FunctionError struct {
	Func string
	Msg  string
	// Args holds the displayed argument values, when the function forced them.
	Args []string
}

// Error implements the error interface.
func (e *FunctionError) Error() string {
	return e.Msg
}

// Functionf creates a FunctionError with a formatted message.
func Functionf(fn string, format string, args ...any) *FunctionError {
	return &FunctionError{Func: fn, Msg: fmt.Sprintf(format, args...)}
}

// Thrown creates the FunctionError raised by the Throw function, naming the
// function and listing the argument values it was called with.
func Thrown(fn string, args []string) *FunctionError {
	return &FunctionError{
		Func: fn,
		Msg: fmt.Sprintf("The %s function was called with %d argument%s: %s",
			fn, len(args), plural(len(args)), strings.Join(args, ", ")),
		Args: args,
	}
}

// EnvironmentError wraps a fault that is not a domain failure, such as a
// panic recovered during evaluation.
type EnvironmentError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *EnvironmentError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *EnvironmentError) Unwrap() error {
	return e.Err
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
