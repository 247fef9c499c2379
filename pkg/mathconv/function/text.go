package function

import (
	"strings"

	"github.com/randalmurphal/mathconv/pkg/mathconv/culture"
	mcerrors "github.com/randalmurphal/mathconv/pkg/mathconv/errors"
	"github.com/randalmurphal/mathconv/pkg/mathconv/format"
	"github.com/randalmurphal/mathconv/pkg/mathconv/value"
)

// affix adapts a prefix or suffix test. The first argument must be a
// string; a second argument with empty text gives Null rather than true.
func affix(test func(s, part string) bool) func(*culture.Culture, value.Value, value.Value) value.Value {
	return func(c *culture.Culture, a, b value.Value) value.Value {
		s, ok := value.ToString(a)
		if !ok {
			return value.Null()
		}
		part := value.Display(b, c)
		if part == "" {
			return value.Null()
		}
		return value.Bool(test(s, part))
	}
}

// contains tests substring containment for strings and membership for
// sequences.
func contains(c *culture.Culture, a, b value.Value) value.Value {
	if s, ok := value.ToString(a); ok {
		part := value.Display(b, c)
		if _, isString := b.AsString(); isString || part != "" {
			return value.Bool(strings.Contains(s, part))
		}
		return value.Null()
	}
	if items, ok := a.Items(); ok {
		for _, item := range items {
			if value.Equal(item, b) {
				return value.Bool(true)
			}
		}
		return value.Bool(false)
	}
	return value.Null()
}

func formatText(call *Call) (value.Value, error) {
	first, err := call.Force(0)
	if err != nil {
		return value.Null(), err
	}
	pattern, ok := value.ToString(first)
	if !ok {
		return value.Null(), mcerrors.Functionf(call.Name,
			"The %s function must be called with a string as the first argument.", call.Name)
	}
	args, err := call.ForceAll(1)
	if err != nil {
		return value.Null(), err
	}
	out, err := format.NewFormatter(format.WithCulture(call.Culture)).Format(pattern, args)
	if err != nil {
		return value.Null(), mcerrors.Functionf(call.Name, "%s: %v", call.Name, err)
	}
	return value.String(out), nil
}

// flatten returns the items of a lone sequence argument, or args itself.
func flatten(args []value.Value) []value.Value {
	if len(args) == 1 {
		if items, ok := args[0].Items(); ok {
			return items
		}
	}
	return args
}

func displayAll(c *culture.Culture, vs []value.Value) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = value.Display(v, c)
	}
	return out
}

func concat(call *Call) (value.Value, error) {
	args, err := call.ForceAll(0)
	if err != nil {
		return value.Null(), err
	}
	return value.String(strings.Join(displayAll(call.Culture, flatten(args)), "")), nil
}

func join(call *Call) (value.Value, error) {
	first, err := call.Force(0)
	if err != nil {
		return value.Null(), err
	}
	sep, ok := value.ToString(first)
	if !ok {
		return value.Null(), mcerrors.Functionf(call.Name,
			"%s() function must be called with a string as the first argument.", call.Name)
	}
	args, err := call.ForceAll(1)
	if err != nil {
		return value.Null(), err
	}
	return value.String(strings.Join(displayAll(call.Culture, flatten(args)), sep)), nil
}

func throw(call *Call) (value.Value, error) {
	args, err := call.ForceAll(0)
	if err != nil {
		return value.Null(), err
	}
	return value.Null(), mcerrors.Thrown(call.Name, displayAll(call.Culture, args))
}
