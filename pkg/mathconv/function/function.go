// Package function defines the function catalogue of the formula language
// and every built-in function.
//
// A function never receives evaluated arguments. It receives one Thunk per
// argument and forces only the ones it needs, which is what lets And, Or,
// IsNull and TryCatch short-circuit:
//
//	And(false; Throw())    // false, Throw is never forced
//	IsNull(x; `fallback`)  // the fallback is forced only when x is null
//	TryCatch(Throw(); 1)   // 1, the first failure is suppressed
//
// Argument counts are validated once, at parse time, against the
// descriptor's Arity. Eval can therefore index Call.Args without checking.
package function

import (
	"github.com/randalmurphal/mathconv/pkg/mathconv/culture"
	"github.com/randalmurphal/mathconv/pkg/mathconv/value"
)

// Thunk is a deferred argument. Force evaluates it on first use; later
// calls return the same result without re-evaluating.
type Thunk interface {
	Force() (value.Value, error)
}

// lazy memoizes the result of eval.
type lazy struct {
	eval   func() (value.Value, error)
	forced bool
	v      value.Value
	err    error
}

func (l *lazy) Force() (value.Value, error) {
	if !l.forced {
		l.v, l.err = l.eval()
		l.forced = true
		l.eval = nil
	}
	return l.v, l.err
}

// Lazy returns a Thunk that runs eval at most once. The Thunk is not safe
// for concurrent use; each function call gets its own.
func Lazy(eval func() (value.Value, error)) Thunk {
	return &lazy{eval: eval}
}

type constant struct{ v value.Value }

func (c constant) Force() (value.Value, error) { return c.v, nil }

// Const returns an already-forced Thunk holding v.
func Const(v value.Value) Thunk {
	return constant{v: v}
}

// Consts wraps each value in a Const thunk.
func Consts(vs ...value.Value) []Thunk {
	out := make([]Thunk, len(vs))
	for i, v := range vs {
		out[i] = Const(v)
	}
	return out
}

// Arity reports whether a function accepts n arguments.
type Arity func(n int) bool

// Exactly accepts exactly n arguments.
func Exactly(n int) Arity {
	return func(got int) bool { return got == n }
}

// AtLeast accepts n or more arguments.
func AtLeast(n int) Arity {
	return func(got int) bool { return got >= n }
}

// Between accepts lo through hi arguments inclusive.
func Between(lo, hi int) Arity {
	return func(got int) bool { return got >= lo && got <= hi }
}

// Any accepts any number of arguments, including none.
func Any(int) bool { return true }

// Call is a single invocation of a function.
type Call struct {
	// Name is the name the function was invoked by.
	Name string
	// Culture governs number parsing and formatting. Never nil.
	Culture *culture.Culture
	Args    []Thunk
}

// Force forces argument i.
func (c *Call) Force(i int) (value.Value, error) {
	return c.Args[i].Force()
}

// ForceAll forces every argument from index start onward, in order,
// stopping at the first failure.
func (c *Call) ForceAll(start int) ([]value.Value, error) {
	if start >= len(c.Args) {
		return nil, nil
	}
	out := make([]value.Value, 0, len(c.Args)-start)
	for _, arg := range c.Args[start:] {
		v, err := arg.Force()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Descriptor describes a callable function.
type Descriptor struct {
	Name  string
	Arity Arity
	// Pure is false for functions whose result may differ between calls
	// with identical arguments, such as Now.
	Pure bool
	Eval func(call *Call) (value.Value, error)
}

// Accepts reports whether the function may be called with n arguments.
func (d *Descriptor) Accepts(n int) bool {
	return d.Arity == nil || d.Arity(n)
}

// ZeroArg builds a descriptor for a function of no arguments.
func ZeroArg(name string, pure bool, fn func(c *culture.Culture) value.Value) *Descriptor {
	return &Descriptor{
		Name:  name,
		Arity: Exactly(0),
		Pure:  pure,
		Eval: func(call *Call) (value.Value, error) {
			return fn(call.Culture), nil
		},
	}
}

// OneArg builds a descriptor for a function of one forced argument.
func OneArg(name string, fn func(c *culture.Culture, v value.Value) value.Value) *Descriptor {
	return &Descriptor{
		Name:  name,
		Arity: Exactly(1),
		Pure:  true,
		Eval: func(call *Call) (value.Value, error) {
			v, err := call.Force(0)
			if err != nil {
				return value.Null(), err
			}
			return fn(call.Culture, v), nil
		},
	}
}

// OneNumber builds a descriptor for a numeric function of one argument. An
// argument that does not coerce to a number yields Null.
func OneNumber(name string, fn func(float64) float64) *Descriptor {
	return OneArg(name, func(c *culture.Culture, v value.Value) value.Value {
		f, ok := value.ToNumber(v, c)
		if !ok {
			return value.Null()
		}
		return value.Number(fn(f))
	})
}

// TwoArg builds a descriptor for a function of two forced arguments.
func TwoArg(name string, fn func(c *culture.Culture, a, b value.Value) value.Value) *Descriptor {
	return &Descriptor{
		Name:  name,
		Arity: Exactly(2),
		Pure:  true,
		Eval: func(call *Call) (value.Value, error) {
			a, err := call.Force(0)
			if err != nil {
				return value.Null(), err
			}
			b, err := call.Force(1)
			if err != nil {
				return value.Null(), err
			}
			return fn(call.Culture, a, b), nil
		},
	}
}

// Variadic builds a descriptor for a function that forces its own
// arguments.
func Variadic(name string, arity Arity, fn func(call *Call) (value.Value, error)) *Descriptor {
	return &Descriptor{
		Name:  name,
		Arity: arity,
		Pure:  true,
		Eval:  fn,
	}
}
