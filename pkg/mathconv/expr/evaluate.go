package expr

import (
	"context"
	"errors"
	"fmt"

	"github.com/randalmurphal/mathconv/pkg/mathconv/culture"
	mcerrors "github.com/randalmurphal/mathconv/pkg/mathconv/errors"
	"github.com/randalmurphal/mathconv/pkg/mathconv/function"
	"github.com/randalmurphal/mathconv/pkg/mathconv/operator"
	"github.com/randalmurphal/mathconv/pkg/mathconv/value"
)

// ErrTooManyInputs indicates more inputs than there are variable slots.
var ErrTooManyInputs = errors.New("too many inputs: at most 10 are addressable")

// Env is the per-evaluation context: bound inputs plus culture. An Env is
// owned by one evaluation and must not be shared while it runs.
type Env struct {
	// Context is checked before each function call. Nil means never
	// cancelled.
	Context context.Context
	// Culture governs string-to-number coercion and number display. Nil
	// means invariant.
	Culture *culture.Culture
	Inputs  [Slots]value.Value
}

// NewEnv binds inputs to slots in order. Missing inputs are null.
func NewEnv(ctx context.Context, c *culture.Culture, inputs ...value.Value) (*Env, error) {
	if len(inputs) > Slots {
		return nil, fmt.Errorf("%w: got %d", ErrTooManyInputs, len(inputs))
	}
	env := &Env{Context: ctx, Culture: c}
	copy(env.Inputs[:], inputs)
	return env, nil
}

func (env *Env) culture() *culture.Culture {
	if env.Culture == nil {
		return culture.Invariant()
	}
	return env.Culture
}

// Eval evaluates n against env. A panic raised while evaluating, for
// instance by a custom function, is recovered and returned as an
// EnvironmentError, which TryCatch never suppresses.
func Eval(n Node, env *Env) (result value.Value, err error) {
	if env == nil {
		env = &Env{}
	}
	defer func() {
		if r := recover(); r != nil {
			result = value.Null()
			err = &mcerrors.EnvironmentError{Op: "evaluate", Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	return n.Eval(env)
}

// Eval returns the literal value.
func (n *Literal) Eval(*Env) (value.Value, error) {
	return n.Value, nil
}

// Eval returns the bound input.
func (n *Variable) Eval(env *Env) (value.Value, error) {
	return env.Inputs[n.Slot], nil
}

// Eval applies the prefix operator to the evaluated operand.
func (n *Unary) Eval(env *Env) (value.Value, error) {
	v, err := n.Operand.Eval(env)
	if err != nil {
		return value.Null(), err
	}
	return operator.Unary(n.Op, v, env.culture()), nil
}

// Eval evaluates both operands, except for ?? whose right side is
// evaluated only when the left is null.
func (n *Binary) Eval(env *Env) (value.Value, error) {
	left, err := n.Left.Eval(env)
	if err != nil {
		return value.Null(), err
	}
	if n.Op == operator.Coalesce && !left.IsNull() {
		return left, nil
	}
	right, err := n.Right.Eval(env)
	if err != nil {
		return value.Null(), err
	}
	return operator.Binary(n.Op, left, right, env.culture()), nil
}

// Eval evaluates the condition and then exactly one branch. A condition
// that does not coerce to a boolean yields null.
func (n *Conditional) Eval(env *Env) (value.Value, error) {
	cond, err := n.Cond.Eval(env)
	if err != nil {
		return value.Null(), err
	}
	b, ok := value.ToBool(cond)
	if !ok {
		return value.Null(), nil
	}
	if b {
		return n.Then.Eval(env)
	}
	return n.Else.Eval(env)
}

// Eval passes one memoized thunk per argument to the function.
func (n *Call) Eval(env *Env) (value.Value, error) {
	if env.Context != nil {
		if err := env.Context.Err(); err != nil {
			return value.Null(), err
		}
	}
	args := make([]function.Thunk, len(n.Args))
	for i, arg := range n.Args {
		args[i] = function.Lazy(func() (value.Value, error) {
			return arg.Eval(env)
		})
	}
	return n.Func.Eval(&function.Call{
		Name:    n.Name,
		Culture: env.culture(),
		Args:    args,
	})
}
