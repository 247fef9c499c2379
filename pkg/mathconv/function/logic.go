package function

import (
	"math"

	mcerrors "github.com/randalmurphal/mathconv/pkg/mathconv/errors"
	"github.com/randalmurphal/mathconv/pkg/mathconv/operator"
	"github.com/randalmurphal/mathconv/pkg/mathconv/value"
)

// isNull forces the second argument only when the first is null.
func isNull(call *Call) (value.Value, error) {
	v, err := call.Force(0)
	if err != nil || !v.IsNull() {
		return v, err
	}
	return call.Force(1)
}

// maxRoundDigits is the largest precision Round accepts.
const maxRoundDigits = 15

// round rounds half to even, to a whole number or to the given number of
// decimal places. A non-integral precision is a hard failure.
func round(call *Call) (value.Value, error) {
	v, err := call.Force(0)
	if err != nil {
		return value.Null(), err
	}
	x, ok := value.ToNumber(v, call.Culture)

	if len(call.Args) == 1 {
		if !ok {
			return value.Null(), nil
		}
		return value.Number(math.RoundToEven(x)), nil
	}

	p, err := call.Force(1)
	if err != nil {
		return value.Null(), err
	}
	digits, pok := value.ToNumber(p, call.Culture)
	if !ok || !pok {
		return value.Null(), nil
	}
	n, integral := value.ToInt(p, call.Culture)
	switch {
	case !integral && digits != math.Trunc(digits):
		return value.Null(), mcerrors.Functionf(call.Name,
			"The second argument for %s (if specified) must be an integer.", call.Name)
	case !integral || n < 0 || n > maxRoundDigits:
		return value.Null(), mcerrors.Functionf(call.Name,
			"The second argument for %s must be between 0 and %d.", call.Name, maxRoundDigits)
	}
	return value.Number(roundTo(x, n)), nil
}

func roundTo(x float64, digits int) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	scale := math.Pow10(digits)
	scaled := x * scale
	if math.Abs(scaled) >= 1<<53 {
		return x
	}
	return math.RoundToEven(scaled) / scale
}

// fold combines arguments left to right with op, stopping as soon as the
// accumulated value coerces to stop.
func fold(call *Call, op operator.Op, stop bool) (value.Value, bool, error) {
	var acc value.Value
	for i, arg := range call.Args {
		v, err := arg.Force()
		if err != nil {
			return value.Null(), false, err
		}
		if i == 0 {
			acc = v
		} else {
			acc = operator.Binary(op, acc, v, call.Culture)
		}
		if b, ok := value.ToBool(acc); ok && b == stop {
			return acc, true, nil
		}
	}
	return acc, false, nil
}

func and(call *Call) (value.Value, error) {
	acc, _, err := fold(call, operator.And, false)
	return acc, err
}

// or returns the first accumulated true value, or false when none is found.
func or(call *Call) (value.Value, error) {
	acc, stopped, err := fold(call, operator.Or, true)
	if err != nil {
		return value.Null(), err
	}
	if stopped {
		return acc, nil
	}
	return value.Bool(false), nil
}

func nor(call *Call) (value.Value, error) {
	v, err := or(call)
	if err != nil {
		return value.Null(), err
	}
	return operator.Unary(operator.Not, v, call.Culture), nil
}

func greater(a, b value.Value, call *Call) bool {
	return operator.IsTrue(operator.Binary(operator.Gt, a, b, call.Culture))
}

func less(a, b value.Value, call *Call) bool {
	return operator.IsTrue(operator.Binary(operator.Lt, a, b, call.Culture))
}

// extreme returns the argument that beats every other under better. Nulls
// are skipped until a first non-null accumulator is found.
func extreme(better func(a, b value.Value, call *Call) bool) func(*Call) (value.Value, error) {
	return func(call *Call) (value.Value, error) {
		best := value.Null()
		defined := false
		for _, arg := range call.Args {
			v, err := arg.Force()
			if err != nil {
				return value.Null(), err
			}
			if !defined {
				best = v
				defined = !v.IsNull()
				continue
			}
			if better(v, best, call) {
				best = v
			}
		}
		return best, nil
	}
}

// average ignores arguments that do not coerce to a number.
func average(call *Call) (value.Value, error) {
	var sum float64
	var n int
	for _, arg := range call.Args {
		v, err := arg.Force()
		if err != nil {
			return value.Null(), err
		}
		if f, ok := value.ToNumber(v, call.Culture); ok {
			sum += f
			n++
		}
	}
	if n == 0 {
		return value.Null(), nil
	}
	return value.Number(sum / float64(n)), nil
}

// tryCatch returns the first argument that evaluates without a domain
// failure. The last argument is never guarded.
func tryCatch(call *Call) (value.Value, error) {
	last := len(call.Args) - 1
	for _, arg := range call.Args[:last] {
		v, err := arg.Force()
		if err == nil {
			return v, nil
		}
		if !mcerrors.IsSuppressible(err) {
			return value.Null(), err
		}
	}
	return call.Args[last].Force()
}
