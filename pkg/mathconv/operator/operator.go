// Package operator implements the unary and binary operators of the formula
// language over dynamic values.
//
// Operators are strict: they receive already-evaluated operands. None of
// them fails. An operand that cannot be coerced makes the operator yield
// Null (arithmetic, relational) or pass a value through unchanged (logical).
package operator

import (
	"math"

	"github.com/randalmurphal/mathconv/pkg/mathconv/culture"
	"github.com/randalmurphal/mathconv/pkg/mathconv/value"
)

// Op identifies an operator.
type Op int

// Binary operators, then the prefix operators Not and Neg.
const (
	Add Op = iota
	Sub
	Mul
	Div
	Mod
	Pow
	Eq
	Ne
	Lt
	Le
	Gt
	Ge
	And
	Or
	Coalesce
	Not
	Neg
)

var symbols = [...]string{
	Add:      "+",
	Sub:      "-",
	Mul:      "*",
	Div:      "/",
	Mod:      "%",
	Pow:      "^",
	Eq:       "==",
	Ne:       "!=",
	Lt:       "<",
	Le:       "<=",
	Gt:       ">",
	Ge:       ">=",
	And:      "&&",
	Or:       "||",
	Coalesce: "??",
	Not:      "!",
	Neg:      "-",
}

// String returns the operator's source symbol.
func (op Op) String() string {
	if op < 0 || int(op) >= len(symbols) {
		return "?"
	}
	return symbols[op]
}

// IsUnary reports whether op is a prefix operator.
func (op Op) IsUnary() bool {
	return op == Not || op == Neg
}

// LookupBinary returns the binary operator for a source symbol.
func LookupBinary(symbol string) (Op, bool) {
	for op := Add; op <= Coalesce; op++ {
		if symbols[op] == symbol {
			return op, true
		}
	}
	return 0, false
}

// LookupUnary returns the prefix operator for a source symbol.
func LookupUnary(symbol string) (Op, bool) {
	switch symbol {
	case "!":
		return Not, true
	case "-":
		return Neg, true
	}
	return 0, false
}

// Binary applies a binary operator. c controls string-to-number coercion
// and the text of numbers in string concatenation; nil means invariant.
func Binary(op Op, l, r value.Value, c *culture.Culture) value.Value {
	switch op {
	case Add:
		return add(l, r, c)
	case Sub, Mul, Div, Mod, Pow:
		return arithmetic(op, l, r, c)
	case Eq:
		return value.Bool(Equals(l, r, c))
	case Ne:
		return value.Bool(!Equals(l, r, c))
	case Lt, Le, Gt, Ge:
		return compare(op, l, r, c)
	case And:
		return and(l, r)
	case Or:
		return or(l, r)
	case Coalesce:
		if l.IsNull() {
			return r
		}
		return l
	}
	return value.Null()
}

// Unary applies a prefix operator.
func Unary(op Op, v value.Value, c *culture.Culture) value.Value {
	switch op {
	case Not:
		if b, ok := value.ToBool(v); ok {
			return value.Bool(!b)
		}
		return v
	case Neg:
		if f, ok := value.ToNumber(v, c); ok {
			return value.Number(-f)
		}
	}
	return value.Null()
}

// Equals implements ==. Two nulls are equal; two enums are equal only when
// they share their declared type and ordinal; otherwise operands compare as
// numbers when both coerce, falling back to structural equality.
func Equals(l, r value.Value, c *culture.Culture) bool {
	if l.IsNull() || r.IsNull() {
		return l.IsNull() && r.IsNull()
	}
	if lt, lo, ok := l.AsEnum(); ok {
		if rt, ro, ok := r.AsEnum(); ok {
			return lt == rt && lo == ro
		}
	}
	if lf, ok := value.ToNumber(l, c); ok {
		if rf, ok := value.ToNumber(r, c); ok {
			return lf == rf
		}
	}
	return value.Equal(l, r)
}

func add(l, r value.Value, c *culture.Culture) value.Value {
	_, lstr := l.AsString()
	_, rstr := r.AsString()
	if (lstr || rstr) && !l.IsNull() && !r.IsNull() {
		return value.String(value.Display(l, c) + value.Display(r, c))
	}
	return arithmetic(Add, l, r, c)
}

func arithmetic(op Op, l, r value.Value, c *culture.Culture) value.Value {
	lf, ok := value.ToNumber(l, c)
	if !ok {
		return value.Null()
	}
	rf, ok := value.ToNumber(r, c)
	if !ok {
		return value.Null()
	}
	switch op {
	case Add:
		return value.Number(lf + rf)
	case Sub:
		return value.Number(lf - rf)
	case Mul:
		return value.Number(lf * rf)
	case Div:
		return value.Number(lf / rf)
	case Mod:
		return value.Number(math.Mod(lf, rf))
	case Pow:
		return value.Number(math.Pow(lf, rf))
	}
	return value.Null()
}

func compare(op Op, l, r value.Value, c *culture.Culture) value.Value {
	if lt, ok := l.AsDateTime(); ok {
		if rt, ok := r.AsDateTime(); ok {
			return value.Bool(ordered(op, lt.Compare(rt)))
		}
	}

	lf, ok := value.ToNumber(l, c)
	if !ok {
		return value.Null()
	}
	rf, ok := value.ToNumber(r, c)
	if !ok {
		return value.Null()
	}
	if math.IsNaN(lf) || math.IsNaN(rf) {
		return value.Bool(false)
	}
	switch {
	case lf < rf:
		return value.Bool(ordered(op, -1))
	case lf > rf:
		return value.Bool(ordered(op, 1))
	default:
		return value.Bool(ordered(op, 0))
	}
}

func ordered(op Op, cmp int) bool {
	switch op {
	case Lt:
		return cmp < 0
	case Le:
		return cmp <= 0
	case Gt:
		return cmp > 0
	case Ge:
		return cmp >= 0
	}
	return false
}

// and combines two operands; a non-coercible side is skipped.
func and(l, r value.Value) value.Value {
	lb, lok := value.ToBool(l)
	rb, rok := value.ToBool(r)
	switch {
	case lok && rok:
		return value.Bool(lb && rb)
	case lok:
		return l
	case rok:
		return r
	default:
		return l
	}
}

// or combines two operands; a non-coercible side is skipped.
func or(l, r value.Value) value.Value {
	lb, lok := value.ToBool(l)
	rb, rok := value.ToBool(r)
	switch {
	case lok && rok:
		return value.Bool(lb || rb)
	case lok:
		return l
	case rok:
		return r
	default:
		return l
	}
}

// IsTrue reports whether v coerces to true. Used for short-circuit tests
// and conditions.
func IsTrue(v value.Value) bool {
	b, ok := value.ToBool(v)
	return ok && b
}

// IsFalse reports whether v coerces to false.
func IsFalse(v value.Value) bool {
	b, ok := value.ToBool(v)
	return ok && !b
}
