package operator

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/randalmurphal/mathconv/pkg/mathconv/culture"
	"github.com/randalmurphal/mathconv/pkg/mathconv/value"
)

var (
	colors = value.NewEnumType("Color", "Red", "Green")
	sizes  = value.NewEnumType("Size", "Small", "Large")
)

// holder is a host type whose interface field may hold a slice.
type holder struct{ items any }

func TestBinary_Arithmetic(t *testing.T) {
	tests := []struct {
		name  string
		op    Op
		left  value.Value
		right value.Value
		want  value.Value
	}{
		{name: "add numbers", op: Add, left: value.Number(2), right: value.Number(3), want: value.Number(5)},
		{name: "add numeric string", op: Sub, left: value.String("10"), right: value.Number(4), want: value.Number(6)},
		{name: "multiply", op: Mul, left: value.Number(2.5), right: value.Number(4), want: value.Number(10)},
		{name: "divide", op: Div, left: value.Number(7), right: value.Number(2), want: value.Number(3.5)},
		{name: "modulo", op: Mod, left: value.Number(7), right: value.Number(3), want: value.Number(1)},
		{name: "power", op: Pow, left: value.Number(2), right: value.Number(10), want: value.Number(1024)},
		{name: "string concatenation", op: Add, left: value.String("a"), right: value.String("b"), want: value.String("ab")},
		{name: "string plus number", op: Add, left: value.String("n="), right: value.Number(1.5), want: value.String("n=1.5")},
		{name: "number plus string", op: Add, left: value.Number(1), right: value.String("px"), want: value.String("1px")},
		{name: "numeric strings concatenate", op: Add, left: value.String("1"), right: value.Number(2), want: value.String("12")},
		{name: "string plus null", op: Add, left: value.String("a"), right: value.Null(), want: value.Null()},
		{name: "number plus null", op: Add, left: value.Number(1), right: value.Null(), want: value.Null()},
		{name: "bool operand", op: Mul, left: value.Bool(true), right: value.Number(2), want: value.Null()},
		{name: "bad string operand", op: Sub, left: value.String("abc"), right: value.Number(2), want: value.Null()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Binary(tt.op, tt.left, tt.right, nil)
			assert.True(t, value.Equal(tt.want, got), "got %#v, want %#v", got, tt.want)
		})
	}
}

func TestBinary_DivideByZero(t *testing.T) {
	got, ok := Binary(Div, value.Number(1), value.Number(0), nil).AsNumber()
	assert.True(t, ok)
	assert.True(t, math.IsInf(got, 1))
}

func TestBinary_CultureConcatenation(t *testing.T) {
	de := culture.MustParse("de-DE")
	got := Binary(Add, value.String("x="), value.Number(2.5), de)
	assert.Equal(t, value.String("x=2,5"), got)

	sum := Binary(Add, value.String("2,5"), value.Number(1), de)
	assert.Equal(t, value.String("2,51"), sum, "+ with a string operand always concatenates")

	diff := Binary(Sub, value.String("2,5"), value.Number(1), de)
	assert.Equal(t, value.Number(1.5), diff)
}

func TestEquals(t *testing.T) {
	red := colors.MustValue("Red")
	small := sizes.MustValue("Small")

	tests := []struct {
		name  string
		left  value.Value
		right value.Value
		want  bool
	}{
		{name: "null equals null", left: value.Null(), right: value.Null(), want: true},
		{name: "null vs number", left: value.Null(), right: value.Number(0), want: false},
		{name: "numbers", left: value.Number(2), right: value.Number(2), want: true},
		{name: "numeric string vs number", left: value.String("2"), right: value.Number(2), want: true},
		{name: "strings", left: value.String("a"), right: value.String("a"), want: true},
		{name: "different strings", left: value.String("a"), right: value.String("b"), want: false},
		{name: "bools", left: value.Bool(true), right: value.Bool(true), want: true},
		{name: "same enum", left: red, right: colors.MustValue("Red"), want: true},
		{name: "enum vs other enum with same ordinal", left: red, right: small, want: false},
		{name: "enum vs ordinal", left: red, right: value.Number(0), want: true},
		{name: "string vs bool", left: value.String("True"), right: value.Bool(true), want: false},
		{name: "host values", left: value.FromAny(holder{"a"}), right: value.FromAny(holder{"a"}), want: true},
		{name: "host values holding slices", left: value.FromAny(holder{[]int{1}}), right: value.FromAny(holder{[]int{1}}), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equals(tt.left, tt.right, nil))
			assert.Equal(t, value.Bool(tt.want), Binary(Eq, tt.left, tt.right, nil))
			assert.Equal(t, value.Bool(!tt.want), Binary(Ne, tt.left, tt.right, nil))
		})
	}
}

func TestBinary_Relational(t *testing.T) {
	early := value.DateTime(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))
	late := value.DateTime(time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC))

	tests := []struct {
		name  string
		op    Op
		left  value.Value
		right value.Value
		want  value.Value
	}{
		{name: "less", op: Lt, left: value.Number(1), right: value.Number(2), want: value.Bool(true)},
		{name: "less equal", op: Le, left: value.Number(2), right: value.Number(2), want: value.Bool(true)},
		{name: "greater", op: Gt, left: value.Number(1), right: value.Number(2), want: value.Bool(false)},
		{name: "greater equal", op: Ge, left: value.String("3"), right: value.Number(2), want: value.Bool(true)},
		{name: "non-numeric yields null", op: Lt, left: value.String("a"), right: value.Number(2), want: value.Null()},
		{name: "null yields null", op: Gt, left: value.Null(), right: value.Number(2), want: value.Null()},
		{name: "dates", op: Lt, left: early, right: late, want: value.Bool(true)},
		{name: "nan", op: Lt, left: value.Number(math.NaN()), right: value.Number(1), want: value.Bool(false)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Binary(tt.op, tt.left, tt.right, nil))
		})
	}
}

func TestBinary_Logical(t *testing.T) {
	tests := []struct {
		name  string
		op    Op
		left  value.Value
		right value.Value
		want  value.Value
	}{
		{name: "and true", op: And, left: value.Bool(true), right: value.Bool(true), want: value.Bool(true)},
		{name: "and false", op: And, left: value.Bool(true), right: value.Bool(false), want: value.Bool(false)},
		{name: "and skips non-coercible right", op: And, left: value.Bool(true), right: value.Number(5), want: value.Bool(true)},
		{name: "and skips non-coercible left", op: And, left: value.Null(), right: value.Bool(false), want: value.Bool(false)},
		{name: "and neither coercible", op: And, left: value.Number(1), right: value.Null(), want: value.Number(1)},
		{name: "or", op: Or, left: value.Bool(false), right: value.Bool(true), want: value.Bool(true)},
		{name: "or string bools", op: Or, left: value.String("false"), right: value.String("FALSE"), want: value.Bool(false)},
		{name: "or skips non-coercible", op: Or, left: value.String("x"), right: value.Bool(true), want: value.Bool(true)},
		{name: "coalesce null", op: Coalesce, left: value.Null(), right: value.Number(2), want: value.Number(2)},
		{name: "coalesce value", op: Coalesce, left: value.Number(1), right: value.Number(2), want: value.Number(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Binary(tt.op, tt.left, tt.right, nil))
		})
	}
}

func TestUnary(t *testing.T) {
	assert.Equal(t, value.Bool(false), Unary(Not, value.Bool(true), nil))
	assert.Equal(t, value.Number(3), Unary(Not, value.Number(3), nil), "non-coercible operand passes through")
	assert.Equal(t, value.Number(-2), Unary(Neg, value.Number(2), nil))
	assert.Equal(t, value.Number(-2), Unary(Neg, value.String("2"), nil))
	assert.Equal(t, value.Null(), Unary(Neg, value.String("two"), nil))
}

func TestLookup(t *testing.T) {
	op, ok := LookupBinary("<=")
	assert.True(t, ok)
	assert.Equal(t, Le, op)

	op, ok = LookupBinary("-")
	assert.True(t, ok)
	assert.Equal(t, Sub, op)

	_, ok = LookupBinary("!")
	assert.False(t, ok)

	op, ok = LookupUnary("-")
	assert.True(t, ok)
	assert.Equal(t, Neg, op)
	assert.True(t, op.IsUnary())
	assert.Equal(t, "-", op.String())
	assert.Equal(t, "??", Coalesce.String())
}

func TestTruth(t *testing.T) {
	assert.True(t, IsTrue(value.Bool(true)))
	assert.True(t, IsTrue(value.String("True")))
	assert.False(t, IsTrue(value.Number(1)))
	assert.True(t, IsFalse(value.Bool(false)))
	assert.False(t, IsFalse(value.Null()))
}
