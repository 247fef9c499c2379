package value

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/mathconv/pkg/mathconv/culture"
)

var visibility = NewEnumType("Visibility", "Visible", "Hidden", "Collapsed")

func TestFromAny(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name string
		in   any
		kind Kind
	}{
		{name: "nil", in: nil, kind: KindNull},
		{name: "bool", in: true, kind: KindBool},
		{name: "int", in: 3, kind: KindNumber},
		{name: "int64", in: int64(3), kind: KindNumber},
		{name: "uint8", in: uint8(3), kind: KindNumber},
		{name: "float32", in: float32(1.5), kind: KindNumber},
		{name: "string", in: "hi", kind: KindString},
		{name: "time", in: ts, kind: KindDateTime},
		{name: "slice", in: []any{1, "a"}, kind: KindSequence},
		{name: "strings", in: []string{"a", "b"}, kind: KindSequence},
		{name: "value passthrough", in: Number(2), kind: KindNumber},
		{name: "type ref", in: NumberType, kind: KindType},
		{name: "nil pointer", in: (*int)(nil), kind: KindNull},
		{name: "struct", in: struct{ A int }{1}, kind: KindOpaque},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, FromAny(tt.in).Kind())
		})
	}
}

func TestEqual(t *testing.T) {
	hidden := visibility.MustValue("Hidden")
	other := NewEnumType("Other", "A", "B")
	b, _ := other.At(1)

	assert.True(t, Equal(Null(), Null()))
	assert.True(t, Equal(Number(2), Number(2)))
	assert.False(t, Equal(Number(2), String("2")))
	assert.True(t, Equal(String("a"), String("a")))
	assert.True(t, Equal(hidden, visibility.MustValue("Hidden")))
	assert.False(t, Equal(hidden, b), "same ordinal, different enum type")
	assert.True(t, Equal(Sequence(Number(1), String("x")), Sequence(Number(1), String("x"))))
	assert.False(t, Equal(Sequence(Number(1)), Sequence(Number(1), Number(2))))
	assert.True(t, Equal(Unset(), Unset()))
	assert.False(t, Equal(Opaque("s", []int{1}), Opaque("s", []int{1})), "uncomparable payloads are never equal")
}

// box is comparable as a type, but comparing two boxes holding slices
// panics at run time.
type box struct{ v any }

func TestEqual_InterfaceFieldPayloads(t *testing.T) {
	assert.NotPanics(t, func() {
		assert.False(t, Equal(FromAny(box{[]int{1}}), FromAny(box{[]int{1}})))
	})
	assert.True(t, Equal(FromAny(box{1}), FromAny(box{1})))
	assert.False(t, Equal(FromAny(box{1}), FromAny(box{2})))
}

func TestToNumber(t *testing.T) {
	de := culture.MustParse("de-DE")

	tests := []struct {
		name    string
		in      Value
		culture *culture.Culture
		want    float64
		ok      bool
	}{
		{name: "number", in: Number(4.5), want: 4.5, ok: true},
		{name: "numeric string", in: String("12.5"), want: 12.5, ok: true},
		{name: "german string", in: String("12,5"), culture: de, want: 12.5, ok: true},
		{name: "enum ordinal", in: visibility.MustValue("Collapsed"), want: 2, ok: true},
		{name: "bad string", in: String("twelve"), ok: false},
		{name: "bool", in: Bool(true), ok: false},
		{name: "null", in: Null(), ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToNumber(tt.in, tt.culture)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.want, got, 1e-12)
			}
		})
	}
}

func TestToInt(t *testing.T) {
	n, ok := ToInt(Number(2), nil)
	assert.True(t, ok)
	assert.Equal(t, 2, n)

	_, ok = ToInt(Number(1.5), nil)
	assert.False(t, ok)

	n, ok = ToInt(String("3"), nil)
	assert.True(t, ok)
	assert.Equal(t, 3, n)
}

func TestToBool(t *testing.T) {
	b, ok := ToBool(Bool(true))
	assert.True(t, ok)
	assert.True(t, b)

	b, ok = ToBool(String("False"))
	assert.True(t, ok)
	assert.False(t, b)

	_, ok = ToBool(Number(1))
	assert.False(t, ok)

	_, ok = ToBool(Null())
	assert.False(t, ok)
}

func TestToEnum(t *testing.T) {
	other := NewEnumType("Other", "Visible")

	tests := []struct {
		name string
		in   Value
		want string
		ok   bool
	}{
		{name: "by name", in: String("Hidden"), want: "Hidden", ok: true},
		{name: "by ordinal", in: Number(2), want: "Collapsed", ok: true},
		{name: "same enum", in: visibility.MustValue("Visible"), want: "Visible", ok: true},
		{name: "by type reference name", in: TypeOf(EnumRef(NewEnumType("Hidden"))), want: "Hidden", ok: true},
		{name: "unknown name", in: String("Gone"), ok: false},
		{name: "ordinal out of range", in: Number(7), ok: false},
		{name: "fractional ordinal", in: Number(1.5), ok: false},
		{name: "other enum type", in: other.MustValue("Visible"), ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToEnum(tt.in, visibility)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				typ, _, isEnum := got.AsEnum()
				require.True(t, isEnum)
				assert.Same(t, visibility, typ)
				assert.Equal(t, tt.want, got.String())
			}
		})
	}
}

func TestConvertType(t *testing.T) {
	assert.Equal(t, Number(3), ConvertType(String("3"), NumberType, nil))
	assert.Equal(t, String("3"), ConvertType(Number(3), StringType, nil))
	assert.Equal(t, Bool(true), ConvertType(String("true"), BoolType, nil))
	assert.Equal(t, visibility.MustValue("Hidden"), ConvertType(String("Hidden"), EnumRef(visibility), nil))

	unchanged := String("not a number")
	assert.Equal(t, unchanged, ConvertType(unchanged, NumberType, nil))
}

func TestDisplay(t *testing.T) {
	de := culture.MustParse("de-DE")

	assert.Equal(t, "", Display(Null(), nil))
	assert.Equal(t, "True", Display(Bool(true), nil))
	assert.Equal(t, "2.5", Display(Number(2.5), nil))
	assert.Equal(t, "2,5", Display(Number(2.5), de))
	assert.Equal(t, "Hidden", Display(visibility.MustValue("Hidden"), nil))
	assert.Equal(t, "Double", Display(TypeOf(NumberType), nil))
	assert.Equal(t, "[1, a]", Display(Sequence(Number(1), String("a")), nil))
	assert.Equal(t, "UnsetValue", Display(Unset(), nil))
}

func TestTypeOfValue(t *testing.T) {
	assert.Nil(t, TypeOfValue(Null()))
	assert.Equal(t, "Double", TypeOfValue(Number(1)).Name())
	assert.True(t, TypeOfValue(visibility.MustValue("Visible")).Equal(EnumRef(visibility)))
	assert.False(t, EnumRef(visibility).Equal(NumberType))
}
