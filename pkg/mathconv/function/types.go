package function

import (
	"github.com/randalmurphal/mathconv/pkg/mathconv/culture"
	"github.com/randalmurphal/mathconv/pkg/mathconv/operator"
	"github.com/randalmurphal/mathconv/pkg/mathconv/value"
)

func tryParseDouble(c *culture.Culture, v value.Value) value.Value {
	if f, ok := value.ToNumber(v, c); ok {
		return value.Number(f)
	}
	return value.Null()
}

func getType(_ *culture.Culture, v value.Value) value.Value {
	return value.TypeOf(value.TypeOfValue(v))
}

// convertType converts a to the type referenced by b. When b is not a type
// reference, or the conversion fails, a is returned unchanged.
func convertType(c *culture.Culture, a, b value.Value) value.Value {
	ref, ok := b.AsType()
	if !ok {
		return a
	}
	return value.ConvertType(a, ref, c)
}

// enumEquals compares two values where at least one is an enum. Enums of
// different types are never equal; a non-enum is first converted to the
// other side's enum type.
func enumEquals(c *culture.Culture, a, b value.Value) value.Value {
	if a.IsNull() || b.IsNull() {
		return value.Bool(a.IsNull() && b.IsNull())
	}

	at, _, aEnum := a.AsEnum()
	bt, _, bEnum := b.AsEnum()
	switch {
	case aEnum && bEnum:
		return value.Bool(operator.Equals(a, b, c))
	case !aEnum && !bEnum:
		return value.Bool(false)
	}

	enum, other, typ := a, b, at
	if bEnum {
		enum, other, typ = b, a, bt
	}
	converted, ok := value.ToEnum(other, typ)
	if !ok {
		return value.Bool(false)
	}
	return value.Bool(operator.Equals(enum, converted, c))
}
