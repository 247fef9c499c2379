package function

import (
	"math"
	"strings"
	"time"

	"github.com/randalmurphal/mathconv/pkg/mathconv/culture"
	"github.com/randalmurphal/mathconv/pkg/mathconv/value"
)

// now is replaced in tests.
var now = time.Now

func builtinDescriptors() []*Descriptor {
	return []*Descriptor{
		ZeroArg("Now", false, func(*culture.Culture) value.Value { return value.DateTime(now()) }),
		ZeroArg("UnsetValue", true, func(*culture.Culture) value.Value { return value.Unset() }),

		OneNumber("Cos", math.Cos),
		OneNumber("Sin", math.Sin),
		OneNumber("Tan", math.Tan),
		OneNumber("Abs", math.Abs),
		OneNumber("Acos", math.Acos),
		OneNumber("Asin", math.Asin),
		OneNumber("Atan", math.Atan),
		OneNumber("Ceiling", math.Ceil),
		OneNumber("Floor", math.Floor),
		OneNumber("Sqrt", math.Sqrt),
		OneNumber("Degrees", func(x float64) float64 { return x / math.Pi * 180 }),
		OneNumber("Radians", func(x float64) float64 { return x / 180 * math.Pi }),

		OneArg("ToLower", func(c *culture.Culture, v value.Value) value.Value {
			return value.String(strings.ToLower(value.Display(v, c)))
		}),
		OneArg("ToUpper", func(c *culture.Culture, v value.Value) value.Value {
			return value.String(strings.ToUpper(value.Display(v, c)))
		}),
		OneArg("TryParseDouble", tryParseDouble),
		OneArg("GetType", getType),

		TwoArg("StartsWith", affix(strings.HasPrefix)),
		TwoArg("EndsWith", affix(strings.HasSuffix)),
		TwoArg("Contains", contains),
		TwoArg("Atan2", twoNumbers(math.Atan2)),
		TwoArg("Log", twoNumbers(logBase)),
		TwoArg("ConvertType", convertType),
		TwoArg("EnumEquals", enumEquals),

		Variadic("IsNull", Exactly(2), isNull),
		Variadic("Round", Between(1, 2), round),
		Variadic("And", AtLeast(1), and),
		Variadic("Or", AtLeast(1), or),
		Variadic("Nor", AtLeast(1), nor),
		Variadic("Max", Any, extreme(greater)),
		Variadic("Min", Any, extreme(less)),
		Variadic("Format", AtLeast(1), formatText),
		Variadic("Concat", Any, concat),
		Variadic("Join", AtLeast(1), join),
		Variadic("Average", Any, average),
		Variadic("Throw", Any, throw),
		Variadic("TryCatch", AtLeast(2), tryCatch),
	}
}

func twoNumbers(fn func(a, b float64) float64) func(*culture.Culture, value.Value, value.Value) value.Value {
	return func(c *culture.Culture, a, b value.Value) value.Value {
		x, ok := value.ToNumber(a, c)
		if !ok {
			return value.Null()
		}
		y, ok := value.ToNumber(b, c)
		if !ok {
			return value.Null()
		}
		return value.Number(fn(x, y))
	}
}

// logBase returns the logarithm of a in base b.
func logBase(a, b float64) float64 {
	return math.Log(a) / math.Log(b)
}
