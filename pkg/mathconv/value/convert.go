package value

import (
	"math"
	"strings"
	"time"

	"github.com/randalmurphal/mathconv/pkg/mathconv/culture"
)

// dateLayouts are tried in order when converting text to a DateTime.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// displayDateLayout is the layout used when a DateTime is shown as text.
const displayDateLayout = "2006-01-02 15:04:05"

func orInvariant(c *culture.Culture) *culture.Culture {
	if c == nil {
		return culture.Invariant()
	}
	return c
}

// ToNumber coerces v to a number. Numbers convert to themselves, enums to
// their ordinal and strings are parsed under c (nil means invariant).
// Booleans, dates and every other kind fail.
func ToNumber(v Value, c *culture.Culture) (float64, bool) {
	switch v.kind {
	case KindNumber:
		return v.n, true
	case KindEnum:
		return v.n, true
	case KindString:
		return orInvariant(c).ParseFloat(v.s)
	default:
		return 0, false
	}
}

// ToInt coerces v to a number and reports whether that number is integral
// and within the 32-bit range.
func ToInt(v Value, c *culture.Culture) (int, bool) {
	f, ok := ToNumber(v, c)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(f), true
}

// ToBool coerces v to a boolean. Only booleans and the strings "true" and
// "false" (any case) succeed.
func ToBool(v Value) (bool, bool) {
	switch v.kind {
	case KindBool:
		return v.b, true
	case KindString:
		s := strings.TrimSpace(v.s)
		if strings.EqualFold(s, "true") {
			return true, true
		}
		if strings.EqualFold(s, "false") {
			return false, true
		}
	}
	return false, false
}

// ToString succeeds only when v already is a string.
func ToString(v Value) (string, bool) {
	return v.s, v.kind == KindString
}

// ToDateTime coerces v to a point in time. Strings are parsed as ISO 8601.
func ToDateTime(v Value) (time.Time, bool) {
	switch v.kind {
	case KindDateTime:
		return v.t, true
	case KindString:
		s := strings.TrimSpace(v.s)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// ToEnum converts v to a member of t. An enum of the same type converts to
// itself; strings and type references resolve by member name; numbers
// resolve by integral ordinal. Anything else, or a name or ordinal t does
// not declare, fails.
func ToEnum(v Value, t *EnumType) (Value, bool) {
	if t == nil {
		return Null(), false
	}
	switch v.kind {
	case KindEnum:
		if v.enum == t {
			return v, true
		}
	case KindString:
		return t.Value(strings.TrimSpace(v.s))
	case KindType:
		return t.Value(v.ref.name)
	case KindNumber:
		if v.n == math.Trunc(v.n) && !math.IsInf(v.n, 0) {
			return t.At(int(v.n))
		}
	}
	return Null(), false
}

// TryConvert converts v to the target named by ref.
func TryConvert(v Value, ref *TypeRef, c *culture.Culture) (Value, bool) {
	if ref == nil {
		return Null(), false
	}
	if v.kind == ref.kind && ref.kind != KindEnum {
		return v, true
	}
	switch ref.kind {
	case KindNumber:
		if f, ok := ToNumber(v, c); ok {
			return Number(f), true
		}
	case KindString:
		if v.kind != KindNull {
			return String(Display(v, c)), true
		}
	case KindBool:
		if b, ok := ToBool(v); ok {
			return Bool(b), true
		}
	case KindDateTime:
		if t, ok := ToDateTime(v); ok {
			return DateTime(t), true
		}
	case KindEnum:
		return ToEnum(v, ref.enum)
	case KindType:
		if r := TypeOfValue(v); r != nil {
			return TypeOf(r), true
		}
	}
	return Null(), false
}

// ConvertType converts v to the target named by ref, returning v unchanged
// when the conversion is not possible.
func ConvertType(v Value, ref *TypeRef, c *culture.Culture) Value {
	if out, ok := TryConvert(v, ref, c); ok {
		return out
	}
	return v
}

// Display returns the text a value shows as when concatenated or formatted.
// Null displays as the empty string; numbers use c's decimal separator.
func Display(v Value, c *culture.Culture) string {
	switch v.kind {
	case KindNull:
		return ""
	case KindBool:
		if v.b {
			return "True"
		}
		return "False"
	case KindNumber:
		return orInvariant(c).FormatFloat(v.n)
	case KindString:
		return v.s
	case KindDateTime:
		return orInvariant(c).FormatDate(v.t, displayDateLayout)
	case KindEnum:
		return v.enum.Member(int(v.n))
	case KindType:
		return v.ref.name
	case KindSequence:
		parts := make([]string, len(v.seq))
		for i, item := range v.seq {
			parts[i] = Display(item, c)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindOpaque:
		return v.s
	}
	return ""
}
