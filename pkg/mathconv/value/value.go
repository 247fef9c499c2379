// Package value defines the dynamically-typed values that flow between
// formula variables, operators and functions, and the best-effort coercions
// between them.
//
// Value is a closed tagged union. Every conversion reports success with a
// boolean; none of them panics or returns an error, because callers treat a
// failed conversion as "no meaningful result" and degrade to Null.
package value

import (
	"fmt"
	"math"
	"reflect"
	"time"
)

// Kind is the category of a Value.
type Kind uint8

const (
	// KindNull is the absent value. The zero Value is Null.
	KindNull Kind = iota

	// KindBool is a boolean.
	KindBool

	// KindNumber is a double-precision number.
	KindNumber

	// KindString is a text value.
	KindString

	// KindDateTime is a point in time.
	KindDateTime

	// KindEnum is a member of a declared EnumType.
	KindEnum

	// KindType is a reference to a conversion target (see TypeRef).
	KindType

	// KindSequence is an ordered list of values.
	KindSequence

	// KindOpaque is a host-supplied sentinel the evaluator never inspects.
	KindOpaque
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindDateTime:
		return "datetime"
	case KindEnum:
		return "enum"
	case KindType:
		return "type"
	case KindSequence:
		return "sequence"
	case KindOpaque:
		return "opaque"
	default:
		return "unknown"
	}
}

// Value is an immutable dynamically-typed value.
type Value struct {
	kind    Kind
	b       bool
	n       float64
	s       string
	t       time.Time
	enum    *EnumType
	ref     *TypeRef
	seq     []Value
	payload any
}

// Null returns the null value.
func Null() Value {
	return Value{}
}

// Bool returns a boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Number returns a numeric value.
func Number(f float64) Value {
	return Value{kind: KindNumber, n: f}
}

// String returns a text value.
func String(s string) Value {
	return Value{kind: KindString, s: s}
}

// DateTime returns a point-in-time value.
func DateTime(t time.Time) Value {
	return Value{kind: KindDateTime, t: t}
}

// TypeOf returns a value referring to a conversion target.
func TypeOf(ref *TypeRef) Value {
	if ref == nil {
		return Null()
	}
	return Value{kind: KindType, ref: ref}
}

// Sequence returns an ordered list value. The slice is copied.
func Sequence(items ...Value) Value {
	cp := make([]Value, len(items))
	copy(cp, items)
	return Value{kind: KindSequence, seq: cp}
}

// Opaque wraps a host-supplied sentinel. The name is what the sentinel
// displays as; the payload is handed back untouched by Interface.
func Opaque(name string, payload any) Value {
	return Value{kind: KindOpaque, s: name, payload: payload}
}

// unset is the sentinel meaning "no value was supplied for this input".
var unset = Opaque("UnsetValue", nil)

// Unset returns the host "unset" sentinel.
func Unset() Value {
	return unset
}

// Kind returns the value's category.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether v is the null value.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// IsUnset reports whether v is the host "unset" sentinel.
func (v Value) IsUnset() bool {
	return v.kind == KindOpaque && v.s == unset.s && v.payload == nil
}

// AsBool returns the boolean payload when v is a Bool.
func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// AsNumber returns the numeric payload when v is a Number.
func (v Value) AsNumber() (float64, bool) {
	return v.n, v.kind == KindNumber
}

// AsString returns the text payload when v is a String.
func (v Value) AsString() (string, bool) {
	return v.s, v.kind == KindString
}

// AsDateTime returns the time payload when v is a DateTime.
func (v Value) AsDateTime() (time.Time, bool) {
	return v.t, v.kind == KindDateTime
}

// AsEnum returns the enum type and ordinal when v is an Enum.
func (v Value) AsEnum() (*EnumType, int, bool) {
	if v.kind != KindEnum {
		return nil, 0, false
	}
	return v.enum, int(v.n), true
}

// AsType returns the referenced target when v is a Type.
func (v Value) AsType() (*TypeRef, bool) {
	return v.ref, v.kind == KindType
}

// Items returns the elements when v is a Sequence.
func (v Value) Items() ([]Value, bool) {
	return v.seq, v.kind == KindSequence
}

// Interface returns v as a plain Go value: nil, bool, float64, string,
// time.Time, the enum member name, *TypeRef, []any, or the opaque payload
// (or name when the payload is nil).
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindNumber:
		return v.n
	case KindString:
		return v.s
	case KindDateTime:
		return v.t
	case KindEnum:
		return v.enum.Member(int(v.n))
	case KindType:
		return v.ref
	case KindSequence:
		out := make([]any, len(v.seq))
		for i, item := range v.seq {
			out[i] = item.Interface()
		}
		return out
	case KindOpaque:
		if v.payload != nil {
			return v.payload
		}
		return v.s
	default:
		return nil
	}
}

// String implements fmt.Stringer using invariant display rules.
func (v Value) String() string {
	return Display(v, nil)
}

// GoString renders the value with its kind, for test failure messages.
func (v Value) GoString() string {
	if v.kind == KindString {
		return fmt.Sprintf("string(%q)", v.s)
	}
	return fmt.Sprintf("%s(%s)", v.kind, v.String())
}

// FromAny converts a Go value supplied by a host into a Value. Integers and
// floats of every width become Numbers; slices become Sequences; unknown
// types become Opaque values carrying the original payload.
func FromAny(x any) Value {
	switch val := x.(type) {
	case nil:
		return Null()
	case Value:
		return val
	case bool:
		return Bool(val)
	case string:
		return String(val)
	case float64:
		return Number(val)
	case float32:
		return Number(float64(val))
	case int:
		return Number(float64(val))
	case int8:
		return Number(float64(val))
	case int16:
		return Number(float64(val))
	case int32:
		return Number(float64(val))
	case int64:
		return Number(float64(val))
	case uint:
		return Number(float64(val))
	case uint8:
		return Number(float64(val))
	case uint16:
		return Number(float64(val))
	case uint32:
		return Number(float64(val))
	case uint64:
		return Number(float64(val))
	case time.Time:
		return DateTime(val)
	case *TypeRef:
		return TypeOf(val)
	case []Value:
		return Sequence(val...)
	case []any:
		items := make([]Value, len(val))
		for i, item := range val {
			items[i] = FromAny(item)
		}
		return Value{kind: KindSequence, seq: items}
	case []string:
		items := make([]Value, len(val))
		for i, item := range val {
			items[i] = String(item)
		}
		return Value{kind: KindSequence, seq: items}
	case []float64:
		items := make([]Value, len(val))
		for i, item := range val {
			items[i] = Number(item)
		}
		return Value{kind: KindSequence, seq: items}
	}

	rv := reflect.ValueOf(x)
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return Null()
	}
	return Opaque(fmt.Sprintf("%T", x), x)
}

// Equal reports structural equality: same kind and same payload. Numbers
// compare by value (NaN is never equal), sequences element-wise.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.b == b.b
	case KindNumber:
		return a.n == b.n && !math.IsNaN(a.n)
	case KindString:
		return a.s == b.s
	case KindDateTime:
		return a.t.Equal(b.t)
	case KindEnum:
		return a.enum == b.enum && a.n == b.n
	case KindType:
		return a.ref.Equal(b.ref)
	case KindSequence:
		if len(a.seq) != len(b.seq) {
			return false
		}
		for i := range a.seq {
			if !Equal(a.seq[i], b.seq[i]) {
				return false
			}
		}
		return true
	case KindOpaque:
		return a.s == b.s && samePayload(a.payload, b.payload)
	}
	return false
}

// samePayload compares host payloads with ==. A comparable type can still
// hold an uncomparable dynamic value in an interface field, which panics;
// such payloads are unequal.
func samePayload(a, b any) (same bool) {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	defer func() {
		if recover() != nil {
			same = false
		}
	}()
	return a == b
}
