package value

// EnumType declares a closed set of named members. Members are addressed by
// ordinal (their index in Members) or by name. Enum values carry a pointer
// to their EnumType, so two enums are the same type only when they were
// created from the same declaration.
type EnumType struct {
	Name    string
	Members []string
}

// NewEnumType declares an enum type with the given member names.
func NewEnumType(name string, members ...string) *EnumType {
	cp := make([]string, len(members))
	copy(cp, members)
	return &EnumType{Name: name, Members: cp}
}

// Ordinal returns the ordinal of the member with the given name.
func (t *EnumType) Ordinal(member string) (int, bool) {
	for i, m := range t.Members {
		if m == member {
			return i, true
		}
	}
	return 0, false
}

// Member returns the name of the member at ordinal, or "" when out of range.
func (t *EnumType) Member(ordinal int) string {
	if ordinal < 0 || ordinal >= len(t.Members) {
		return ""
	}
	return t.Members[ordinal]
}

// Value returns the enum value for the named member.
func (t *EnumType) Value(member string) (Value, bool) {
	ord, ok := t.Ordinal(member)
	if !ok {
		return Null(), false
	}
	return Value{kind: KindEnum, enum: t, n: float64(ord)}, true
}

// MustValue is like Value but panics for an undeclared member.
func (t *EnumType) MustValue(member string) Value {
	v, ok := t.Value(member)
	if !ok {
		panic("value: enum " + t.Name + " has no member " + member)
	}
	return v
}

// At returns the enum value at ordinal.
func (t *EnumType) At(ordinal int) (Value, bool) {
	if ordinal < 0 || ordinal >= len(t.Members) {
		return Null(), false
	}
	return Value{kind: KindEnum, enum: t, n: float64(ordinal)}, true
}

// TypeRef names a conversion target: one of the builtin kinds or an EnumType.
type TypeRef struct {
	name string
	kind Kind
	enum *EnumType
}

// Builtin conversion targets.
var (
	NumberType   = &TypeRef{name: "Double", kind: KindNumber}
	StringType   = &TypeRef{name: "String", kind: KindString}
	BoolType     = &TypeRef{name: "Boolean", kind: KindBool}
	DateTimeType = &TypeRef{name: "DateTime", kind: KindDateTime}
	TypeType     = &TypeRef{name: "Type", kind: KindType}
	SequenceType = &TypeRef{name: "Sequence", kind: KindSequence}
)

// EnumRef returns the conversion target for an enum type.
func EnumRef(t *EnumType) *TypeRef {
	return &TypeRef{name: t.Name, kind: KindEnum, enum: t}
}

// Name returns the target's display name.
func (r *TypeRef) Name() string {
	return r.name
}

// Kind returns the value kind the target converts to.
func (r *TypeRef) Kind() Kind {
	return r.kind
}

// Enum returns the enum type for enum targets, or nil.
func (r *TypeRef) Enum() *EnumType {
	return r.enum
}

// String implements fmt.Stringer.
func (r *TypeRef) String() string {
	return r.name
}

// Equal reports whether both references name the same target.
func (r *TypeRef) Equal(o *TypeRef) bool {
	if r == nil || o == nil {
		return r == o
	}
	if r.kind == KindEnum || o.kind == KindEnum {
		return r.enum == o.enum
	}
	return r.kind == o.kind
}

// TypeOfValue returns the conversion target describing v's own category,
// or nil for Null and Opaque values.
func TypeOfValue(v Value) *TypeRef {
	switch v.kind {
	case KindBool:
		return BoolType
	case KindNumber:
		return NumberType
	case KindString:
		return StringType
	case KindDateTime:
		return DateTimeType
	case KindEnum:
		return EnumRef(v.enum)
	case KindType:
		return TypeType
	case KindSequence:
		return SequenceType
	default:
		return nil
	}
}
