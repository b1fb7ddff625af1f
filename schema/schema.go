package schema

import "sync"

// Type is a type descriptor. The set of implementations is closed: the
// transform engine switches over every variant defined in this file.
type Type interface {
	isType()
}

// Direction selects which side of a Property is the lookup key.
type Direction int

const (
	Decode Direction = iota // external -> internal
	Encode                  // internal -> external
)

func (d Direction) String() string {
	if d == Encode {
		return "encode"
	}
	return "decode"
}

// PrimitiveKind enumerates the primitive value kinds.
type PrimitiveKind int

const (
	KindString PrimitiveKind = iota
	KindNumber
	KindBoolean
)

func (k PrimitiveKind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	default:
		return "string"
	}
}

// PrimitiveType matches by exact dynamic type; nothing is coerced.
type PrimitiveType struct{ Kind PrimitiveKind }

// NullType matches only nil.
type NullType struct{}

// AbsentType matches only a property missing from its object. It is the
// leading member of an optional union.
type AbsentType struct{}

// EnumType matches a string equal to one of Values.
type EnumType struct{ Values []string }

// RefType is resolved against the Registry at transform time.
type RefType struct{ Name string }

// UnionType matches the first member that transforms without error.
// Member order is significant.
type UnionType struct{ Members []Type }

// ArrayType matches a sequence whose elements all match Items.
type ArrayType struct{ Items Type }

// DateTimeType matches nil or a parseable timestamp.
type DateTimeType struct{}

// AnyType matches everything and passes it through unchanged.
type AnyType struct{}

// NeverType matches nothing.
type NeverType struct{}

// Property declares one key of an object shape.
type Property struct {
	External string // key in the document
	Internal string // key in the internal value
	Type     Type
}

// ObjectType matches a key/value object. Keys not declared in Props are
// checked against Additional; use Never to reject them.
type ObjectType struct {
	Props      []Property
	Additional Type

	once  sync.Once
	maps  [2]*PropertyMap
	names map[string]struct{}
}

func (PrimitiveType) isType() {}
func (NullType) isType()      {}
func (AbsentType) isType()    {}
func (*EnumType) isType()     {}
func (RefType) isType()       {}
func (*UnionType) isType()    {}
func (*ArrayType) isType()    {}
func (DateTimeType) isType()  {}
func (AnyType) isType()       {}
func (NeverType) isType()     {}
func (*ObjectType) isType()   {}

var (
	String   Type = PrimitiveType{Kind: KindString}
	Number   Type = PrimitiveType{Kind: KindNumber}
	Boolean  Type = PrimitiveType{Kind: KindBoolean}
	Null     Type = NullType{}
	Absent   Type = AbsentType{}
	DateTime Type = DateTimeType{}
	Any      Type = AnyType{}
	Never    Type = NeverType{}
)

// Enum returns a closed literal enumeration.
func Enum(values ...string) Type {
	return &EnumType{Values: append([]string(nil), values...)}
}

// Ref refers to a named registry entry.
func Ref(name string) Type { return RefType{Name: name} }

// Union returns a union whose members are tried in the given order.
func Union(members ...Type) Type {
	return &UnionType{Members: append([]Type(nil), members...)}
}

// Optional marks t as allowed to be missing from its enclosing object.
func Optional(t Type) Type { return Union(Absent, t) }

// Array returns a sequence of t.
func Array(items Type) Type { return &ArrayType{Items: items} }

// Object returns an object shape with the given declared properties.
func Object(props []Property, additional Type) *ObjectType {
	if additional == nil {
		additional = Never
	}
	return &ObjectType{Props: append([]Property(nil), props...), Additional: additional}
}

// MapOf returns an object shape without declared properties whose values
// all match t.
func MapOf(t Type) *ObjectType { return Object(nil, t) }

// Prop declares a property whose external and internal keys are the same.
func Prop(key string, t Type) Property {
	return Property{External: key, Internal: key, Type: t}
}

// RenamedProp declares a property stored under a different internal key.
func RenamedProp(external, internal string, t Type) Property {
	return Property{External: external, Internal: internal, Type: t}
}

// IsOptional reports whether t accepts a missing property.
func IsOptional(t Type) bool {
	u, ok := t.(*UnionType)
	if !ok {
		return false
	}
	for _, m := range u.Members {
		if _, ok := m.(AbsentType); ok {
			return true
		}
		if IsOptional(m) {
			return true
		}
	}
	return false
}
