package schema

import "strings"

// Describe renders the expectation of t for error messages.
func Describe(t Type) string {
	switch x := t.(type) {
	case PrimitiveType:
		return x.Kind.String()
	case NullType:
		return "null"
	case AbsentType:
		return "undefined"
	case *EnumType:
		return "one of [" + strings.Join(x.Values, ", ") + "]"
	case RefType:
		return x.Name
	case *UnionType:
		if len(x.Members) == 2 {
			if _, ok := x.Members[0].(AbsentType); ok {
				return "an optional " + Describe(x.Members[1])
			}
		}
		parts := make([]string, len(x.Members))
		for i, m := range x.Members {
			parts[i] = Describe(m)
		}
		return "one of [" + strings.Join(parts, ", ") + "]"
	case *ArrayType:
		return "an array of " + Describe(x.Items)
	case DateTimeType:
		return "date-time"
	case *ObjectType:
		return "object"
	case AnyType:
		return "any"
	case NeverType:
		return "nothing"
	}
	return "unknown"
}
