package engine

import (
	"fmt"
	"slices"
	"sort"
	"strconv"
	"time"

	"github.com/Venefilyn/cockpit-bootc/codec"
	"github.com/Venefilyn/cockpit-bootc/schema"
)

// missingValue stands in for a property that is absent from its object.
type missingValue struct{}

var missing any = missingValue{}

// Transform checks v against t and converts it in direction dir. Objects
// are re-keyed through the property maps of their shapes. The first
// mismatch aborts the walk.
func Transform(reg *schema.Registry, v any, t schema.Type, dir schema.Direction) (any, error) {
	tr := &transformer{reg: reg, dir: dir}
	out, m := tr.transform(v, t, nil, "")
	if m != nil {
		return nil, m
	}
	if out == missing {
		return nil, nil
	}
	return out, nil
}

type transformer struct {
	reg *schema.Registry
	dir schema.Direction
}

func (tr *transformer) transform(v any, t schema.Type, path []string, owner string) (any, *schema.Mismatch) {
	switch x := t.(type) {
	case schema.AnyType:
		return v, nil
	case schema.NeverType:
		return nil, tr.fail(schema.CodeInvalidType, x, v, path, owner)
	case schema.PrimitiveType:
		if primitiveMatches(x.Kind, v) {
			return v, nil
		}
		return nil, tr.fail(schema.CodeInvalidType, x, v, path, owner)
	case schema.NullType:
		if v == nil {
			return nil, nil
		}
		return nil, tr.fail(schema.CodeInvalidType, x, v, path, owner)
	case schema.AbsentType:
		if v == missing {
			return missing, nil
		}
		return nil, tr.fail(schema.CodeInvalidType, x, v, path, owner)
	case *schema.EnumType:
		if s, ok := v.(string); ok && slices.Contains(x.Values, s) {
			return s, nil
		}
		return nil, tr.fail(schema.CodeInvalidEnum, x, v, path, owner)
	case schema.RefType:
		resolved := tr.reg.Resolve(x.Name)
		if o, ok := resolved.(*schema.ObjectType); ok {
			return tr.transformObject(v, o, path, owner, x.Name)
		}
		return tr.transform(v, resolved, path, owner)
	case *schema.UnionType:
		return tr.transformUnion(v, x, path, owner)
	case *schema.ArrayType:
		arr, ok := v.([]any)
		if !ok {
			return nil, tr.fail(schema.CodeInvalidType, x, v, path, owner)
		}
		out := make([]any, len(arr))
		for i, e := range arr {
			r, m := tr.transform(e, x.Items, appendPath(path, strconv.Itoa(i)), owner)
			if m != nil {
				return nil, m
			}
			out[i] = r
		}
		return out, nil
	case schema.DateTimeType:
		return tr.transformDateTime(v, x, path, owner)
	case *schema.ObjectType:
		return tr.transformObject(v, x, path, owner, "")
	}
	panic(fmt.Sprintf("engine: unhandled descriptor %T", t))
}

func (tr *transformer) transformUnion(v any, u *schema.UnionType, path []string, owner string) (any, *schema.Mismatch) {
	var deepest *schema.Mismatch
	for _, member := range u.Members {
		out, m := tr.transform(v, member, path, owner)
		if m == nil {
			return out, nil
		}
		// Keep the first failure that happened below this position: the
		// member accepted the value's shape and a nested check failed.
		for c := m; c != nil; c = c.Cause {
			if len(c.Path) > len(path) {
				if deepest == nil || len(c.Innermost().Path) > len(deepest.Innermost().Path) {
					deepest = c
				}
				break
			}
		}
	}
	m := tr.fail(schema.CodeInvalidType, u, v, path, owner)
	m.Cause = deepest
	return nil, m
}

func (tr *transformer) transformDateTime(v any, t schema.Type, path []string, owner string) (any, *schema.Mismatch) {
	var ts time.Time
	switch x := v.(type) {
	case nil:
		return nil, nil
	case string:
		parsed, err := codec.ParseDateTime(x)
		if err != nil {
			return nil, tr.fail(schema.CodeInvalidFormat, t, v, path, owner)
		}
		ts = parsed
	case time.Time:
		ts = x.UTC()
	default:
		return nil, tr.fail(schema.CodeInvalidType, t, v, path, owner)
	}
	if tr.dir == schema.Encode {
		return codec.FormatDateTime(ts), nil
	}
	return ts, nil
}

func (tr *transformer) transformObject(v any, o *schema.ObjectType, path []string, owner, name string) (any, *schema.Mismatch) {
	src, ok := asObject(v)
	if !ok {
		m := tr.fail(schema.CodeInvalidType, o, v, path, owner)
		if name != "" {
			m.Expected = name
		}
		return nil, m
	}
	if name == "" {
		name = owner
	}
	props := o.Properties(tr.dir)
	out := NewObject()
	for _, key := range props.Keys() {
		entry, _ := props.Get(key)
		val, ok := src.Get(key)
		if !ok {
			val = missing
		}
		r, m := tr.transform(val, entry.Type, appendPath(path, key), name)
		if m != nil {
			return nil, m
		}
		if r == missing {
			continue
		}
		out.Set(entry.Key, r)
	}
	_, closed := o.Additional.(schema.NeverType)
	for _, key := range src.keys {
		if o.Declares(key) {
			continue
		}
		if closed {
			m := tr.fail(schema.CodeUnknownKey, o.Additional, src.vals[key], appendPath(path, key), name)
			return nil, m
		}
		r, m := tr.transform(src.vals[key], o.Additional, appendPath(path, key), name)
		if m != nil {
			return nil, m
		}
		out.Set(key, r)
	}
	return out, nil
}

func (tr *transformer) fail(code string, t schema.Type, v any, path []string, owner string) *schema.Mismatch {
	m := &schema.Mismatch{Code: code, Expected: schema.Describe(t), Path: path, Type: owner}
	if v == missing {
		m.Missing = true
		if code == schema.CodeInvalidType || code == schema.CodeInvalidEnum {
			m.Code = schema.CodeRequired
		}
	} else {
		m.Value = v
	}
	return m
}

func primitiveMatches(kind schema.PrimitiveKind, v any) bool {
	switch kind {
	case schema.KindString:
		_, ok := v.(string)
		return ok
	case schema.KindNumber:
		return isNumber(v)
	case schema.KindBoolean:
		_, ok := v.(bool)
		return ok
	}
	return false
}

// asObject accepts *Object and plain string-keyed maps; map keys are
// visited in sorted order.
func asObject(v any) (*Object, bool) {
	switch x := v.(type) {
	case *Object:
		return x, x != nil
	case map[string]any:
		if x == nil {
			return nil, false
		}
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		o := NewObject()
		for _, k := range keys {
			o.Set(k, x[k])
		}
		return o, true
	}
	return nil, false
}

func appendPath(path []string, seg string) []string {
	out := make([]string, len(path)+1)
	copy(out, path)
	out[len(path)] = seg
	return out
}
