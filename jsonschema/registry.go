package jsonschema

import (
	"fmt"

	s "github.com/Venefilyn/cockpit-bootc/schema"
)

// FromRegistry exports every type of reg as a $defs entry and points the
// document at root. Properties use their external keys.
func FromRegistry(reg *s.Registry, root string) (*Schema, error) {
	if _, ok := reg.Lookup(root); !ok {
		return nil, fmt.Errorf("jsonschema: %w %q", s.ErrUnknownType, root)
	}
	out := &Schema{
		SchemaURI: Draft,
		Ref:       defRef(root),
		Defs:      make(map[string]*Schema),
	}
	for _, name := range reg.Names() {
		t, _ := reg.Lookup(name)
		def, err := convert(t)
		if err != nil {
			return nil, fmt.Errorf("jsonschema: %s: %w", name, err)
		}
		out.Defs[name] = def
	}
	return out, nil
}

func defRef(name string) string { return "#/$defs/" + name }

func convert(t s.Type) (*Schema, error) {
	switch x := t.(type) {
	case s.AnyType:
		return &Schema{}, nil
	case s.NeverType:
		return &Schema{Not: &Schema{}}, nil
	case s.PrimitiveType:
		return &Schema{Type: x.Kind.String()}, nil
	case s.NullType:
		return &Schema{Type: "null"}, nil
	case s.AbsentType:
		// Absence is expressed through "required"; on its own it admits
		// nothing that can appear in a document.
		return &Schema{Not: &Schema{}}, nil
	case *s.EnumType:
		vals := make([]any, len(x.Values))
		for i, v := range x.Values {
			vals[i] = v
		}
		return &Schema{Type: "string", Enum: vals}, nil
	case s.RefType:
		return &Schema{Ref: defRef(x.Name)}, nil
	case *s.UnionType:
		var members []*Schema
		for _, m := range x.Members {
			if _, ok := m.(s.AbsentType); ok {
				continue
			}
			ms, err := convert(m)
			if err != nil {
				return nil, err
			}
			members = append(members, ms)
		}
		if len(members) == 1 {
			return members[0], nil
		}
		return &Schema{AnyOf: members}, nil
	case *s.ArrayType:
		items, err := convert(x.Items)
		if err != nil {
			return nil, err
		}
		return &Schema{Type: "array", Items: items}, nil
	case s.DateTimeType:
		return &Schema{Type: "string", Format: "date-time"}, nil
	case *s.ObjectType:
		return convertObject(x)
	}
	return nil, fmt.Errorf("unsupported descriptor %T", t)
}

func convertObject(o *s.ObjectType) (*Schema, error) {
	props := make(map[string]*Schema, len(o.Props))
	var req []string
	for _, p := range o.Props {
		ps, err := convert(p.Type)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", p.External, err)
		}
		props[p.External] = ps
		if !s.IsOptional(p.Type) {
			req = append(req, p.External)
		}
	}
	var additional any
	switch a := o.Additional.(type) {
	case s.NeverType:
		additional = false
	case s.AnyType:
		additional = true
	default:
		as, err := convert(a)
		if err != nil {
			return nil, err
		}
		additional = as
	}
	return &Schema{Type: "object", Properties: props, Required: req, AdditionalProperties: additional}, nil
}
