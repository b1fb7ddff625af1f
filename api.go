package bootc

import (
	eng "github.com/Venefilyn/cockpit-bootc/internal/engine"
	"github.com/Venefilyn/cockpit-bootc/schema"
)

// Converter casts documents to and from the internal representation
// described by a schema registry. It holds no mutable state and is safe
// for concurrent use.
type Converter struct {
	reg *schema.Registry
}

// NewConverter returns a Converter over reg.
func NewConverter(reg *schema.Registry) *Converter {
	return &Converter{reg: reg}
}

// Registry returns the registry the converter resolves names against.
func (c *Converter) Registry() *schema.Registry { return c.reg }

// Cast parses the document in src and decodes it against the named root
// type. On error nothing usable is returned: a *ParseError when the
// document is unreadable, a *SchemaMismatch when it does not conform.
func (c *Converter) Cast(src Source, root string, opts ...ParseOpt) (any, error) {
	v, err := Parse(src, opts...)
	if err != nil {
		return nil, err
	}
	return c.CastValue(v, root)
}

// CastValue decodes an already parsed dynamic value against root.
func (c *Converter) CastValue(v any, root string) (any, error) {
	return eng.Transform(c.reg, v, schema.Ref(root), schema.Decode)
}

// Uncast encodes an internal value against root, returning the document
// value tree.
func (c *Converter) Uncast(v any, root string) (any, error) {
	return eng.Transform(c.reg, v, schema.Ref(root), schema.Encode)
}

// UncastJSON encodes an internal value against root and renders it as
// JSON text. Declared properties come first in declaration order,
// followed by passthrough keys in their original order.
func (c *Converter) UncastJSON(v any, root string) ([]byte, error) {
	out, err := c.Uncast(v, root)
	if err != nil {
		return nil, err
	}
	return MarshalJSON(out)
}

// UncastYAML is UncastJSON rendering YAML.
func (c *Converter) UncastYAML(v any, root string) ([]byte, error) {
	out, err := c.Uncast(v, root)
	if err != nil {
		return nil, err
	}
	return MarshalYAML(out)
}

// Cast decodes JSON document text against root in reg.
func Cast(reg *schema.Registry, data []byte, root string) (any, error) {
	return NewConverter(reg).Cast(JSONBytes(data), root)
}

// Uncast encodes an internal value against root in reg as JSON text.
func Uncast(reg *schema.Registry, v any, root string) ([]byte, error) {
	return NewConverter(reg).UncastJSON(v, root)
}
