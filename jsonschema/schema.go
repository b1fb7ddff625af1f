package jsonschema

// Draft is the dialect FromRegistry declares.
const Draft = "https://json-schema.org/draft/2020-12/schema"

// Schema is a minimal JSON Schema representation used for export.
// Keep this struct small and extend it as new descriptors need it.
type Schema struct {
	// Core
	SchemaURI string             `json:"$schema,omitempty"`
	Ref       string             `json:"$ref,omitempty"`
	Defs      map[string]*Schema `json:"$defs,omitempty"`
	Type      string             `json:"type,omitempty"`
	Format    string             `json:"format,omitempty"`
	Enum      []any              `json:"enum,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty"`

	// Array
	Items *Schema `json:"items,omitempty"`

	// Composition
	AnyOf []*Schema `json:"anyOf,omitempty"`
	Not   *Schema   `json:"not,omitempty"`
}
