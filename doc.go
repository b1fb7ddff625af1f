// Package bootc validates and converts documents against declarative,
// name-indexed schemas.
//
// A schema is a graph of type descriptors kept in a schema.Registry.
// Casting parses document text into a dynamic value and walks it against a
// named root type, renaming keys from their external to their internal
// form; uncasting walks the other way and renders deterministic text.
// Either direction is all-or-nothing: the first value that does not
// conform aborts the call with a *SchemaMismatch naming its path.
//
// Layout:
//
// - schema/ holds the descriptor algebra, the registry and the per-shape
// property maps.
// - internal/engine holds the token decoder and the transform walk.
// - source/ holds the JSON (goccy/go-json) and YAML (yaml.v3) tokenizers.
// - bootcapi/ holds the registry for `bootc status` host documents.
// - cmd/bootc-status validates a saved status document from the shell.
//
// Typical usage:
//
//	c := bootc.NewConverter(reg)
//	v, err := c.Cast(bootc.JSONBytes(data), "Host")
//	out, err := c.UncastJSON(v, "Host")
package bootc
