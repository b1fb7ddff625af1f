package schema

// PropertyEntry is one row of a PropertyMap: the key the value is emitted
// under and the descriptor it is checked against.
type PropertyEntry struct {
	Key  string
	Type Type
}

// PropertyMap maps source-side keys of an object shape to their
// counterpart keys for one Direction.
type PropertyMap struct {
	keys    []string
	entries map[string]PropertyEntry
}

// Keys returns the source-side keys in declaration order.
func (m *PropertyMap) Keys() []string { return m.keys }

// Get looks up a source-side key.
func (m *PropertyMap) Get(key string) (PropertyEntry, bool) {
	e, ok := m.entries[key]
	return e, ok
}

// Len returns the number of declared properties.
func (m *PropertyMap) Len() int { return len(m.keys) }

// Properties returns the lookup table for dir. Both directions are built
// together on first use and kept on the descriptor for its lifetime.
func (o *ObjectType) Properties(dir Direction) *PropertyMap {
	o.once.Do(o.buildMaps)
	return o.maps[dir]
}

// Declares reports whether key is a declared external or internal key.
func (o *ObjectType) Declares(key string) bool {
	o.once.Do(o.buildMaps)
	_, ok := o.names[key]
	return ok
}

func (o *ObjectType) buildMaps() {
	dec := &PropertyMap{keys: make([]string, 0, len(o.Props)), entries: make(map[string]PropertyEntry, len(o.Props))}
	enc := &PropertyMap{keys: make([]string, 0, len(o.Props)), entries: make(map[string]PropertyEntry, len(o.Props))}
	names := make(map[string]struct{}, 2*len(o.Props))
	for _, p := range o.Props {
		dec.keys = append(dec.keys, p.External)
		dec.entries[p.External] = PropertyEntry{Key: p.Internal, Type: p.Type}
		enc.keys = append(enc.keys, p.Internal)
		enc.entries[p.Internal] = PropertyEntry{Key: p.External, Type: p.Type}
		names[p.External] = struct{}{}
		names[p.Internal] = struct{}{}
	}
	o.maps[Decode] = dec
	o.maps[Encode] = enc
	o.names = names
}
