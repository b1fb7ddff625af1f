package schema

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownType reports a reference to a name the registry does not
// define. It is a schema-authoring defect, never a data error.
var ErrUnknownType = errors.New("schema: unknown type")

// Registry maps type names to descriptors. It is read-only after
// construction and safe for concurrent use.
type Registry struct {
	defs map[string]Type
}

// NewRegistry builds a registry and checks that every reference reachable
// from its definitions resolves.
func NewRegistry(defs map[string]Type) (*Registry, error) {
	r := &Registry{defs: make(map[string]Type, len(defs))}
	for name, t := range defs {
		if t == nil {
			return nil, fmt.Errorf("schema: nil descriptor for %q", name)
		}
		r.defs[name] = t
	}
	for _, name := range r.Names() {
		if err := r.checkRefs(name, r.defs[name]); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// MustRegistry is NewRegistry that panics on error. It is meant for
// package-level registries.
func MustRegistry(defs map[string]Type) *Registry {
	r, err := NewRegistry(defs)
	if err != nil {
		panic(err)
	}
	return r
}

// Resolve returns the descriptor registered under name. An unknown name
// panics.
func (r *Registry) Resolve(name string) Type {
	t, ok := r.defs[name]
	if !ok {
		panic(fmt.Errorf("%w %q", ErrUnknownType, name))
	}
	return t
}

// Lookup returns the descriptor registered under name, if any.
func (r *Registry) Lookup(name string) (Type, bool) {
	t, ok := r.defs[name]
	return t, ok
}

// Names returns every registered name in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.defs))
	for n := range r.defs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) checkRefs(owner string, t Type) error {
	switch x := t.(type) {
	case RefType:
		if _, ok := r.defs[x.Name]; !ok {
			return fmt.Errorf("%w %q referenced from %q", ErrUnknownType, x.Name, owner)
		}
	case *UnionType:
		for _, m := range x.Members {
			if err := r.checkRefs(owner, m); err != nil {
				return err
			}
		}
	case *ArrayType:
		return r.checkRefs(owner, x.Items)
	case *ObjectType:
		for _, p := range x.Props {
			if p.Type == nil {
				return fmt.Errorf("schema: nil descriptor for property %q of %q", p.External, owner)
			}
			if err := r.checkRefs(owner, p.Type); err != nil {
				return err
			}
		}
		return r.checkRefs(owner, x.Additional)
	case nil:
		return fmt.Errorf("schema: nil descriptor inside %q", owner)
	}
	return nil
}
