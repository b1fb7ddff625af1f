package jsonschema_test

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	js "github.com/Venefilyn/cockpit-bootc/jsonschema"
	s "github.com/Venefilyn/cockpit-bootc/schema"
)

func testRegistry(t *testing.T) *s.Registry {
	t.Helper()
	reg, err := s.NewRegistry(map[string]s.Type{
		"Root": s.Object([]s.Property{
			s.Prop("name", s.String),
			s.Prop("tags", s.Optional(s.Array(s.String))),
			s.Prop("child", s.Optional(s.Union(s.Null, s.Ref("Child")))),
			s.RenamedProp("created_at", "createdAt", s.Union(s.DateTime, s.Null)),
		}, s.Any),
		"Child": s.Object([]s.Property{
			s.Prop("mode", s.Ref("Mode")),
		}, s.Never),
		"Mode": s.Enum("on", "off"),
	})
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	return reg
}

func TestFromRegistry_Defs(t *testing.T) {
	sc, err := js.FromRegistry(testRegistry(t), "Root")
	if err != nil {
		t.Fatalf("FromRegistry: %v", err)
	}
	if sc.Ref != "#/$defs/Root" || sc.SchemaURI != js.Draft {
		t.Fatalf("root: ref=%q schema=%q", sc.Ref, sc.SchemaURI)
	}
	if len(sc.Defs) != 3 {
		t.Fatalf("want 3 defs, got %d", len(sc.Defs))
	}

	root := sc.Defs["Root"]
	if got := strings.Join(root.Required, ","); got != "name,created_at" {
		t.Fatalf("required: %s", got)
	}
	if root.AdditionalProperties != true {
		t.Fatalf("root additionalProperties: %#v", root.AdditionalProperties)
	}
	if tags := root.Properties["tags"]; tags.Type != "array" || tags.Items.Type != "string" {
		t.Fatalf("tags: %+v", tags)
	}
	child := root.Properties["child"]
	if len(child.AnyOf) != 2 || child.AnyOf[0].Type != "null" || child.AnyOf[1].Ref != "#/$defs/Child" {
		t.Fatalf("child: %+v", child)
	}
	created := root.Properties["created_at"]
	if len(created.AnyOf) != 2 || created.AnyOf[0].Format != "date-time" {
		t.Fatalf("created_at: %+v", created)
	}
	if _, ok := root.Properties["createdAt"]; ok {
		t.Fatalf("internal key leaked into the export")
	}

	if sc.Defs["Child"].AdditionalProperties != false {
		t.Fatalf("closed object must export additionalProperties=false")
	}
	mode := sc.Defs["Mode"]
	if mode.Type != "string" || len(mode.Enum) != 2 || mode.Enum[0] != "on" {
		t.Fatalf("mode: %+v", mode)
	}
}

// normalize marshals v to JSON and unmarshals back into interface{} to remove ordering effects.
func normalize(v any) any {
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var out any
	_ = json.Unmarshal(b, &out)
	return out
}

func TestFromRegistry_Snapshot(t *testing.T) {
	sc, err := js.FromRegistry(testRegistry(t), "Root")
	if err != nil {
		t.Fatalf("FromRegistry: %v", err)
	}
	got := normalize(sc.Defs["Child"])
	want := normalize(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"mode": map[string]any{"$ref": "#/$defs/Mode"},
		},
		"required":             []any{"mode"},
		"additionalProperties": false,
	})
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("child schema mismatch\n got=%v\nwant=%v", got, want)
	}
	got = normalize(sc.Defs["Mode"])
	want = normalize(map[string]any{"type": "string", "enum": []any{"on", "off"}})
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("mode schema mismatch\n got=%v\nwant=%v", got, want)
	}
}

func TestFromRegistry_UnknownRoot(t *testing.T) {
	_, err := js.FromRegistry(testRegistry(t), "Nope")
	if !errors.Is(err, s.ErrUnknownType) {
		t.Fatalf("want ErrUnknownType, got %v", err)
	}
}
