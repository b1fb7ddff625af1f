package engine

import (
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	s "github.com/Venefilyn/cockpit-bootc/schema"
)

func obj(kv ...any) *Object {
	o := NewObject()
	for i := 0; i+1 < len(kv); i += 2 {
		o.Set(kv[i].(string), kv[i+1])
	}
	return o
}

func testRegistry() *s.Registry {
	return s.MustRegistry(map[string]s.Type{
		"Entry": s.Object([]s.Property{
			s.Prop("flag", s.Boolean),
			s.RenamedProp("deploy_serial", "deploySerial", s.Optional(s.Number)),
			s.Prop("when", s.Optional(s.Union(s.DateTime, s.Null))),
			s.Prop("mode", s.Optional(s.Ref("Mode"))),
			s.Prop("next", s.Optional(s.Union(s.Null, s.Ref("Entry")))),
		}, s.Any),
		"List":   s.Object([]s.Property{s.Prop("items", s.Array(s.Ref("Entry")))}, s.Never),
		"Remote": s.Object([]s.Property{s.Prop("remote", s.String)}, s.Never),
		"Mode":   s.Enum("fast", "slow"),
	})
}

func TestTransform_Primitives(t *testing.T) {
	reg := testRegistry()
	cases := []struct {
		name string
		v    any
		t    s.Type
		ok   bool
	}{
		{"string", "x", s.String, true},
		{"number", json.Number("1.5"), s.Number, true},
		{"go int", 3, s.Number, true},
		{"bool", true, s.Boolean, true},
		{"false is a boolean", false, s.Boolean, true},
		{"string is not a number", "1", s.Number, false},
		{"number is not a bool", json.Number("1"), s.Boolean, false},
		{"null", nil, s.Null, true},
		{"null is not a string", nil, s.String, false},
		{"enum member", "fast", s.Ref("Mode"), true},
		{"enum is case sensitive", "Fast", s.Ref("Mode"), false},
		{"any", []any{1, "x"}, s.Any, true},
		{"never", "x", s.Never, false},
		{"array", []any{"a", "b"}, s.Array(s.String), true},
		{"array element", []any{"a", 1}, s.Array(s.String), false},
		{"array from object", obj(), s.Array(s.String), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Transform(reg, tc.v, tc.t, s.Decode)
			if tc.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestTransform_RenamesBothWays(t *testing.T) {
	reg := testRegistry()
	in := obj("flag", true, "deploy_serial", json.Number("2"))
	out, err := Transform(reg, in, s.Ref("Entry"), s.Decode)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	o := out.(*Object)
	if got := strings.Join(o.Keys(), ","); got != "flag,deploySerial" {
		t.Fatalf("decoded keys: %s", got)
	}
	back, err := Transform(reg, o, s.Ref("Entry"), s.Encode)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if got := strings.Join(back.(*Object).Keys(), ","); got != "flag,deploy_serial" {
		t.Fatalf("encoded keys: %s", got)
	}
}

func TestTransform_CounterpartKeyIsNotAdditional(t *testing.T) {
	reg := testRegistry()
	// The internal spelling on the external side is a declared name, so it
	// is neither copied through as an extra nor renamed.
	out, err := Transform(reg, obj("flag", true, "deploySerial", json.Number("1")), s.Ref("Entry"), s.Decode)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := strings.Join(out.(*Object).Keys(), ","); got != "flag" {
		t.Fatalf("keys: %s", got)
	}
}

func TestTransform_AdditionalKeys(t *testing.T) {
	reg := testRegistry()
	out, err := Transform(reg, obj("zeta", 1, "flag", false, "alpha", "x"), s.Ref("Entry"), s.Decode)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := strings.Join(out.(*Object).Keys(), ","); got != "flag,zeta,alpha" {
		t.Fatalf("declared first, then extras in encounter order; got %s", got)
	}

	_, err = Transform(reg, obj("remote", "r", "keyring", "k"), s.Ref("Remote"), s.Decode)
	m, ok := err.(*s.Mismatch)
	if !ok {
		t.Fatalf("want *Mismatch, got %T", err)
	}
	if m.Code != s.CodeUnknownKey || m.Key() != "keyring" || m.Type != "Remote" {
		t.Fatalf("unknown key: %+v", m)
	}
}

func TestTransform_Required(t *testing.T) {
	reg := testRegistry()
	_, err := Transform(reg, obj("mode", "fast"), s.Ref("Entry"), s.Decode)
	m := err.(*s.Mismatch)
	if m.Code != s.CodeRequired || !m.Missing || m.Key() != "flag" || m.Type != "Entry" {
		t.Fatalf("required: %+v", m)
	}
}

func TestTransform_UnionFirstMatch(t *testing.T) {
	reg := testRegistry()
	u := s.Union(s.Any, s.String)
	out, err := Transform(reg, "x", u, s.Decode)
	if err != nil || out != "x" {
		t.Fatalf("first member must win: %v %v", out, err)
	}
	// DateTime comes first, so a parseable string becomes a time.
	out, err = Transform(reg, "2024-01-02T03:04:05Z", s.Union(s.DateTime, s.String), s.Decode)
	if err != nil {
		t.Fatalf("union: %v", err)
	}
	if _, ok := out.(time.Time); !ok {
		t.Fatalf("want time.Time, got %T", out)
	}
}

func TestTransform_UnionFailureListsMembers(t *testing.T) {
	reg := testRegistry()
	_, err := Transform(reg, json.Number("5"), s.Union(s.Ref("Remote"), s.Ref("Mode"), s.Null), s.Decode)
	m := err.(*s.Mismatch)
	if m.Expected != "one of [Remote, Mode, null]" {
		t.Fatalf("expected: %q", m.Expected)
	}
	if m.Cause != nil {
		t.Fatalf("no member accepted the shape, cause must be nil: %v", m.Cause)
	}
}

func TestTransform_UnionKeepsDeepestCause(t *testing.T) {
	reg := testRegistry()
	in := obj("flag", true, "next", obj("flag", true, "next", obj("mode", "fast")))
	_, err := Transform(reg, in, s.Ref("Entry"), s.Decode)
	m := err.(*s.Mismatch)
	inner := m.Innermost()
	if inner.Pointer() != "/next/next/flag" || inner.Code != s.CodeRequired {
		t.Fatalf("innermost: %s %s", inner.Pointer(), inner.Code)
	}
	if !strings.Contains(m.Error(), `"flag"`) {
		t.Fatalf("message lacks the cause: %s", m.Error())
	}
}

func TestTransform_ArrayIndexInPath(t *testing.T) {
	reg := testRegistry()
	in := obj("items", []any{obj("flag", true), obj("flag", "yes")})
	_, err := Transform(reg, in, s.Ref("List"), s.Decode)
	m := err.(*s.Mismatch)
	if got := m.Pointer(); got != "/items/1/flag" {
		t.Fatalf("pointer: %s", got)
	}
	if m.Parent() != "items.1" {
		t.Fatalf("parent: %s", m.Parent())
	}
}

func TestTransform_DateTime(t *testing.T) {
	reg := testRegistry()
	out, err := Transform(reg, nil, s.DateTime, s.Decode)
	if err != nil || out != nil {
		t.Fatalf("null: %v %v", out, err)
	}
	_, err = Transform(reg, "not a date", s.DateTime, s.Decode)
	if m, ok := err.(*s.Mismatch); !ok || m.Code != s.CodeInvalidFormat {
		t.Fatalf("invalid: %v", err)
	}
	_, err = Transform(reg, json.Number("1700000000"), s.DateTime, s.Decode)
	if m, ok := err.(*s.Mismatch); !ok || m.Code != s.CodeInvalidType {
		t.Fatalf("number: %v", err)
	}
	out, err = Transform(reg, "2024-03-01T12:00:00+02:00", s.DateTime, s.Decode)
	if err != nil {
		t.Fatalf("valid: %v", err)
	}
	ts := out.(time.Time)
	if ts.Location() != time.UTC || ts.Hour() != 10 {
		t.Fatalf("want UTC 10:00, got %v", ts)
	}
	enc, err := Transform(reg, ts, s.DateTime, s.Encode)
	if err != nil || enc != "2024-03-01T10:00:00Z" {
		t.Fatalf("encode: %v %v", enc, err)
	}
}

func TestTransform_MapInput(t *testing.T) {
	reg := testRegistry()
	out, err := Transform(reg, map[string]any{"flag": true, "b": 1, "a": 2}, s.Ref("Entry"), s.Encode)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if got := strings.Join(out.(*Object).Keys(), ","); got != "flag,a,b" {
		t.Fatalf("keys: %s", got)
	}
}

func TestTransform_ObjectRejectsNonObjects(t *testing.T) {
	reg := testRegistry()
	for _, v := range []any{nil, []any{}, "x", (*Object)(nil)} {
		_, err := Transform(reg, v, s.Ref("Entry"), s.Decode)
		m, ok := err.(*s.Mismatch)
		if !ok || m.Expected != "Entry" {
			t.Fatalf("%#v: %v", v, err)
		}
	}
}

func TestTransform_UnknownRefPanics(t *testing.T) {
	reg := testRegistry()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	_, _ = Transform(reg, "x", s.Ref("Nope"), s.Decode)
}
