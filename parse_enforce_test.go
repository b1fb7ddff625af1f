package bootc_test

import (
	"bytes"
	"strings"
	"testing"

	bootc "github.com/Venefilyn/cockpit-bootc"
)

func TestParse_DuplicateKey_Error(t *testing.T) {
	jsb := []byte(`{"a":1,"a":2}`)
	_, err := bootc.Parse(bootc.JSONBytes(jsb), bootc.ParseOpt{OnDuplicateKey: bootc.Error})
	pe, ok := bootc.AsParseError(err)
	if !ok {
		t.Fatalf("expected ParseError, got: %v", err)
	}
	if pe.Code != bootc.CodeDuplicateKey || pe.Path != "/a" {
		t.Fatalf("expected duplicate_key at /a, got: %s %s", pe.Code, pe.Path)
	}
}

func TestParse_DuplicateKey_NestedPath(t *testing.T) {
	jsb := []byte(`[{"a":1,"a":2}]`)
	_, err := bootc.Parse(bootc.JSONBytes(jsb), bootc.ParseOpt{OnDuplicateKey: bootc.Error})
	pe, ok := bootc.AsParseError(err)
	if !ok || pe.Path != "/0/a" {
		t.Fatalf("expected path=/0/a, got: %v", err)
	}
}

func TestParse_DuplicateKey_Warn(t *testing.T) {
	var warned []*bootc.ParseError
	v, err := bootc.Parse(bootc.JSONBytes([]byte(`{"a":1,"b":0,"a":2}`)), bootc.ParseOpt{
		OnDuplicateKey: bootc.Warn,
		Warnings:       func(pe *bootc.ParseError) { warned = append(warned, pe) },
	})
	if err != nil {
		t.Fatalf("warn must not fail: %v", err)
	}
	if len(warned) != 1 || warned[0].Path != "/a" {
		t.Fatalf("warnings: %v", warned)
	}
	o := v.(*bootc.Object)
	if got := strings.Join(o.Keys(), ","); got != "a,b" {
		t.Fatalf("first position kept, got %s", got)
	}
	if a, _ := o.Get("a"); !bootc.Equal(a, 2) {
		t.Fatalf("last value wins, got %v", a)
	}
}

func TestParse_MaxDepth_Exceeded(t *testing.T) {
	// depth = 3 for { a: { b: { c: 1 } } }
	jsb := []byte(`{"a":{"b":{"c":1}}}`)
	_, err := bootc.Parse(bootc.JSONBytes(jsb), bootc.ParseOpt{MaxDepth: 2})
	pe, ok := bootc.AsParseError(err)
	if !ok || pe.Path != "/a/b" {
		t.Fatalf("expected path=/a/b for max depth, got: %v", err)
	}
	if _, err := bootc.Parse(bootc.JSONBytes(jsb), bootc.ParseOpt{MaxDepth: 3}); err != nil {
		t.Fatalf("depth 3 is allowed: %v", err)
	}
}

func TestParse_MaxBytes_Exceeded(t *testing.T) {
	data := []byte(`{"pad":"` + strings.Repeat("x", 1024) + `"}`)
	_, err := bootc.Parse(bootc.JSONReader(bytes.NewReader(data)), bootc.ParseOpt{MaxBytes: 64})
	pe, ok := bootc.AsParseError(err)
	if !ok || pe.Code != bootc.CodeTruncated {
		t.Fatalf("expected truncated, got: %v", err)
	}
}

func TestParse_Malformed(t *testing.T) {
	cases := map[string]string{
		"eof":                 `{"apiVersion":`,
		"trailing":            `{} {}`,
		"empty":               ``,
		"missing comma":       `{"apiVersion":"v1" "kind":"host"}`,
		"doubled comma":       `{"apiVersion":"v1",,"kind":"host"}`,
		"trailing comma":      `{"apiVersion":"v1","kind":"host",}`,
		"missing colon":       `{"apiVersion" "v1","kind":"host"}`,
		"array missing comma": `{"status":{"otherDeployments":[{} {}]}}`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := bootc.Parse(bootc.JSONBytes([]byte(doc)))
			pe, ok := bootc.AsParseError(err)
			if !ok || pe.Code != bootc.CodeParseError {
				t.Fatalf("expected parse_error, got: %v", err)
			}
			if pe.Error() == "" {
				t.Fatalf("empty message")
			}
		})
	}
}

func TestParse_JSONC(t *testing.T) {
	doc := []byte(`{
  /* hand edited */
  "a": [1, 2,], // trailing comma
}`)
	v, err := bootc.Parse(bootc.JSONCBytes(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	a, _ := v.(*bootc.Object).Get("a")
	if !bootc.Equal(a, []any{1, 2}) {
		t.Fatalf("a: %#v", a)
	}
}
