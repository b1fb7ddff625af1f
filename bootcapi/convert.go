package bootcapi

import (
	"fmt"

	"github.com/goccy/go-json"

	bootc "github.com/Venefilyn/cockpit-bootc"
)

var converter = bootc.NewConverter(Registry)

// Converter returns the converter bound to Registry.
func Converter() *bootc.Converter { return converter }

// Parse decodes JSON host document text into its internal form.
func Parse(data []byte, opts ...bootc.ParseOpt) (*bootc.Object, error) {
	return cast(bootc.JSONBytes(data), opts)
}

// ParseYAML decodes a YAML host document (`bootc status --format yaml`).
func ParseYAML(data []byte, opts ...bootc.ParseOpt) (*bootc.Object, error) {
	return cast(bootc.YAMLBytes(data), opts)
}

func cast(src bootc.Source, opts []bootc.ParseOpt) (*bootc.Object, error) {
	v, err := converter.Cast(src, RootType, opts...)
	if err != nil {
		return nil, err
	}
	obj, ok := v.(*bootc.Object)
	if !ok {
		return nil, fmt.Errorf("bootcapi: unexpected root %T", v)
	}
	return obj, nil
}

// Marshal encodes an internal host document as indented JSON text.
func Marshal(v *bootc.Object) ([]byte, error) {
	return converter.UncastJSON(v, RootType)
}

// MarshalYAML encodes an internal host document as YAML text.
func MarshalYAML(v *bootc.Object) ([]byte, error) {
	return converter.UncastYAML(v, RootType)
}

// Decode validates JSON host document text and returns its typed view.
func Decode(data []byte) (*Host, error) {
	v, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return ToHost(v)
}

// ToHost converts a validated internal document to its typed view.
func ToHost(v *bootc.Object) (*Host, error) {
	wire, err := Marshal(v)
	if err != nil {
		return nil, err
	}
	var h Host
	if err := json.Unmarshal(wire, &h); err != nil {
		return nil, fmt.Errorf("bootcapi: typed view: %w", err)
	}
	return &h, nil
}
