package bootc

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/Venefilyn/cockpit-bootc/codec"
	eng "github.com/Venefilyn/cockpit-bootc/internal/engine"
)

// MarshalJSON renders a dynamic value as JSON text indented by two spaces,
// object keys in their stored order, with a trailing newline.
func MarshalJSON(v any) ([]byte, error) {
	out, err := eng.AppendJSON(nil, v, "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

// MarshalYAML renders a dynamic value as a YAML document, object keys in
// their stored order.
func MarshalYAML(v any) ([]byte, error) {
	n, err := yamlNode(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(n); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func yamlNode(v any) (*yaml.Node, error) {
	switch t := v.(type) {
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(t)}, nil
	case string:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: t}, nil
	case time.Time:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: codec.FormatDateTime(t)}, nil
	case json.Number:
		tag := "!!float"
		if _, err := strconv.ParseInt(string(t), 10, 64); err == nil {
			tag = "!!int"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: string(t)}, nil
	case *Object:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		var err error
		t.Range(func(k string, val any) bool {
			var c *yaml.Node
			c, err = yamlNode(val)
			if err != nil {
				return false
			}
			n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}, c)
			return true
		})
		if err != nil {
			return nil, err
		}
		return n, nil
	case []any:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, e := range t {
			c, err := yamlNode(e)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, c)
		}
		return n, nil
	}
	// Remaining numbers and foreign values go through their JSON form.
	data, err := eng.AppendJSON(nil, v, "")
	if err != nil {
		return nil, err
	}
	decoded, err := Parse(JSONBytes(data))
	if err != nil {
		return nil, fmt.Errorf("yaml: cannot render %T: %w", v, err)
	}
	return yamlNode(decoded)
}
