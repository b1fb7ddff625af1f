// Package yaml tokenizes the first document of a YAML stream with
// gopkg.in/yaml.v3.
package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	eng "github.com/Venefilyn/cockpit-bootc/internal/engine"
)

// maxAliasDepth bounds alias expansion so self-referencing anchors cannot
// loop.
const maxAliasDepth = 64

type source struct {
	toks []eng.Token
	pos  int
	size int64
	err  error
}

// NewBytes returns an engine.TokenSource over the first YAML document in b.
// An empty stream yields io.EOF on the first token.
func NewBytes(b []byte) eng.TokenSource {
	s := &source{size: int64(len(b))}
	var doc yaml.Node
	if err := yaml.NewDecoder(bytes.NewReader(b)).Decode(&doc); err != nil {
		if !errors.Is(err, io.EOF) {
			s.err = err
		}
		return s
	}
	root := &doc
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		root = doc.Content[0]
	}
	s.err = s.walk(root, 0)
	return s
}

func (s *source) NextToken() (eng.Token, error) {
	if s.err != nil {
		return eng.Token{}, s.err
	}
	if s.pos >= len(s.toks) {
		return eng.Token{}, io.EOF
	}
	t := s.toks[s.pos]
	s.pos++
	return t, nil
}

// Location reports the document size; YAML nodes carry no byte offsets.
func (s *source) Location() int64 { return s.size }

func (s *source) emit(t eng.Token) {
	t.Offset = -1
	s.toks = append(s.toks, t)
}

func (s *source) walk(n *yaml.Node, aliases int) error {
	switch n.Kind {
	case yaml.AliasNode:
		if aliases >= maxAliasDepth || n.Alias == nil {
			return fmt.Errorf("yaml: line %d: alias nesting too deep", n.Line)
		}
		return s.walk(n.Alias, aliases+1)
	case yaml.MappingNode:
		s.emit(eng.Token{Kind: eng.KindBeginObject})
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			if k.Kind != yaml.ScalarNode {
				return fmt.Errorf("yaml: line %d: mapping keys must be scalars", k.Line)
			}
			s.emit(eng.Token{Kind: eng.KindKey, String: k.Value})
			if err := s.walk(n.Content[i+1], aliases); err != nil {
				return err
			}
		}
		s.emit(eng.Token{Kind: eng.KindEndObject})
	case yaml.SequenceNode:
		s.emit(eng.Token{Kind: eng.KindBeginArray})
		for _, c := range n.Content {
			if err := s.walk(c, aliases); err != nil {
				return err
			}
		}
		s.emit(eng.Token{Kind: eng.KindEndArray})
	case yaml.ScalarNode:
		return s.scalar(n)
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			s.emit(eng.Token{Kind: eng.KindNull})
			return nil
		}
		return s.walk(n.Content[0], aliases)
	default:
		return fmt.Errorf("yaml: line %d: unsupported node kind %d", n.Line, n.Kind)
	}
	return nil
}

func (s *source) scalar(n *yaml.Node) error {
	switch n.ShortTag() {
	case "!!null":
		s.emit(eng.Token{Kind: eng.KindNull})
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return err
		}
		s.emit(eng.Token{Kind: eng.KindBool, Bool: b})
	case "!!int":
		text := strings.ReplaceAll(n.Value, "_", "")
		if i, err := strconv.ParseInt(text, 0, 64); err == nil {
			s.emit(eng.Token{Kind: eng.KindNumber, Number: strconv.FormatInt(i, 10)})
			return nil
		}
		var f float64
		if err := n.Decode(&f); err != nil {
			return err
		}
		s.emit(eng.Token{Kind: eng.KindNumber, Number: strconv.FormatFloat(f, 'g', -1, 64)})
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return err
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("yaml: line %d: %s is not representable as a JSON number", n.Line, n.Value)
		}
		s.emit(eng.Token{Kind: eng.KindNumber, Number: strconv.FormatFloat(f, 'g', -1, 64)})
	default:
		// !!str, !!timestamp, !!binary and custom tags keep their text.
		s.emit(eng.Token{Kind: eng.KindString, String: n.Value})
	}
	return nil
}
