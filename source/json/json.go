// Package json tokenizes JSON documents with goccy/go-json.
package json

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	j "github.com/goccy/go-json"

	eng "github.com/Venefilyn/cockpit-bootc/internal/engine"
)

type frame struct {
	object       bool
	expectingKey bool
}

// ErrSyntax reports a document that is not well-formed JSON.
var ErrSyntax = errors.New("invalid JSON")

type source struct {
	dec        *j.Decoder
	err        error
	stack      []frame
	lastOffset int64
}

// NewReader wraps an io.Reader into an engine.TokenSource for JSON. The
// whole input is read up front so its syntax can be checked before the
// first token is handed out.
func NewReader(r io.Reader) eng.TokenSource {
	b, err := io.ReadAll(r)
	if err != nil {
		return &source{err: err, lastOffset: -1}
	}
	return NewBytes(b)
}

// NewBytes wraps a byte slice into an engine.TokenSource for JSON.
func NewBytes(b []byte) eng.TokenSource {
	dec := j.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	return &source{dec: dec, err: checkSyntax(b), lastOffset: -1}
}

// checkSyntax rejects what the token stream alone lets through: Decoder.Token
// does not verify the commas and colons between tokens. Blank input is left
// to the decoder, which reports it as an unexpected end.
func checkSyntax(b []byte) error {
	if len(bytes.TrimSpace(b)) == 0 || j.Valid(b) {
		return nil
	}
	var v any
	if err := j.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	return ErrSyntax
}

func (s *source) NextToken() (eng.Token, error) {
	if s.err != nil {
		return eng.Token{}, s.err
	}
	tok, err := s.dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return eng.Token{}, io.EOF
		}
		return eng.Token{}, err
	}
	s.lastOffset = s.dec.InputOffset()

	switch v := tok.(type) {
	case j.Delim:
		switch v {
		case '{':
			s.stack = append(s.stack, frame{object: true, expectingKey: true})
			return s.token(eng.Token{Kind: eng.KindBeginObject}), nil
		case '[':
			s.stack = append(s.stack, frame{})
			return s.token(eng.Token{Kind: eng.KindBeginArray}), nil
		case '}', ']':
			if n := len(s.stack); n > 0 {
				s.stack = s.stack[:n-1]
			}
			s.valueDone()
			if v == '}' {
				return s.token(eng.Token{Kind: eng.KindEndObject}), nil
			}
			return s.token(eng.Token{Kind: eng.KindEndArray}), nil
		}
	case string:
		if n := len(s.stack); n > 0 && s.stack[n-1].object && s.stack[n-1].expectingKey {
			s.stack[n-1].expectingKey = false
			return s.token(eng.Token{Kind: eng.KindKey, String: v}), nil
		}
		s.valueDone()
		return s.token(eng.Token{Kind: eng.KindString, String: v}), nil
	case bool:
		s.valueDone()
		return s.token(eng.Token{Kind: eng.KindBool, Bool: v}), nil
	case j.Number:
		s.valueDone()
		return s.token(eng.Token{Kind: eng.KindNumber, Number: string(v)}), nil
	case float64:
		s.valueDone()
		return s.token(eng.Token{Kind: eng.KindNumber, Number: strconv.FormatFloat(v, 'g', -1, 64)}), nil
	}
	s.valueDone()
	return s.token(eng.Token{Kind: eng.KindNull}), nil
}

// valueDone marks the pending member of the enclosing object as complete.
func (s *source) valueDone() {
	if n := len(s.stack); n > 0 && s.stack[n-1].object {
		s.stack[n-1].expectingKey = true
	}
}

func (s *source) token(t eng.Token) eng.Token {
	t.Offset = s.lastOffset
	return t
}

func (s *source) Location() int64 { return s.lastOffset }
