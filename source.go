package bootc

import (
	"io"

	"github.com/tidwall/jsonc"

	eng "github.com/Venefilyn/cockpit-bootc/internal/engine"
	jsonsrc "github.com/Venefilyn/cockpit-bootc/source/json"
	yamlsrc "github.com/Venefilyn/cockpit-bootc/source/yaml"
)

// TokenKind enumerates document token kinds.
type TokenKind = eng.Kind

const (
	TokenBeginObject TokenKind = eng.KindBeginObject
	TokenEndObject   TokenKind = eng.KindEndObject
	TokenBeginArray  TokenKind = eng.KindBeginArray
	TokenEndArray    TokenKind = eng.KindEndArray
	TokenKey         TokenKind = eng.KindKey
	TokenString      TokenKind = eng.KindString
	TokenNumber      TokenKind = eng.KindNumber
	TokenBool        TokenKind = eng.KindBool
	TokenNull        TokenKind = eng.KindNull
)

// Token describes a token in the input stream. Offset records the byte
// position when known (-1 otherwise).
type Token = eng.Token

// Source abstracts over document formats. NextToken returns io.EOF after
// the last token.
type Source interface {
	NextToken() (Token, error)
	Location() int64 // byte offset; -1 if unknown
}

// JSONBytes wraps a byte slice as a JSON Source.
func JSONBytes(b []byte) Source { return jsonsrc.NewBytes(b) }

// JSONReader wraps an io.Reader as a JSON Source.
func JSONReader(r io.Reader) Source { return jsonsrc.NewReader(r) }

// JSONCBytes wraps JSON with comments and trailing commas (hand-edited
// fixtures) as a Source.
func JSONCBytes(b []byte) Source { return jsonsrc.NewBytes(jsonc.ToJSON(b)) }

// YAMLBytes wraps the first document of a YAML stream as a Source.
func YAMLBytes(b []byte) Source { return yamlsrc.NewBytes(b) }
