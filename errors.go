package bootc

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Venefilyn/cockpit-bootc/i18n"
	eng "github.com/Venefilyn/cockpit-bootc/internal/engine"
	"github.com/Venefilyn/cockpit-bootc/schema"
)

// Error codes. Schema mismatches use the schema package codes, re-exported
// here; the remaining codes describe unreadable documents.
const (
	CodeInvalidType   = schema.CodeInvalidType
	CodeRequired      = schema.CodeRequired
	CodeUnknownKey    = schema.CodeUnknownKey
	CodeInvalidEnum   = schema.CodeInvalidEnum
	CodeInvalidFormat = schema.CodeInvalidFormat
	CodeParseError    = "parse_error"
	CodeDuplicateKey  = "duplicate_key"
	CodeTruncated     = "truncated"
)

// SchemaMismatch is returned when a document does not conform to its
// schema. It carries the expectation, the offending value and its path.
type SchemaMismatch = schema.Mismatch

// ParseError is returned when a document cannot be read at all.
type ParseError struct {
	Code    string
	Path    string // JSON Pointer, "/" when unknown
	Message string
	Offset  int64 // byte offset in the input (-1 when unknown)
	Cause   error
}

func (e *ParseError) Error() string {
	b := &strings.Builder{}
	b.WriteString(i18n.T(e.Code, nil))
	if e.Path != "" && e.Path != "/" {
		fmt.Fprintf(b, " at %s", e.Path)
	}
	if e.Offset >= 0 {
		fmt.Fprintf(b, " (offset %d)", e.Offset)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

func (e *ParseError) Unwrap() error { return e.Cause }

// AsMismatch extracts a SchemaMismatch from err using errors.As.
func AsMismatch(err error) (*SchemaMismatch, bool) {
	var m *SchemaMismatch
	if errors.As(err, &m) {
		return m, true
	}
	return nil, false
}

// AsParseError extracts a ParseError from err using errors.As.
func AsParseError(err error) (*ParseError, bool) {
	var p *ParseError
	if errors.As(err, &p) {
		return p, true
	}
	return nil, false
}

func toParseError(err error, offset int64) *ParseError {
	if pe, ok := AsParseError(err); ok {
		return pe
	}
	var ie eng.IssueError
	if errors.As(err, &ie) {
		return &ParseError{Code: ie.Code, Path: ie.Path, Message: ie.Message, Offset: offset, Cause: err}
	}
	msg := err.Error()
	if errors.Is(err, io.ErrUnexpectedEOF) {
		msg = "unexpected end of document"
	}
	return &ParseError{Code: CodeParseError, Path: "/", Message: msg, Offset: offset, Cause: err}
}
