package schema

import (
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/Venefilyn/cockpit-bootc/i18n"
)

// Mismatch codes.
const (
	CodeInvalidType   = "invalid_type"
	CodeRequired      = "required"
	CodeUnknownKey    = "unknown_key"
	CodeInvalidEnum   = "invalid_enum"
	CodeInvalidFormat = "invalid_format"
)

// Mismatch is the single validation error kind. It describes the first
// value that did not conform to its descriptor.
type Mismatch struct {
	Code     string
	Expected string   // rendered expectation, see Describe
	Value    any      // offending value; meaningless when Missing
	Missing  bool     // the property was absent
	Path     []string // keys and indexes from the root to the value
	Type     string   // named type of the enclosing object, if any
	// Cause is the failure inside the member a union accepted by shape,
	// when there is one.
	Cause *Mismatch
}

// Key returns the immediate key (or index) of the offending value.
func (m *Mismatch) Key() string {
	if len(m.Path) == 0 {
		return ""
	}
	return m.Path[len(m.Path)-1]
}

// Parent returns the dotted path of the enclosing object.
func (m *Mismatch) Parent() string {
	if len(m.Path) < 2 {
		return ""
	}
	return strings.Join(m.Path[:len(m.Path)-1], ".")
}

// Pointer returns the location as a JSON Pointer.
func (m *Mismatch) Pointer() string {
	if len(m.Path) == 0 {
		return "/"
	}
	b := &strings.Builder{}
	for _, p := range m.Path {
		b.WriteByte('/')
		b.WriteString(pointerEscaper.Replace(p))
	}
	return b.String()
}

// Innermost follows Cause to the most specific failure.
func (m *Mismatch) Innermost() *Mismatch {
	for m.Cause != nil {
		m = m.Cause
	}
	return m
}

func (m *Mismatch) Error() string {
	b := &strings.Builder{}
	b.WriteString(i18n.T(m.Code, nil))
	if k := m.Key(); k != "" {
		b.WriteString(" for key ")
		b.WriteString(strconv.Quote(k))
	}
	if p := m.Parent(); p != "" {
		b.WriteString(" on ")
		b.WriteString(p)
	}
	if m.Type != "" {
		b.WriteString(" (")
		b.WriteString(m.Type)
		b.WriteString(")")
	}
	if m.Expected == Describe(Never) {
		b.WriteString(": no value is acceptable here but got ")
	} else {
		b.WriteString(": expected ")
		b.WriteString(m.Expected)
		b.WriteString(" but got ")
	}
	b.WriteString(m.RenderValue())
	if m.Cause != nil {
		b.WriteString(": ")
		b.WriteString(m.Cause.Error())
	}
	return b.String()
}

func (m *Mismatch) Unwrap() error {
	if m.Cause == nil {
		return nil
	}
	return m.Cause
}

const maxRenderedValue = 80

// RenderValue renders the offending value for display.
func (m *Mismatch) RenderValue() string {
	if m.Missing {
		return "undefined"
	}
	data, err := json.MarshalNoEscape(m.Value)
	if err != nil {
		return "<unrenderable>"
	}
	s := string(data)
	if r := []rune(s); len(r) > maxRenderedValue {
		s = string(r[:maxRenderedValue]) + "..."
	}
	return s
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")
