package engine

import (
	"strconv"
	"strings"
)

// DuplicateStrictness controls duplicate key handling.
type DuplicateStrictness int

const (
	DupIgnore DuplicateStrictness = iota // last value wins
	DupWarn                              // reported to IssueSink, last value wins
	DupError                             // the document is rejected
)

// SimpleIssue is a minimal issue representation used by internal helpers.
type SimpleIssue struct {
	Code    string
	Path    string
	Message string
}

// IssueError is a lightweight error carrying a SimpleIssue.
type IssueError struct{ SimpleIssue }

func (e IssueError) Error() string { return e.SimpleIssue.Message }

// EnforceOptions controls runtime enforcement behavior.
type EnforceOptions struct {
	OnDuplicate DuplicateStrictness
	MaxDepth    int
	MaxBytes    int64
	// IssueSink optionally receives every issue, including the non-fatal
	// duplicate-key warnings of DupWarn.
	IssueSink func(SimpleIssue)
}

// Disabled reports whether opt enforces nothing.
func (opt EnforceOptions) Disabled() bool {
	return opt.OnDuplicate == DupIgnore && opt.MaxDepth == 0 && opt.MaxBytes == 0
}

// WrapWithEnforcement returns a TokenSource that enforces duplicate key policy,
// maximum nesting depth, and maximum consumed bytes.
func WrapWithEnforcement(inner TokenSource, opt EnforceOptions) TokenSource {
	return &enforcingTokenSource{inner: inner, opt: opt}
}

type frame struct {
	object  bool
	keys    map[string]struct{}
	pointer string
	next    int    // next array index
	pending string // key awaiting its value
}

type enforcingTokenSource struct {
	inner TokenSource
	opt   EnforceOptions
	stack []frame
}

func (e *enforcingTokenSource) NextToken() (Token, error) {
	tok, err := e.inner.NextToken()
	if err != nil {
		return Token{}, err
	}

	switch tok.Kind {
	case KindBeginObject, KindBeginArray:
		ptr := e.valuePointer()
		e.stack = append(e.stack, frame{object: tok.Kind == KindBeginObject, keys: map[string]struct{}{}, pointer: ptr})
		if e.opt.MaxDepth > 0 && len(e.stack) > e.opt.MaxDepth {
			return Token{}, e.report(SimpleIssue{Code: "parse_error", Path: normalizePointer(ptr), Message: "max depth exceeded"})
		}
	case KindEndObject, KindEndArray:
		if n := len(e.stack); n > 0 {
			e.stack = e.stack[:n-1]
		}
	case KindKey:
		if n := len(e.stack); n > 0 {
			top := &e.stack[n-1]
			if _, dup := top.keys[tok.String]; dup && e.opt.OnDuplicate != DupIgnore {
				si := SimpleIssue{Code: "duplicate_key", Path: joinPointer(top.pointer, tok.String), Message: "key '" + tok.String + "' duplicated"}
				if e.opt.OnDuplicate == DupError {
					return Token{}, e.report(si)
				}
				e.report(si)
			}
			top.keys[tok.String] = struct{}{}
			top.pending = tok.String
		}
	default:
		e.valuePointer()
	}

	if e.opt.MaxBytes > 0 {
		if off := e.Location(); off >= 0 && off > e.opt.MaxBytes {
			return Token{}, e.report(SimpleIssue{Code: "truncated", Path: "/", Message: "max bytes exceeded"})
		}
	}
	return tok, nil
}

// valuePointer returns the pointer of the value that starts now and
// advances the enclosing container.
func (e *enforcingTokenSource) valuePointer() string {
	n := len(e.stack)
	if n == 0 {
		return ""
	}
	top := &e.stack[n-1]
	if top.object {
		p := joinPointer(top.pointer, top.pending)
		top.pending = ""
		return p
	}
	p := joinPointer(top.pointer, strconv.Itoa(top.next))
	top.next++
	return p
}

func (e *enforcingTokenSource) report(si SimpleIssue) error {
	if e.opt.IssueSink != nil {
		e.opt.IssueSink(si)
	}
	return IssueError{si}
}

func (e *enforcingTokenSource) Location() int64 { return e.inner.Location() }

func normalizePointer(p string) string {
	if p == "" {
		return "/"
	}
	return p
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func joinPointer(base, token string) string {
	return base + "/" + pointerEscaper.Replace(token)
}
