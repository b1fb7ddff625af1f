package bootc

// Severity expresses how an enforcement finding is treated.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// ParseOpt bundles parsing options. The zero value enforces nothing.
type ParseOpt struct {
	// OnDuplicateKey controls duplicate object keys. Under Ignore and Warn
	// the last value wins and the key keeps its first position.
	OnDuplicateKey Severity
	MaxDepth       int   // maximum container nesting; 0 means unlimited
	MaxBytes       int64 // maximum document size; 0 means unlimited
	// Warnings receives Warn-level findings.
	Warnings func(*ParseError)
}
