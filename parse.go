package bootc

import (
	eng "github.com/Venefilyn/cockpit-bootc/internal/engine"
)

// Parse reads one document from src into a dynamic value: objects become
// *Object, arrays []any, numbers json.Number. Nothing is validated beyond
// well-formedness and the enforcement in opts.
func Parse(src Source, opts ...ParseOpt) (any, error) {
	var opt ParseOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	eopt := eng.EnforceOptions{
		OnDuplicate: toEngineDup(opt.OnDuplicateKey),
		MaxDepth:    opt.MaxDepth,
		MaxBytes:    opt.MaxBytes,
	}
	var ts eng.TokenSource = src
	if !eopt.Disabled() {
		if opt.Warnings != nil {
			eopt.IssueSink = func(si eng.SimpleIssue) {
				if si.Code == CodeDuplicateKey && opt.OnDuplicateKey == Warn {
					opt.Warnings(&ParseError{Code: si.Code, Path: si.Path, Message: si.Message, Offset: src.Location()})
				}
			}
		}
		ts = eng.WrapWithEnforcement(src, eopt)
	}
	v, err := eng.DecodeDocument(ts)
	if err != nil {
		return nil, toParseError(err, src.Location())
	}
	return v, nil
}

func toEngineDup(s Severity) eng.DuplicateStrictness {
	switch s {
	case Warn:
		return eng.DupWarn
	case Error:
		return eng.DupError
	default:
		return eng.DupIgnore
	}
}
