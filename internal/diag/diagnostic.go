package diag

import "tschecker/internal/source"

// Note attaches secondary context to a diagnostic, e.g. "property 'b' is
// declared here".
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is a single reported issue: a stable code, a byte-offset span
// in one file, a rendered message, and optional notes pointing at related
// declarations.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

// New builds a Diagnostic. Callers normally go through the Error/Warning
// helpers below rather than calling New directly.
func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, Primary: primary, Message: msg}
}

// Error constructs an error-severity diagnostic.
func Error(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

// Warning constructs a warning-severity diagnostic.
func Warning(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevWarning, code, primary, msg)
}

// WithNote appends a note and returns the (value-receiver) diagnostic, so
// call sites can chain: diag.Error(...).WithNote(declSpan, "declared here").
func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}
