package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"mixin-composer/internal/common"
)

// Log holds all diagnostic information from validation.
type Log struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
	// Unexpected holds internal failures recovered during the walk.
	Unexpected []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Target identifies the composed target this relates to (if any).
	Target string
	// Path identifies the node this relates to (if any).
	Path string
	// Suggestions are potential fixes or alternatives.
	Suggestions []string
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
	SeverityUnexpected
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityUnexpected:
		return "unexpected"
	default:
		return common.UnknownStr
	}
}

// Code used for recovered internal failures.
const CodeUnexpected = "unexpected"

// AddError adds an error diagnostic and returns it for further decoration.
func (l *Log) AddError(code, message, target, path string) *Diagnostic {
	l.Errors = append(l.Errors, newDiagnostic(SeverityError, code, message, target, path))
	return &l.Errors[len(l.Errors)-1]
}

// AddWarning adds a warning diagnostic.
func (l *Log) AddWarning(code, message, target, path string) *Diagnostic {
	l.Warnings = append(l.Warnings, newDiagnostic(SeverityWarning, code, message, target, path))
	return &l.Warnings[len(l.Warnings)-1]
}

// AddInfo adds an info diagnostic.
func (l *Log) AddInfo(code, message, target, path string) *Diagnostic {
	l.Infos = append(l.Infos, newDiagnostic(SeverityInfo, code, message, target, path))
	return &l.Infos[len(l.Infos)-1]
}

// AddUnexpected records an internal failure, e.g. a recovered panic.
func (l *Log) AddUnexpected(cause any, target, path string) {
	l.Unexpected = append(l.Unexpected,
		newDiagnostic(SeverityUnexpected, CodeUnexpected, fmt.Sprint(cause), target, path))
}

func newDiagnostic(sev Severity, code, message, target, path string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  message,
		Target:   target,
		Path:     path,
	}
}

// WithSuggestions attaches suggestions to the diagnostic.
func (d *Diagnostic) WithSuggestions(s ...string) *Diagnostic {
	d.Suggestions = append(d.Suggestions, s...)
	return d
}

// HasErrors returns true if there are errors or unexpected failures.
func (l *Log) HasErrors() bool {
	return len(l.Errors) > 0 || len(l.Unexpected) > 0
}

// IsValid returns true if the log has no errors and no unexpected failures.
func (l *Log) IsValid() bool {
	return !l.HasErrors()
}

// Merge merges another Log into this one.
func (l *Log) Merge(other Log) {
	l.Errors = append(l.Errors, other.Errors...)
	l.Warnings = append(l.Warnings, other.Warnings...)
	l.Infos = append(l.Infos, other.Infos...)
	l.Unexpected = append(l.Unexpected, other.Unexpected...)
}

// ByCode returns all entries, of any severity, with the given code.
func (l *Log) ByCode(code string) []Diagnostic {
	var result []Diagnostic

	for _, group := range [][]Diagnostic{l.Errors, l.Unexpected, l.Warnings, l.Infos} {
		for _, d := range group {
			if d.Code == code {
				result = append(result, d)
			}
		}
	}

	return result
}

// Error returns a combined error from all errors and unexpected failures, or
// nil if valid.
func (l *Log) Error() error {
	if l.IsValid() {
		return nil
	}

	var parts []string
	for _, e := range l.Errors {
		parts = append(parts, e.String())
	}

	for _, e := range l.Unexpected {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// Summary returns counts per severity, e.g. "2 errors, 0 warnings, 1 info".
func (l *Log) Summary() string {
	s := fmt.Sprintf("%d errors, %d warnings, %d infos", len(l.Errors), len(l.Warnings), len(l.Infos))
	if len(l.Unexpected) > 0 {
		s += fmt.Sprintf(", %d unexpected", len(l.Unexpected))
	}

	return s
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Target != "" {
		prefix = append(prefix, "["+d.Target+"]")
	}

	if d.Path != "" {
		prefix = append(prefix, d.Path)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(d.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(d.Suggestions, ", ") + "?)"
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
