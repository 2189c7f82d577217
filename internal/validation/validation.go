// Package validation checks component documents against their structural
// conventions. Every rule failure becomes a Diagnostic; only I/O failures
// are returned as Go errors.
package validation

import (
	"fmt"
	"strings"
)

// Severity classifies a Diagnostic. Only SeverityError affects the verdict.
type Severity int

const (
	// SeverityInfo reports a fact about the component (file counts, passed checks).
	SeverityInfo Severity = iota
	// SeverityWarn reports a stylistic or soft-budget issue.
	SeverityWarn
	// SeverityError reports a violation that fails validation.
	SeverityError
)

// String returns the upper-case label used as the diagnostics stream prefix.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityWarn:
		return "WARN"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseSeverity converts a label such as "warn" or "ERROR" to a Severity.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "INFO":
		return SeverityInfo, nil
	case "WARN", "WARNING":
		return SeverityWarn, nil
	case "ERROR":
		return SeverityError, nil
	default:
		return 0, fmt.Errorf("invalid severity: %q (valid: info, warn, error)", s)
	}
}

// Diagnostic is a single validation finding.
type Diagnostic struct {
	Severity Severity
	Message  string
}

// String formats the diagnostic as "SEVERITY: message".
func (d Diagnostic) String() string {
	return d.Severity.String() + ": " + d.Message
}

// Result is the ordered set of diagnostics produced by one validation call.
// It is valid exactly when no ERROR diagnostic is present.
type Result struct {
	Diagnostics []Diagnostic
}

// Valid reports whether the result contains no ERROR diagnostic.
func (r *Result) Valid() bool {
	return !r.HasErrors()
}

// HasErrors returns true if any ERROR diagnostic was recorded.
func (r *Result) HasErrors() bool {
	return r.Count(SeverityError) > 0
}

// Add appends a diagnostic.
func (r *Result) Add(sev Severity, format string, args ...any) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	r.Diagnostics = append(r.Diagnostics, Diagnostic{Severity: sev, Message: msg})
}

// Errorf appends an ERROR diagnostic.
func (r *Result) Errorf(format string, args ...any) {
	r.Add(SeverityError, format, args...)
}

// Warnf appends a WARN diagnostic.
func (r *Result) Warnf(format string, args ...any) {
	r.Add(SeverityWarn, format, args...)
}

// Infof appends an INFO diagnostic.
func (r *Result) Infof(format string, args ...any) {
	r.Add(SeverityInfo, format, args...)
}

// Count returns the number of diagnostics with the given severity.
func (r *Result) Count(sev Severity) int {
	n := 0
	for _, d := range r.Diagnostics {
		if d.Severity == sev {
			n++
		}
	}
	return n
}

// Filter returns the diagnostics whose severity is at least min.
func (r *Result) Filter(min Severity) []Diagnostic {
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Severity >= min {
			out = append(out, d)
		}
	}
	return out
}

// Merge appends all diagnostics from other.
func (r *Result) Merge(other *Result) {
	if other == nil {
		return
	}
	r.Diagnostics = append(r.Diagnostics, other.Diagnostics...)
}
