// Package report renders validation diagnostics, verdicts and packaging
// results for the terminal. Colors and symbols come from a
// TerminalCapabilities value passed in by the caller.
package report

// TerminalCapabilities encapsulates detected terminal features
type TerminalCapabilities struct {
	// IsTTY indicates whether the output is a terminal (vs pipe/redirect)
	IsTTY bool
	// SupportsColor indicates whether terminal supports ANSI color codes
	SupportsColor bool
	// SupportsUnicode indicates whether terminal supports Unicode characters
	SupportsUnicode bool
	// Width is the terminal width in columns (0 if unknown/pipe)
	Width int
}

// Symbols defines the character set for visual indicators
type Symbols struct {
	// Checkmark is the success indicator ("✓" or "[OK]")
	Checkmark string
	// Failure is the failure indicator ("✗" or "[FAIL]")
	Failure string
	// Warning marks a passed verdict that still carries warnings ("⚠" or "[WARN]")
	Warning string
	// SpinnerSet is the index into spinner.CharSets
	SpinnerSet int
}
