// Package errors provides categorized CLI errors carrying usage hints and
// remediation steps, and helpers to format them for the terminal.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCategory classifies a CLIError for display.
type ErrorCategory int

const (
	// Argument errors come from invalid command-line input.
	Argument ErrorCategory = iota
	// Configuration errors come from config files or environment variables.
	Configuration
	// Prerequisite errors mean a required file or directory is missing.
	Prerequisite
	// Runtime errors are unexpected failures while running a command.
	Runtime
	// Validation errors mean a component failed its checks.
	Validation
	// Packaging errors are filesystem failures while writing an archive.
	Packaging
)

// String returns the display name of the category.
func (c ErrorCategory) String() string {
	switch c {
	case Argument:
		return "Argument Error"
	case Configuration:
		return "Configuration Error"
	case Prerequisite:
		return "Prerequisite Error"
	case Runtime:
		return "Runtime Error"
	case Validation:
		return "Validation Error"
	case Packaging:
		return "Packaging Error"
	default:
		return "Error"
	}
}

// CLIError is an error meant to be shown to the user.
type CLIError struct {
	Category    ErrorCategory
	Message     string
	Usage       string   // Optional usage line
	Remediation []string // Steps the user can take
	Err         error    // Underlying cause, if any
}

func (e *CLIError) Error() string {
	return e.Message
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewArgumentError creates an Argument error.
func NewArgumentError(message string, remediation ...string) *CLIError {
	return &CLIError{Category: Argument, Message: message, Remediation: remediation}
}

// NewArgumentErrorWithUsage creates an Argument error with a usage line.
func NewArgumentErrorWithUsage(message, usage string, remediation ...string) *CLIError {
	return &CLIError{Category: Argument, Message: message, Usage: usage, Remediation: remediation}
}

// NewPrerequisiteError creates a Prerequisite error.
func NewPrerequisiteError(message string, remediation ...string) *CLIError {
	return &CLIError{Category: Prerequisite, Message: message, Remediation: remediation}
}

// Wrap converts err into a CLIError of the given category.
// Returns nil if err is nil.
func Wrap(err error, category ErrorCategory, remediation ...string) *CLIError {
	if err == nil {
		return nil
	}
	return &CLIError{Category: category, Message: err.Error(), Remediation: remediation, Err: err}
}

// WrapWithMessage is like Wrap but prefixes the message: "message: err".
func WrapWithMessage(err error, category ErrorCategory, message string, remediation ...string) *CLIError {
	if err == nil {
		return nil
	}
	return &CLIError{
		Category:    category,
		Message:     fmt.Sprintf("%s: %s", message, err.Error()),
		Remediation: remediation,
		Err:         err,
	}
}

// AsCLIError returns the CLIError in err's chain, or nil.
func AsCLIError(err error) *CLIError {
	var cliErr *CLIError
	if stderrors.As(err, &cliErr) {
		return cliErr
	}
	return nil
}
