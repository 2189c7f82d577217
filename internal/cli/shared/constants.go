// Package shared provides constants and helpers used across CLI subpackages.
// This package has no dependencies on other CLI packages to avoid circular imports.
package shared

import (
	"errors"
	"fmt"

	clierrors "github.com/skillkit-dev/skillkit/internal/errors"
)

// Command group IDs for organizing help output
const (
	GroupValidation    = "validation"
	GroupPackaging     = "packaging"
	GroupConfiguration = "configuration"
)

// Exit codes for CLI commands
const (
	ExitSuccess          = 0
	ExitValidationFailed = 1 // Validation errors, I/O failures and anything unexpected
	ExitInvalidArguments = 3
)

// exitError is a custom error type that carries an exit code.
// The message has already been printed when it is returned.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}

// NewExitError creates a new exit error with the given code.
func NewExitError(code int) error {
	return &exitError{code: code}
}

// IsExitError reports whether err carries an exit code.
func IsExitError(err error) bool {
	var e *exitError
	return errors.As(err, &e)
}

// ExitCode returns the exit code from an error.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var e *exitError
	if errors.As(err, &e) {
		return e.code
	}
	return ExitValidationFailed
}

// exitCodeFor maps a CLIError category to an exit code.
func exitCodeFor(err *clierrors.CLIError) int {
	if err.Category == clierrors.Argument {
		return ExitInvalidArguments
	}
	return ExitValidationFailed
}
