package cli

import (
	"github.com/skillkit-dev/skillkit/internal/cli/shared"
)

// Exit codes for the skillkit CLI (re-exported from shared)
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = shared.ExitSuccess

	// ExitValidationFailed indicates a validation or I/O failure
	ExitValidationFailed = shared.ExitValidationFailed

	// ExitInvalidArguments indicates conflicting or malformed command arguments
	ExitInvalidArguments = shared.ExitInvalidArguments
)

// NewExitError creates a new exit error with the given code (re-exported from shared).
func NewExitError(code int) error {
	return shared.NewExitError(code)
}

// ExitCode returns the exit code from an error (re-exported from shared).
func ExitCode(err error) int {
	return shared.ExitCode(err)
}
