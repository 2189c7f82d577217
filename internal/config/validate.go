package config

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// ValidationError represents a configuration validation error with context
type ValidationError struct {
	FilePath string
	Field    string
	Message  string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: field '%s': %s", e.FilePath, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.FilePath, e.Message)
}

// ValidateConfigValues checks the values struct tags cannot express.
// Returns nil if valid, or a ValidationError with field information if invalid.
func ValidateConfigValues(cfg *Configuration, filePath string) error {
	if _, err := regexp.Compile(cfg.ReferenceToken); err != nil {
		return &ValidationError{
			FilePath: filePath,
			Field:    "reference_token",
			Message:  fmt.Sprintf("invalid regular expression: %v", err),
		}
	}

	for _, pattern := range cfg.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return &ValidationError{
				FilePath: filePath,
				Field:    "exclude",
				Message:  fmt.Sprintf("invalid glob %q", pattern),
			}
		}
	}

	olds := make([]string, 0, len(cfg.LegacyTerms))
	for old := range cfg.LegacyTerms {
		olds = append(olds, old)
	}
	sort.Strings(olds)
	for _, old := range olds {
		if cfg.LegacyTerms[old] == "" {
			return &ValidationError{
				FilePath: filePath,
				Field:    "legacy_terms",
				Message:  fmt.Sprintf("term %q has no replacement", old),
			}
		}
	}

	return nil
}
