package errors

import (
	"fmt"
	"strings"
)

// DirectoryNotFound is returned when a skill or commands directory does not exist.
func DirectoryNotFound(path string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("directory not found: %s", path),
		"Check the path for typos",
		"Run the command from the repository root or pass an absolute path",
	)
}

// NotADirectory is returned when a path that must be a directory is a file.
func NotADirectory(path string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("not a directory: %s", path),
		"Pass the skill directory, not a file inside it",
	)
}

// MissingManifest is returned when a skill directory has no manifest file.
func MissingManifest(dir, manifest string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("%s not found in %s", manifest, dir),
		fmt.Sprintf("Create %s with name and description frontmatter", manifest),
		"Run 'skillkit validate <dir>' to see what else is missing",
	)
}

// ValidationFailed is returned when a component has error-level diagnostics.
func ValidationFailed(name string, errCount int) *CLIError {
	return &CLIError{
		Category: Validation,
		Message:  fmt.Sprintf("%s failed validation with %d error(s)", name, errCount),
		Remediation: []string{
			"Fix the ERROR lines listed above",
			"Re-run 'skillkit validate' until it passes",
		},
	}
}

// PackagingFailed wraps a filesystem failure while writing an archive.
func PackagingFailed(err error) *CLIError {
	return WrapWithMessage(err, Packaging, "packaging failed",
		"Check that the output directory is writable",
		"Check that enough disk space is available",
	)
}

// ArchiveNotFound is returned when an archive to read does not exist.
func ArchiveNotFound(path string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("archive not found: %s", path),
		"Run 'skillkit package <dir>' to create it",
	)
}

// UnsafeArchive is returned when an archive entry would escape its destination.
func UnsafeArchive(path string, err error) *CLIError {
	return WrapWithMessage(err, Runtime, fmt.Sprintf("refusing to extract %s", path),
		"Only extract archives from trusted sources",
	)
}

// ConfigParseError is returned when a config file cannot be loaded.
func ConfigParseError(err error) *CLIError {
	return WrapWithMessage(err, Configuration, "invalid configuration",
		"Check the JSON syntax of .skillkit/config.json and ~/.skillkit/config.json",
		"Run 'skillkit config keys' to list supported keys",
		"Check SKILLKIT_* environment variables",
	)
}

// InvalidFlagCombination is returned when mutually exclusive flags are set together.
func InvalidFlagCombination(flags []string, reason string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("flags %s cannot be used together: %s", strings.Join(flags, ", "), reason),
		"Remove one of the flags",
	)
}

// NoMarkdownFiles is returned when a commands directory has no .md files.
func NoMarkdownFiles(dir string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("no .md files found in %s", dir),
		"Point the command at the directory holding the command documents",
	)
}

// UnknownConfigKey is returned when a config key is not recognized.
func UnknownConfigKey(key string) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("unknown configuration key: %q", key),
		"skillkit config get <key>",
		"Run 'skillkit config keys' to list valid keys",
	)
}

// InvalidExcludePattern is returned when an exclude glob cannot be parsed.
func InvalidExcludePattern(err error) *CLIError {
	cliErr := NewArgumentErrorWithUsage(err.Error(),
		"skillkit package <skill-dir> --exclude '<glob>'",
		"Check the --exclude patterns and the exclude config key",
	)
	cliErr.Err = err
	return cliErr
}

// InvalidSeverity is returned when a severity flag value is not recognized.
func InvalidSeverity(err error) *CLIError {
	cliErr := NewArgumentErrorWithUsage(err.Error(),
		"--min-severity info|warn|error",
		"Use --quiet to hide INFO lines",
	)
	cliErr.Err = err
	return cliErr
}
