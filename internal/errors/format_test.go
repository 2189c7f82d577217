// Package errors_test tests how skillkit errors render on the terminal, with and without colors.
// Related: internal/errors/format.go, internal/errors/messages.go
// Tags: errors, formatting, colors, output, remediation, usage
package errors

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
)

func TestFormatErrorPlain_Layout(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err  *CLIError
		want string
	}{
		"nil": {
			err:  nil,
			want: "",
		},
		"message only": {
			err:  &CLIError{Category: Validation, Message: "demo-tool failed validation with 2 error(s)"},
			want: "Validation Error: demo-tool failed validation with 2 error(s)\n",
		},
		"missing manifest with steps": {
			err: MissingManifest("skills/demo-tool", "SKILL.md"),
			want: "Prerequisite Error: SKILL.md not found in skills/demo-tool\n" +
				"\nTo fix this:\n" +
				"  1. Create SKILL.md with name and description frontmatter\n" +
				"  2. Run 'skillkit validate <dir>' to see what else is missing\n",
		},
		"usage before steps": {
			err: UnknownConfigKey("max_lines"),
			want: "Argument Error: unknown configuration key: \"max_lines\"\n" +
				"\nUsage: skillkit config get <key>\n" +
				"\nTo fix this:\n" +
				"  1. Run 'skillkit config keys' to list valid keys\n",
		},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			if got := FormatErrorPlain(tc.err); got != tc.want {
				t.Errorf("FormatErrorPlain() =\n%q\nwant\n%q", got, tc.want)
			}
		})
	}
}

func TestFormatError_Colors(t *testing.T) {
	t.Parallel()

	err := DirectoryNotFound("skills/absent")
	colored := FormatError(err)
	plain := FormatErrorPlain(err)

	if !strings.Contains(colored, "\x1b[") {
		t.Errorf("Expected ANSI escapes in %q", colored)
	}
	if strings.Contains(plain, "\x1b[") {
		t.Errorf("Expected no ANSI escapes in %q", plain)
	}
	if !strings.Contains(colored, "directory not found: skills/absent") {
		t.Errorf("Expected message in colored output %q", colored)
	}
	if FormatError(nil) != "" {
		t.Error("Expected empty output for nil")
	}
}

func TestFprintError(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err        *CLIError
		wantPrefix string
	}{
		"nil writes nothing": {
			err: nil,
		},
		"packaging failure": {
			err:        PackagingFailed(fmt.Errorf("no space left on device")),
			wantPrefix: "Packaging Error: packaging failed: no space left on device\n",
		},
		"unsafe archive": {
			err:        UnsafeArchive("evil.skill", fmt.Errorf("archive entry escapes destination: ../x")),
			wantPrefix: "Runtime Error: refusing to extract evil.skill: archive entry escapes destination: ../x\n",
		},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			FprintError(&buf, tc.err)

			if tc.wantPrefix == "" {
				if buf.Len() != 0 {
					t.Errorf("Expected no output, got %q", buf.String())
				}
				return
			}
			if !strings.HasPrefix(buf.String(), tc.wantPrefix) {
				t.Errorf("Expected output to start with %q, got %q", tc.wantPrefix, buf.String())
			}
			if strings.Contains(buf.String(), "\x1b[") {
				t.Errorf("Expected plain output, got %q", buf.String())
			}
		})
	}
}

func TestPrintError_NoColorEnv(t *testing.T) {
	// Writes to the process stderr; only checks that nothing panics with
	// and without NO_COLOR.
	t.Setenv("NO_COLOR", "1")
	PrintError(NoMarkdownFiles("commands"))
	PrintError(nil)

	t.Setenv("NO_COLOR", "")
	PrintError(ArchiveNotFound("demo-tool.skill"))
}
