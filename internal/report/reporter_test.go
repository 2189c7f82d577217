// Package report_test tests diagnostic rendering, verdict lines, command summaries and symbol selection.
// Related: internal/report/reporter.go, internal/report/terminal.go
// Tags: report, output, diagnostics, verdict, symbols, tty
package report

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/skillkit-dev/skillkit/internal/commands"
	"github.com/skillkit-dev/skillkit/internal/packager"
	"github.com/skillkit-dev/skillkit/internal/validation"
	"github.com/stretchr/testify/assert"
)

var plain = TerminalCapabilities{}

func sampleResult() *validation.Result {
	r := &validation.Result{}
	r.Errorf("Missing 'name' in frontmatter")
	r.Warnf("Description seems short - include specific triggers")
	r.Infof("Found 2 Python scripts")
	return r
}

func TestReporter_Diagnostics(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		subject string
		min     validation.Severity
		want    string
	}{
		"all severities": {
			min: validation.SeverityInfo,
			want: "ERROR: Missing 'name' in frontmatter\n" +
				"WARN: Description seems short - include specific triggers\n" +
				"INFO: Found 2 Python scripts\n",
		},
		"warnings and errors only": {
			min: validation.SeverityWarn,
			want: "ERROR: Missing 'name' in frontmatter\n" +
				"WARN: Description seems short - include specific triggers\n",
		},
		"with subject": {
			subject: "deck.md",
			min:     validation.SeverityError,
			want:    "ERROR: deck.md: Missing 'name' in frontmatter\n",
		},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			r := New(&buf, plain)
			r.SetMinSeverity(tc.min)
			r.Diagnostics(tc.subject, sampleResult())
			assert.Equal(t, tc.want, buf.String())
		})
	}
}

func TestReporter_DiagnosticsNil(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	New(&buf, plain).Diagnostics("x", nil)
	assert.Empty(t, buf.String())
}

func TestReporter_Verdict(t *testing.T) {
	t.Parallel()

	warned := &validation.Result{}
	warned.Warnf("w")

	tests := map[string]struct {
		res  *validation.Result
		want string
	}{
		"passed":        {res: &validation.Result{}, want: "[OK] demo-tool: validation passed\n"},
		"with warnings": {res: warned, want: "[WARN] demo-tool: validation passed with 1 warnings\n"},
		"failed":        {res: sampleResult(), want: "[FAIL] demo-tool: validation failed (1 errors, 1 warnings)\n"},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			New(&buf, plain).Verdict("demo-tool", tc.res)
			assert.Equal(t, tc.want, buf.String())
		})
	}
}

func TestReporter_ColorsOnlyWhenSupported(t *testing.T) {
	t.Parallel()

	var colored, uncolored bytes.Buffer
	New(&colored, TerminalCapabilities{IsTTY: true, SupportsColor: true, SupportsUnicode: true}).Verdict("x", sampleResult())
	New(&uncolored, plain).Verdict("x", sampleResult())

	assert.Contains(t, colored.String(), "\x1b[")
	assert.Contains(t, colored.String(), "✗")
	assert.NotContains(t, uncolored.String(), "\x1b[")
}

func TestReporter_CommandSummary(t *testing.T) {
	t.Parallel()

	ok := &validation.Result{}
	ok.Infof("Has description")
	ok.Infof("Has Workflow section")
	warned := &validation.Result{}
	warned.Infof("Has description")
	warned.Warnf("Missing '## Output' section")

	tests := map[string]struct {
		files       []commands.FileResult
		wantLines   []string
		wantVerdict string
	}{
		"passed": {
			files:       []commands.FileResult{{File: "a.md", Result: ok}},
			wantLines:   []string{"[OK] a.md: 2 checks passed, 0 errors, 0 warnings", "FILES: 1  ERRORS: 0  WARNINGS: 0  PASSED: 2"},
			wantVerdict: "VALIDATION PASSED",
		},
		"warnings": {
			files:       []commands.FileResult{{File: "a.md", Result: ok}, {File: "b.md", Result: warned}},
			wantLines:   []string{"[WARN] b.md: 1 checks passed, 0 errors, 1 warnings"},
			wantVerdict: "VALIDATION PASSED WITH WARNINGS",
		},
		"failed": {
			files:       []commands.FileResult{{File: "c.md", Result: sampleResult()}},
			wantLines:   []string{"[FAIL] c.md: 1 checks passed, 1 errors, 1 warnings"},
			wantVerdict: "VALIDATION FAILED",
		},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			New(&buf, plain).CommandSummary(&commands.Report{Dir: "cmds", Files: tc.files})

			out := buf.String()
			for _, line := range tc.wantLines {
				assert.Contains(t, out, line)
			}
			lines := strings.Split(strings.TrimSpace(out), "\n")
			assert.Equal(t, tc.wantVerdict, lines[len(lines)-1])
		})
	}
}

func TestReporter_Archive(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	New(&buf, plain).Archive(&packager.Archive{
		Path:    "/out/demo-tool.skill",
		Entries: []packager.Entry{{Name: "demo-tool/SKILL.md"}, {Name: "demo-tool/a.md"}},
		Size:    2048,
	})
	assert.Equal(t, "[OK] Packaged 2 files into /out/demo-tool.skill (2.0 kB)\n", buf.String())
}

func TestReporter_Extracted(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	New(&buf, plain).Extracted("/tmp/out/demo-tool", 3)
	assert.Equal(t, "[OK] Extracted 3 files into /tmp/out/demo-tool\n", buf.String())
}

func TestReporter_Warning(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	New(&buf, plain).Warning("References directory not found: %s", "/p/refs")
	assert.Equal(t, "[WARN] References directory not found: /p/refs\n", buf.String())
}

func TestReporter_Entries(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	New(&buf, plain).Entries([]packager.Entry{
		{Name: "demo-tool/SKILL.md", Size: 10},
		{Name: "demo-tool/references/api.md", Size: 5},
	})

	out := buf.String()
	assert.Contains(t, out, "demo-tool/SKILL.md")
	assert.Contains(t, out, "demo-tool/references/api.md")
	assert.Contains(t, out, "2 files, 15 B")
}

func TestReporter_SpinnerRequiresTTY(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r := New(&buf, plain)
	r.StartSpinner(&buf, "packaging")
	assert.Nil(t, r.spinner)
	r.StopSpinner()
	assert.Empty(t, buf.String())
}

func TestSelectSymbols(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		caps          TerminalCapabilities
		wantCheckmark string
		wantFailure   string
		wantWarning   string
	}{
		"Unicode support enabled": {
			caps:          TerminalCapabilities{IsTTY: true, SupportsUnicode: true, SupportsColor: true},
			wantCheckmark: "✓",
			wantFailure:   "✗",
			wantWarning:   "⚠",
		},
		"ASCII fallback mode": {
			caps:          TerminalCapabilities{IsTTY: true},
			wantCheckmark: "[OK]",
			wantFailure:   "[FAIL]",
			wantWarning:   "[WARN]",
		},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			symbols := SelectSymbols(tc.caps)
			assert.Equal(t, tc.wantCheckmark, symbols.Checkmark)
			assert.Equal(t, tc.wantFailure, symbols.Failure)
			assert.Equal(t, tc.wantWarning, symbols.Warning)
			assert.GreaterOrEqual(t, symbols.SpinnerSet, 0)
		})
	}
}

func TestDetectTerminalCapabilities(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	t.Setenv("SKILLKIT_ASCII", "1")

	caps := DetectTerminalCapabilities(os.Stdout)
	assert.GreaterOrEqual(t, caps.Width, 0)
	assert.False(t, caps.SupportsColor)
	assert.False(t, caps.SupportsUnicode)
}

func TestDetectTerminalCapabilities_NonTerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	caps := DetectTerminalCapabilities(f)
	assert.False(t, caps.IsTTY)
	assert.False(t, caps.SupportsColor)
	assert.Equal(t, 0, caps.Width)
}
