package report

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/skillkit-dev/skillkit/internal/commands"
	"github.com/skillkit-dev/skillkit/internal/packager"
	"github.com/skillkit-dev/skillkit/internal/validation"
)

// Reporter writes diagnostics and verdicts to an output stream.
type Reporter struct {
	out         io.Writer
	caps        TerminalCapabilities
	symbols     Symbols
	minSeverity validation.Severity
	spinner     *spinner.Spinner

	red    func(a ...interface{}) string
	yellow func(a ...interface{}) string
	green  func(a ...interface{}) string
	cyan   func(a ...interface{}) string
	bold   func(a ...interface{}) string
}

// New creates a Reporter writing to out with the given capabilities.
func New(out io.Writer, caps TerminalCapabilities) *Reporter {
	paint := func(attrs ...color.Attribute) func(a ...interface{}) string {
		c := color.New(attrs...)
		if caps.SupportsColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c.SprintFunc()
	}

	return &Reporter{
		out:         out,
		caps:        caps,
		symbols:     SelectSymbols(caps),
		minSeverity: validation.SeverityInfo,
		red:         paint(color.FgRed),
		yellow:      paint(color.FgYellow),
		green:       paint(color.FgGreen),
		cyan:        paint(color.FgCyan),
		bold:        paint(color.Bold),
	}
}

// SetMinSeverity hides diagnostics below sev.
func (r *Reporter) SetMinSeverity(sev validation.Severity) {
	r.minSeverity = sev
}

// Symbols returns the symbol set in use.
func (r *Reporter) Symbols() Symbols {
	return r.symbols
}

func (r *Reporter) severityLabel(sev validation.Severity) string {
	switch sev {
	case validation.SeverityError:
		return r.red(sev.String())
	case validation.SeverityWarn:
		return r.yellow(sev.String())
	default:
		return r.cyan(sev.String())
	}
}

// Diagnostics prints one line per diagnostic, prefixed by its severity.
// A non-empty subject is printed before each message.
func (r *Reporter) Diagnostics(subject string, res *validation.Result) {
	if res == nil {
		return
	}
	for _, d := range res.Filter(r.minSeverity) {
		if subject != "" {
			fmt.Fprintf(r.out, "%s: %s: %s\n", r.severityLabel(d.Severity), subject, d.Message)
		} else {
			fmt.Fprintf(r.out, "%s: %s\n", r.severityLabel(d.Severity), d.Message)
		}
	}
}

// Verdict prints the final pass/fail line for name.
func (r *Reporter) Verdict(name string, res *validation.Result) {
	errs := res.Count(validation.SeverityError)
	warns := res.Count(validation.SeverityWarn)

	switch {
	case errs > 0:
		fmt.Fprintf(r.out, "%s %s: validation failed (%d errors, %d warnings)\n",
			r.red(r.symbols.Failure), name, errs, warns)
	case warns > 0:
		fmt.Fprintf(r.out, "%s %s: validation passed with %d warnings\n",
			r.yellow(r.symbols.Warning), name, warns)
	default:
		fmt.Fprintf(r.out, "%s %s: validation passed\n", r.green(r.symbols.Checkmark), name)
	}
}

// CommandSummary prints per-file counts, totals and the overall verdict
// for a commands directory.
func (r *Reporter) CommandSummary(rep *commands.Report) {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, r.bold("SUMMARY"))

	for _, f := range rep.Files {
		errs := f.Result.Count(validation.SeverityError)
		warns := f.Result.Count(validation.SeverityWarn)
		passed := f.Result.Count(validation.SeverityInfo)

		mark := r.green(r.symbols.Checkmark)
		switch {
		case errs > 0:
			mark = r.red(r.symbols.Failure)
		case warns > 0:
			mark = r.yellow(r.symbols.Warning)
		}
		fmt.Fprintf(r.out, "%s %s: %d checks passed, %d errors, %d warnings\n", mark, f.File, passed, errs, warns)
	}

	errs := rep.Count(validation.SeverityError)
	warns := rep.Count(validation.SeverityWarn)
	fmt.Fprintf(r.out, "\nFILES: %d  ERRORS: %d  WARNINGS: %d  PASSED: %d\n",
		len(rep.Files), errs, warns, rep.Count(validation.SeverityInfo))

	switch {
	case errs > 0:
		fmt.Fprintln(r.out, r.red("VALIDATION FAILED"))
	case warns > 0:
		fmt.Fprintln(r.out, r.yellow("VALIDATION PASSED WITH WARNINGS"))
	default:
		fmt.Fprintln(r.out, r.green("VALIDATION PASSED"))
	}
}

// Archive prints the outcome of a packaging run.
func (r *Reporter) Archive(a *packager.Archive) {
	fmt.Fprintf(r.out, "%s Packaged %d files into %s (%s)\n",
		r.green(r.symbols.Checkmark), a.FileCount(), a.Path, humanize.Bytes(uint64(a.Size)))
}

// Extracted prints the outcome of an unpack run.
func (r *Reporter) Extracted(path string, files int) {
	fmt.Fprintf(r.out, "%s Extracted %d files into %s\n", r.green(r.symbols.Checkmark), files, path)
}

// Warning prints a single warning line that is not tied to a document.
func (r *Reporter) Warning(format string, args ...any) {
	fmt.Fprintf(r.out, "%s %s\n", r.yellow(r.symbols.Warning), fmt.Sprintf(format, args...))
}

// Entries prints archive or dry-run entries with their sizes.
func (r *Reporter) Entries(entries []packager.Entry) {
	var total int64
	for _, e := range entries {
		fmt.Fprintf(r.out, "%10s  %s\n", humanize.Bytes(uint64(e.Size)), e.Name)
		total += e.Size
	}
	fmt.Fprintf(r.out, "%d files, %s\n", len(entries), humanize.Bytes(uint64(total)))
}

// StartSpinner shows msg with a spinner on w when the terminal supports it.
// Without a TTY nothing is printed.
func (r *Reporter) StartSpinner(w io.Writer, msg string) {
	if !r.caps.IsTTY {
		return
	}
	r.StopSpinner()
	r.spinner = spinner.New(spinner.CharSets[r.symbols.SpinnerSet], 100*time.Millisecond)
	r.spinner.Writer = w
	r.spinner.Suffix = " " + msg
	r.spinner.Start()
}

// StopSpinner stops a running spinner, if any.
func (r *Reporter) StopSpinner() {
	if r.spinner != nil {
		r.spinner.Stop()
		r.spinner = nil
	}
}
