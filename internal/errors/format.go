package errors

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// FormatError renders err with colors: category header, message, optional
// usage and numbered remediation steps. Returns "" for nil.
func FormatError(err *CLIError) string {
	return format(err, true)
}

// FormatErrorPlain renders err without ANSI colors.
func FormatErrorPlain(err *CLIError) string {
	return format(err, false)
}

func format(err *CLIError, colored bool) string {
	if err == nil {
		return ""
	}

	red := color.New(color.FgRed, color.Bold)
	cyan := color.New(color.FgCyan)
	if colored {
		red.EnableColor()
		cyan.EnableColor()
	} else {
		red.DisableColor()
		cyan.DisableColor()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s\n", red.Sprint(err.Category.String()), err.Message)

	if err.Usage != "" {
		fmt.Fprintf(&sb, "\n%s %s\n", cyan.Sprint("Usage:"), err.Usage)
	}

	if len(err.Remediation) > 0 {
		fmt.Fprintf(&sb, "\n%s\n", cyan.Sprint("To fix this:"))
		for i, step := range err.Remediation {
			fmt.Fprintf(&sb, "  %d. %s\n", i+1, step)
		}
	}

	return sb.String()
}

// PrintError writes err to stderr. Colors are used unless NO_COLOR is set.
func PrintError(err *CLIError) {
	if err == nil {
		return
	}
	if os.Getenv("NO_COLOR") != "" {
		fmt.Fprint(os.Stderr, FormatErrorPlain(err))
		return
	}
	fmt.Fprint(os.Stderr, FormatError(err))
}

// FprintError writes err to w without colors.
func FprintError(w io.Writer, err *CLIError) {
	if err == nil {
		return
	}
	fmt.Fprint(w, FormatErrorPlain(err))
}
