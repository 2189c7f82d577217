package check

import (
	"github.com/skillkit-dev/skillkit/internal/cli/shared"
	clierrors "github.com/skillkit-dev/skillkit/internal/errors"
	"github.com/skillkit-dev/skillkit/internal/validation"
	"github.com/spf13/cobra"
)

const (
	flagQuiet       = "quiet"
	flagMinSeverity = "min-severity"
)

func addSeverityFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP(flagQuiet, "q", false, "Only print warnings and errors (same as --min-severity warn)")
	cmd.Flags().String(flagMinSeverity, "info", "Lowest severity to print: info, warn or error")
}

// minSeverity resolves the diagnostics threshold from --quiet and
// --min-severity. Verdicts always count every diagnostic.
func minSeverity(cmd *cobra.Command) (validation.Severity, *clierrors.CLIError) {
	quiet, _ := cmd.Flags().GetBool(flagQuiet)
	if quiet && cmd.Flags().Changed(flagMinSeverity) {
		return 0, clierrors.InvalidFlagCombination(
			[]string{"--" + flagQuiet, "--" + flagMinSeverity}, "both set the severity threshold")
	}
	if quiet {
		return validation.SeverityWarn, nil
	}

	raw, _ := cmd.Flags().GetString(flagMinSeverity)
	sev, err := validation.ParseSeverity(raw)
	if err != nil {
		return 0, clierrors.InvalidSeverity(err)
	}
	return sev, nil
}

// applySeverity is minSeverity for commands that report through shared.Fail.
func applySeverity(cmd *cobra.Command) (validation.Severity, error) {
	sev, cliErr := minSeverity(cmd)
	if cliErr != nil {
		return 0, shared.Fail(cmd, cliErr)
	}
	return sev, nil
}
