package check

import (
	"errors"
	"os"

	"github.com/skillkit-dev/skillkit/internal/cli/shared"
	"github.com/skillkit-dev/skillkit/internal/commands"
	clierrors "github.com/skillkit-dev/skillkit/internal/errors"
	"github.com/spf13/cobra"
)

// NewCommandsCmd creates the commands command.
func NewCommandsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "commands <commands-dir>",
		Short: "Check command documents against authoring conventions",
		Long: `Check every .md command document in a directory.

Checks frontmatter, prompt option counts, prompt headers, skill references,
referenced files, step numbering, required sections and early definition of
the project path token. Referenced files are looked up in
<plugin>/skills/<plugin>/references by default, where <plugin> is the parent
of the commands directory.

Conventions (prompt tool, option bounds, command lists, legacy terms) come
from the configuration; run 'skillkit config keys' to list them.`,
		Example: `  # Check a plugin's commands
  skillkit commands plugins/visual/commands

  # Use another references directory
  skillkit commands plugins/visual/commands --references docs/references

  # Skip referenced-file checks
  skillkit commands plugins/visual/commands --no-references`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         runCommands,
	}
	cmd.GroupID = shared.GroupValidation
	cmd.Flags().String("references", "", "Directory holding referenced files (default: <plugin>/skills/<plugin>/references)")
	cmd.Flags().Bool("no-references", false, "Skip referenced-file checks")
	addSeverityFlags(cmd)
	return cmd
}

func runCommands(cmd *cobra.Command, args []string) error {
	dir := args[0]

	refsDir, _ := cmd.Flags().GetString("references")
	noRefs, _ := cmd.Flags().GetBool("no-references")
	if noRefs && refsDir != "" {
		return shared.Fail(cmd, clierrors.InvalidFlagCombination(
			[]string{"--references", "--no-references"}, "one sets the directory the other disables"))
	}
	minSev, err := applySeverity(cmd)
	if err != nil {
		return err
	}
	switch {
	case noRefs:
		refsDir = ""
	case refsDir == "":
		refsDir = commands.DefaultReferencesDir(dir)
	}

	cfg, err := shared.LoadConfig(cmd)
	if err != nil {
		return err
	}

	logger := shared.NewLogger(cmd)
	checker := commands.NewChecker(cfg.CommandConventions(refsDir), commands.WithLogger(logger))

	rep, err := checker.CheckDir(dir)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return shared.Fail(cmd, clierrors.DirectoryNotFound(dir))
	case errors.Is(err, commands.ErrNotDirectory):
		return shared.Fail(cmd, clierrors.NotADirectory(dir))
	case err != nil:
		return shared.Fail(cmd, clierrors.Wrap(err, clierrors.Runtime))
	}
	if len(rep.Files) == 0 {
		return shared.Fail(cmd, clierrors.NoMarkdownFiles(dir))
	}

	r := shared.NewReporter(cmd, cfg)
	r.SetMinSeverity(minSev)
	if refsDir != "" {
		if info, statErr := os.Stat(refsDir); statErr != nil || !info.IsDir() {
			r.Warning("References directory not found: %s", refsDir)
		}
	}
	for _, f := range rep.Files {
		r.Diagnostics(f.File, f.Result)
	}
	r.CommandSummary(rep)

	if !rep.Valid() {
		return shared.NewExitError(shared.ExitValidationFailed)
	}
	return nil
}
