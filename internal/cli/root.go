// skillkit - validation and packaging tools for plugin components

// Package cli provides Cobra-based CLI commands for skillkit.
// It defines the validation commands (validate, commands), the packaging
// commands (package, unpack, inspect) and configuration management (config,
// version).
package cli

import (
	"github.com/skillkit-dev/skillkit/internal/cli/archive"
	"github.com/skillkit-dev/skillkit/internal/cli/check"
	"github.com/skillkit-dev/skillkit/internal/cli/config"
	"github.com/skillkit-dev/skillkit/internal/cli/shared"
	"github.com/skillkit-dev/skillkit/internal/cli/util"
	clierrors "github.com/skillkit-dev/skillkit/internal/errors"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the skillkit command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "skillkit",
		Short: "Validate and package plugin skills and commands",
		Long: `skillkit validates plugin components and packages skills for distribution.

A skill is a directory holding a SKILL.md whose frontmatter names and
describes it. Command documents are markdown files checked against
authoring conventions. Diagnostics are printed one per line with their
severity; the exit code is 0 on success and 1 on any validation or I/O
failure.`,
		Example: `  # Validate a skill
  skillkit validate skills/demo-tool

  # Package it into dist/
  skillkit package skills/demo-tool dist

  # Check a plugin's command documents
  skillkit commands plugins/visual/commands

  # Look inside an archive
  skillkit inspect dist/demo-tool.skill`,
		SilenceErrors: true,
	}

	shared.AddGroups(rootCmd)
	rootCmd.SetHelpCommandGroupID(shared.GroupConfiguration)
	rootCmd.SetCompletionCommandGroupID(shared.GroupConfiguration)

	shared.AddGlobalFlags(rootCmd)

	// Register commands from subpackages
	check.Register(rootCmd)
	archive.Register(rootCmd)
	config.Register(rootCmd)
	util.Register(rootCmd)

	return rootCmd
}

// Execute runs the root command. Errors raised through shared.Fail have
// already been printed. A returned CLIError is printed as is; anything else
// (unknown flags, wrong argument counts) is printed as an argument error.
func Execute() error {
	err := NewRootCmd().Execute()
	if err == nil || shared.IsExitError(err) {
		return err
	}
	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		clierrors.PrintError(cliErr)
		return err
	}
	clierrors.PrintError(clierrors.Wrap(err, clierrors.Argument, "Run 'skillkit --help' for usage"))
	return err
}
