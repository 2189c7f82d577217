package check

import (
	"github.com/skillkit-dev/skillkit/internal/cli/shared"
	clierrors "github.com/skillkit-dev/skillkit/internal/errors"
	"github.com/skillkit-dev/skillkit/internal/validation"
	"github.com/spf13/cobra"
)

// NewValidateCmd creates the validate command.
func NewValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <skill-dir>...",
		Short: "Validate skill directories",
		Long: `Validate one or more skill directories.

Each directory must contain a SKILL.md whose frontmatter declares a name and a
description. Every diagnostic is printed with its severity, followed by a
pass/fail line per directory. Several directories are validated concurrently
and reported in argument order.`,
		Example: `  # Validate a single skill
  skillkit validate skills/demo-tool

  # Validate every skill, hiding INFO lines
  skillkit validate --quiet skills/*

  # Only print errors
  skillkit validate --min-severity error skills/*`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE:         runValidate,
	}
	cmd.GroupID = shared.GroupValidation
	addSeverityFlags(cmd)
	return cmd
}

func runValidate(cmd *cobra.Command, args []string) error {
	minSev, err := applySeverity(cmd)
	if err != nil {
		return err
	}

	cfg, err := shared.LoadConfig(cmd)
	if err != nil {
		return err
	}

	parser, err := cfg.Parser()
	if err != nil {
		return shared.Fail(cmd, clierrors.Wrap(err, clierrors.Configuration))
	}

	logger := shared.NewLogger(cmd)
	validator := validation.NewSkillValidator(validation.SkillOptions{
		Parser:       parser,
		MaxBodyLines: cfg.MaxBodyLines,
		Logger:       logger,
	})

	results, err := validator.ValidateAll(shared.Context(cmd), args)
	if err != nil {
		return shared.Fail(cmd, clierrors.Wrap(err, clierrors.Runtime))
	}

	r := shared.NewReporter(cmd, cfg)
	r.SetMinSeverity(minSev)

	failed := 0
	for _, dr := range results {
		r.Diagnostics("", dr.Result)
		r.Verdict(shared.ComponentName(dr.Dir), dr.Result)
		if dr.Result.HasErrors() {
			failed++
		}
	}

	logger.Debug("validation finished", "dirs", len(results), "failed", failed)
	if failed > 0 {
		return shared.NewExitError(shared.ExitValidationFailed)
	}
	return nil
}
