package archive

import (
	"errors"

	"github.com/skillkit-dev/skillkit/internal/cli/shared"
	"github.com/skillkit-dev/skillkit/internal/config"
	clierrors "github.com/skillkit-dev/skillkit/internal/errors"
	"github.com/skillkit-dev/skillkit/internal/packager"
	"github.com/skillkit-dev/skillkit/internal/report"
	"github.com/skillkit-dev/skillkit/internal/validation"
	"github.com/spf13/cobra"
)

// NewPackageCmd creates the package command.
func NewPackageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "package <skill-dir> [output-dir]",
		Short: "Validate a skill and write it to an archive",
		Long: `Validate a skill directory and, if it has no errors, write every file
under it into <name>.skill in the output directory.

Paths inside the archive start with the skill's directory name, so
extracting it recreates the folder. Version-control directories, OS
metadata files and bytecode caches are always left out; extra globs come
from the exclude config key and --exclude. An existing archive with the
same name is replaced.`,
		Example: `  # Package into the current directory
  skillkit package skills/demo-tool

  # Package into dist/
  skillkit package skills/demo-tool dist

  # Show what would be archived
  skillkit package skills/demo-tool --dry-run`,
		Args:         cobra.RangeArgs(1, 2),
		SilenceUsage: true,
		RunE:         runPackage,
	}
	cmd.GroupID = shared.GroupPackaging
	cmd.Flags().Bool("dry-run", false, "List the files that would be archived without writing anything")
	cmd.Flags().StringP("extension", "e", "", "Archive file extension (default from config: skill)")
	cmd.Flags().StringSlice("exclude", nil, "Extra glob patterns to leave out, relative to the skill directory")
	cmd.Flags().Bool("gitignore", false, "Also leave out paths matched by .gitignore files in the skill")
	return cmd
}

func runPackage(cmd *cobra.Command, args []string) error {
	dir := args[0]

	cfg, err := shared.LoadConfig(cmd)
	if err != nil {
		return err
	}

	opts, cliErr := packageOptions(cmd, cfg, args)
	if cliErr != nil {
		return shared.Fail(cmd, cliErr)
	}

	r := shared.NewReporter(cmd, cfg)
	r.SetMinSeverity(validation.SeverityWarn)

	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		entries, err := packager.Collect(dir, opts)
		if err != nil {
			return shared.Fail(cmd, packageError(dir, err))
		}
		r.Entries(entries)
		return nil
	}

	r.StartSpinner(cmd.ErrOrStderr(), "Packaging "+dir)
	archive, err := packager.Package(dir, opts)
	r.StopSpinner()

	if err != nil {
		var verr *packager.ValidationError
		if errors.As(err, &verr) {
			return reportRejected(cmd, r, dir, verr)
		}
		return shared.Fail(cmd, packageError(dir, err))
	}

	r.Diagnostics("", archive.Result)
	r.Archive(archive)
	return nil
}

// packageOptions merges config values with command-line overrides.
func packageOptions(cmd *cobra.Command, cfg *config.Configuration, args []string) (packager.Options, *clierrors.CLIError) {
	extra, _ := cmd.Flags().GetStringSlice("exclude")
	cfg.Exclude = append(cfg.Exclude, extra...)

	policy, err := cfg.ExclusionPolicy()
	if err != nil {
		return packager.Options{}, clierrors.InvalidExcludePattern(err)
	}

	parser, err := cfg.Parser()
	if err != nil {
		return packager.Options{}, clierrors.Wrap(err, clierrors.Configuration)
	}

	logger := shared.NewLogger(cmd)
	opts := packager.Options{
		OutputDir:        cfg.OutputDir,
		Extension:        cfg.ArchiveExtension,
		Policy:           policy,
		RespectGitignore: cfg.RespectGitignore,
		Logger:           logger,
		Validator: validation.NewSkillValidator(validation.SkillOptions{
			Parser:       parser,
			MaxBodyLines: cfg.MaxBodyLines,
			Logger:       logger,
		}),
	}

	if len(args) > 1 {
		opts.OutputDir = args[1]
	}
	if cmd.Flags().Changed("extension") {
		opts.Extension, _ = cmd.Flags().GetString("extension")
	}
	if cmd.Flags().Changed("gitignore") {
		opts.RespectGitignore, _ = cmd.Flags().GetBool("gitignore")
	}
	return opts, nil
}

// reportRejected prints the diagnostics that stopped packaging.
func reportRejected(cmd *cobra.Command, r *report.Reporter, dir string, verr *packager.ValidationError) error {
	r.Diagnostics("", verr.Result)
	r.Verdict(shared.ComponentName(dir), verr.Result)
	return shared.Fail(cmd, clierrors.ValidationFailed(shared.ComponentName(dir), verr.Result.Count(validation.SeverityError)))
}

// packageError converts a packager error into a CLI error.
func packageError(dir string, err error) *clierrors.CLIError {
	var ioErr *packager.IOError
	switch {
	case errors.Is(err, packager.ErrNotFound):
		return clierrors.DirectoryNotFound(dir)
	case errors.Is(err, packager.ErrNotADirectory):
		return clierrors.NotADirectory(dir)
	case errors.Is(err, packager.ErrMissingManifest):
		return clierrors.MissingManifest(dir, validation.ManifestFile)
	case errors.As(err, &ioErr):
		return clierrors.PackagingFailed(err)
	default:
		return clierrors.Wrap(err, clierrors.Runtime)
	}
}
