package shared

import (
	"context"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/skillkit-dev/skillkit/internal/config"
	clierrors "github.com/skillkit-dev/skillkit/internal/errors"
	"github.com/skillkit-dev/skillkit/internal/report"
	"github.com/spf13/cobra"
)

// Global flag names, defined on the root command.
const (
	FlagConfig  = "config"
	FlagDebug   = "debug"
	FlagNoColor = "no-color"
)

// AddGlobalFlags defines the persistent flags every command reads.
func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringP(FlagConfig, "c", config.DefaultLocalConfigPath, "Path to config file")
	cmd.PersistentFlags().BoolP(FlagDebug, "d", false, "Enable debug logging")
	cmd.PersistentFlags().Bool(FlagNoColor, false, "Disable colored output")
}

// AddGroups defines the help groups commands are assigned to.
func AddGroups(cmd *cobra.Command) {
	cmd.AddGroup(&cobra.Group{ID: GroupValidation, Title: "Validation:"})
	cmd.AddGroup(&cobra.Group{ID: GroupPackaging, Title: "Packaging:"})
	cmd.AddGroup(&cobra.Group{ID: GroupConfiguration, Title: "Configuration:"})
}

// LoadConfig loads the configuration selected by --config.
// A missing file is not an error; defaults apply.
func LoadConfig(cmd *cobra.Command) (*config.Configuration, error) {
	configPath, _ := cmd.Flags().GetString(FlagConfig)

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, Fail(cmd, clierrors.ConfigParseError(err))
	}
	return cfg, nil
}

// NewLogger returns a stderr logger at debug level when --debug is set,
// warn level otherwise.
func NewLogger(cmd *cobra.Command) *log.Logger {
	level := log.WarnLevel
	if debug, _ := cmd.Flags().GetBool(FlagDebug); debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		Level:  level,
		Prefix: "skillkit",
	})
}

// NewReporter returns a reporter for the command's output stream. Terminal
// features are detected only when writing to a real file; --no-color and
// the no_color config key turn colors off.
func NewReporter(cmd *cobra.Command, cfg *config.Configuration) *report.Reporter {
	var caps report.TerminalCapabilities
	if f, ok := cmd.OutOrStdout().(*os.File); ok {
		caps = report.DetectTerminalCapabilities(f)
	}

	noColor, _ := cmd.Flags().GetBool(FlagNoColor)
	if noColor || (cfg != nil && cfg.NoColor) {
		caps.SupportsColor = false
	}
	return report.New(cmd.OutOrStdout(), caps)
}

// Fail prints err to the command's error stream and returns the exit error
// matching its category.
func Fail(cmd *cobra.Command, err *clierrors.CLIError) error {
	if f, ok := cmd.ErrOrStderr().(*os.File); ok && f == os.Stderr {
		clierrors.PrintError(err)
	} else {
		clierrors.FprintError(cmd.ErrOrStderr(), err)
	}
	return NewExitError(exitCodeFor(err))
}

// Context returns the command context, or a background context when the
// command runs outside Execute.
func Context(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// ComponentName returns the directory name shown in verdict lines.
func ComponentName(dir string) string {
	if abs, err := filepath.Abs(dir); err == nil {
		return filepath.Base(abs)
	}
	return filepath.Base(dir)
}
