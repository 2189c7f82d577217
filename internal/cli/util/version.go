package util

import (
	"fmt"
	"io"
	"runtime"

	"github.com/fatih/color"
	"github.com/skillkit-dev/skillkit/internal/build"
	"github.com/skillkit-dev/skillkit/internal/cli/shared"
	"github.com/spf13/cobra"
)

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "version",
		Aliases: []string{"v"},
		Short:   "Display version information (v)",
		Long:    "Display version, commit, build date, and Go version information for skillkit",
		Example: `  # Show version info
  skillkit version

  # Plain output (for scripts)
  skillkit version --plain`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			plain, _ := cmd.Flags().GetBool("plain")
			noColor, _ := cmd.Flags().GetBool(shared.FlagNoColor)
			if plain {
				printPlainVersion(cmd.OutOrStdout())
			} else {
				printPrettyVersion(cmd.OutOrStdout(), !noColor)
			}
		},
	}
	cmd.GroupID = shared.GroupConfiguration
	cmd.Flags().Bool("plain", false, "Plain output without formatting")
	return cmd
}

// printPlainVersion prints a simple version output for scripting
func printPlainVersion(out io.Writer) {
	fmt.Fprintf(out, "skillkit %s\n", build.Version)
	fmt.Fprintf(out, "commit: %s\n", build.Commit)
	fmt.Fprintf(out, "built: %s\n", build.BuildDate)
	fmt.Fprintf(out, "go: %s\n", runtime.Version())
	fmt.Fprintf(out, "platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
}

// printPrettyVersion prints aligned labels, colored when colored is set
func printPrettyVersion(out io.Writer, colored bool) {
	label := color.New(color.FgYellow)
	value := color.New(color.Bold)
	if !colored {
		label.DisableColor()
		value.DisableColor()
	}

	info := []struct {
		label string
		value string
	}{
		{"Version", build.Version},
		{"Commit", truncateCommit(build.Commit)},
		{"Built", build.BuildDate},
		{"Go", runtime.Version()},
		{"Platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)},
	}

	header := value.Sprint("skillkit")
	if build.IsDevBuild() {
		header += " " + label.Sprint("(development build)")
	}
	fmt.Fprintln(out, header)
	for _, item := range info {
		fmt.Fprintf(out, "  %s  %s\n", label.Sprintf("%-9s", item.label), value.Sprint(item.value))
	}
}

// truncateCommit shortens commit hash if it's too long
func truncateCommit(commit string) string {
	if len(commit) > 8 {
		return commit[:8]
	}
	return commit
}
