package archive

import (
	"github.com/skillkit-dev/skillkit/internal/cli/shared"
	"github.com/skillkit-dev/skillkit/internal/packager"
	"github.com/spf13/cobra"
)

// NewInspectCmd creates the inspect command.
func NewInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "inspect <archive>",
		Short:        "List the files in a packaged skill",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         runInspect,
	}
	cmd.GroupID = shared.GroupPackaging
	return cmd
}

func runInspect(cmd *cobra.Command, args []string) error {
	entries, err := packager.List(args[0])
	if err != nil {
		return shared.Fail(cmd, archiveError(args[0], err))
	}
	shared.NewReporter(cmd, nil).Entries(entries)
	return nil
}
