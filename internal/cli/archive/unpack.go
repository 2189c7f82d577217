package archive

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/skillkit-dev/skillkit/internal/cli/shared"
	clierrors "github.com/skillkit-dev/skillkit/internal/errors"
	"github.com/skillkit-dev/skillkit/internal/packager"
	"github.com/spf13/cobra"
)

// NewUnpackCmd creates the unpack command.
func NewUnpackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unpack <archive> [dest-dir]",
		Short: "Extract a packaged skill",
		Long: `Extract a packaged skill archive into dest-dir (default: the current
directory). Entries that would land outside dest-dir are rejected.`,
		Example: `  # Extract next to the archive
  skillkit unpack demo-tool.skill

  # Extract into a scratch directory
  skillkit unpack dist/demo-tool.skill /tmp/check`,
		Args:         cobra.RangeArgs(1, 2),
		SilenceUsage: true,
		RunE:         runUnpack,
	}
	cmd.GroupID = shared.GroupPackaging
	return cmd
}

func runUnpack(cmd *cobra.Command, args []string) error {
	path := args[0]
	dest := "."
	if len(args) > 1 {
		dest = args[1]
	}

	entries, err := packager.List(path)
	if err != nil {
		return shared.Fail(cmd, archiveError(path, err))
	}

	root, err := packager.Unpack(path, dest)
	if err != nil {
		return shared.Fail(cmd, archiveError(path, err))
	}

	shared.NewLogger(cmd).Debug("unpacked", "archive", path, "root", root)
	shared.NewReporter(cmd, nil).Extracted(root, len(entries))
	return nil
}

// archiveError converts an archive read failure into a CLI error.
func archiveError(path string, err error) *clierrors.CLIError {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return clierrors.ArchiveNotFound(path)
	case errors.Is(err, packager.ErrUnsafePath):
		return clierrors.UnsafeArchive(path, err)
	default:
		return clierrors.WrapWithMessage(err, clierrors.Runtime, "reading "+filepath.Base(path))
	}
}
