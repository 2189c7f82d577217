// Package archive provides the packaging commands: package, unpack and inspect.
package archive

import (
	"github.com/spf13/cobra"
)

// Register adds all packaging commands to the root command.
// This function is called from the root CLI package during initialization.
func Register(rootCmd *cobra.Command) {
	rootCmd.AddCommand(NewPackageCmd())
	rootCmd.AddCommand(NewUnpackCmd())
	rootCmd.AddCommand(NewInspectCmd())
}
