// Package check provides the validation commands: validate and commands.
package check

import (
	"github.com/spf13/cobra"
)

// Register adds all validation commands to the root command.
// This function is called from the root CLI package during initialization.
func Register(rootCmd *cobra.Command) {
	rootCmd.AddCommand(NewValidateCmd())
	rootCmd.AddCommand(NewCommandsCmd())
}
