// Package config provides CLI commands for skillkit configuration management.
// Includes: config show, config get, config keys, config init
package config

import (
	"github.com/skillkit-dev/skillkit/internal/cli/shared"
	"github.com/spf13/cobra"
)

// Register adds all configuration commands to the root command.
// This function is called from the root CLI package during initialization.
func Register(rootCmd *cobra.Command) {
	rootCmd.AddCommand(NewConfigCmd())
}

// NewConfigCmd creates the config command and its subcommands.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and initialize configuration",
		Long: `Inspect and initialize skillkit configuration.

Configuration precedence (highest to lowest):
  1. Environment variables (SKILLKIT_*)
  2. Local config (--config, default .skillkit/config.json)
  3. Global config (~/.skillkit/config.json)
  4. Built-in defaults`,
	}
	cmd.GroupID = shared.GroupConfiguration

	cmd.AddCommand(newShowCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newKeysCmd())
	cmd.AddCommand(newInitCmd())
	return cmd
}
