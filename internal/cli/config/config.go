package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/skillkit-dev/skillkit/internal/cli/shared"
	cfgpkg "github.com/skillkit-dev/skillkit/internal/config"
	clierrors "github.com/skillkit-dev/skillkit/internal/errors"
	"github.com/spf13/cobra"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "show",
		Short:        "Print the effective configuration as JSON",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         runConfigShow,
	}
}

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print the effective value of one key",
		Example: `  # Show the body line budget
  skillkit config get max_body_lines`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         runConfigGet,
	}
}

func newKeysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List all available configuration keys",
		Long:  `Display all valid configuration keys with their types and descriptions.`,
		Args:  cobra.NoArgs,
		RunE:  runConfigKeys,
	}
}

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file holding the defaults",
		Long: `Write the built-in defaults to the local config file (--config).

If the file already exists, it is left unchanged (use --force to overwrite).
Use --global to write ~/.skillkit/config.json instead.`,
		Example: `  # Create .skillkit/config.json
  skillkit config init

  # Create the user-level config
  skillkit config init --global`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         runConfigInit,
	}
	cmd.Flags().BoolP("global", "g", false, "Write the user-level config (~/.skillkit/config.json)")
	cmd.Flags().BoolP("force", "f", false, "Overwrite an existing config file")
	return cmd
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg, err := shared.LoadConfig(cmd)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return shared.Fail(cmd, clierrors.Wrap(err, clierrors.Runtime))
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	key := args[0]
	if !cfgpkg.IsValidKey(key) {
		return shared.Fail(cmd, clierrors.UnknownConfigKey(key))
	}

	cfg, err := shared.LoadConfig(cmd)
	if err != nil {
		return err
	}

	values, err := toMap(cfg)
	if err != nil {
		return shared.Fail(cmd, clierrors.Wrap(err, clierrors.Runtime))
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatValue(values[key]))
	return nil
}

func runConfigKeys(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Available configuration keys:")
	fmt.Fprintln(out)

	for _, key := range cfgpkg.SortedKeys() {
		schema := cfgpkg.KnownKeys[key]
		typeInfo := schema.Type.String()
		if schema.Type == cfgpkg.TypeEnum {
			typeInfo = fmt.Sprintf("enum (%s)", strings.Join(schema.AllowedValues, ", "))
		}
		fmt.Fprintf(out, "  %-24s %s\n", key, typeInfo)
		fmt.Fprintf(out, "    %s\n", schema.Description)
		fmt.Fprintf(out, "    env: %s%s\n", cfgpkg.EnvPrefix, strings.ToUpper(key))
		fmt.Fprintln(out)
	}
	return nil
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	global, _ := cmd.Flags().GetBool("global")
	force, _ := cmd.Flags().GetBool("force")
	out := cmd.OutOrStdout()
	green := color.New(color.FgGreen).SprintFunc()

	configPath, _ := cmd.Flags().GetString(shared.FlagConfig)
	if global {
		p, err := cfgpkg.GlobalConfigPath()
		if err != nil {
			return shared.Fail(cmd, clierrors.Wrap(err, clierrors.Configuration))
		}
		configPath = p
	}

	_, statErr := os.Stat(configPath)
	exists := statErr == nil
	if exists && !force {
		fmt.Fprintf(out, "%s Config: exists at %s\n", green("✓"), configPath)
		return nil
	}

	if err := writeDefaultConfig(configPath); err != nil {
		return shared.Fail(cmd, clierrors.WrapWithMessage(err, clierrors.Runtime, "writing default config",
			"Check that the directory is writable"))
	}

	verb := "created"
	if exists {
		verb = "overwritten"
	}
	fmt.Fprintf(out, "%s Config: %s at %s\n", green("✓"), verb, configPath)
	return nil
}

// writeDefaultConfig writes the default configuration to the given path
func writeDefaultConfig(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfgpkg.GetDefaults(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode defaults: %w", err)
	}
	if err := os.WriteFile(configPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// toMap converts cfg to a map keyed by config key names.
func toMap(cfg *cfgpkg.Configuration) (map[string]any, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	var values map[string]any
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, err
	}
	return values, nil
}

// formatValue renders lists comma separated and maps as sorted k=v pairs,
// the same shapes SKILLKIT_* variables accept.
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case []any:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = fmt.Sprint(item)
		}
		return strings.Join(parts, ",")
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = fmt.Sprintf("%s=%v", k, val[k])
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(val)
	}
}
