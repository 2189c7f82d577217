package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnvPrefix is the prefix of environment variables read into the configuration.
const EnvPrefix = "SKILLKIT_"

// DefaultLocalConfigPath is the project-level config file, relative to the
// working directory.
var DefaultLocalConfigPath = filepath.Join(".skillkit", "config.json")

// GlobalConfigPath returns ~/.skillkit/config.json.
func GlobalConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".skillkit", "config.json"), nil
}
