package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Configuration represents the skillkit configuration
type Configuration struct {
	ArchiveExtension     string            `koanf:"archive_extension" json:"archive_extension" validate:"required,excludesall=/\\"`
	OutputDir            string            `koanf:"output_dir" json:"output_dir"`
	MaxBodyLines         int               `koanf:"max_body_lines" json:"max_body_lines" validate:"min=1"`
	FrontmatterParser    string            `koanf:"frontmatter_parser" json:"frontmatter_parser" validate:"oneof=yaml flat lenient"`
	Exclude              []string          `koanf:"exclude" json:"exclude"`
	RespectGitignore     bool              `koanf:"respect_gitignore" json:"respect_gitignore"`
	NoColor              bool              `koanf:"no_color" json:"no_color"`
	PromptTool           string            `koanf:"prompt_tool" json:"prompt_tool" validate:"required"`
	PromptMinOptions     int               `koanf:"prompt_min_options" json:"prompt_min_options" validate:"min=1"`
	PromptMaxOptions     int               `koanf:"prompt_max_options" json:"prompt_max_options" validate:"gtefield=PromptMinOptions"`
	ContentCommands      []string          `koanf:"content_commands" json:"content_commands"`
	ProjectPathCommands  []string          `koanf:"project_path_commands" json:"project_path_commands"`
	PrerequisiteCommands []string          `koanf:"prerequisite_commands" json:"prerequisite_commands"`
	TemplatePrefix       string            `koanf:"template_prefix" json:"template_prefix"`
	ProjectToken         string            `koanf:"project_token" json:"project_token"`
	EarlyWindow          int               `koanf:"early_window" json:"early_window" validate:"min=0"`
	RequiredSkill        string            `koanf:"required_skill" json:"required_skill"`
	RecommendedReference string            `koanf:"recommended_reference" json:"recommended_reference"`
	LegacyTerms          map[string]string `koanf:"legacy_terms" json:"legacy_terms"`
	ReferenceToken       string            `koanf:"reference_token" json:"reference_token" validate:"required"`
}

// Load loads configuration from global, local, and environment sources
// Priority: Environment variables > Local config > Global config > Defaults
func Load(localConfigPath string) (*Configuration, error) {
	k := koanf.New(".")

	// Apply defaults first
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}

	// Load global config if it exists
	if globalPath, err := GlobalConfigPath(); err == nil {
		if err := loadFile(k, globalPath); err != nil {
			return nil, fmt.Errorf("failed to load global config: %w", err)
		}
	}

	// Load local config if it exists
	if localConfigPath != "" {
		if err := loadFile(k, localConfigPath); err != nil {
			return nil, fmt.Errorf("failed to load local config: %w", err)
		}
	}

	// Override with environment variables (highest priority)
	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	source := localConfigPath
	if source == "" {
		source = "config"
	}
	if err := validateStruct(&cfg, source); err != nil {
		return nil, err
	}
	if err := ValidateConfigValues(&cfg, source); err != nil {
		return nil, err
	}

	cfg.OutputDir = expandHomePath(cfg.OutputDir)
	return &cfg, nil
}

func loadFile(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return k.Load(file.Provider(path), json.Parser())
}

// validateStruct applies the struct tags and reports the first failing
// field by its config key.
func validateStruct(cfg *Configuration, source string) error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.SplitN(f.Tag.Get("koanf"), ",", 2)[0]
	})

	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &ValidationError{FilePath: source, Field: fe.Field(), Message: describeFieldError(fe)}
	}
	return fmt.Errorf("config validation failed: %w", err)
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param()
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "gtefield":
		return "must not be less than prompt_min_options"
	case "excludesall":
		return "must not contain path separators"
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}

// envTransform converts environment variables to config keys and values
// Example: SKILLKIT_MAX_BODY_LINES -> max_body_lines
// Unknown keys are dropped.
func envTransform(key, value string) (string, interface{}) {
	k := strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	if !IsValidKey(k) {
		return "", nil
	}
	return k, parseEnvValue(k, value)
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
