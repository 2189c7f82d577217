package config

import (
	"sort"
	"strings"
)

// ConfigValueType defines the expected type for a configuration value.
type ConfigValueType int

const (
	TypeBool ConfigValueType = iota
	TypeInt
	TypeString
	TypeEnum
	TypeList
	TypeMap
)

// String returns the string representation of ConfigValueType.
func (t ConfigValueType) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeString:
		return "string"
	case TypeEnum:
		return "enum"
	case TypeList:
		return "list"
	case TypeMap:
		return "map"
	default:
		return "unknown"
	}
}

// ConfigKeySchema defines a known configuration key with its expected type and default.
type ConfigKeySchema struct {
	Path          string          // Key name as used in config files (e.g., "max_body_lines")
	Type          ConfigValueType // Expected value type
	AllowedValues []string        // Valid values for enum types (empty for non-enums)
	Description   string          // Human-readable description for help text
	Default       interface{}     // Default value
}

// KnownKeys is the registry of all known configuration keys.
var KnownKeys = map[string]ConfigKeySchema{
	"archive_extension": {
		Path:        "archive_extension",
		Type:        TypeString,
		Description: "File extension of packaged archives",
		Default:     "skill",
	},
	"output_dir": {
		Path:        "output_dir",
		Type:        TypeString,
		Description: "Directory receiving archives (empty means the working directory)",
		Default:     "",
	},
	"max_body_lines": {
		Path:        "max_body_lines",
		Type:        TypeInt,
		Description: "Soft line budget for a SKILL.md body",
		Default:     500,
	},
	"frontmatter_parser": {
		Path:          "frontmatter_parser",
		Type:          TypeEnum,
		AllowedValues: []string{"yaml", "flat", "lenient"},
		Description:   "Parser used for skill frontmatter",
		Default:       "yaml",
	},
	"exclude": {
		Path:        "exclude",
		Type:        TypeList,
		Description: "Extra doublestar globs excluded from archives",
		Default:     []string{},
	},
	"respect_gitignore": {
		Path:        "respect_gitignore",
		Type:        TypeBool,
		Description: "Also exclude paths matched by .gitignore files in the component",
		Default:     false,
	},
	"no_color": {
		Path:        "no_color",
		Type:        TypeBool,
		Description: "Disable colored output",
		Default:     false,
	},
	"prompt_tool": {
		Path:        "prompt_tool",
		Type:        TypeString,
		Description: "Tool name introducing interactive prompts in commands",
		Default:     "AskUserQuestion",
	},
	"prompt_min_options": {
		Path:        "prompt_min_options",
		Type:        TypeInt,
		Description: "Fewest options an interactive prompt may offer",
		Default:     2,
	},
	"prompt_max_options": {
		Path:        "prompt_max_options",
		Type:        TypeInt,
		Description: "Most options an interactive prompt may offer",
		Default:     4,
	},
	"content_commands": {
		Path:        "content_commands",
		Type:        TypeList,
		Description: "Command files that must reference the required skill",
		Default: []string{
			"presentation.md",
			"presentation-quick.md",
			"carousel.md",
			"carousel-quick.md",
			"template-presentation.md",
			"template-carousel.md",
		},
	},
	"project_path_commands": {
		Path:        "project_path_commands",
		Type:        TypeList,
		Description: "Command files whose project token must be defined early",
		Default: []string{
			"template-presentation.md",
			"template-carousel.md",
			"presentation.md",
			"presentation-quick.md",
			"carousel.md",
			"carousel-quick.md",
			"brand-extract.md",
			"brand-palette.md",
		},
	},
	"prerequisite_commands": {
		Path:        "prerequisite_commands",
		Type:        TypeList,
		Description: "Command files that need a '## Prerequisites' section",
		Default:     []string{"presentation.md", "carousel.md"},
	},
	"template_prefix": {
		Path:        "template_prefix",
		Type:        TypeString,
		Description: "Filename marker of template commands",
		Default:     "template-",
	},
	"project_token": {
		Path:        "project_token",
		Type:        TypeString,
		Description: "Environment token that must be defined early",
		Default:     "PROJECT_PATH",
	},
	"early_window": {
		Path:        "early_window",
		Type:        TypeInt,
		Description: "Leading characters in which the project token counts as defined",
		Default:     2000,
	},
	"required_skill": {
		Path:        "required_skill",
		Type:        TypeString,
		Description: "Skill that content commands must reference",
		Default:     "visual-content",
	},
	"recommended_reference": {
		Path:        "recommended_reference",
		Type:        TypeString,
		Description: "Reference file that content commands should mention",
		Default:     "style-constraints",
	},
	"legacy_terms": {
		Path:        "legacy_terms",
		Type:        TypeMap,
		Description: "Retired terms mapped to their replacement",
		Default:     map[string]interface{}{"canvas-design": "visual-content"},
	},
	"reference_token": {
		Path:        "reference_token",
		Type:        TypeString,
		Description: "Regexp for file names after references/ in commands",
		Default:     `[a-z-]+\.md`,
	},
}

// SortedKeys returns the known key names in alphabetical order.
func SortedKeys() []string {
	keys := make([]string, 0, len(KnownKeys))
	for k := range KnownKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IsValidKey reports whether key is a known configuration key.
func IsValidKey(key string) bool {
	_, ok := KnownKeys[key]
	return ok
}

// parseEnvValue converts a raw environment value to the shape of key's schema.
// Lists are comma separated, maps are comma separated old=new pairs.
func parseEnvValue(key, raw string) interface{} {
	schema, ok := KnownKeys[key]
	if !ok {
		return raw
	}

	switch schema.Type {
	case TypeList:
		items := []string{}
		for _, item := range strings.Split(raw, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		return items
	case TypeMap:
		m := map[string]interface{}{}
		for _, pair := range strings.Split(raw, ",") {
			k, v, found := strings.Cut(pair, "=")
			k = strings.TrimSpace(k)
			if !found || k == "" {
				continue
			}
			m[k] = strings.TrimSpace(v)
		}
		return m
	default:
		return raw
	}
}
