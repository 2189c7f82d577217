// Package config_test tests configuration loading, merging hierarchy, and environment variable overrides.
// Related: internal/config/config.go, internal/config/defaults.go, internal/config/schema.go
// Tags: config, loading, merging, env-vars, json, precedence
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateHome points HOME at an empty directory so no real global config is read.
// Callers cannot use t.Parallel().
func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	isolateHome(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "skill", cfg.ArchiveExtension)
	assert.Equal(t, "", cfg.OutputDir)
	assert.Equal(t, 500, cfg.MaxBodyLines)
	assert.Equal(t, "yaml", cfg.FrontmatterParser)
	assert.Empty(t, cfg.Exclude)
	assert.False(t, cfg.RespectGitignore)
	assert.Equal(t, "AskUserQuestion", cfg.PromptTool)
	assert.Equal(t, 2, cfg.PromptMinOptions)
	assert.Equal(t, 4, cfg.PromptMaxOptions)
	assert.Contains(t, cfg.ContentCommands, "carousel-quick.md")
	assert.Len(t, cfg.ProjectPathCommands, 8)
	assert.Equal(t, []string{"presentation.md", "carousel.md"}, cfg.PrerequisiteCommands)
	assert.Equal(t, "template-", cfg.TemplatePrefix)
	assert.Equal(t, "PROJECT_PATH", cfg.ProjectToken)
	assert.Equal(t, 2000, cfg.EarlyWindow)
	assert.Equal(t, "visual-content", cfg.RequiredSkill)
	assert.Equal(t, "style-constraints", cfg.RecommendedReference)
	assert.Equal(t, map[string]string{"canvas-design": "visual-content"}, cfg.LegacyTerms)
	assert.Equal(t, `[a-z-]+\.md`, cfg.ReferenceToken)
}

func TestLoad_MissingLocalFileUsesDefaults(t *testing.T) {
	isolateHome(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Equal(t, 500, cfg.MaxBodyLines)
}

func TestLoad_Precedence(t *testing.T) {
	home := isolateHome(t)
	writeConfig(t, filepath.Join(home, ".skillkit", "config.json"), `{
		"max_body_lines": 300,
		"archive_extension": "zip",
		"required_skill": "global-skill"
	}`)

	local := filepath.Join(t.TempDir(), "config.json")
	writeConfig(t, local, `{
		"max_body_lines": 400,
		"content_commands": ["poster.md"]
	}`)

	t.Setenv("SKILLKIT_MAX_BODY_LINES", "450")

	cfg, err := Load(local)
	require.NoError(t, err)

	assert.Equal(t, 450, cfg.MaxBodyLines, "env wins over local")
	assert.Equal(t, []string{"poster.md"}, cfg.ContentCommands, "local wins over defaults")
	assert.Equal(t, "zip", cfg.ArchiveExtension, "global wins over defaults")
	assert.Equal(t, "global-skill", cfg.RequiredSkill)
}

func TestLoad_EnvValues(t *testing.T) {
	isolateHome(t)

	t.Setenv("SKILLKIT_CONTENT_COMMANDS", "poster.md, flyer.md,,")
	t.Setenv("SKILLKIT_LEGACY_TERMS", "old-kit=new-kit")
	t.Setenv("SKILLKIT_RESPECT_GITIGNORE", "true")
	t.Setenv("SKILLKIT_FRONTMATTER_PARSER", "flat")
	t.Setenv("SKILLKIT_UNRELATED", "ignored")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, []string{"poster.md", "flyer.md"}, cfg.ContentCommands)
	assert.Equal(t, "new-kit", cfg.LegacyTerms["old-kit"])
	assert.True(t, cfg.RespectGitignore)
	assert.Equal(t, "flat", cfg.FrontmatterParser)
}

func TestLoad_InvalidJSON(t *testing.T) {
	isolateHome(t)

	local := filepath.Join(t.TempDir(), "config.json")
	writeConfig(t, local, `{"max_body_lines": `)

	_, err := Load(local)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load local config")
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := map[string]struct {
		content   string
		wantField string
	}{
		"body lines below one": {
			content:   `{"max_body_lines": 0}`,
			wantField: "max_body_lines",
		},
		"unknown parser": {
			content:   `{"frontmatter_parser": "toml"}`,
			wantField: "frontmatter_parser",
		},
		"max below min": {
			content:   `{"prompt_min_options": 3, "prompt_max_options": 2}`,
			wantField: "prompt_max_options",
		},
		"extension with separator": {
			content:   `{"archive_extension": "a/b"}`,
			wantField: "archive_extension",
		},
		"bad reference token": {
			content:   `{"reference_token": "[a-"}`,
			wantField: "reference_token",
		},
		"bad exclude glob": {
			content:   `{"exclude": ["["]}`,
			wantField: "exclude",
		},
		"empty legacy replacement": {
			content:   `{"legacy_terms": {"old": ""}}`,
			wantField: "legacy_terms",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			isolateHome(t)

			local := filepath.Join(t.TempDir(), "config.json")
			writeConfig(t, local, tc.content)

			_, err := Load(local)
			require.Error(t, err)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.wantField, verr.Field)
			assert.Equal(t, local, verr.FilePath)
		})
	}
}

func TestLoad_ExpandsOutputDir(t *testing.T) {
	home := isolateHome(t)
	t.Setenv("SKILLKIT_OUTPUT_DIR", "~/dist")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "dist"), cfg.OutputDir)
}

func TestGetDefaults_ReturnsCopies(t *testing.T) {
	t.Parallel()

	a := GetDefaults()
	a["content_commands"].([]string)[0] = "mutated.md"
	a["legacy_terms"].(map[string]interface{})["x"] = "y"

	b := GetDefaults()
	assert.Equal(t, "presentation.md", b["content_commands"].([]string)[0])
	assert.NotContains(t, b["legacy_terms"], "x")
	assert.Len(t, b, len(KnownKeys))
}

func TestConfigValueType_String(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		typ  ConfigValueType
		want string
	}{
		"bool":    {typ: TypeBool, want: "bool"},
		"int":     {typ: TypeInt, want: "int"},
		"string":  {typ: TypeString, want: "string"},
		"enum":    {typ: TypeEnum, want: "enum"},
		"list":    {typ: TypeList, want: "list"},
		"map":     {typ: TypeMap, want: "map"},
		"unknown": {typ: ConfigValueType(99), want: "unknown"},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.typ.String())
		})
	}
}

func TestSortedKeys(t *testing.T) {
	t.Parallel()

	keys := SortedKeys()
	require.Len(t, keys, len(KnownKeys))
	assert.Equal(t, "archive_extension", keys[0])
	assert.True(t, IsValidKey("max_body_lines"))
	assert.False(t, IsValidKey("claude_cmd"))
}

func TestParseEnvValue(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"a.md", "b.md"}, parseEnvValue("exclude", " a.md ,b.md"))
	assert.Equal(t, map[string]interface{}{"a": "b", "c": "d"}, parseEnvValue("legacy_terms", "a=b, c = d, broken"))
	assert.Equal(t, "42", parseEnvValue("max_body_lines", "42"))
	assert.Equal(t, "raw", parseEnvValue("nope", "raw"))
}

func TestEnvTransform(t *testing.T) {
	t.Parallel()

	key, value := envTransform("SKILLKIT_EARLY_WINDOW", "100")
	assert.Equal(t, "early_window", key)
	assert.Equal(t, "100", value)

	key, _ = envTransform("SKILLKIT_ASCII", "1")
	assert.Empty(t, key)
}

func TestConversions(t *testing.T) {
	isolateHome(t)

	cfg, err := Load("")
	require.NoError(t, err)
	cfg.Exclude = []string{"**/*.log"}

	conv := cfg.CommandConventions("/refs")
	assert.Equal(t, "/refs", conv.ReferencesDir)
	assert.Equal(t, 4, conv.MaxOptions)
	assert.Equal(t, "visual-content", conv.LegacyTerms["canvas-design"])

	policy, err := cfg.ExclusionPolicy()
	require.NoError(t, err)
	assert.True(t, policy.Excluded("notes/run.log"))
	assert.True(t, policy.Excluded(".git/HEAD"))

	parser, err := cfg.Parser()
	require.NoError(t, err)
	md, err := parser.Parse("name: demo")
	require.NoError(t, err)
	assert.Equal(t, "demo", md["name"])
}

func TestValidationError_Error(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "cfg.json: field 'exclude': bad", (&ValidationError{FilePath: "cfg.json", Field: "exclude", Message: "bad"}).Error())
	assert.Equal(t, "cfg.json: bad", (&ValidationError{FilePath: "cfg.json", Message: "bad"}).Error())
}

func TestGlobalConfigPath(t *testing.T) {
	home := isolateHome(t)

	path, err := GlobalConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".skillkit", "config.json"), path)
}
