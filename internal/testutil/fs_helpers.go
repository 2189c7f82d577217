// Package testutil provides test utilities and helpers for skillkit tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

// DefaultDescription is a description that passes every skill rule without warnings.
const DefaultDescription = "Use when demo is requested - runs a demo. Keywords: demo"

// skillConfig holds the pieces of a generated SKILL.md.
type skillConfig struct {
	name        string
	description string
	extra       map[string]string
	body        string
	rawFM       *string
	files       map[string]string
}

// SkillOption customizes a skill created by CreateSkill.
type SkillOption func(*skillConfig)

// WithName overrides the frontmatter name (defaults to the directory name).
func WithName(name string) SkillOption {
	return func(c *skillConfig) { c.name = name }
}

// WithDescription overrides the frontmatter description.
func WithDescription(desc string) SkillOption {
	return func(c *skillConfig) { c.description = desc }
}

// WithExtraKey adds an additional frontmatter key.
func WithExtraKey(key, value string) SkillOption {
	return func(c *skillConfig) { c.extra[key] = value }
}

// WithBody replaces the default ten line body.
func WithBody(body string) SkillOption {
	return func(c *skillConfig) { c.body = body }
}

// WithRawFrontmatter replaces the generated frontmatter block verbatim.
func WithRawFrontmatter(fm string) SkillOption {
	return func(c *skillConfig) { c.rawFM = &fm }
}

// WithFile adds a file at rel (slash separated) below the skill directory.
func WithFile(rel, content string) SkillOption {
	return func(c *skillConfig) { c.files[rel] = content }
}

// CreateSkill creates parentDir/dirName with a SKILL.md and any extra files.
// Returns the skill directory path.
func CreateSkill(t *testing.T, parentDir, dirName string, opts ...SkillOption) string {
	t.Helper()

	cfg := &skillConfig{
		name:        dirName,
		description: DefaultDescription,
		extra:       map[string]string{},
		body:        Lines(10),
		files:       map[string]string{},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	var fm string
	if cfg.rawFM != nil {
		fm = *cfg.rawFM
	} else {
		var sb strings.Builder
		if cfg.name != "" {
			fmt.Fprintf(&sb, "name: %s\n", cfg.name)
		}
		if cfg.description != "" {
			fmt.Fprintf(&sb, "description: %q\n", cfg.description)
		}
		keys := make([]string, 0, len(cfg.extra))
		for k := range cfg.extra {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&sb, "%s: %s\n", k, cfg.extra[k])
		}
		fm = strings.TrimSuffix(sb.String(), "\n")
	}

	skillDir := filepath.Join(parentDir, dirName)
	WriteFile(t, filepath.Join(skillDir, "SKILL.md"), "---\n"+fm+"\n---\n"+cfg.body)
	for rel, content := range cfg.files {
		WriteFile(t, filepath.Join(skillDir, filepath.FromSlash(rel)), content)
	}
	return skillDir
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// Lines returns n numbered markdown lines joined by newlines.
func Lines(n int) string {
	var sb strings.Builder
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&sb, "Line %d\n", i)
	}
	return sb.String()
}

// ReadTree returns every regular file below root keyed by slash-separated
// relative path.
func ReadTree(t *testing.T, root string) map[string]string {
	t.Helper()

	tree := map[string]string{}
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		tree[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("failed to read tree %s: %v", root, err)
	}
	return tree
}
