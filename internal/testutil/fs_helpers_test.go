// Package testutil_test tests filesystem helper utilities for test fixture creation.
// Related: internal/testutil/fs_helpers.go
// Tags: testutil, helpers, fixtures, filesystem

package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSkill(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		opts         []SkillOption
		wantContains []string
	}{
		"defaults": {
			wantContains: []string{"name: demo-tool\n", DefaultDescription, "Line 10"},
		},
		"extra keys sorted": {
			opts:         []SkillOption{WithExtraKey("zeta", "1"), WithExtraKey("alpha", "2")},
			wantContains: []string{"alpha: 2\nzeta: 1\n---"},
		},
		"raw frontmatter": {
			opts:         []SkillOption{WithRawFrontmatter("custom: true")},
			wantContains: []string{"---\ncustom: true\n---\n"},
		},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			dir := CreateSkill(t, t.TempDir(), "demo-tool", tc.opts...)
			data, err := os.ReadFile(filepath.Join(dir, "SKILL.md"))
			require.NoError(t, err)
			for _, want := range tc.wantContains {
				assert.Contains(t, string(data), want)
			}
		})
	}
}

func TestCreateSkill_WithFile(t *testing.T) {
	t.Parallel()

	dir := CreateSkill(t, t.TempDir(), "demo-tool", WithFile("references/api.md", "# API"))
	tree := ReadTree(t, dir)
	assert.Equal(t, "# API", tree["references/api.md"])
	assert.Contains(t, tree, "SKILL.md")
}

func TestLines(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", Lines(0))
	assert.Equal(t, 3, strings.Count(Lines(3), "\n"))
}
