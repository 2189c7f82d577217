package config

import (
	"github.com/skillkit-dev/skillkit/internal/commands"
	"github.com/skillkit-dev/skillkit/internal/frontmatter"
	"github.com/skillkit-dev/skillkit/internal/packager"
)

// CommandConventions returns the command checker conventions described by
// the configuration. referencesDir may be empty to skip file references.
func (c *Configuration) CommandConventions(referencesDir string) commands.Conventions {
	legacy := make(map[string]string, len(c.LegacyTerms))
	for k, v := range c.LegacyTerms {
		legacy[k] = v
	}
	return commands.Conventions{
		PromptTool:           c.PromptTool,
		MinOptions:           c.PromptMinOptions,
		MaxOptions:           c.PromptMaxOptions,
		ContentCommands:      c.ContentCommands,
		RequiredSkill:        c.RequiredSkill,
		RecommendedReference: c.RecommendedReference,
		LegacyTerms:          legacy,
		PrerequisiteCommands: c.PrerequisiteCommands,
		TemplatePrefix:       c.TemplatePrefix,
		ProjectPathCommands:  c.ProjectPathCommands,
		ProjectToken:         c.ProjectToken,
		EarlyWindow:          c.EarlyWindow,
		ReferencesDir:        referencesDir,
		ReferenceToken:       c.ReferenceToken,
	}
}

// ExclusionPolicy returns the default archive policy extended with the
// configured exclude globs.
func (c *Configuration) ExclusionPolicy() (*packager.ExclusionPolicy, error) {
	return packager.DefaultPolicy().WithGlobs(c.Exclude...)
}

// Parser returns the configured skill frontmatter parser.
func (c *Configuration) Parser() (frontmatter.Parser, error) {
	return frontmatter.ParserFor(c.FrontmatterParser)
}
