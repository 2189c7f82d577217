// Package commands checks operational command documents against the plugin
// authoring conventions: frontmatter, interactive prompt blocks, skill and
// file references, step numbering, required sections and the project path
// token.
package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/skillkit-dev/skillkit/internal/frontmatter"
	"github.com/skillkit-dev/skillkit/internal/validation"
)

// DefaultReferenceToken is the token accepted after "references/" in command
// documents. It is narrower than validation.DefaultReferenceToken so that
// markdown punctuation around a path is not read as part of it.
const DefaultReferenceToken = `[a-z-]+\.md`

var (
	optionPattern   = regexp.MustCompile(`(?m)^\s*-\s*\*\*[^*]+\*\*`)
	headerPattern   = regexp.MustCompile(`Header:\s*"[^"]*"`)
	stepPattern     = regexp.MustCompile(`(?m)^(\d+)\.\s+\*\*`)
	blockEndPattern = regexp.MustCompile(`\n(?:\n|\d+\.|\*\*)`)
)

const (
	workflowHeading   = "## Workflow"
	outputHeading     = "## Output"
	prerequisiteTitle = "## Prerequisites"
)

// Conventions holds the configurable parts of the command rules.
type Conventions struct {
	PromptTool           string            // Trigger is "Use <PromptTool>"
	MinOptions           int               // Fewest options a prompt may offer
	MaxOptions           int               // Most options a prompt may offer
	ContentCommands      []string          // Filenames that must reference RequiredSkill
	RequiredSkill        string            // e.g. "visual-content"
	RecommendedReference string            // e.g. "style-constraints"
	LegacyTerms          map[string]string // old term -> replacement
	PrerequisiteCommands []string          // Filenames that need a Prerequisites section
	TemplatePrefix       string            // Filenames containing it need a Prerequisites section
	ProjectPathCommands  []string          // Filenames subject to the early definition check
	ProjectToken         string            // e.g. "PROJECT_PATH"
	EarlyWindow          int               // Characters counted as "early"
	ReferencesDir        string            // Base for "references/<name>" tokens; empty skips the check
	ReferenceToken       string            // Token regexp; DefaultReferenceToken when empty
}

// DefaultConventions returns the conventions of the reference plugin.
func DefaultConventions() Conventions {
	return Conventions{
		PromptTool: "AskUserQuestion",
		MinOptions: 2,
		MaxOptions: 4,
		ContentCommands: []string{
			"presentation.md",
			"presentation-quick.md",
			"carousel.md",
			"carousel-quick.md",
			"template-presentation.md",
			"template-carousel.md",
		},
		RequiredSkill:        "visual-content",
		RecommendedReference: "style-constraints",
		LegacyTerms:          map[string]string{"canvas-design": "visual-content"},
		PrerequisiteCommands: []string{"presentation.md", "carousel.md"},
		TemplatePrefix:       "template-",
		ProjectPathCommands: []string{
			"template-presentation.md",
			"template-carousel.md",
			"presentation.md",
			"presentation-quick.md",
			"carousel.md",
			"carousel-quick.md",
			"brand-extract.md",
			"brand-palette.md",
		},
		ProjectToken:   "PROJECT_PATH",
		EarlyWindow:    2000,
		ReferenceToken: DefaultReferenceToken,
	}
}

// DefaultReferencesDir returns <plugin>/skills/<plugin-name>/references for
// a commands directory located at <plugin>/commands.
func DefaultReferencesDir(commandsDir string) string {
	plugin := filepath.Dir(filepath.Clean(commandsDir))
	return filepath.Join(plugin, "skills", filepath.Base(plugin), "references")
}

// Checker applies the command conventions to documents.
type Checker struct {
	conv    Conventions
	parser  frontmatter.Parser
	trigger *regexp.Regexp
	logger  *log.Logger
}

// Option customizes a Checker.
type Option func(*Checker)

// WithParser overrides the frontmatter parser (LenientParser by default).
func WithParser(p frontmatter.Parser) Option {
	return func(c *Checker) { c.parser = p }
}

// WithLogger sets the debug logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Checker) { c.logger = l }
}

// NewChecker creates a Checker for conv.
func NewChecker(conv Conventions, opts ...Option) *Checker {
	if conv.PromptTool == "" {
		conv.PromptTool = "AskUserQuestion"
	}
	if conv.ReferenceToken == "" {
		conv.ReferenceToken = DefaultReferenceToken
	}
	c := &Checker{
		conv:    conv,
		parser:  frontmatter.LenientParser{},
		trigger: regexp.MustCompile(`(?i)use ` + regexp.QuoteMeta(conv.PromptTool)),
		logger:  log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CheckFile reads and checks a single command document.
func (c *Checker) CheckFile(path string) (*validation.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	c.logger.Debug("checking command", "path", path)
	return c.Check(filepath.Base(path), string(data)), nil
}

// Check runs every command rule against content. filename selects the
// filename-gated rules.
func (c *Checker) Check(filename, content string) *validation.Result {
	r := &validation.Result{}

	if !c.checkFrontmatter(content, r) {
		return r
	}
	c.checkPrompts(content, r)
	c.checkSkillReferences(filename, content, r)
	c.checkFileReferences(content, r)
	c.checkSteps(content, r)
	c.checkSections(filename, content, r)
	c.checkProjectToken(filename, content, r)
	return r
}

// checkFrontmatter reports false when the document has no usable frontmatter;
// nothing else is checked in that case.
func (c *Checker) checkFrontmatter(content string, r *validation.Result) bool {
	fm, _, _, err := frontmatter.Split(content)
	switch {
	case errors.Is(err, frontmatter.ErrMissingFrontmatter):
		r.Errorf("Missing frontmatter (must start with ---)")
		return false
	case err != nil:
		r.Errorf("Invalid frontmatter format (missing closing ---)")
		return false
	}

	md, err := c.parser.Parse(fm)
	if err != nil {
		r.Errorf("Frontmatter could not be parsed: %v", err)
		return false
	}

	schema, _ := validation.SchemaFor(validation.DocumentCommand)
	validation.ValidateMetadata(schema, md, r)
	for _, rule := range schema.Required {
		if rule.Satisfied(md) {
			r.Infof("Has %s", rule.Key)
		}
	}
	return true
}

func (c *Checker) checkPrompts(content string, r *validation.Result) {
	blocks := c.promptBlocks(content)
	for i, block := range blocks {
		n := len(optionPattern.FindAllString(block, -1))
		switch {
		case n == 0:
			// Descriptive mention rather than an actual prompt.
		case n < c.conv.MinOptions:
			r.Errorf("%s #%d has %d options (min %d)", c.conv.PromptTool, i+1, n, c.conv.MinOptions)
		case c.conv.MaxOptions > 0 && n > c.conv.MaxOptions:
			r.Errorf("%s #%d has %d options (max %d)", c.conv.PromptTool, i+1, n, c.conv.MaxOptions)
		default:
			r.Infof("%s #%d has %d options", c.conv.PromptTool, i+1, n)
		}
	}

	triggers := len(c.trigger.FindAllStringIndex(content, -1))
	if triggers > 0 && len(headerPattern.FindAllString(content, -1)) < triggers {
		r.Warnf("Some %s blocks may be missing Header field", c.conv.PromptTool)
	}
}

// promptBlocks returns the text from each trigger up to the next blank line,
// numbered-list line or bold line, or the end of content. Blocks do not overlap.
func (c *Checker) promptBlocks(content string) []string {
	var blocks []string
	pos := 0
	for pos < len(content) {
		loc := c.trigger.FindStringIndex(content[pos:])
		if loc == nil {
			break
		}
		start, from := pos+loc[0], pos+loc[1]
		end := len(content)
		if m := blockEndPattern.FindStringIndex(content[from:]); m != nil {
			end = from + m[0]
		}
		blocks = append(blocks, content[start:end])
		pos = end
		if pos == start {
			pos = from
		}
	}
	return blocks
}

func (c *Checker) checkSkillReferences(filename, content string, r *validation.Result) {
	lower := strings.ToLower(content)

	olds := make([]string, 0, len(c.conv.LegacyTerms))
	for old := range c.conv.LegacyTerms {
		olds = append(olds, old)
	}
	sort.Strings(olds)
	for _, old := range olds {
		replacement := c.conv.LegacyTerms[old]
		if strings.Contains(lower, strings.ToLower(old)) && !strings.Contains(lower, strings.ToLower(replacement)) {
			r.Errorf("References '%s' instead of '%s'", old, replacement)
		}
	}

	if !contains(c.conv.ContentCommands, filename) {
		return
	}
	if c.conv.RequiredSkill != "" {
		if strings.Contains(content, c.conv.RequiredSkill) {
			r.Infof("References %s skill", c.conv.RequiredSkill)
		} else {
			r.Errorf("Missing '%s' skill reference", c.conv.RequiredSkill)
		}
	}
	if c.conv.RecommendedReference != "" && !strings.Contains(content, c.conv.RecommendedReference) {
		r.Warnf("Missing '%s.md' reference", c.conv.RecommendedReference)
	}
}

// checkFileReferences reports dangling references/ tokens as ERROR.
func (c *Checker) checkFileReferences(content string, r *validation.Result) {
	if c.conv.ReferencesDir == "" {
		return
	}
	patterns := []validation.ReferencePattern{{
		Prefix:  "references/",
		BaseDir: c.conv.ReferencesDir,
		Noun:    "file",
		Token:   c.conv.ReferenceToken,
	}}
	for _, ref := range validation.ResolveReferences(content, patterns, validation.SeverityError, r) {
		if ref.Resolved {
			r.Infof("Reference '%s' exists", ref.Text)
		}
	}
}

// checkSteps warns when "<n>. **" steps skip ahead or go backwards.
func (c *Checker) checkSteps(content string, r *validation.Result) {
	matches := stepPattern.FindAllStringSubmatch(content, -1)
	if len(matches) == 0 {
		return
	}

	expected := 1
	for _, m := range matches {
		step, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if step != expected && step != expected+1 {
			r.Warnf("Step numbering jumps from %d to %d", expected-1, step)
		}
		expected = step + 1
	}
	r.Infof("Has %d numbered steps", len(matches))
}

func (c *Checker) checkSections(filename, content string, r *validation.Result) {
	if strings.Contains(content, workflowHeading) {
		r.Infof("Has Workflow section")
	} else {
		r.Errorf("Missing '%s' section", workflowHeading)
	}

	if strings.Contains(content, outputHeading) {
		r.Infof("Has Output section")
	} else {
		r.Warnf("Missing '%s' section", outputHeading)
	}

	isTemplate := c.conv.TemplatePrefix != "" && strings.Contains(filename, c.conv.TemplatePrefix)
	if (isTemplate || contains(c.conv.PrerequisiteCommands, filename)) && !strings.Contains(content, prerequisiteTitle) {
		r.Warnf("Missing '%s' section", prerequisiteTitle)
	}
}

func (c *Checker) checkProjectToken(filename, content string, r *validation.Result) {
	token := c.conv.ProjectToken
	if token == "" || !contains(c.conv.ProjectPathCommands, filename) || !strings.Contains(content, token) {
		return
	}
	if strings.Contains(content, "Set "+token) || strings.Contains(firstRunes(content, c.conv.EarlyWindow), token) {
		r.Infof("%s defined early", token)
		return
	}
	r.Warnf("%s used but may not be defined early", token)
}

// firstRunes returns at most n leading characters of s.
func firstRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
