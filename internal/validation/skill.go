package validation

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/skillkit-dev/skillkit/internal/frontmatter"
	"golang.org/x/sync/errgroup"
)

// ManifestFile is the entry-point document of a skill directory.
const ManifestFile = "SKILL.md"

// Skill field limits.
const (
	MaxNameLength        = 64
	MaxDescriptionLength = 1024
	MinDescriptionLength = 50
	DefaultMaxBodyLines  = 500
)

var (
	namePattern        = regexp.MustCompile(`^[a-z0-9-]+$`)
	secondPersonRegexp = regexp.MustCompile(`(?i)\byou(r|rs|rself|rselves)?\b`)
)

// SkillOptions configures a SkillValidator.
type SkillOptions struct {
	// Parser parses the frontmatter block. Defaults to frontmatter.YAMLParser.
	Parser frontmatter.Parser
	// MaxBodyLines is the soft budget for body length. Defaults to DefaultMaxBodyLines.
	MaxBodyLines int
	// Logger receives debug output. Defaults to the charmbracelet/log default logger.
	Logger *log.Logger
}

// SkillValidator validates skill directories against the closed skill schema.
type SkillValidator struct {
	parser       frontmatter.Parser
	maxBodyLines int
	logger       *log.Logger
}

// NewSkillValidator creates a validator, filling unset options with defaults.
func NewSkillValidator(opts SkillOptions) *SkillValidator {
	v := &SkillValidator{
		parser:       opts.Parser,
		maxBodyLines: opts.MaxBodyLines,
		logger:       opts.Logger,
	}
	if v.parser == nil {
		v.parser = frontmatter.YAMLParser{}
	}
	if v.maxBodyLines <= 0 {
		v.maxBodyLines = DefaultMaxBodyLines
	}
	if v.logger == nil {
		v.logger = log.Default()
	}
	return v
}

// Validate validates the skill directory at dir.
// Structural problems (missing directory, manifest or frontmatter) become a
// single ERROR and stop further checks. An error is returned only when the
// manifest exists but cannot be read.
func (v *SkillValidator) Validate(dir string) (*Result, error) {
	result := &Result{}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", dir, err)
	}

	info, err := os.Stat(absDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			result.Errorf("Directory not found: %s", absDir)
			return result, nil
		}
		return nil, fmt.Errorf("checking %s: %w", absDir, err)
	}
	if !info.IsDir() {
		result.Errorf("Path is not a directory: %s", absDir)
		return result, nil
	}

	manifest := filepath.Join(absDir, ManifestFile)
	if _, err := os.Stat(manifest); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			result.Errorf("%s not found", ManifestFile)
			return result, nil
		}
		return nil, fmt.Errorf("checking %s: %w", manifest, err)
	}

	v.logger.Debug("validating skill", "dir", absDir)

	doc, err := frontmatter.ReadDocument(manifest)
	if err != nil {
		if frontmatter.IsStructural(err) {
			result.Errorf("%s", structuralMessage(err))
			return result, nil
		}
		return nil, err
	}

	result.Merge(v.ValidateDocument(doc, filepath.Base(absDir)))
	v.describeStructure(absDir, result)
	return result, nil
}

// ValidateDocument runs the skill rules against an already split document.
// dirName is the name of the directory holding the manifest.
func (v *SkillValidator) ValidateDocument(doc *frontmatter.Document, dirName string) *Result {
	result := &Result{}

	md, err := v.parser.Parse(doc.Frontmatter)
	if err != nil {
		result.Errorf("%s", structuralMessage(err))
		return result
	}

	ValidateMetadata(SkillSchema, md, result)
	v.checkName(md, dirName, result)
	v.checkDescription(md, result)

	if lines := BodyLineCount(doc.Body); lines > v.maxBodyLines {
		result.Warnf("%s body is %d lines (target: <%d)", ManifestFile, lines, v.maxBodyLines)
	}

	if doc.Path != "" {
		ResolveReferences(doc.Body, SkillReferencePatterns(filepath.Dir(doc.Path)), SeverityWarn, result)
	}

	return result
}

func (v *SkillValidator) checkName(md frontmatter.Metadata, dirName string, result *Result) {
	if !md.Has("name") {
		return
	}
	raw, _ := md.Lookup("name")
	name, ok := raw.(string)
	if !ok {
		result.Errorf("Name must be string, got %s", typeName(raw))
		return
	}

	name = strings.TrimSpace(name)
	if !namePattern.MatchString(name) {
		result.Errorf("Name '%s' must be hyphen-case (lowercase, digits, hyphens)", name)
	}
	if strings.HasPrefix(name, "-") || strings.HasSuffix(name, "-") || strings.Contains(name, "--") {
		result.Errorf("Name '%s' has invalid hyphen usage", name)
	}
	if n := utf8.RuneCountInString(name); n > MaxNameLength {
		result.Errorf("Name too long (%d chars, max %d)", n, MaxNameLength)
	}
	if dirName != "" && name != dirName {
		result.Warnf("Name '%s' doesn't match directory '%s'", name, dirName)
	}
}

func (v *SkillValidator) checkDescription(md frontmatter.Metadata, result *Result) {
	if !md.Has("description") {
		return
	}
	raw, _ := md.Lookup("description")
	desc, ok := raw.(string)
	if !ok {
		result.Errorf("Description must be string, got %s", typeName(raw))
		return
	}

	desc = strings.TrimSpace(desc)
	length := utf8.RuneCountInString(desc)

	if strings.ContainsAny(desc, "<>") {
		result.Errorf("Description cannot contain angle brackets")
	}
	if length > MaxDescriptionLength {
		result.Errorf("Description too long (%d chars, max %d)", length, MaxDescriptionLength)
	}

	if !strings.HasPrefix(strings.ToLower(desc), "use when") {
		result.Warnf("Description should start with 'Use when...'")
	}
	if length < MinDescriptionLength {
		result.Warnf("Description seems short - include specific triggers")
	}
	if secondPersonRegexp.MatchString(desc) {
		result.Warnf("Description should use third person, not 'you'")
	}
}

// describeStructure adds INFO diagnostics for bundled scripts and references.
func (v *SkillValidator) describeStructure(dir string, result *Result) {
	if isDir(filepath.Join(dir, "scripts")) {
		matches, _ := filepath.Glob(filepath.Join(dir, "scripts", "*.py"))
		result.Infof("Found %d Python scripts", len(matches))
	}
	if isDir(filepath.Join(dir, "references")) {
		matches, _ := filepath.Glob(filepath.Join(dir, "references", "*.md"))
		result.Infof("Found %d reference files", len(matches))
	}
}

// DirResult pairs a validated directory with its result.
type DirResult struct {
	Dir    string
	Result *Result
}

// ValidateAll validates several skill directories concurrently.
// Results are returned in the order of dirs.
func (v *SkillValidator) ValidateAll(ctx context.Context, dirs []string) ([]DirResult, error) {
	results := make([]DirResult, len(dirs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for i, dir := range dirs {
		dir := dir
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := v.Validate(dir)
			if err != nil {
				return err
			}
			results[i] = DirResult{Dir: dir, Result: res}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// BodyLineCount counts the lines of body after trimming surrounding whitespace.
func BodyLineCount(body string) int {
	body = strings.TrimSpace(body)
	if body == "" {
		return 0
	}
	return strings.Count(body, "\n") + 1
}

// structuralMessage renders frontmatter failures as diagnostic text.
func structuralMessage(err error) string {
	switch {
	case errors.Is(err, frontmatter.ErrMissingFrontmatter):
		return "No YAML frontmatter (must start with ---)"
	case errors.Is(err, frontmatter.ErrMalformedFrontmatter):
		return "Invalid frontmatter format (missing closing ---)"
	case errors.Is(err, frontmatter.ErrNotMapping):
		return "Frontmatter must be a YAML dictionary"
	default:
		return "Invalid YAML: " + unwrapSyntax(err)
	}
}

func unwrapSyntax(err error) string {
	var syntaxErr *frontmatter.SyntaxError
	if errors.As(err, &syntaxErr) {
		return syntaxErr.Err.Error()
	}
	return err.Error()
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "bool"
	case int, int64, uint64:
		return "int"
	case float64:
		return "float"
	case []any:
		return "list"
	case map[string]any, map[any]any:
		return "dict"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
