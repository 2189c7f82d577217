package validation

import (
	"os"
	"path/filepath"
	"regexp"
)

// DefaultReferenceToken matches the longest run of characters that are
// neither whitespace nor a closing parenthesis.
const DefaultReferenceToken = `[^\s)]+`

// ReferencePattern describes one family of textual sibling references,
// e.g. "references/<token>" resolved inside BaseDir.
type ReferencePattern struct {
	Prefix  string // Literal prefix such as "references/"
	BaseDir string // Directory the token is resolved against
	Noun    string // Used in messages: "file", "script"
	Token   string // Token regexp; DefaultReferenceToken when empty
}

// Reference is a token found in document text.
type Reference struct {
	Text     string // Prefix plus token as written, e.g. "references/api.md"
	Path     string // Resolved filesystem path
	Resolved bool
}

// SkillReferencePatterns returns the references/ and scripts/ patterns
// resolved against a skill directory.
func SkillReferencePatterns(skillDir string) []ReferencePattern {
	return []ReferencePattern{
		{Prefix: "references/", BaseDir: filepath.Join(skillDir, "references"), Noun: "file"},
		{Prefix: "scripts/", BaseDir: filepath.Join(skillDir, "scripts"), Noun: "script"},
	}
}

// ResolveReferences scans text for every pattern and checks that each token
// exists below the pattern's BaseDir. Each dangling reference is reported
// once with the given severity: skills use WARN, command documents ERROR.
func ResolveReferences(text string, patterns []ReferencePattern, severity Severity, r *Result) []Reference {
	var refs []Reference
	for _, p := range patterns {
		token := p.Token
		if token == "" {
			token = DefaultReferenceToken
		}
		re := regexp.MustCompile(regexp.QuoteMeta(p.Prefix) + "(" + token + ")")

		seen := make(map[string]bool)
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			name := m[1]
			if seen[name] {
				continue
			}
			seen[name] = true

			ref := Reference{
				Text: p.Prefix + name,
				Path: filepath.Join(p.BaseDir, filepath.FromSlash(name)),
			}
			if _, err := os.Stat(ref.Path); err == nil {
				ref.Resolved = true
			} else if r != nil {
				noun := p.Noun
				if noun == "" {
					noun = "file"
				}
				r.Add(severity, "Referenced %s not found: %s", noun, ref.Text)
			}
			refs = append(refs, ref)
		}
	}
	return refs
}
