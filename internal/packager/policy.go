package packager

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// ExclusionPolicy decides which paths of a component tree are left out of an
// archive. A path is excluded when its own name or any ancestor directory
// name matches Names or Suffixes, when its slash-separated relative path (or
// an ancestor's) matches one of Globs, or when Gitignore matches it.
type ExclusionPolicy struct {
	Names     []string          // Exact segment names
	Suffixes  []string          // Segment name suffixes such as ".pyc"
	Globs     []string          // doublestar patterns against the relative path
	Gitignore gitignore.Matcher // Optional
}

// DefaultPolicy returns the fixed exclusions applied to every archive:
// version control data, OS metadata, bytecode caches and compiled bytecode.
func DefaultPolicy() *ExclusionPolicy {
	return &ExclusionPolicy{
		Names:    []string{".git", ".DS_Store", "__pycache__", ".gitignore"},
		Suffixes: []string{".pyc"},
	}
}

// WithGlobs returns a copy of p that also excludes paths matching globs.
// Invalid patterns are rejected.
func (p *ExclusionPolicy) WithGlobs(globs ...string) (*ExclusionPolicy, error) {
	for _, g := range globs {
		if !doublestar.ValidatePattern(g) {
			return nil, fmt.Errorf("invalid exclude pattern %q", g)
		}
	}
	cp := *p
	cp.Globs = append(append([]string(nil), p.Globs...), globs...)
	return &cp, nil
}

// Excluded reports whether the file at rel (relative to the component
// directory) is excluded.
func (p *ExclusionPolicy) Excluded(rel string) bool {
	return p.excluded(rel, false)
}

func (p *ExclusionPolicy) excluded(rel string, isDir bool) bool {
	rel = filepath.ToSlash(filepath.Clean(rel))
	if rel == "." || rel == "" {
		return false
	}

	parts := strings.Split(rel, "/")
	for i, part := range parts {
		if p.matchName(part) {
			return true
		}
		prefix := strings.Join(parts[:i+1], "/")
		if p.matchGlob(prefix) {
			return true
		}
	}

	if p.Gitignore != nil {
		// Ancestors are directories; only the last segment can be a file.
		for i := 1; i < len(parts); i++ {
			if p.Gitignore.Match(parts[:i], true) {
				return true
			}
		}
		if p.Gitignore.Match(parts, isDir) {
			return true
		}
	}
	return false
}

func (p *ExclusionPolicy) matchName(name string) bool {
	for _, n := range p.Names {
		if name == n {
			return true
		}
	}
	for _, s := range p.Suffixes {
		if strings.HasSuffix(name, s) {
			return true
		}
	}
	return false
}

func (p *ExclusionPolicy) matchGlob(rel string) bool {
	for _, pat := range p.Globs {
		if matched, err := doublestar.Match(pat, rel); err == nil && matched {
			return true
		}
	}
	return false
}

// LoadGitignore reads every .gitignore below root and returns a matcher for
// paths relative to root. Patterns in nested files apply to their own
// subtree.
func LoadGitignore(root string) (gitignore.Matcher, error) {
	var patterns []gitignore.Pattern

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() != ".gitignore" {
			return nil
		}

		rel, err := filepath.Rel(root, filepath.Dir(path))
		if err != nil {
			return err
		}
		var domain []string
		if rel != "." {
			domain = strings.Split(filepath.ToSlash(rel), "/")
		}

		ps, err := readPatterns(path, domain)
		if err != nil {
			return err
		}
		patterns = append(patterns, ps...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading gitignore patterns: %w", err)
	}
	return gitignore.NewMatcher(patterns), nil
}

func readPatterns(path string, domain []string) ([]gitignore.Pattern, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var ps []gitignore.Pattern
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.HasPrefix(line, "#") || strings.TrimSpace(line) == "" {
			continue
		}
		ps = append(ps, gitignore.ParsePattern(line, domain))
	}
	return ps, scanner.Err()
}
