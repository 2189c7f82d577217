package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/skillkit-dev/skillkit/internal/validation"
)

// ErrNotDirectory is returned by CheckDir when the path is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// FileResult is the outcome of checking one command document.
type FileResult struct {
	File   string // Base name, e.g. "presentation.md"
	Result *validation.Result
}

// Report aggregates the results of a commands directory.
type Report struct {
	Dir   string
	Files []FileResult
}

// Valid reports whether no file produced an ERROR.
func (r *Report) Valid() bool {
	for _, f := range r.Files {
		if !f.Result.Valid() {
			return false
		}
	}
	return true
}

// Count returns the number of diagnostics with severity sev across all files.
func (r *Report) Count(sev validation.Severity) int {
	n := 0
	for _, f := range r.Files {
		n += f.Result.Count(sev)
	}
	return n
}

// CheckDir checks every *.md file directly inside dir, in name order.
func (c *Checker) CheckDir(dir string) (*Report, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("checking commands directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", dir, ErrNotDirectory)
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.md"))
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	sort.Strings(files)

	c.logger.Debug("checking commands directory", "dir", dir, "files", len(files), "references", c.conv.ReferencesDir)

	report := &Report{Dir: dir}
	for _, path := range files {
		res, err := c.CheckFile(path)
		if err != nil {
			return nil, err
		}
		report.Files = append(report.Files, FileResult{File: filepath.Base(path), Result: res})
	}
	return report, nil
}
