// Package packager turns a validated component directory into a
// deflate-compressed archive, and reads such archives back.
//
// Packaging runs in fixed steps: the source directory and its manifest are
// checked, the manifest is validated, the tree is walked through an
// ExclusionPolicy, and the archive is written to a temporary file that is
// renamed into place only once it is complete.
package packager

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/klauspost/compress/zip"
	"github.com/skillkit-dev/skillkit/internal/validation"
)

// DefaultExtension is the archive extension used when Options.Extension is empty.
const DefaultExtension = "skill"

// entryTime is stamped on every entry so identical trees give identical archives.
var entryTime = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

var (
	// ErrNotFound is returned when the component directory does not exist.
	ErrNotFound = errors.New("directory not found")
	// ErrNotADirectory is returned when the component path is a file.
	ErrNotADirectory = errors.New("path is not a directory")
	// ErrMissingManifest is returned when the directory has no manifest.
	ErrMissingManifest = errors.New("manifest not found")
)

// ValidationError is returned when the manifest fails validation. Nothing is
// written in that case.
type ValidationError struct {
	Dir    string
	Result *validation.Result
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %d error(s)", e.Dir, e.Result.Count(validation.SeverityError))
}

// IOError is a filesystem failure while walking or writing.
type IOError struct {
	Op   string // "walk", "read", "write", "rename"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("packaging failed during %s of %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Validator validates a component directory before it is archived.
type Validator interface {
	Validate(dir string) (*validation.Result, error)
}

// Options configures Package and Collect.
type Options struct {
	// OutputDir receives the archive. Defaults to the working directory.
	OutputDir string
	// Extension of the archive file, without the dot. Defaults to DefaultExtension.
	Extension string
	// Manifest is the entry-point file name. Defaults to validation.ManifestFile.
	Manifest string
	// Policy selects excluded paths. Defaults to DefaultPolicy().
	Policy *ExclusionPolicy
	// RespectGitignore adds the tree's .gitignore patterns to Policy.
	RespectGitignore bool
	// Validator checks the directory first. Defaults to a skill validator.
	Validator Validator
	// Logger receives debug output.
	Logger *log.Logger
}

func (o Options) withDefaults() Options {
	if o.Extension == "" {
		o.Extension = DefaultExtension
	}
	o.Extension = strings.TrimPrefix(o.Extension, ".")
	if o.Manifest == "" {
		o.Manifest = validation.ManifestFile
	}
	if o.Policy == nil {
		o.Policy = DefaultPolicy()
	}
	if o.Validator == nil {
		o.Validator = validation.NewSkillValidator(validation.SkillOptions{Logger: o.Logger})
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	return o
}

// Entry is one file of an archive.
type Entry struct {
	Name   string // Slash-separated path inside the archive, rooted at the component name
	Source string // Filesystem path; empty for entries read from an archive
	Size   int64  // Uncompressed size
}

// Archive describes a written archive.
type Archive struct {
	Path    string
	Entries []Entry
	Size    int64              // Archive file size in bytes
	Result  *validation.Result // Validation diagnostics, WARN and INFO only
}

// FileCount returns the number of files in the archive.
func (a *Archive) FileCount() int {
	return len(a.Entries)
}

// Package validates dir and writes <name>.<ext> into opts.OutputDir. An
// existing archive of the same name is replaced.
func Package(dir string, opts Options) (*Archive, error) {
	opts = opts.withDefaults()

	absDir, err := checkSource(dir, opts.Manifest)
	if err != nil {
		return nil, err
	}

	opts.Logger.Debug("validating", "dir", absDir)
	result, err := opts.Validator.Validate(absDir)
	if err != nil {
		return nil, fmt.Errorf("validating %s: %w", absDir, err)
	}
	if !result.Valid() {
		return nil, &ValidationError{Dir: absDir, Result: result}
	}

	entries, err := collect(absDir, opts)
	if err != nil {
		return nil, err
	}

	outDir := opts.OutputDir
	if outDir == "" {
		if outDir, err = os.Getwd(); err != nil {
			return nil, &IOError{Op: "write", Path: ".", Err: err}
		}
	}
	outDir, err = filepath.Abs(outDir)
	if err != nil {
		return nil, &IOError{Op: "write", Path: opts.OutputDir, Err: err}
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, &IOError{Op: "write", Path: outDir, Err: err}
	}

	target := filepath.Join(outDir, filepath.Base(absDir)+"."+opts.Extension)
	opts.Logger.Debug("writing archive", "path", target, "files", len(entries))
	if err := writeAtomic(target, entries); err != nil {
		return nil, err
	}

	info, err := os.Stat(target)
	if err != nil {
		return nil, &IOError{Op: "write", Path: target, Err: err}
	}

	return &Archive{Path: target, Entries: entries, Size: info.Size(), Result: result}, nil
}

// Collect returns the files Package would archive for dir, without
// validating or writing anything.
func Collect(dir string, opts Options) ([]Entry, error) {
	opts = opts.withDefaults()
	absDir, err := checkSource(dir, opts.Manifest)
	if err != nil {
		return nil, err
	}
	return collect(absDir, opts)
}

func checkSource(dir, manifest string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", dir, err)
	}

	info, err := os.Stat(absDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, absDir)
		}
		return "", &IOError{Op: "walk", Path: absDir, Err: err}
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrNotADirectory, absDir)
	}

	if _, err := os.Stat(filepath.Join(absDir, manifest)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s in %s", ErrMissingManifest, manifest, absDir)
		}
		return "", &IOError{Op: "walk", Path: absDir, Err: err}
	}
	return absDir, nil
}

// collect walks absDir in lexical order. Excluded directories are pruned;
// symlinks and other non-regular files are skipped.
func collect(absDir string, opts Options) ([]Entry, error) {
	policy := opts.Policy
	if opts.RespectGitignore {
		m, err := LoadGitignore(absDir)
		if err != nil {
			return nil, &IOError{Op: "walk", Path: absDir, Err: err}
		}
		cp := *policy
		cp.Gitignore = m
		policy = &cp
	}

	root := filepath.Base(absDir)
	var entries []Entry

	err := filepath.WalkDir(absDir, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		rel, err := filepath.Rel(absDir, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}

		if policy.excluded(rel, d.IsDir()) {
			opts.Logger.Debug("excluded", "path", rel)
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		entries = append(entries, Entry{
			Name:   root + "/" + filepath.ToSlash(rel),
			Source: path,
			Size:   info.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, &IOError{Op: "walk", Path: absDir, Err: err}
	}
	return entries, nil
}

// writeAtomic writes the archive next to target and renames it into place.
// The temporary file is removed on every failure path.
func writeAtomic(target string, entries []Entry) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(target), "."+filepath.Base(target)+"-*.tmp")
	if err != nil {
		return &IOError{Op: "write", Path: target, Err: err}
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	if err = writeEntries(tmp, entries); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return &IOError{Op: "write", Path: tmpPath, Err: err}
	}
	if err = os.Rename(tmpPath, target); err != nil {
		return &IOError{Op: "rename", Path: target, Err: err}
	}
	return nil
}

func writeEntries(w io.Writer, entries []Entry) (err error) {
	zw := zip.NewWriter(w)
	defer func() {
		if closeErr := zw.Close(); closeErr != nil && err == nil {
			err = &IOError{Op: "write", Path: "archive", Err: closeErr}
		}
	}()

	for _, e := range entries {
		if err := addFile(zw, e); err != nil {
			return err
		}
	}
	return nil
}

func addFile(zw *zip.Writer, e Entry) (err error) {
	f, err := os.Open(e.Source)
	if err != nil {
		return &IOError{Op: "read", Path: e.Source, Err: err}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return &IOError{Op: "read", Path: e.Source, Err: err}
	}

	header := &zip.FileHeader{
		Name:     e.Name,
		Method:   zip.Deflate,
		Modified: entryTime,
	}
	header.SetMode(info.Mode().Perm())

	w, err := zw.CreateHeader(header)
	if err != nil {
		return &IOError{Op: "write", Path: e.Name, Err: err}
	}
	if _, err := io.Copy(w, f); err != nil {
		return &IOError{Op: "write", Path: e.Name, Err: err}
	}
	return nil
}
