package packager

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
)

// ErrUnsafePath is returned when an archive entry would be extracted outside
// the destination directory.
var ErrUnsafePath = errors.New("archive entry escapes destination")

// List returns the file entries of an archive in stored order.
func List(archivePath string) (entries []Entry, err error) {
	zr, err := openArchive(archivePath)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := zr.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		entries = append(entries, Entry{Name: f.Name, Size: int64(f.UncompressedSize64)})
	}
	return entries, nil
}

// Unpack extracts archivePath into destDir (the working directory when
// empty) and returns the path of the extracted component directory.
// Existing files are overwritten.
func Unpack(archivePath, destDir string) (extracted string, err error) {
	if destDir == "" {
		if destDir, err = os.Getwd(); err != nil {
			return "", fmt.Errorf("failed to get current directory: %w", err)
		}
	}
	absDest, err := filepath.Abs(destDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve destination directory: %w", err)
	}
	if err = os.MkdirAll(absDest, 0o755); err != nil {
		return "", fmt.Errorf("failed to create destination directory: %w", err)
	}

	zr, err := openArchive(archivePath)
	if err != nil {
		return "", err
	}
	defer func() {
		if closeErr := zr.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	// Every entry is checked before anything is written.
	var root string
	targets := make([]string, len(zr.File))
	for i, f := range zr.File {
		destPath := filepath.Join(absDest, filepath.FromSlash(f.Name))
		rel, relErr := filepath.Rel(absDest, destPath)
		if relErr != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return "", fmt.Errorf("%w: %s", ErrUnsafePath, f.Name)
		}
		if root == "" {
			root = strings.SplitN(filepath.ToSlash(rel), "/", 2)[0]
		}
		targets[i] = destPath
	}

	for i, f := range zr.File {
		destPath := targets[i]
		if f.FileInfo().IsDir() {
			if err = os.MkdirAll(destPath, 0o755); err != nil {
				return "", fmt.Errorf("failed to create directory: %w", err)
			}
			continue
		}
		if err = os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
			return "", fmt.Errorf("failed to create parent directory: %w", err)
		}
		if err = extractFile(f, destPath); err != nil {
			return "", fmt.Errorf("failed to extract %s: %w", f.Name, err)
		}
	}

	if root == "" {
		return "", errors.New("archive is empty")
	}
	return filepath.Join(absDest, root), nil
}

// openArchive opens a zip file. Insecure entry names are accepted here and
// rejected by Unpack per entry.
func openArchive(path string) (*zip.ReadCloser, error) {
	zr, err := zip.OpenReader(path)
	if err != nil && !errors.Is(err, zip.ErrInsecurePath) {
		return nil, fmt.Errorf("opening archive: %w", err)
	}
	return zr, nil
}

func extractFile(f *zip.File, destPath string) (err error) {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := rc.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	mode := f.Mode().Perm()
	if mode == 0 {
		mode = 0o644
	}
	out, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	_, err = io.Copy(out, rc)
	return err
}
