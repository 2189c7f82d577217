// Package frontmatter splits component documents into their leading metadata
// block and body, and parses the metadata block into key/value pairs.
//
// A document looks like:
//
//	---
//	name: demo-tool
//	description: Use when ...
//	---
//	# Body
//
// Both the opening and the closing delimiter must be a line of their own.
package frontmatter

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Delimiter is the marker line that opens and closes a frontmatter block.
const Delimiter = "---"

var (
	// ErrMissingFrontmatter is returned when a document does not begin with the delimiter.
	ErrMissingFrontmatter = errors.New("no YAML frontmatter (must start with ---)")

	// ErrMalformedFrontmatter is returned when the closing delimiter cannot be found.
	ErrMalformedFrontmatter = errors.New("invalid frontmatter format (missing closing ---)")
)

// Document is a component document split into its frontmatter and body.
type Document struct {
	Path        string // Source path, empty for in-memory documents
	Raw         string // Full document text
	Frontmatter string // Text between the delimiters, without them
	Body        string // Text after the closing delimiter line
	BodyStart   int    // Byte offset of Body within Raw
}

// Split separates text into the frontmatter block and the body.
// bodyStart is the byte offset at which body begins in text.
func Split(text string) (fm, body string, bodyStart int, err error) {
	if !strings.HasPrefix(text, Delimiter) {
		return "", "", 0, ErrMissingFrontmatter
	}

	firstEnd := strings.IndexByte(text, '\n')
	if firstEnd < 0 || trimLine(text[:firstEnd]) != Delimiter {
		return "", "", 0, ErrMalformedFrontmatter
	}

	fmStart := firstEnd + 1
	offset := fmStart
	for offset < len(text) {
		next := len(text)
		line := text[offset:]
		if end := strings.IndexByte(line, '\n'); end >= 0 {
			line = line[:end]
			next = offset + end + 1
		}

		if trimLine(line) == Delimiter {
			fm = strings.TrimSuffix(text[fmStart:offset], "\n")
			fm = strings.TrimSuffix(fm, "\r")
			return fm, text[next:], next, nil
		}
		offset = next
	}

	return "", "", 0, ErrMalformedFrontmatter
}

// Parse splits text into a Document. path is recorded for diagnostics only.
func Parse(path, text string) (*Document, error) {
	fm, body, start, err := Split(text)
	if err != nil {
		return nil, err
	}
	return &Document{
		Path:        path,
		Raw:         text,
		Frontmatter: fm,
		Body:        body,
		BodyStart:   start,
	}, nil
}

// ReadDocument reads and splits the document at path.
// Read failures are wrapped; structural failures are returned as
// ErrMissingFrontmatter or ErrMalformedFrontmatter.
func ReadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(path, string(data))
}

// IsStructural reports whether err is one of the frontmatter structure errors.
func IsStructural(err error) bool {
	return errors.Is(err, ErrMissingFrontmatter) || errors.Is(err, ErrMalformedFrontmatter)
}

func trimLine(line string) string {
	return strings.TrimRight(line, " \t\r")
}
