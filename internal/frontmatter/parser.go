package frontmatter

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrNotMapping is returned when the frontmatter parses to something other than a mapping.
var ErrNotMapping = errors.New("frontmatter must be a YAML dictionary")

// SyntaxError wraps a YAML syntax failure in the frontmatter block.
type SyntaxError struct {
	Err error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid YAML: %v", e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// Metadata is the parsed frontmatter: string keys mapped to scalar or nested values.
type Metadata map[string]any

// Keys returns the metadata keys in sorted order.
func (m Metadata) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Lookup returns the raw value for key.
func (m Metadata) Lookup(key string) (any, bool) {
	v, ok := m[key]
	return v, ok
}

// Has reports whether key is present with a non-empty value.
func (m Metadata) Has(key string) bool {
	v, ok := m[key]
	if !ok || v == nil {
		return false
	}
	if s, isString := v.(string); isString {
		return strings.TrimSpace(s) != ""
	}
	return true
}

// Parser turns raw frontmatter text into Metadata.
type Parser interface {
	Parse(text string) (Metadata, error)
}

// YAMLParser parses frontmatter as a YAML mapping.
type YAMLParser struct{}

// Parse implements Parser.
func (YAMLParser) Parse(text string) (Metadata, error) {
	var raw any
	if err := yaml.Unmarshal([]byte(text), &raw); err != nil {
		return nil, &SyntaxError{Err: err}
	}
	if raw == nil {
		return Metadata{}, nil
	}

	switch v := raw.(type) {
	case map[string]any:
		return Metadata(v), nil
	case map[any]any:
		md := make(Metadata, len(v))
		for key, value := range v {
			md[fmt.Sprint(key)] = value
		}
		return md, nil
	default:
		return nil, ErrNotMapping
	}
}

// FlatParser splits each line on its first colon. It understands only flat
// key/value schemas but never fails.
type FlatParser struct{}

// Parse implements Parser.
func (FlatParser) Parse(text string) (Metadata, error) {
	md := Metadata{}
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		md[key] = unquote(strings.TrimSpace(value))
	}
	return md, nil
}

// LenientParser tries YAML first and falls back to the flat parser when the
// block is not valid YAML. Command documents use it because only key
// presence matters for them.
type LenientParser struct{}

// Parse implements Parser.
func (LenientParser) Parse(text string) (Metadata, error) {
	md, err := YAMLParser{}.Parse(text)
	if err == nil {
		return md, nil
	}
	return FlatParser{}.Parse(text)
}

// ParserFor returns the parser registered under name ("yaml", "flat" or "lenient").
func ParserFor(name string) (Parser, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "yaml":
		return YAMLParser{}, nil
	case "flat":
		return FlatParser{}, nil
	case "lenient":
		return LenientParser{}, nil
	default:
		return nil, fmt.Errorf("unknown frontmatter parser %q (valid: yaml, flat, lenient)", name)
	}
}

// unquote strips one pair of matching surrounding quotes.
func unquote(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' || first == '\'') && first == last {
			return s[1 : len(s)-1]
		}
	}
	return s
}
