package validation

import (
	"fmt"
	"strings"

	"github.com/skillkit-dev/skillkit/internal/frontmatter"
)

// DocumentType identifies a document family and therefore its metadata schema.
type DocumentType string

const (
	// DocumentSkill is a skill manifest (SKILL.md) with a closed key set.
	DocumentSkill DocumentType = "skill"
	// DocumentCommand is an operational command document with an open key set.
	DocumentCommand DocumentType = "command"
)

// FieldRule declares a required key and the severity reported when it is absent.
// With Presence set, a key with an empty value still counts as present.
type FieldRule struct {
	Key      string
	Severity Severity
	Presence bool
}

// Satisfied reports whether md meets the rule.
func (f FieldRule) Satisfied(md frontmatter.Metadata) bool {
	if f.Presence {
		_, ok := md.Lookup(f.Key)
		return ok
	}
	return md.Has(f.Key)
}

// Schema describes the metadata contract of a document family.
type Schema struct {
	Type     DocumentType
	Required []FieldRule
	// Allowed is the closed key set. A nil Allowed leaves the key set open.
	Allowed []string
}

// Closed reports whether keys outside Allowed are rejected.
func (s Schema) Closed() bool {
	return s.Allowed != nil
}

// SkillSchema is the closed-set schema for skill manifests.
var SkillSchema = Schema{
	Type: DocumentSkill,
	Required: []FieldRule{
		{Key: "name", Severity: SeverityError},
		{Key: "description", Severity: SeverityError},
	},
	Allowed: []string{"name", "description", "license", "allowed-tools", "metadata"},
}

// CommandSchema is the required-keys-only schema for command documents.
var CommandSchema = Schema{
	Type: DocumentCommand,
	Required: []FieldRule{
		{Key: "description", Severity: SeverityError, Presence: true},
		{Key: "allowed-tools", Severity: SeverityWarn, Presence: true},
	},
}

// SchemaFor returns the schema registered for the document type.
func SchemaFor(t DocumentType) (Schema, error) {
	switch t {
	case DocumentSkill:
		return SkillSchema, nil
	case DocumentCommand:
		return CommandSchema, nil
	default:
		return Schema{}, fmt.Errorf("no schema for document type %q", t)
	}
}

// ValidateMetadata applies schema to md, appending diagnostics to r.
// Unexpected keys of a closed schema are reported once, sorted.
func ValidateMetadata(schema Schema, md frontmatter.Metadata, r *Result) {
	if schema.Closed() {
		allowed := make(map[string]bool, len(schema.Allowed))
		for _, k := range schema.Allowed {
			allowed[k] = true
		}
		var unexpected []string
		for _, k := range md.Keys() {
			if !allowed[k] {
				unexpected = append(unexpected, k)
			}
		}
		if len(unexpected) > 0 {
			r.Errorf("Unexpected frontmatter keys: %s", strings.Join(unexpected, ", "))
		}
	}

	for _, rule := range schema.Required {
		if !rule.Satisfied(md) {
			r.Add(rule.Severity, "Missing '%s' in frontmatter", rule.Key)
		}
	}
}
