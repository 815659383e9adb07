// Package formschema holds the static field-descriptor list that
// drives the entry form. The list is embedded at compile time so the
// binary is self-contained, parsed once at startup, and served to the
// UI as JSON; it is the single source of truth for field order, types,
// and the required set.
package formschema

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/printdesk/jobtrack/internal/jobs"
)

//go:embed fields.yaml
var fieldsYAML []byte

// Field types understood by the form renderer.
const (
	TypeText     = "text"
	TypeNumber   = "number"
	TypeDate     = "date"
	TypeSelect   = "select"
	TypeTextarea = "textarea"
)

// Field describes one form input.
type Field struct {
	Name     string   `yaml:"name" json:"name"`
	Label    string   `yaml:"label" json:"label"`
	Type     string   `yaml:"type" json:"type"`
	Required bool     `yaml:"required" json:"required"`
	Options  []string `yaml:"options,omitempty" json:"options,omitempty"`
}

// Schema is the ordered field list.
type Schema struct {
	Fields []Field `yaml:"fields" json:"fields"`
}

var validTypes = map[string]bool{
	TypeText:     true,
	TypeNumber:   true,
	TypeDate:     true,
	TypeSelect:   true,
	TypeTextarea: true,
}

// Load parses and validates the embedded field list.
func Load() (*Schema, error) {
	return parse(fieldsYAML)
}

func parse(data []byte) (*Schema, error) {
	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse form schema: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Schema) validate() error {
	if len(s.Fields) != jobs.InputColumnCount {
		return fmt.Errorf("form schema: got %d fields, row layout has %d input columns", len(s.Fields), jobs.InputColumnCount)
	}

	seen := make(map[string]bool, len(s.Fields))
	for i, f := range s.Fields {
		if f.Name == "" {
			return fmt.Errorf("form schema: field %d: missing name", i)
		}
		if seen[f.Name] {
			return fmt.Errorf("form schema: duplicate field %q", f.Name)
		}
		seen[f.Name] = true

		if f.Label == "" {
			return fmt.Errorf("form schema: field %q: missing label", f.Name)
		}
		if !validTypes[f.Type] {
			return fmt.Errorf("form schema: field %q: unknown type %q", f.Name, f.Type)
		}
		if f.Type == TypeSelect && len(f.Options) == 0 {
			return fmt.Errorf("form schema: field %q: select without options", f.Name)
		}
		if f.Type != TypeSelect && len(f.Options) > 0 {
			return fmt.Errorf("form schema: field %q: options on non-select type %q", f.Name, f.Type)
		}
	}
	return nil
}
