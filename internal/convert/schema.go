// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"
)

// DefaultOrder is the order assigned to items whose order column is absent or empty.
const DefaultOrder = 999

// Transform names the post-processing applied to a source value.
type Transform string

const (
	// TransformNone copies the raw string.
	TransformNone Transform = ""
	// TransformCleanText passes the value through CleanText.
	TransformCleanText Transform = "clean_text"
	// TransformOrder parses an integer, defaulting to DefaultOrder.
	TransformOrder Transform = "order"
)

func (t Transform) valid() bool {
	switch t {
	case TransformNone, TransformCleanText, TransformOrder:
		return true
	}
	return false
}

// apply converts the raw column value. present is false when the column is
// missing from the input file.
func (t Transform) apply(raw string, present bool) (any, error) {
	switch t {
	case TransformCleanText:
		return CleanText(raw), nil
	case TransformOrder:
		trimmed := strings.TrimSpace(raw)
		if !present || trimmed == "" {
			return DefaultOrder, nil
		}
		n, err := strconv.Atoi(trimmed)
		if err != nil {
			return nil, fmt.Errorf("invalid order: %w", err)
		}
		return n, nil
	default:
		return raw, nil
	}
}

// FieldRule maps one source column to one output field.
type FieldRule struct {
	Output    string    `json:"output" yaml:"output"`
	Source    string    `json:"source" yaml:"source"`
	Transform Transform `json:"transform,omitempty" yaml:"transform,omitempty"`
}

// Schema is the ordered list of collection-specific rules for a collection.
type Schema []FieldRule

// SchemaTable maps collection names to their schemas.
type SchemaTable map[string]Schema

// commonFields are emitted for every item, in this order.
var commonFields = []FieldRule{
	{Output: "id", Source: "Item ID"},
	{Output: "slug", Source: "Slug"},
	{Output: "created_on", Source: "Created On"},
	{Output: "updated_on", Source: "Updated On"},
	{Output: "published_on", Source: "Published On"},
}

// DefaultSchemas returns the built-in schema table for the known CMS collections.
func DefaultSchemas() SchemaTable {
	return SchemaTable{
		"testimonials": {
			{Output: "name", Source: "Nombre del alumno"},
			{Output: "career", Source: "Carrera / Puntaje"},
			{Output: "photo", Source: "Foto Estudiante"},
			{Output: "stars", Source: "Estrellas"},
			{Output: "comment", Source: "Comentario", Transform: TransformCleanText},
			{Output: "comment_html", Source: "Comentario"},
			{Output: "order", Source: "Orden", Transform: TransformOrder},
		},
		"schools": {
			{Output: "name", Source: "Name"},
			{Output: "logo", Source: "Logo"},
			{Output: "comuna", Source: "Comuna"},
			{Output: "order", Source: "Orden", Transform: TransformOrder},
		},
		"ambassadors": {
			{Output: "name", Source: "Name"},
			{Output: "profile_picture", Source: "Profile Picture"},
			{Output: "instagram_link", Source: "Instagram Link"},
			{Output: "order", Source: "Order", Transform: TransformOrder},
		},
		"teachers": {
			{Output: "name", Source: "Nombre del profesor"},
			{Output: "image_positive", Source: "Imagen en positivo"},
			{Output: "image_negative", Source: "Imagen en negativo"},
			{Output: "order", Source: "Orden", Transform: TransformOrder},
		},
	}
}

// Names returns the collection names in sorted order.
func (t SchemaTable) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Merge returns a new table holding t overlaid with other. A collection in
// other replaces the entry of the same name in t.
func (t SchemaTable) Merge(other SchemaTable) SchemaTable {
	merged := make(SchemaTable, len(t)+len(other))
	for name, s := range t {
		merged[name] = s
	}
	for name, s := range other {
		merged[name] = s
	}
	return merged
}

// Validate checks that every rule names an output field, a source column
// and a known transform, and that output names are unique per collection.
func (t SchemaTable) Validate() error {
	for _, name := range t.Names() {
		seen := make(map[string]bool)
		for _, f := range commonFields {
			seen[f.Output] = true
		}
		for i, rule := range t[name] {
			if rule.Output == "" || rule.Source == "" {
				return fmt.Errorf("schema %q rule %d: output and source are required", name, i)
			}
			if !rule.Transform.valid() {
				return fmt.Errorf("schema %q field %q: unknown transform %q", name, rule.Output, rule.Transform)
			}
			if seen[rule.Output] {
				return fmt.Errorf("schema %q: duplicate output field %q", name, rule.Output)
			}
			seen[rule.Output] = true
		}
	}
	return nil
}

// LoadSchemas reads a YAML schema table from path and validates it.
func LoadSchemas(path string) (SchemaTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading schemas file: %w", err)
	}
	var table SchemaTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parsing schemas file %s: %w", path, err)
	}
	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("schemas file %s: %w", path, err)
	}
	return table, nil
}

// WriteYAML writes the table to w as YAML.
func (t SchemaTable) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(t); err != nil {
		return fmt.Errorf("encoding schemas: %w", err)
	}
	return enc.Close()
}
