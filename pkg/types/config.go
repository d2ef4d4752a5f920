// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strings"
)

// OutputFormat selects the serialization of collection documents.
type OutputFormat string

const (
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

// Ext returns the file extension for the format, without the dot.
func (f OutputFormat) Ext() string {
	if f == FormatYAML {
		return "yaml"
	}
	return "json"
}

const (
	DefaultInputDir     = "."
	DefaultOutputDir    = "data"
	DefaultOutputPrefix = "cms-"
	DefaultInputExt     = ".csv"
)

// ConverterConfig holds settings for a conversion run. Every field has a
// usable zero value once WithDefaults has been applied.
type ConverterConfig struct {
	// InputDir is the directory scanned for input files (default ".").
	InputDir string `json:"input_dir" yaml:"input_dir" mapstructure:"input_dir"`

	// InputExt is the extension, including the dot, of files to convert (default ".csv").
	InputExt string `json:"input_ext" yaml:"input_ext" mapstructure:"input_ext"`

	// OutputDir receives one document per input file (default "data").
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// OutputPrefix is prepended to the collection name in output file names (default "cms-").
	OutputPrefix string `json:"output_prefix" yaml:"output_prefix" mapstructure:"output_prefix"`

	// Format selects json or yaml output.
	Format OutputFormat `json:"format" yaml:"format" mapstructure:"format"`

	// SchemasFile optionally points at a YAML file with extra collection schemas.
	SchemasFile string `json:"schemas_file,omitempty" yaml:"schemas_file,omitempty" mapstructure:"schemas_file"`

	// Debug enables per-file and per-row progress lines.
	Debug bool `json:"debug" yaml:"debug" mapstructure:"debug"`

	// Strict makes a run with failed files (or no input files) return an error.
	Strict bool `json:"strict" yaml:"strict" mapstructure:"strict"`
}

// WithDefaults returns a copy of c with empty fields set to their defaults.
// InputExt gains a leading dot when missing and Format is lower-cased.
func (c ConverterConfig) WithDefaults() ConverterConfig {
	if c.InputDir == "" {
		c.InputDir = DefaultInputDir
	}
	if c.InputExt == "" {
		c.InputExt = DefaultInputExt
	}
	if !strings.HasPrefix(c.InputExt, ".") {
		c.InputExt = "." + c.InputExt
	}
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	if c.OutputPrefix == "" {
		c.OutputPrefix = DefaultOutputPrefix
	}
	if c.Format == "" {
		c.Format = FormatJSON
	}
	c.Format = OutputFormat(strings.ToLower(string(c.Format)))
	return c
}

// Validate reports configuration values that cannot be used.
func (c ConverterConfig) Validate() error {
	switch c.Format {
	case FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("unsupported format %q: use json or yaml", c.Format)
	}
	if c.InputExt == "." {
		return fmt.Errorf("input extension must not be empty")
	}
	return nil
}
