// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns CMS CSV exports into per-collection documents.
// Each input file is parsed, filtered (archived and draft rows are dropped),
// mapped through the collection's schema, ordered, and written as one
// document. A failing file never stops the run.
package convert

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/cms-export/pkg/types"
)

// utf8BOM is stripped from the first header cell; CMS exports often carry one.
const utf8BOM = "\ufeff"

// Converter runs conversions with a fixed configuration and schema table,
// printing per-file status lines to its writer.
type Converter struct {
	cfg     types.ConverterConfig
	schemas SchemaTable
	w       io.Writer

	now   func() time.Time
	newID func() string
}

// New creates a Converter. Defaults are applied to cfg; a nil schemas table
// uses DefaultSchemas.
func New(cfg types.ConverterConfig, schemas SchemaTable, w io.Writer) *Converter {
	if schemas == nil {
		schemas = DefaultSchemas()
	}
	if w == nil {
		w = io.Discard
	}
	return &Converter{
		cfg:     cfg.WithDefaults(),
		schemas: schemas,
		w:       w,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Discover lists the files in dir whose extension matches the configured
// input extension. Subdirectories are not searched. The result is sorted by
// name and is empty, not an error, when nothing matches.
func (c *Converter) Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input directory: %w", err)
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if filepath.Ext(entry.Name()) != c.cfg.InputExt {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	return paths, nil
}

// CollectionName derives the collection name from an input path.
func CollectionName(inputPath string) string {
	base := filepath.Base(inputPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// OutputPath returns the document path for a collection.
func (c *Converter) OutputPath(collection string) string {
	return filepath.Join(c.cfg.OutputDir, c.cfg.OutputPrefix+collection+"."+c.cfg.Format.Ext())
}

// ConvertFile converts a single input file and writes the document to
// outputPath, overwriting any existing file. On failure nothing is written
// and the error is returned after a "failed:" line is printed.
func (c *Converter) ConvertFile(inputPath, outputPath string) (types.ProcessedFile, error) {
	collection := CollectionName(inputPath)
	if c.cfg.Debug {
		fmt.Fprintf(c.w, "processing: %s\n", inputPath)
	}

	entry, err := c.convertFile(collection, inputPath, outputPath)
	if err != nil {
		fmt.Fprintf(c.w, "failed:  %s (%v)\n", collection, err)
		return types.ProcessedFile{}, err
	}

	fmt.Fprintf(c.w, "converted: %s -> %s (%d items)\n", collection, outputPath, entry.Items)
	return entry, nil
}

func (c *Converter) convertFile(collection, inputPath, outputPath string) (types.ProcessedFile, error) {
	items, err := c.readItems(collection, inputPath)
	if err != nil {
		return types.ProcessedFile{}, err
	}
	sortByOrder(items)

	doc := types.CollectionDocument{
		Collection:  collection,
		TotalCount:  len(items),
		GeneratedAt: c.now().Format(time.RFC3339),
		Items:       items,
	}

	data, err := encodeDocument(doc, c.cfg.Format)
	if err != nil {
		return types.ProcessedFile{}, err
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return types.ProcessedFile{}, fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return types.ProcessedFile{}, fmt.Errorf("writing output: %w", err)
	}

	return types.ProcessedFile{
		Collection: collection,
		Items:      len(items),
		Output:     outputPath,
	}, nil
}

// readItems streams the CSV file row by row, using the first row as the
// header, and returns the items of all rows that are neither archived nor
// draft, in file order.
func (c *Converter) readItems(collection, inputPath string) ([]types.Item, error) {
	f, err := os.Open(inputPath)
	if err != nil {
		return nil, fmt.Errorf("opening input: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.LazyQuotes = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return []types.Item{}, nil
	}
	if err != nil {
		return nil, csvRowError(collection, err)
	}
	header[0] = strings.TrimPrefix(header[0], utf8BOM)

	items := []types.Item{}
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, csvRowError(collection, err)
		}
		line, _ := r.FieldPos(0)

		rec := make(Record, len(header))
		for i, col := range header {
			rec[col] = row[i]
		}

		if reason := skipReason(rec); reason != "" {
			if c.cfg.Debug {
				fmt.Fprintf(c.w, "skipped: %s line %d (%s)\n", collection, line, reason)
			}
			continue
		}

		item, err := c.schemas.BuildItem(collection, rec)
		if err != nil {
			var rowErr *RowError
			if errors.As(err, &rowErr) {
				rowErr.Line = line
			}
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func csvRowError(collection string, err error) error {
	rowErr := &RowError{Collection: collection, Err: err}
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		rowErr.Line = parseErr.Line
	}
	return rowErr
}

// encodeDocument renders doc fully in memory so that a failing encode
// leaves no partial output file behind.
func encodeDocument(doc types.CollectionDocument, format types.OutputFormat) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case types.FormatYAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("encoding YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encoding YAML: %w", err)
		}
	default:
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("encoding JSON: %w", err)
		}
	}
	return buf.Bytes(), nil
}

// RunAll converts every input file found in dir, continuing past failed
// files, and prints a summary. ErrNoInputFiles is returned when dir holds no
// input files.
func (c *Converter) RunAll(dir string) (types.RunReport, error) {
	paths, err := c.Discover(dir)
	if err != nil {
		return types.RunReport{RunID: c.newID()}, err
	}
	if len(paths) == 0 {
		fmt.Fprintf(c.w, "No %s files found in %s\n", c.cfg.InputExt, dir)
		return types.RunReport{RunID: c.newID()}, ErrNoInputFiles
	}
	return c.ConvertPaths(paths), nil
}

// ConvertPaths converts the given input files in order, each to its
// configured output path, and prints a summary. Failed files are recorded
// in the report and do not stop the remaining conversions.
func (c *Converter) ConvertPaths(paths []string) types.RunReport {
	report := types.RunReport{RunID: c.newID()}
	fmt.Fprintf(c.w, "Starting conversion of %d file(s) (run %s)\n", len(paths), report.RunID)

	for _, p := range paths {
		collection := CollectionName(p)
		entry, err := c.ConvertFile(p, c.OutputPath(collection))
		if err != nil {
			report.Failed = append(report.Failed, types.FailedFile{
				Collection: collection,
				Input:      p,
				Kind:       ErrorKind(err),
				Error:      err.Error(),
			})
			continue
		}
		report.Processed = append(report.Processed, entry)
	}

	c.printSummary(report)
	return report
}

func (c *Converter) printSummary(report types.RunReport) {
	fmt.Fprintf(c.w, "\nConversion summary: %d converted, %d failed (total: %d)\n",
		len(report.Processed), len(report.Failed), report.Total())
	for _, p := range report.Processed {
		fmt.Fprintf(c.w, "  - %s: %d items -> %s\n", p.Collection, p.Items, p.Output)
	}
	if report.HasFailures() {
		fmt.Fprintln(c.w, "Failures:")
		for _, f := range report.Failed {
			fmt.Fprintf(c.w, "  - %s [%s]: %s\n", f.Collection, f.Kind, f.Error)
		}
	}
}
