// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the cms-export pipeline:
// normalized items, collection documents, run reports and configuration.
package types

import (
	"bytes"
	"encoding/json"
	"fmt"

	"go.yaml.in/yaml/v3"
)

// Field is a single key/value pair of an Item.
type Field struct {
	Key   string
	Value any
}

// Item is one normalized record of a collection. Fields keep the order in
// which they were set, so serialized items list the common fields first and
// the collection-specific fields in schema order.
type Item struct {
	fields []Field
}

// Set assigns value to key. An existing key keeps its position.
func (it *Item) Set(key string, value any) {
	for i := range it.fields {
		if it.fields[i].Key == key {
			it.fields[i].Value = value
			return
		}
	}
	it.fields = append(it.fields, Field{Key: key, Value: value})
}

// Get returns the value stored under key.
func (it Item) Get(key string) (any, bool) {
	for _, f := range it.fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Has reports whether key is present.
func (it Item) Has(key string) bool {
	_, ok := it.Get(key)
	return ok
}

// Keys returns the field names in insertion order.
func (it Item) Keys() []string {
	keys := make([]string, len(it.fields))
	for i, f := range it.fields {
		keys[i] = f.Key
	}
	return keys
}

// Len returns the number of fields.
func (it Item) Len() int { return len(it.fields) }

// MarshalJSON writes the item as a JSON object in field order. HTML
// characters are not escaped; comment_html values are emitted verbatim.
func (it Item) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range it.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeJSONValue(&buf, f.Key); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := writeJSONValue(&buf, f.Value); err != nil {
			return nil, fmt.Errorf("encoding field %q: %w", f.Key, err)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeJSONValue(buf *bytes.Buffer, v any) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
	return nil
}

// MarshalYAML returns a mapping node that preserves field order.
func (it Item) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, f := range it.fields {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Key}
		val := &yaml.Node{}
		if err := val.Encode(f.Value); err != nil {
			return nil, fmt.Errorf("encoding field %q: %w", f.Key, err)
		}
		node.Content = append(node.Content, key, val)
	}
	return node, nil
}

// CollectionDocument is the artifact written for each input file.
type CollectionDocument struct {
	// Collection is the collection name derived from the input file name.
	Collection string `json:"collection" yaml:"collection"`

	// TotalCount is the number of items; always len(Items).
	TotalCount int `json:"total_count" yaml:"total_count"`

	// GeneratedAt is the RFC 3339 timestamp taken at serialization time.
	GeneratedAt string `json:"generated_at" yaml:"generated_at"`

	// Items lists the normalized items in output order.
	Items []Item `json:"items" yaml:"items"`
}

// ProcessedFile records one successfully converted input file.
type ProcessedFile struct {
	Collection string `json:"collection" yaml:"collection"`
	Items      int    `json:"items" yaml:"items"`
	Output     string `json:"output" yaml:"output"`
}

// FailedFile records one input file whose conversion was aborted.
type FailedFile struct {
	Collection string `json:"collection" yaml:"collection"`
	Input      string `json:"input" yaml:"input"`
	// Kind is "row", "io" or "other".
	Kind  string `json:"kind" yaml:"kind"`
	Error string `json:"error" yaml:"error"`
}

// RunReport accumulates the outcome of one conversion run.
type RunReport struct {
	RunID     string          `json:"run_id" yaml:"run_id"`
	Processed []ProcessedFile `json:"processed" yaml:"processed"`
	Failed    []FailedFile    `json:"failed,omitempty" yaml:"failed,omitempty"`
}

// Total returns the number of files attempted.
func (r RunReport) Total() int {
	return len(r.Processed) + len(r.Failed)
}

// HasFailures reports whether any file failed conversion.
func (r RunReport) HasFailures() bool {
	return len(r.Failed) > 0
}
