// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"errors"
	"fmt"
	"io/fs"
)

// ErrNoInputFiles is returned by RunAll when discovery finds nothing to convert.
var ErrNoInputFiles = errors.New("no input files found")

// Error kinds reported in the run summary.
const (
	KindRow   = "row"
	KindIO    = "io"
	KindOther = "other"
)

// RowError describes a malformed CSV row or a field value that cannot be
// converted. It aborts the conversion of the file it occurred in.
type RowError struct {
	Collection string
	// Line is the 1-based line of the offending row in the input file.
	Line int
	// Column is the source column, empty for structural CSV errors.
	Column string
	Value  string
	Err    error
}

func (e *RowError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d: column %q value %q: %v", e.Line, e.Column, e.Value, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// ErrorKind classifies err for reporting: row errors, filesystem errors, or other.
func ErrorKind(err error) string {
	var rowErr *RowError
	if errors.As(err, &rowErr) {
		return KindRow
	}
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return KindIO
	}
	return KindOther
}
