package dataset

import (
	"errors"
	"fmt"
)

// ErrMissingColumn is returned when a required column is absent from the
// header of the export.
var ErrMissingColumn = errors.New("missing required column")

// ErrEmptyInput is returned when the export has no header row.
var ErrEmptyInput = errors.New("input has no header row")

// ParseError reports a value that could not be coerced to the type of its
// column. Row is 1-based and counts data rows only.
type ParseError struct {
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("row %d: column %s: cannot parse %q: %v", e.Row, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
