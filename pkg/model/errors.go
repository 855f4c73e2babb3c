// pkg/model/errors.go
package model

import (
	"fmt"
	"time"
)

// SchemaError reports that an expected column is absent or has the
// wrong type. Operations that hit one abort immediately with no
// partial table.
type SchemaError struct {
	Column string
	Reason string
}

// Error implements the error interface
func (e *SchemaError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("schema error: column %q does not exist", e.Column)
	}
	return fmt.Sprintf("schema error: column %q: %s", e.Column, e.Reason)
}

// NewSchemaError creates a schema error for a missing column
func NewSchemaError(column string) *SchemaError {
	return &SchemaError{Column: column}
}

// InvalidArgumentError reports an out-of-range parameter or an
// unknown period label
type InvalidArgumentError struct {
	Argument string
	Value    interface{}
	Reason   string
}

// Error implements the error interface
func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %s=%v: %s", e.Argument, e.Value, e.Reason)
}

// NewInvalidArgumentError creates an invalid-argument error
func NewInvalidArgumentError(argument string, value interface{}, reason string) *InvalidArgumentError {
	return &InvalidArgumentError{Argument: argument, Value: value, Reason: reason}
}

// DomainError reports a mathematically invalid transform input,
// e.g. a log transform over a value below -1
type DomainError struct {
	Column string
	Value  float64
	Reason string
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return fmt.Sprintf("domain error: column %q value %v: %s", e.Column, e.Value, e.Reason)
}

// ParseFailure records a single unparseable cell. Parse failures are
// per-row and non-fatal: they are collected and surfaced to the caller
// rather than aborting the pipeline.
type ParseFailure struct {
	RowIndex  int       // Position of the offending row in the input table
	Column    string    // Column that failed to parse
	Input     string    // Raw cell content
	Timestamp time.Time // When the failure was observed
}

// Error implements the error interface
func (f ParseFailure) Error() string {
	return fmt.Sprintf("row %d: cannot parse %s value %q", f.RowIndex, f.Column, f.Input)
}
