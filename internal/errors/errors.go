// Package errors defines the error taxonomy shared by the parser, the analyzer
// and the CLI.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for each failure category. Typed errors below unwrap to
// one of these so callers can use errors.Is without knowing the concrete type.
var (
	// ErrDecoding indicates the input bytes are not valid UTF-8 text.
	ErrDecoding = errors.New("invalid UTF-8 input")

	// ErrSchema indicates a required column is absent.
	ErrSchema = errors.New("missing required field")

	// ErrInput indicates a caller-level problem (no file, unknown action).
	ErrInput = errors.New("invalid input")
)

// DecodingError reports where decoding failed.
type DecodingError struct {
	// Offset is the byte offset of the first invalid sequence.
	Offset int
}

// Error implements the error interface
func (e *DecodingError) Error() string {
	return fmt.Sprintf("%v at byte %d", ErrDecoding, e.Offset)
}

// Unwrap returns ErrDecoding
func (e *DecodingError) Unwrap() error {
	return ErrDecoding
}

// NewDecodingError creates a new DecodingError
func NewDecodingError(offset int) *DecodingError {
	return &DecodingError{Offset: offset}
}

// SchemaError lists the required columns that the header does not provide.
type SchemaError struct {
	Missing []string
	Header  []string
}

// Error implements the error interface
func (e *SchemaError) Error() string {
	return fmt.Sprintf("%v: %s (header: %s)",
		ErrSchema,
		strings.Join(e.Missing, ", "),
		strings.Join(e.Header, ";"))
}

// Unwrap returns ErrSchema
func (e *SchemaError) Unwrap() error {
	return ErrSchema
}

// NewSchemaError creates a new SchemaError
func NewSchemaError(missing, header []string) *SchemaError {
	return &SchemaError{Missing: missing, Header: header}
}

// InputError is a caller-level error, e.g. no file supplied or an
// unrecognised action selector.
type InputError struct {
	// Field names the offending input (file, action, ...).
	Field string

	// Value is what the caller supplied, if anything.
	Value string

	// Message is the user-facing explanation.
	Message string
}

// Error implements the error interface
func (e *InputError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("%s %q: %s", e.Field, e.Value, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap returns ErrInput
func (e *InputError) Unwrap() error {
	return ErrInput
}

// NewInputError creates a new InputError
func NewInputError(field, value, message string) *InputError {
	return &InputError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}
