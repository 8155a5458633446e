// FILE: lixenwraith/typedenv/errors.go
package typedenv

import (
	"errors"
	"fmt"
)

// Sentinel errors for source configuration.
var (
	// ErrInvalidConfiguration indicates a bad combination of source method and file path.
	ErrInvalidConfiguration = errors.New("invalid source configuration")

	// ErrSourceNotFound indicates the configured source file does not exist.
	ErrSourceNotFound = errors.New("source file not found")

	// ErrValueSize indicates a raw value exceeds MaxValueSize.
	ErrValueSize = errors.New("value size exceeds limit")

	// ErrInvalidSchema indicates a field declaration was rejected.
	ErrInvalidSchema = errors.New("invalid schema")
)

// Sentinel errors for loading and export.
var (
	// ErrEmptySource indicates Load was called before any variables were resolved.
	ErrEmptySource = errors.New("no environment variables were loaded")

	// ErrUnknownField indicates a source key has no declared field under the strict policy.
	ErrUnknownField = errors.New("unknown variable")

	// ErrUnknownType indicates no conversion function is registered for a field type.
	ErrUnknownType = errors.New("unknown type")

	// ErrConversion indicates a conversion function rejected the raw value.
	ErrConversion = errors.New("parsing error")

	// ErrMissingField indicates a required field ended the load without a value.
	ErrMissingField = errors.New("variable was not set")

	// ErrNotLoaded indicates a field was read before any value was assigned to it.
	ErrNotLoaded = errors.New("variable not loaded")

	// ErrNilValue is returned by non-optional validators when the raw value is absent.
	ErrNilValue = errors.New("value is nil")
)

// FieldError ties a load failure to the field that caused it.
type FieldError struct {
	// Field is the declared field (or raw key, for unknown variables).
	Field string
	// Type is the declared type, empty for unknown variables.
	Type Type
	// Kind is one of the sentinel errors above.
	Kind error
	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	msg := fmt.Sprintf("%v: %s", e.Kind, e.Field)
	if e.Type != "" {
		msg += fmt.Sprintf(" (type %s)", e.Type)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind and the cause to errors.Is/As.
func (e *FieldError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func fieldError(kind error, field string, t Type, cause error) *FieldError {
	return &FieldError{Field: field, Type: t, Kind: kind, Err: cause}
}
