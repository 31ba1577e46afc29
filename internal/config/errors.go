package config

import (
	"errors"
	"fmt"
)

// ErrValidationFailed indicates a setting holds an unusable value.
var ErrValidationFailed = errors.New("validation failed")

// ValidationError describes a validation failure for a setting.
type ValidationError struct {
	// Path is the setting path that failed validation.
	Path string
	// Message describes the validation error.
	Message string
	// Value is the invalid value.
	Value any
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid value for %s: %s (got %v)", e.Path, e.Message, e.Value)
}

// Unwrap returns ErrValidationFailed.
func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}
