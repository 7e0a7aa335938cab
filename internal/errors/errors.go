// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrLegNotFound       = errors.New("leg not found")
	ErrInvalidLeg        = errors.New("invalid leg")
	ErrSymbolNotFound    = errors.New("symbol not found")
	ErrExpiryNotFound    = errors.New("expiry not found")
	ErrStrikeUnavailable = errors.New("required strike not available in chain")
	ErrUnknownPreset     = errors.New("unknown strategy preset")
	ErrConfigInvalid     = errors.New("invalid configuration")
	ErrDatabaseError     = errors.New("database error")
)

// ValidationError represents a validation error.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s (%v): %s", e.Field, e.Value, e.Message)
}

// Unwrap lets callers match validation failures with errors.Is(err, ErrInvalidLeg).
func (e *ValidationError) Unwrap() error {
	return ErrInvalidLeg
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// LegError represents an error for an operation on a specific strategy leg.
type LegError struct {
	LegID     int64
	Operation string
	Err       error
}

func (e *LegError) Error() string {
	return fmt.Sprintf("leg error [%d] %s: %v", e.LegID, e.Operation, e.Err)
}

func (e *LegError) Unwrap() error {
	return e.Err
}

// NewLegError creates a new LegError.
func NewLegError(legID int64, operation string, err error) *LegError {
	return &LegError{
		LegID:     legID,
		Operation: operation,
		Err:       err,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
