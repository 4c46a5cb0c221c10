// Package apperrors defines the sentinel errors and error types shared by
// the domain services, the repositories, and the HTTP layer. Handlers map
// these onto status codes, so layers below never import net/http.
package apperrors

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is matching across layers.
var (
	ErrNotFound        = errors.New("resource not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrValidation      = errors.New("validation failed")
	ErrAlreadyExists   = errors.New("resource already exists")
	ErrDatabase        = errors.New("database error")
	ErrInternalServer  = errors.New("internal server error")
)

// ValidationError carries the name of the offending field so the HTTP layer
// can report it back to the client.
type ValidationError struct {
	Field   string
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

// NewValidationError builds a field-level validation error that matches
// errors.Is against ErrValidation and errors.As against *ValidationError.
func NewValidationError(field, message string) error {
	return fmt.Errorf("%w: %w", ErrValidation, &ValidationError{Field: field, Message: message})
}

// AppError is an internal failure with a stable machine-readable code.
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// WrapDatabaseError tags a driver-level failure so callers can match it with
// errors.Is(err, ErrDatabase) without knowing the driver.
func WrapDatabaseError(cause error, message string) error {
	return &AppError{
		Code:    "DB_ERROR",
		Message: message,
		Cause:   fmt.Errorf("%w: %w", ErrDatabase, cause),
	}
}
