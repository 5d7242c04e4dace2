package errors

import (
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeConfiguration     ErrorType = "CONFIGURATION"
	ErrTypeParsing           ErrorType = "PARSING"
	ErrTypeMissingKey        ErrorType = "MISSING_KEY"
	ErrTypeUnsupportedMethod ErrorType = "UNSUPPORTED_METHOD"
	ErrTypeEmptyResult       ErrorType = "EMPTY_RESULT"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// Helper functions for common error types

// NewConfigurationError reports a column or curve mapping that does not exist
// in a source.
func NewConfigurationError(source, key, message string) *AppError {
	return NewAppError(ErrTypeConfiguration, fmt.Sprintf("%s: %s: %s", source, key, message), nil).
		WithContext("source", source).
		WithContext("key", key)
}

// NewParseError reports a raw cell that could not be converted to a number.
func NewParseError(source, key string, row int, cause error) *AppError {
	return NewAppError(ErrTypeParsing, fmt.Sprintf("%s: %s: row %d is not numeric", source, key, row), cause).
		WithContext("source", source).
		WithContext("key", key).
		WithContext("row", row)
}

// NewMissingKeyError reports a source or stage input that lacks a required curve.
func NewMissingKeyError(source, key string) *AppError {
	return NewAppError(ErrTypeMissingKey, fmt.Sprintf("%s: curve %q is missing", source, key), nil).
		WithContext("source", source).
		WithContext("key", key)
}

// NewUnsupportedMethodError reports an unknown method identifier for a derivation.
func NewUnsupportedMethodError(stage string, method interface{}) *AppError {
	return NewAppError(ErrTypeUnsupportedMethod, fmt.Sprintf("%s: unsupported method %v", stage, method), nil).
		WithContext("stage", stage).
		WithContext("method", method)
}

// NewEmptyResultError signals that a stage produced zero samples. It is a
// warning and is returned alongside results, never instead of them.
func NewEmptyResultError(stage, key string) *AppError {
	return NewAppError(ErrTypeEmptyResult, fmt.Sprintf("%s: %s has no samples", stage, key), nil).
		WithContext("stage", stage).
		WithContext("key", key)
}
