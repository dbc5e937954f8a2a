package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeSchema     ErrorType = "SCHEMA"
	ErrTypeCoercion   ErrorType = "COERCION"
	ErrTypeDateParse  ErrorType = "DATE_PARSE"
	ErrTypeNotFound   ErrorType = "NOT_FOUND"
	ErrTypeParsing    ErrorType = "PARSING"
	ErrTypeStorage    ErrorType = "STORAGE"
	ErrTypeValidation ErrorType = "VALIDATION"
	ErrTypeConfig     ErrorType = "CONFIG"
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

// IsType reports whether any AppError in err's chain has the given type.
func IsType(err error, errType ErrorType) bool {
	for err != nil {
		var appErr *AppError
		if !stderrors.As(err, &appErr) {
			return false
		}
		if appErr.Type == errType {
			return true
		}
		err = appErr.Cause
	}
	return false
}

// MissingColumnError is raised when a requested column is absent from a
// table's header.
type MissingColumnError struct {
	Column    string
	Available []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("column %q not found (available: %s)", e.Column, strings.Join(e.Available, ", "))
}

// Helper functions for common error types

// NewSchemaError creates an error for an input whose columns do not match
// what a procedure expects.
func NewSchemaError(message string, cause error) *AppError {
	return NewAppError(ErrTypeSchema, message, cause)
}

// NewMissingColumnError wraps a MissingColumnError in a schema error
func NewMissingColumnError(column string, available []string) *AppError {
	return NewSchemaError("missing column", &MissingColumnError{
		Column:    column,
		Available: append([]string(nil), available...),
	}).WithContext("column", column)
}

// NewTypeCoercionError creates a row-scoped coercion error. Callers record
// it and drop the row; it never aborts a run on its own.
func NewTypeCoercionError(column, value string) *AppError {
	return NewAppError(ErrTypeCoercion, fmt.Sprintf("value %q in column %q is not numeric", value, column), nil).
		WithContext("column", column).
		WithContext("value", value)
}

// NewDateParseError creates a date parsing error
func NewDateParseError(message string, cause error) *AppError {
	return NewAppError(ErrTypeDateParse, message, cause)
}

// NewFileNotFoundError creates an error for an absent input file
func NewFileNotFoundError(path string, cause error) *AppError {
	return NewAppError(ErrTypeNotFound, fmt.Sprintf("file %s not found", path), cause).
		WithContext("path", path)
}

// NewParsingError creates a parsing-related error
func NewParsingError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, message, cause)
}

// NewStorageError creates a storage-related error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewAppValidationError creates a validation error for AppError type
func NewAppValidationError(message string) *AppError {
	return NewAppError(ErrTypeValidation, message, nil)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}
