// Package errors provides structured error types for shadergraph.
//
// This package defines error codes and types that enable:
//   - Distinguishing the failures that abort an export (missing or non-node
//     materials) from the ones that only degrade its output
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//
// # Error Codes
//
//   - MATERIAL_NOT_FOUND, NOT_APPLICABLE: abort the enclosing export call
//   - PROPERTY_READ, VALUE_UNREPRESENTABLE, EXTENSION_READ,
//     NODE_TYPE_INSTANTIATION: recorded as issues, never abort
//   - INVALID_*: malformed input (scene snapshots, paths)
//   - IO, INTERNAL: everything else
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMaterialNotFound, "material %q not found", name)
//	if errors.Is(err, errors.ErrCodeMaterialNotFound) {
//	    // Nothing was exported
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeIO, origErr, "write %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Export-aborting errors
	ErrCodeMaterialNotFound Code = "MATERIAL_NOT_FOUND"
	ErrCodeNotApplicable    Code = "NOT_APPLICABLE"

	// Per-item errors, recorded and skipped
	ErrCodePropertyRead          Code = "PROPERTY_READ"
	ErrCodeValueUnrepresentable  Code = "VALUE_UNREPRESENTABLE"
	ErrCodeExtensionRead         Code = "EXTENSION_READ"
	ErrCodeNodeTypeInstantiation Code = "NODE_TYPE_INSTANTIATION"

	// Input validation errors
	ErrCodeInvalidScene Code = "INVALID_SCENE"
	ErrCodeInvalidPath  Code = "INVALID_PATH"
	ErrCodeInvalidInput Code = "INVALID_INPUT"

	// Internal errors
	ErrCodeIO       Code = "IO_ERROR"
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// Aborts reports whether err is one of the codes that abort an export call
// without producing a document.
func Aborts(err error) bool {
	switch GetCode(err) {
	case ErrCodeMaterialNotFound, ErrCodeNotApplicable:
		return true
	}
	return false
}
