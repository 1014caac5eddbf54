// Package errors provides structured error types for the docsembed application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and library packages
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - UNKNOWN_*: Identifiers outside the fixed hardware tables
//   - MISSING_* / EXISTING_*: Recoverable per-target file conditions
//   - MALFORMED_*: Parse failures on project documents
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnknownTarget, "unknown target %q", target)
//	if errors.Is(err, errors.ErrCodeUnknownTarget) {
//	    // Handle unsupported hardware target
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeMalformedDocument, origErr, "parse %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput       Code = "INVALID_INPUT"
	ErrCodeInvalidPath        Code = "INVALID_PATH"
	ErrCodeInvalidComposition Code = "INVALID_COMPOSITION"

	// Fixed-table lookups
	ErrCodeUnknownTarget  Code = "UNKNOWN_TARGET"
	ErrCodeUnknownChipset Code = "UNKNOWN_CHIPSET"

	// Per-target file conditions (recoverable: skip and continue)
	ErrCodeMissingArtifact Code = "MISSING_ARTIFACT"
	ErrCodeExistingFile    Code = "EXISTING_FILE"

	// Document parse failures
	ErrCodeMalformedDocument Code = "MALFORMED_DOCUMENT"

	// Network errors
	ErrCodeNetwork      Code = "NETWORK_ERROR"
	ErrCodeUploadFailed Code = "UPLOAD_FAILED"

	// Internal errors
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

// IsRecoverable reports whether err is a skip-and-continue condition
// (a missing diagram file, or a write refused because the file exists).
// Synchronization records these as warnings and moves to the next target.
func IsRecoverable(err error) bool {
	code := GetCode(err)
	return code == ErrCodeMissingArtifact || code == ErrCodeExistingFile
}
