// Package errors provides structured error types for footlights.
//
// Every failure the engine reports carries a machine-readable [Code] so the CLI
// and the HTTP server can react to the category without parsing messages:
//   - configuration errors: STYLE_NOT_FOUND, MISSING_ATTRIBUTE, INVALID_CONFIG
//   - unimplemented variants: UNIMPLEMENTED
//   - collaborator errors: IMAGE_SIZE, FILE_NOT_FOUND, NETWORK_ERROR
//
// # Usage
//
//	err := errors.New(errors.ErrCodeStyleNotFound, "style %q not found", name)
//	if errors.Is(err, errors.ErrCodeStyleNotFound) {
//	    // Handle configuration error
//	}
//
//	// Wrap collaborator errors, keeping the original as the cause
//	err := errors.Wrap(errors.ErrCodeImageSize, origErr, "probe %s", src)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Configuration errors
	ErrCodeStyleNotFound    Code = "STYLE_NOT_FOUND"
	ErrCodeMissingAttribute Code = "MISSING_ATTRIBUTE"
	ErrCodeInvalidConfig    Code = "INVALID_CONFIG"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"

	// Declared variants that cannot be rendered
	ErrCodeUnimplemented Code = "UNIMPLEMENTED"

	// Collaborator errors
	ErrCodeImageSize    Code = "IMAGE_SIZE"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"
	ErrCodeNetwork      Code = "NETWORK_ERROR"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
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

// GetCodeOr is GetCode with a fallback for errors that carry no code.
func GetCodeOr(err error, fallback Code) Code {
	if code := GetCode(err); code != "" {
		return code
	}
	return fallback
}

// IsConfig reports whether err is a recoverable configuration error.
func IsConfig(err error) bool {
	switch GetCode(err) {
	case ErrCodeStyleNotFound, ErrCodeMissingAttribute, ErrCodeInvalidConfig, ErrCodeInvalidFormat:
		return true
	}
	return false
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix,
// followed by the cause when there is one.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return e.Message + ": " + e.Cause.Error()
		}
		return e.Message
	}
	return err.Error()
}
