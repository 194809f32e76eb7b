// Package errors defines the coded error type shared by the wikikit packages.
//
// Codes are stable and meant for tests and for callers that need to branch on
// a failure category (for example to tell a download failure from a
// subprocess failure) without matching on message text.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a failure category
type ErrorCode string

const (
	// General errors
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Provisioning errors
	ErrBranchSpecParse     ErrorCode = "BRANCH_SPEC_PARSE"
	ErrDownload            ErrorCode = "DOWNLOAD"
	ErrUnsupportedArchive  ErrorCode = "UNSUPPORTED_ARCHIVE"
	ErrExtract             ErrorCode = "EXTRACT"
	ErrMissingArtifact     ErrorCode = "MISSING_ARTIFACT"
	ErrUnsupportedPlatform ErrorCode = "UNSUPPORTED_PLATFORM"
	ErrSubprocess          ErrorCode = "SUBPROCESS"
	ErrNotProvisioned      ErrorCode = "NOT_PROVISIONED"

	// Site errors
	ErrDecode ErrorCode = "DECODE"

	// FileSystem errors
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
	ErrDirCreate  ErrorCode = "DIR_CREATE"
)

// WikiError is a structured error with a code and optional details
type WikiError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *WikiError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *WikiError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a WikiError with the same code
func (e *WikiError) Is(target error) bool {
	var targetErr *WikiError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new WikiError with the given code and message
func New(code ErrorCode, message string) *WikiError {
	return &WikiError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new WikiError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *WikiError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps err with a code and message. It returns nil when err is nil.
func Wrap(err error, code ErrorCode, message string) *WikiError {
	if err == nil {
		return nil
	}
	e := New(code, message)
	e.Wrapped = err
	return e
}

// Wrapf wraps err with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *WikiError {
	if err == nil {
		return nil
	}
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// WithDetail adds a detail to the error
func (e *WikiError) WithDetail(key string, value interface{}) *WikiError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if the outermost WikiError in err's chain has code
func IsErrorCode(err error, code ErrorCode) bool {
	var wikiErr *WikiError
	if errors.As(err, &wikiErr) {
		return wikiErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a WikiError
func GetErrorCode(err error) ErrorCode {
	var wikiErr *WikiError
	if errors.As(err, &wikiErr) {
		return wikiErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a WikiError
func GetErrorDetails(err error) map[string]interface{} {
	var wikiErr *WikiError
	if errors.As(err, &wikiErr) {
		return wikiErr.Details
	}
	return nil
}
