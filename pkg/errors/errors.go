// Package errors provides structured error types for crawlviz.
//
// Errors carry a machine-readable code so the CLI and the HTTP API can
// decide how to surface them. Layout computation itself never fails; the
// codes here describe problems with the data handed to it and with the
// services that supply that data.
//
// # Error Codes
//
//   - INVALID_*: Input validation failures
//   - MALFORMED_NODE: Crawl data violating the node preconditions
//   - NOT_FOUND: Unknown crawl job
//   - NETWORK_*, TIMEOUT: Upstream failures
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMalformedNode, "node %q: negative depth", id)
//	if errors.Is(err, errors.ErrCodeMalformedNode) {
//	    banner := errors.Banner(err) // "visualization data incomplete"
//	}
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
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidSource Code = "INVALID_SOURCE"
	ErrCodeInvalidJobID  Code = "INVALID_JOB_ID"

	// Crawl data violating the engine preconditions
	ErrCodeMalformedNode Code = "MALFORMED_NODE"

	// Resource not found errors
	ErrCodeNotFound Code = "NOT_FOUND"

	// Network errors
	ErrCodeNetwork Code = "NETWORK_ERROR"
	ErrCodeTimeout Code = "TIMEOUT"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// BannerIncomplete is shown instead of the graph canvas content when the
// crawl data breaks the node preconditions.
const BannerIncomplete = "visualization data incomplete"

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

// Temporary reports whether err is an upstream failure that may clear up
// on its own, so retrying later makes sense.
func Temporary(err error) bool {
	switch GetCode(err) {
	case ErrCodeNetwork, ErrCodeTimeout:
		return true
	}
	return false
}

// Banner returns the non-fatal banner text for errors that should be shown
// next to the graph canvas rather than replacing the page. It returns ""
// for errors that have no banner. Unlike [Is], every *Error in the chain
// is inspected, so a MALFORMED_NODE wrapped by a decode error still
// produces the banner.
func Banner(err error) string {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return ""
		}
		if e.Code == ErrCodeMalformedNode {
			return BannerIncomplete
		}
		err = e.Cause
	}
	return ""
}
