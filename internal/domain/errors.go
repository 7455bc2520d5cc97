package domain

import (
	"fmt"
	"net/http"
)

// ErrorType categorizes trigger failures that surface to the caller.
type ErrorType string

const (
	// ErrorTypeAuthRequired indicates a missing or malformed auth header.
	ErrorTypeAuthRequired ErrorType = "auth_required"

	// ErrorTypeAuthRejected indicates a credential mismatch.
	ErrorTypeAuthRejected ErrorType = "auth_rejected"

	// ErrorTypeOriginRejected indicates a CORS origin not on the allow-list.
	ErrorTypeOriginRejected ErrorType = "origin_rejected"

	// ErrorTypeUnsupportedMethod indicates an HTTP method the trigger does
	// not serve.
	ErrorTypeUnsupportedMethod ErrorType = "unsupported_method"

	// ErrorTypeAttachmentInvalid indicates an uploaded file that failed
	// decoding or validation under the strict file policy.
	ErrorTypeAttachmentInvalid ErrorType = "attachment_invalid"
)

// TriggerError is the canonical error for user-visible trigger failures.
// Anything outside this taxonomy degrades to a best-effort envelope instead
// of failing the request.
type TriggerError struct {
	Type       ErrorType
	Message    string
	StatusCode int
}

// Error implements the error interface.
func (e *TriggerError) Error() string {
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// HTTPStatusCode returns the status code for this error, falling back to a
// default per error type.
func (e *TriggerError) HTTPStatusCode() int {
	if e.StatusCode != 0 {
		return e.StatusCode
	}
	switch e.Type {
	case ErrorTypeAuthRequired:
		return http.StatusUnauthorized
	case ErrorTypeAuthRejected, ErrorTypeOriginRejected:
		return http.StatusForbidden
	case ErrorTypeUnsupportedMethod:
		return http.StatusMethodNotAllowed
	case ErrorTypeAttachmentInvalid:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ErrAuthRequired builds a 401 error.
func ErrAuthRequired(message string) *TriggerError {
	return &TriggerError{Type: ErrorTypeAuthRequired, Message: message}
}

// ErrAuthRejected builds a 403 credential-mismatch error.
func ErrAuthRejected(message string) *TriggerError {
	return &TriggerError{Type: ErrorTypeAuthRejected, Message: message}
}

// ErrOriginRejected builds a 403 CORS error.
func ErrOriginRejected(origin string) *TriggerError {
	return &TriggerError{
		Type:    ErrorTypeOriginRejected,
		Message: fmt.Sprintf("origin %q is not allowed", origin),
	}
}

// ErrUnsupportedMethod builds a 405 error.
func ErrUnsupportedMethod() *TriggerError {
	return &TriggerError{
		Type:    ErrorTypeUnsupportedMethod,
		Message: "Method not allowed",
	}
}

// ErrAttachmentInvalid builds a per-file validation error.
func ErrAttachmentInvalid(name, reason string) *TriggerError {
	return &TriggerError{
		Type:    ErrorTypeAttachmentInvalid,
		Message: fmt.Sprintf("file %q rejected: %s", name, reason),
	}
}
