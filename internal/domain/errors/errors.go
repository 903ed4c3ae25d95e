// Package errors provides the client-side error taxonomy.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes for domain errors.
const (
	ErrCodeNetwork        = "NETWORK_ERROR"
	ErrCodeAPI            = "API_ERROR"
	ErrCodeDecode         = "DECODE_ERROR"
	ErrCodeSessionExpired = "SESSION_EXPIRED"
	ErrCodeStream         = "STREAM_ERROR"
	ErrCodeValidation     = "VALIDATION_ERROR"
	ErrCodeInternal       = "INTERNAL_ERROR"
)

// SessionExpiredBody is the body carried by a SessionExpired error.
const SessionExpiredBody = "session expired"

// DomainError represents a client-side error.
// For API and session-expired errors, HTTPStatus and Details carry the
// response status and raw body text.
type DomainError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"`
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Status returns the HTTP status associated with the error.
func (e *DomainError) Status() int {
	return e.HTTPStatus
}

// Body returns the raw response body text for API errors.
func (e *DomainError) Body() string {
	return e.Details
}

// NewNetworkError creates a transport-level failure.
func NewNetworkError(operation string, err error) *DomainError {
	details := ""
	if err != nil {
		details = err.Error()
	}
	return &DomainError{
		Code:       ErrCodeNetwork,
		Message:    fmt.Sprintf("%s failed", operation),
		Details:    details,
		HTTPStatus: http.StatusBadGateway,
		Err:        err,
	}
}

// NewAPIError creates an error for a non-success response.
func NewAPIError(status int, body string) *DomainError {
	return &DomainError{
		Code:       ErrCodeAPI,
		Message:    fmt.Sprintf("API error %d", status),
		Details:    body,
		HTTPStatus: status,
	}
}

// NewDecodeError creates an error for a response body that could not be parsed.
func NewDecodeError(err error) *DomainError {
	details := ""
	if err != nil {
		details = err.Error()
	}
	return &DomainError{
		Code:       ErrCodeDecode,
		Message:    "failed to decode response body",
		Details:    details,
		HTTPStatus: http.StatusBadGateway,
		Err:        err,
	}
}

// NewSessionExpiredError creates the terminal authorization error raised
// after a refresh was attempted and failed.
func NewSessionExpiredError() *DomainError {
	return &DomainError{
		Code:       ErrCodeSessionExpired,
		Message:    fmt.Sprintf("API error %d", http.StatusUnauthorized),
		Details:    SessionExpiredBody,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// NewStreamError creates an error describing a failed chat stream.
func NewStreamError(message string, err error) *DomainError {
	return &DomainError{
		Code:       ErrCodeStream,
		Message:    message,
		HTTPStatus: http.StatusBadGateway,
		Err:        err,
	}
}

// NewValidationError creates a new validation error.
func NewValidationError(message string, details string) *DomainError {
	return &DomainError{
		Code:       ErrCodeValidation,
		Message:    message,
		Details:    details,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewInternalError creates a new internal error.
func NewInternalError(message string, err error) *DomainError {
	details := ""
	if err != nil {
		details = err.Error()
	}
	return &DomainError{
		Code:       ErrCodeInternal,
		Message:    message,
		Details:    details,
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// GetDomainError extracts the domain error from an error.
func GetDomainError(err error) (*DomainError, bool) {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr, true
	}
	return nil, false
}

// IsDomainError checks if the error is a domain error.
func IsDomainError(err error) bool {
	_, ok := GetDomainError(err)
	return ok
}

func hasCode(err error, code string) bool {
	domainErr, ok := GetDomainError(err)
	return ok && domainErr.Code == code
}

// IsNetworkError checks if the error is a transport failure.
func IsNetworkError(err error) bool {
	return hasCode(err, ErrCodeNetwork)
}

// IsAPIError checks if the error is a non-success response.
// A SessionExpired error is also an API error with status 401.
func IsAPIError(err error) bool {
	return hasCode(err, ErrCodeAPI) || hasCode(err, ErrCodeSessionExpired)
}

// IsDecodeError checks if the error is a decode failure.
func IsDecodeError(err error) bool {
	return hasCode(err, ErrCodeDecode)
}

// IsSessionExpired checks if the error signals that re-authentication is required.
func IsSessionExpired(err error) bool {
	return hasCode(err, ErrCodeSessionExpired)
}

// IsStreamError checks if the error is a chat stream failure.
func IsStreamError(err error) bool {
	return hasCode(err, ErrCodeStream)
}

// IsValidationError checks if the error is a validation error.
func IsValidationError(err error) bool {
	return hasCode(err, ErrCodeValidation)
}

// StatusOf returns the HTTP status carried by an API error, or 0.
func StatusOf(err error) int {
	if domainErr, ok := GetDomainError(err); ok && IsAPIError(err) {
		return domainErr.HTTPStatus
	}
	return 0
}
