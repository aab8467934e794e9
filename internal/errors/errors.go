// Package errors provides typed error definitions for lteman.
// This package consolidates error handling and provides structured error types
// that can be used for better error classification and handling.
package errors

import (
	"fmt"
	"net/http"
)

// ErrorCode represents a unique identifier for different error types
type ErrorCode string

const (
	// Configuration errors
	ErrConfigNotFound   ErrorCode = "CONFIG_NOT_FOUND"
	ErrConfigParse      ErrorCode = "CONFIG_PARSE"
	ErrConfigValidation ErrorCode = "CONFIG_VALIDATION"

	// Install pipeline errors
	ErrAptInstallFailed ErrorCode = "APT_INSTALL_FAILED"
	ErrCloneFailed      ErrorCode = "CLONE_FAILED"
	ErrBuildFailed      ErrorCode = "BUILD_FAILED"
	ErrConfigCopyFailed ErrorCode = "CONFIG_COPY_FAILED"

	// Service errors
	ErrServiceRenderFailed  ErrorCode = "SERVICE_RENDER_FAILED"
	ErrServiceControlFailed ErrorCode = "SERVICE_CONTROL_FAILED"
	ErrServiceNotInstalled  ErrorCode = "SERVICE_NOT_INSTALLED"

	// Action errors
	ErrPreconditionNotMet ErrorCode = "PRECONDITION_NOT_MET"
	ErrAttachTimeout      ErrorCode = "ATTACH_TIMEOUT"

	// Network errors
	ErrAddressUnresolved ErrorCode = "ADDRESS_UNRESOLVED"
	ErrRouteChangeFailed ErrorCode = "ROUTE_CHANGE_FAILED"

	// State store errors
	ErrStateConnection ErrorCode = "STATE_CONNECTION"
	ErrStateQuery      ErrorCode = "STATE_QUERY"
	ErrStateMigration  ErrorCode = "STATE_MIGRATION"

	// Validation errors
	ErrInvalidInput   ErrorCode = "INVALID_INPUT"
	ErrInvalidAddress ErrorCode = "INVALID_ADDRESS"

	// Internal errors
	ErrInternal ErrorCode = "INTERNAL_ERROR"
	ErrTimeout  ErrorCode = "TIMEOUT"
)

// LtemanError represents a structured error with additional context
type LtemanError struct {
	Code       ErrorCode              `json:"code"`
	Message    string                 `json:"message"`
	Details    string                 `json:"details,omitempty"`
	Cause      error                  `json:"-"`
	Context    map[string]interface{} `json:"context,omitempty"`
	HTTPStatus int                    `json:"-"`
}

// Error implements the error interface
func (e *LtemanError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error
func (e *LtemanError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *LtemanError) WithContext(key string, value interface{}) *LtemanError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// GetHTTPStatus returns the appropriate HTTP status code for this error
func (e *LtemanError) GetHTTPStatus() int {
	if e.HTTPStatus != 0 {
		return e.HTTPStatus
	}

	switch e.Code {
	case ErrConfigNotFound, ErrServiceNotInstalled:
		return http.StatusNotFound
	case ErrInvalidInput, ErrInvalidAddress, ErrConfigValidation:
		return http.StatusBadRequest
	case ErrPreconditionNotMet:
		return http.StatusConflict
	case ErrAttachTimeout, ErrTimeout:
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}

// New creates a new LtemanError
func New(code ErrorCode, message string) *LtemanError {
	return &LtemanError{
		Code:    code,
		Message: message,
	}
}

// NewWithDetails creates a new LtemanError with details
func NewWithDetails(code ErrorCode, message, details string) *LtemanError {
	return &LtemanError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// Wrap creates a new LtemanError that wraps an existing error
func Wrap(code ErrorCode, message string, cause error) *LtemanError {
	return &LtemanError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WrapWithDetails creates a new LtemanError with details that wraps an existing error
func WrapWithDetails(code ErrorCode, message, details string, cause error) *LtemanError {
	return &LtemanError{
		Code:    code,
		Message: message,
		Details: details,
		Cause:   cause,
	}
}

// IsLtemanError checks if an error is a LtemanError
func IsLtemanError(err error) bool {
	_, ok := err.(*LtemanError)
	return ok
}

// GetCode extracts the error code from an error, if it's a LtemanError
func GetCode(err error) ErrorCode {
	if le, ok := err.(*LtemanError); ok {
		return le.Code
	}
	return ""
}

// HasCode checks if an error has a specific error code
func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}
