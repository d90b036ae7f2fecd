// Package errors defines the application error taxonomy. Every error the
// delivery layer can surface implements AppError; everything else is treated
// as an internal error.
package errors

import (
	"net/http"

	"github.com/pkg/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
	Retryable() bool   // Whether the caller may simply retry
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
	retryable bool
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// Retryable reports whether re-submitting the same request may succeed
func (e *BaseError) Retryable() bool {
	return e.retryable
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
		retryable: e.retryable,
	}
}

func retryable(e *BaseError) *BaseError {
	e.retryable = true

	return e
}

// Predefined error types
var (
	// Configuration errors are fatal: the operation aborts entirely and no
	// partial output can be trusted.
	ErrUnknownBusinessType = NewBaseError(
		http.StatusBadRequest,
		"UNKNOWN_BUSINESS_TYPE",
		"Unknown business type",
		"",
	)

	ErrConfiguration = NewBaseError(
		http.StatusInternalServerError,
		"CONFIGURATION_ERROR",
		"Invalid configuration",
		"",
	)

	// Validation errors are user-facing and recoverable; no persisted
	// mutation occurs.
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Submitted content failed validation",
		"",
	)

	ErrDuplicateCategory = NewBaseError(
		http.StatusBadRequest,
		"DUPLICATE_CATEGORY",
		"Category names must be unique within a section",
		"",
	)

	ErrInvalidWidgetConfig = NewBaseError(
		http.StatusBadRequest,
		"INVALID_WIDGET_CONFIG",
		"Widget configuration is incomplete or invalid",
		"",
	)

	ErrInvalidBusinessID = NewBaseError(
		http.StatusBadRequest,
		"INVALID_BUSINESS_ID",
		"Business id must be 3-50 lowercase letters, digits, '-' or '_'",
		"",
	)

	// Not-found errors surface as an absent state, never a crash.
	ErrProfileNotFound = NewBaseError(
		http.StatusNotFound,
		"PROFILE_NOT_FOUND",
		"No business profile exists for this id",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Resource not found",
		"",
	)

	// Conflict and authorization.
	ErrProfileAlreadyExists = NewBaseError(
		http.StatusConflict,
		"PROFILE_ALREADY_EXISTS",
		"A business profile with this id already exists",
		"",
	)

	ErrNotOwner = NewBaseError(
		http.StatusForbidden,
		"NOT_OWNER",
		"Only the business owner may modify this profile",
		"",
	)

	ErrUnauthorized = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHORIZED",
		"Authentication required",
		"",
	)

	// Transient I/O errors are retryable by the user; there is no automatic
	// retry loop in this core.
	ErrTransientStore = retryable(NewBaseError(
		http.StatusServiceUnavailable,
		"STORE_UNAVAILABLE",
		"The content store is temporarily unavailable, please try again",
		"",
	))

	ErrTransientBlob = retryable(NewBaseError(
		http.StatusServiceUnavailable,
		"UPLOAD_FAILED",
		"Image upload failed, please try again",
		"",
	))

	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal error",
		"",
	)
)

// DegradedRender records a non-fatal render fallback: a missing template, an
// unresolvable image or an unparseable hours string. It is logged for the
// operator and never surfaces to the end user, who sees placeholder content.
type DegradedRender struct {
	Reason string
	Cause  error
}

func (d *DegradedRender) Error() string {
	if d.Cause != nil {
		return d.Reason + ": " + d.Cause.Error()
	}

	return d.Reason
}

func (d *DegradedRender) Unwrap() error {
	return d.Cause
}
