package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Error codes
const (
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeInternal           = "INTERNAL_ERROR"
	ErrCodeBadRequest         = "BAD_REQUEST"
	ErrCodeConflict           = "CONFLICT"
	ErrCodeTooManyRequests    = "TOO_MANY_REQUESTS"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// AppError represents an application error with HTTP status code and error code
type AppError struct {
	Code    string // Error code (e.g., "NOT_FOUND", "VALIDATION_ERROR")
	Message string // Human-readable error message
	Status  int    // HTTP status code
	Err     error  // Wrapped underlying error (optional)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// AsAppError finds an AppError in err's chain. Anything else becomes an
// INTERNAL_ERROR wrapping err.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return NewInternalError(err)
}

func NewNotFoundError(resource string, id any) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %v", resource, id),
		Status:  http.StatusNotFound,
	}
}

// NewValidationError creates a VALIDATION_ERROR for a single field.
func NewValidationError(field string, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
		Status:  http.StatusBadRequest,
	}
}

// WrapValidationError is NewValidationError keeping the cause, so callers
// can still match domain sentinels with errors.Is.
func WrapValidationError(field string, err error) *AppError {
	e := NewValidationError(field, err.Error())
	e.Err = err
	return e
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: "internal server error",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeBadRequest,
		Message: message,
		Status:  http.StatusBadRequest,
	}
}

// NewConflictError reports a write that lost an optimistic-concurrency race.
func NewConflictError(resource string, id any, err error) *AppError {
	return &AppError{
		Code:    ErrCodeConflict,
		Message: fmt.Sprintf("%s %v was modified concurrently, reload and retry", resource, id),
		Status:  http.StatusConflict,
		Err:     err,
	}
}

// NewDuplicateError reports a create that collides with an existing record.
func NewDuplicateError(resource string, key any) *AppError {
	return &AppError{
		Code:    ErrCodeConflict,
		Message: fmt.Sprintf("%s already exists: %v", resource, key),
		Status:  http.StatusConflict,
	}
}

func NewTooManyRequestsError() *AppError {
	return &AppError{
		Code:    ErrCodeTooManyRequests,
		Message: "rate limit exceeded",
		Status:  http.StatusTooManyRequests,
	}
}

func NewServiceUnavailableError(message string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeServiceUnavailable,
		Message: message,
		Status:  http.StatusServiceUnavailable,
		Err:     err,
	}
}
