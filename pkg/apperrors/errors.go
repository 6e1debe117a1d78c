package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType represents the category of an error
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeRequest    ErrorType = "request"
	ErrorTypeInternal   ErrorType = "internal"
)

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Details    string    `json:"details,omitempty"`
	StatusCode int       `json:"status_code,omitempty"`
	Cause      error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates an error for bad user input.
func NewValidationError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Cause:      cause,
	}
}

// NewRequestError creates an error for a failed call to the analysis endpoint.
// statusCode is the upstream status, or 0 when no response was received.
func NewRequestError(message string, statusCode int, details string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeRequest,
		Message:    message,
		Details:    details,
		StatusCode: statusCode,
		Cause:      cause,
	}
}

// NewInternalError creates an error for unexpected server-side failures.
func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// IsType checks if err, or anything it wraps, is an AppError of the given type.
func IsType(err error, errorType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errorType
	}
	return false
}

// GetStatusCode extracts the HTTP status code from an error
func GetStatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.StatusCode != 0 {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}
