package common

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Input errors are surfaced to the user and the submission is not attempted.
// Invariant violations are a programming-error class and must not occur under
// correct usage.
var (
	ErrUnsupportedType    = errors.New("unsupported attachment type")
	ErrLimitExceeded      = errors.New("attachment limit exceeded")
	ErrEmptySubmission    = errors.New("empty submission")
	ErrInvariantViolation = errors.New("invariant violation")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// HTTPStatus maps an error onto the response code the capture API returns.
// Everything that is not an input error is an internal failure; extraction
// and classification failures never reach this function because they degrade
// into the draft instead of propagating.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrUnsupportedType),
		errors.Is(err, ErrLimitExceeded),
		errors.Is(err, ErrEmptySubmission):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ErrorCode extracts the AppError code, defaulting to INTERNAL.
func ErrorCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return "INTERNAL"
}
