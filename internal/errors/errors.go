package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a vcard error code.
type ErrorCode string

const (
	ErrInvalidRequest ErrorCode = "INVALID_REQUEST" // 400
	ErrFileNotFound   ErrorCode = "FILE_NOT_FOUND"  // 404
	ErrInternal       ErrorCode = "INTERNAL"        // 500
)

// VcardError represents a structured error with code, status, and details.
type VcardError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
	cause   error
}

// Error implements the error interface.
func (e *VcardError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error, if any.
func (e *VcardError) Unwrap() error {
	return e.cause
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *VcardError {
	return &VcardError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewFileNotFound creates a 404 error for a required file that does not exist.
func NewFileNotFound(path string) *VcardError {
	return &VcardError{
		Code:    ErrFileNotFound,
		Status:  404,
		Message: fmt.Sprintf("file not found: %s", path),
		Details: map[string]any{"path": path},
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *VcardError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &VcardError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
		cause:   err,
	}
}

// Is checks if an error is (or wraps) a VcardError with the given code.
func Is(err error, code ErrorCode) bool {
	var vErr *VcardError
	if stderrors.As(err, &vErr) {
		return vErr.Code == code
	}
	return false
}
