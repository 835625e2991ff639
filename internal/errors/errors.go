package errors

import "fmt"

// ErrorCode represents a promptdex error code.
type ErrorCode string

const (
	ErrInvalidRequest ErrorCode = "INVALID_REQUEST" // 400
	ErrNotFound       ErrorCode = "NOT_FOUND"       // 404
	ErrParseFailed    ErrorCode = "PARSE_FAILED"    // 422
	ErrInternal       ErrorCode = "INTERNAL"        // 500
)

// PdexError represents a structured error with code, status, and details.
type PdexError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *PdexError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *PdexError {
	return &PdexError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for a missing corpus artifact or
// an empty filtered result.
func NewNotFound(what string) *PdexError {
	return &PdexError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("not found: %s", what),
		Details: map[string]any{"identifier": what},
	}
}

// NewParseFailed creates a 422 error for a capture file that is not valid JSON.
func NewParseFailed(path string, err error) *PdexError {
	return &PdexError{
		Code:    ErrParseFailed,
		Status:  422,
		Message: fmt.Sprintf("failed to parse %s: %v", path, err),
		Details: map[string]any{"path": path},
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *PdexError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &PdexError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is a PdexError with the given code.
func Is(err error, code ErrorCode) bool {
	if pErr, ok := err.(*PdexError); ok {
		return pErr.Code == code
	}
	return false
}
