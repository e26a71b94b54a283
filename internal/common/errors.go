package common

import (
	"errors"
	"fmt"
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

// Pipeline error taxonomy. Field-level heuristics never raise; only these
// classes surface to the caller.
var (
	// ErrFetch: remote document retrieval failed or exceeded the size ceiling.
	ErrFetch = errors.New("fetch failed")
	// ErrDecode: inline payload could not be decoded.
	ErrDecode = errors.New("decode failed")
	// ErrExtractionEmpty: no usable text after all fallback attempts.
	ErrExtractionEmpty = errors.New("empty text after extraction")
	// ErrExternalService: locator, completion, or generation call failed.
	ErrExternalService = errors.New("external service error")
	// ErrMalformedLLMOutput: model replied but its content could not be
	// parsed into the schema after salvage attempts.
	ErrMalformedLLMOutput = errors.New("malformed llm output")

	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
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
