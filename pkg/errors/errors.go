package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Pattern errors
	ErrLengthMismatch   ErrorCode = "LENGTH_MISMATCH"
	ErrInvalidCharacter ErrorCode = "INVALID_CHARACTER"
	ErrMissingPrefix    ErrorCode = "MISSING_PREFIX"

	// Matching errors
	ErrMultipleWildcardKeys ErrorCode = "MULTIPLE_WILDCARD_KEYS"
	ErrInvalidPolicy        ErrorCode = "INVALID_POLICY"

	// Word errors
	ErrInvalidWidth ErrorCode = "INVALID_WIDTH"
	ErrInvalidWord  ErrorCode = "INVALID_WORD"
	ErrWordOverflow ErrorCode = "WORD_OVERFLOW"

	// Table errors
	ErrTableInvalid  ErrorCode = "TABLE_INVALID"
	ErrTableNotFound ErrorCode = "TABLE_NOT_FOUND"
	ErrTableLoad     ErrorCode = "TABLE_LOAD"

	// Configuration errors
	ErrConfigLoad    ErrorCode = "CONFIG_LOAD"
	ErrConfigParse   ErrorCode = "CONFIG_PARSE"
	ErrConfigInvalid ErrorCode = "CONFIG_INVALID"
)

// MorskError represents a structured error with code and details
type MorskError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *MorskError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *MorskError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *MorskError) Is(target error) bool {
	var targetErr *MorskError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new MorskError with the given code and message
func New(code ErrorCode, message string) *MorskError {
	return &MorskError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new MorskError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *MorskError {
	return &MorskError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a MorskError
func Wrap(err error, code ErrorCode, message string) *MorskError {
	if err == nil {
		return nil
	}
	return &MorskError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *MorskError {
	if err == nil {
		return nil
	}
	return &MorskError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *MorskError) WithDetail(key string, value interface{}) *MorskError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *MorskError) WithDetails(details map[string]interface{}) *MorskError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var morskErr *MorskError
	if errors.As(err, &morskErr) {
		return morskErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a MorskError
func GetErrorCode(err error) ErrorCode {
	var morskErr *MorskError
	if errors.As(err, &morskErr) {
		return morskErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a MorskError
func GetErrorDetails(err error) map[string]interface{} {
	var morskErr *MorskError
	if errors.As(err, &morskErr) {
		return morskErr.Details
	}
	return nil
}
