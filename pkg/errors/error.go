// Package errors provides structured error handling with typed error codes.
//
// Error codes are organized into categories:
//   - General errors (1-99): Unknown and general errors
//   - Lex errors (100-109): Invalid characters and malformed literals
//   - Syntax errors (110-129): Structurally invalid token sequences
//   - Type errors (130-139): Boolean/numeric expression misuse
//   - Data/Resource errors (200-299): Data not found, query failures
//   - Indicator errors (300-399): Indicator lookup and parameter errors
//   - Backtest errors (600-699): Simulation preconditions and configuration
//
// Usage:
//
//	// Create a new error
//	err := errors.New(errors.ErrCodeUnknownIndicator, "unknown indicator WMA")
//
//	// Create a parse error carrying a source position
//	err := errors.NewAt(errors.ErrCodeUnexpectedToken, 12, "unexpected token ')'")
//
//	// Wrap an existing error
//	err := errors.Wrap(errors.ErrCodeQueryFailed, "failed to read bars", originalErr)
//
//	// Check error code
//	if errors.HasCode(err, errors.ErrCodeWrongArity) { ... }
package errors

import (
	"errors"
	"fmt"
)

// Error represents a structured error with an error code and message.
// Position is the zero-based byte offset into the rule text for parse-time
// errors; it is -1 when no source position applies.
type Error struct {
	Code     ErrorCode
	Message  string
	Position int
	Cause    error
}

// New creates a new Error with the given code and message and no source position.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:     code,
		Message:  message,
		Position: -1,
		Cause:    nil,
	}
}

// Newf creates a new Error with the given code and formatted message.
func Newf(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Position: -1,
		Cause:    nil,
	}
}

// NewAt creates a new Error with the given code, source position and formatted message.
func NewAt(code ErrorCode, position int, format string, args ...any) *Error {
	return &Error{
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Position: position,
		Cause:    nil,
	}
}

// Wrap wraps an existing error with a new Error containing the given code and message.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:     code,
		Message:  message,
		Position: -1,
		Cause:    cause,
	}
}

// Wrapf wraps an existing error with a new Error containing the given code and formatted message.
func Wrapf(code ErrorCode, cause error, format string, args ...any) *Error {
	return &Error{
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Position: -1,
		Cause:    cause,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Cause != nil:
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Cause)
	case e.Position >= 0:
		return fmt.Sprintf("[%d] %s (at position %d)", e.Code, e.Message, e.Position)
	default:
		return fmt.Sprintf("[%d] %s", e.Code, e.Message)
	}
}

// Unwrap returns the underlying error cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether any error in err's chain matches target.
// This is a convenience wrapper around the standard errors.Is function.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
// This is a convenience wrapper around the standard errors.As function.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// GetCode extracts the ErrorCode from an error if it's an *Error type.
// Returns ErrCodeUnknown if the error is not an *Error type.
func GetCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	return ErrCodeUnknown
}

// HasCode checks if an error has a specific ErrorCode.
func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// GetPosition extracts the source position from an error if it's an *Error
// type carrying one. Returns -1 otherwise.
func GetPosition(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Position
	}

	return -1
}
