// Package errors provides structured error handling for Spider.
//
// Every failure the configuration core raises is an *Error carrying an
// ErrorType. Callers branch on the type with IsType, or with the standard
// library's errors.Is against the exported sentinels:
//
//	if errors.Is(err, spidererrors.ErrConnectionNotFound) {
//	    // no usable connection manifest or alias
//	}
package errors

import (
	"errors"
	"fmt"
	"runtime"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeInternal represents internal system errors
	ErrorTypeInternal ErrorType = "internal"
	// ErrorTypeConfig represents configuration errors
	ErrorTypeConfig ErrorType = "config"
	// ErrorTypeConnectionNotFound is raised when no connection manifest was
	// supplied, when an alias (or the default alias) is absent from the
	// manifest, or when a definition names a driver nobody registered.
	ErrorTypeConnectionNotFound ErrorType = "connection_not_found"
	// ErrorTypeInvalidArgument represents caller misuse detected before any
	// registry is touched.
	ErrorTypeInvalidArgument ErrorType = "invalid_argument"
	// ErrorTypeServiceNotFound is raised when an integration is fetched by a
	// name that was never registered.
	ErrorTypeServiceNotFound ErrorType = "service_not_found"
	// ErrorTypeNotSupported represents a backend feature the active driver
	// cannot provide.
	ErrorTypeNotSupported ErrorType = "not_supported"
)

// Sentinels for use with errors.Is. An *Error matches a sentinel when both
// carry the same ErrorType.
var (
	ErrConnectionNotFound = &Error{Type: ErrorTypeConnectionNotFound}
	ErrInvalidArgument    = &Error{Type: ErrorTypeInvalidArgument}
	ErrServiceNotFound    = &Error{Type: ErrorTypeServiceNotFound}
	ErrNotSupported       = &Error{Type: ErrorTypeNotSupported}
)

// Error represents a structured error with context
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Details map[string]interface{}
	Stack   []StackFrame
}

// StackFrame represents a single frame in the call stack
type StackFrame struct {
	Function string
	File     string
	Line     int
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Type)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same type. Only sentinels
// (errors without a message) match by type alone; two distinct messages of
// the same type are not considered equal.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Message == "" {
		return t.Type == e.Type
	}
	return t == e
}

// WithDetail adds a key-value detail to the error
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// New creates a new error with the given type and message
func New(errType ErrorType, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Stack:   captureStack(2),
	}
}

// Newf is New with a format string.
func Newf(errType ErrorType, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
		Stack:   captureStack(2),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, errType ErrorType, message string) *Error {
	if err == nil {
		return nil
	}

	// If already our error type, preserve the stack
	var existingErr *Error
	if errors.As(err, &existingErr) {
		return &Error{
			Type:    errType,
			Message: message,
			Cause:   err,
			Stack:   existingErr.Stack,
		}
	}

	return &Error{
		Type:    errType,
		Message: message,
		Cause:   err,
		Stack:   captureStack(2),
	}
}

// IsType checks if the outermost structured error in err's chain is of the
// given type.
func IsType(err error, errType ErrorType) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Type == errType
}

// captureStack captures the current call stack
func captureStack(skip int) []StackFrame {
	const maxFrames = 32
	frames := make([]StackFrame, 0, maxFrames)

	for i := skip; i < maxFrames+skip; i++ {
		pc, file, line, ok := runtime.Caller(i)
		if !ok {
			break
		}

		fn := runtime.FuncForPC(pc)
		if fn == nil {
			continue
		}

		frames = append(frames, StackFrame{
			Function: fn.Name(),
			File:     file,
			Line:     line,
		})
	}

	return frames
}
