package errors

import (
	stderrors "errors"
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryConfig  Category = "config"
	CategoryRouting Category = "routing"
	CategoryLoading Category = "loading"
	CategoryStorage Category = "storage"
	CategoryServer  Category = "server"
	CategoryMocks   Category = "mocks"
	CategoryCLI     Category = "cli"
)

// DashError is a structured error with a registered code and a hint.
type DashError struct {
	// Code is a unique error identifier (e.g., "D001").
	Code string

	// Category is the error type (config, storage, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Field names the configuration key or input the error is about.
	Field string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *DashError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, msg)
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *DashError) Unwrap() error {
	return e.Wrapped
}

// Is matches another *DashError with the same code, so that
// errors.Is(err, errors.New("D301")) works through wrapping.
func (e *DashError) Is(target error) bool {
	t, ok := target.(*DashError)
	if !ok || t.Code == "" {
		return false
	}
	return e.Code == t.Code
}

// WithSuggestion adds a fix suggestion to the error.
func (e *DashError) WithSuggestion(s string) *DashError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *DashError) WithDetail(d string) *DashError {
	e.Detail = d
	return e
}

// WithField names the key or input the error is about.
func (e *DashError) WithField(f string) *DashError {
	e.Field = f
	return e
}

// Wrap wraps another error.
func (e *DashError) Wrap(err error) *DashError {
	e.Wrapped = err
	return e
}

// New creates a DashError from a registered error code.
func New(code string) *DashError {
	template, ok := registry[code]
	if !ok {
		return &DashError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &DashError{
		Code:       code,
		Category:   template.Category,
		Message:    template.Message,
		Detail:     template.Detail,
		Suggestion: template.Suggestion,
	}
}

// Newf creates a new DashError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *DashError {
	return &DashError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a DashError. An error that already
// contains a DashError is returned unchanged.
func FromError(err error, code string) *DashError {
	if err == nil {
		return nil
	}
	var de *DashError
	if stderrors.As(err, &de) {
		return de
	}
	return New(code).Wrap(err)
}

// CodeOf returns the code of the first DashError in err's chain, or "".
func CodeOf(err error) string {
	var de *DashError
	if stderrors.As(err, &de) {
		return de.Code
	}
	return ""
}
