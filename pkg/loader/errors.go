package loader

import (
	"errors"
	"fmt"
)

// ErrNoView is the cause recorded when a LoadFunc returns neither a view
// nor an error.
var ErrNoView = errors.New("loader: load returned no view")

// LoadFailure reports that a view's code could not be resolved.
type LoadFailure struct {
	View    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *LoadFailure) Error() string {
	return fmt.Sprintf("load %s: %s", e.View, e.Message)
}

// Unwrap returns the underlying cause.
func (e *LoadFailure) Unwrap() error { return e.Cause }

// RenderFailure reports that a resolved view failed while rendering.
type RenderFailure struct {
	View    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *RenderFailure) Error() string {
	return fmt.Sprintf("render %s: %s", e.View, e.Message)
}

// Unwrap returns the underlying cause.
func (e *RenderFailure) Unwrap() error { return e.Cause }

// ViewError is what the user sees for either failure kind.
type ViewError struct {
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ViewError) Error() string { return e.Message }

// Unwrap returns the failure that produced this view error.
func (e *ViewError) Unwrap() error { return e.Err }

// AsViewError converts any failure into its user-facing form.
func AsViewError(err error) *ViewError {
	if err == nil {
		return nil
	}
	var ve *ViewError
	if errors.As(err, &ve) {
		return ve
	}
	var lf *LoadFailure
	if errors.As(err, &lf) {
		return &ViewError{Message: lf.Message, Err: lf}
	}
	var rf *RenderFailure
	if errors.As(err, &rf) {
		return &ViewError{Message: rf.Message, Err: rf}
	}
	return &ViewError{Message: err.Error(), Err: err}
}

// panicError turns a recovered value into an error.
func panicError(v any) error {
	if err, ok := v.(error); ok {
		return err
	}
	return fmt.Errorf("%v", v)
}
