// Package errors provides sentinel errors and custom error types for copybara.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	// ErrConfigValidation indicates that a transformation could not be built from its configuration
	ErrConfigValidation = errors.New("invalid configuration")

	// ErrNonReversible indicates that a transformation has no inverse
	ErrNonReversible = errors.New("transformation is not reversible")

	// ErrReferenceValidation indicates that a migrated reference failed destination validation
	ErrReferenceValidation = errors.New("reference validation failed")

	// ErrMalformedCapture indicates that a captured reference could not be converted
	ErrMalformedCapture = errors.New("malformed reference capture")
)

// ConfigValidationError is raised while building transformations. It is fatal to config load.
type ConfigValidationError struct {
	Location string
	Message  string
}

func (e *ConfigValidationError) Error() string {
	if e.Location != "" {
		return fmt.Sprintf("%s: %s", e.Location, e.Message)
	}
	return e.Message
}

// Is returns true if the target error is ErrConfigValidation
func (e *ConfigValidationError) Is(target error) bool {
	return target == ErrConfigValidation
}

// NewConfigValidationError creates a new ConfigValidationError
func NewConfigValidationError(location string, format string, args ...any) *ConfigValidationError {
	return &ConfigValidationError{
		Location: location,
		Message:  fmt.Sprintf(format, args...),
	}
}

// NonReversibleError names a step that cannot be reversed
type NonReversibleError struct {
	Step     string
	Location string
	Reason   string
}

func (e *NonReversibleError) Error() string {
	msg := fmt.Sprintf("%s is not reversible", e.Step)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Location != "" {
		return fmt.Sprintf("%s: %s", e.Location, msg)
	}
	return msg
}

// Is returns true if the target error is ErrNonReversible
func (e *NonReversibleError) Is(target error) bool {
	return target == ErrNonReversible
}

// NewNonReversibleError creates a new NonReversibleError
func NewNonReversibleError(step string, location string, reason string) *NonReversibleError {
	return &NonReversibleError{
		Step:     step,
		Location: location,
		Reason:   reason,
	}
}

// ReferenceValidationError is raised when a converted reference does not match
// the destination regex. It aborts the current change only.
type ReferenceValidationError struct {
	Reference string
	Pattern   string
}

func (e *ReferenceValidationError) Error() string {
	return fmt.Sprintf("Reference %s does not match regex '%s'", e.Reference, e.Pattern)
}

// Is returns true if the target error is ErrReferenceValidation
func (e *ReferenceValidationError) Is(target error) bool {
	return target == ErrReferenceValidation
}

// NewReferenceValidationError creates a new ReferenceValidationError
func NewReferenceValidationError(reference, pattern string) *ReferenceValidationError {
	return &ReferenceValidationError{
		Reference: reference,
		Pattern:   pattern,
	}
}

// MalformedCaptureError is raised when a captured reference cannot be converted
type MalformedCaptureError struct {
	Capture string
	Err     error
}

func (e *MalformedCaptureError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed reference '%s': %v", e.Capture, e.Err)
	}
	return fmt.Sprintf("malformed reference '%s'", e.Capture)
}

// Is returns true if the target error is ErrMalformedCapture
func (e *MalformedCaptureError) Is(target error) bool {
	return target == ErrMalformedCapture
}

func (e *MalformedCaptureError) Unwrap() error {
	return e.Err
}

// NewMalformedCaptureError creates a new MalformedCaptureError
func NewMalformedCaptureError(capture string, err error) *MalformedCaptureError {
	return &MalformedCaptureError{
		Capture: capture,
		Err:     err,
	}
}
