package common

import (
	"errors"
	"strings"
)

// Error kinds raised by the simulation. Specific failures wrap one of
// these so callers can classify with errors.Is without string matching.
var (
	// ErrConfiguration is returned before any bar is processed when
	// constructor parameters are unusable
	ErrConfiguration = errors.New("invalid configuration")
	// ErrValidation is returned when a submitted order is malformed
	ErrValidation = errors.New("order validation failed")
	// ErrInsufficientPosition is returned when a sell exceeds the held
	// quantity for its symbol
	ErrInsufficientPosition = errors.New("insufficient position")
	// ErrData is returned for a malformed bar. It is recoverable, the
	// bar is skipped and the stream continues
	ErrData = errors.New("invalid bar data")
	// ErrNilArguments is returned when a required argument is nil
	ErrNilArguments = errors.New("received nil argument")
)

// Errors defines multiple errors
type Errors []error

// Error implements the error interface
func (e Errors) Error() string {
	strs := make([]string, len(e))
	for i := range e {
		strs[i] = e[i].Error()
	}
	return strings.Join(strs, ", ")
}

// Unwrap exposes the collected errors to errors.Is and errors.As
func (e Errors) Unwrap() []error {
	return e
}
