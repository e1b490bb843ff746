// Package errors provides the error types shared by the extension function
// catalog.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	// ErrDomain indicates an argument outside a function's valid range
	ErrDomain = errors.New("domain error")
	// ErrUnknownFunction indicates a lookup for a name the catalog does not hold
	ErrUnknownFunction = errors.New("unknown function")
	// ErrNotAggregate indicates a plain call on an aggregate-only function
	ErrNotAggregate = errors.New("not a scalar function")
)

// DomainError reports an argument outside the mathematically or textually
// valid range of a function: a negative pad width, a negative replicate
// count, sqrt of a negative number. It aborts only the call that raised it.
type DomainError struct {
	Func    string // SQL function name
	Message string // optional detail, empty for the bare "domain error"
}

func (e *DomainError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s(): domain error: %s", e.Func, e.Message)
	}
	return fmt.Sprintf("%s(): domain error", e.Func)
}

func (e *DomainError) Unwrap() error { return ErrDomain }

// ArityError reports a call with the wrong number of arguments.
type ArityError struct {
	Func string
	Want int
	Got  int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("%s() takes exactly %d arguments (%d given)", e.Func, e.Want, e.Got)
}

// NewDomain creates a DomainError for fn with optional detail.
func NewDomain(fn, message string) *DomainError {
	return &DomainError{Func: fn, Message: message}
}

// Wrap adds context to an error. If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf adds formatted context to an error. If err is nil, returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// Is wraps errors.Is for convenience
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
