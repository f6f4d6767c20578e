package types

import "fmt"

// ErrorKind classifies a compilation error.
type ErrorKind string

// Error kinds surfaced to the user. Any error aborts the whole
// compilation; there is no partial-output mode.
const (
	SyntaxError  ErrorKind = "SyntaxError"  // malformed script
	NameError    ErrorKind = "NameError"    // unresolved identifier or function
	TypeError    ErrorKind = "TypeError"    // unit or kind mismatch
	BindingError ErrorKind = "BindingError" // bad parameter binding
	ConfigError  ErrorKind = "ConfigError"  // unrecognized material/profile
	RuntimeError ErrorKind = "RuntimeError" // invalid numeric operation
)

// Error is a structured gcad error with best-available source location.
// Line and Column are 1-based; zero means the location is unknown.
type Error struct {
	Kind    ErrorKind
	Message string
	Line    int
	Column  int
	Token   string
	Err     error
}

// NewError creates a new error without location information.
// Use At to attach a source position once it is known.
func NewError(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s at line %d, column %d: %s", e.Kind, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	return e.Err
}

// At attaches a source position, unless one is already set.
func (e *Error) At(line, column int) *Error {
	if e.Line == 0 {
		e.Line = line
		e.Column = column
	}
	return e
}

// WithToken adds the offending token text to the error.
func (e *Error) WithToken(token string) *Error {
	e.Token = token
	return e
}

// WithCause wraps another error.
func (e *Error) WithCause(err error) *Error {
	e.Err = err
	return e
}

// AsError returns err as a *Error, wrapping foreign errors as a
// RuntimeError so the CLI always has a kind to report.
func AsError(err error) *Error {
	if e, ok := err.(*Error); ok {
		return e
	}
	return &Error{Kind: RuntimeError, Message: err.Error(), Err: err}
}
