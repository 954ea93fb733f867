package errors

import (
	"errors"
	"fmt"
)

// Error represents a failed recursor operation with context about where it failed.
// It wraps the underlying error (a sentinel for configuration problems, or the
// error returned by the object store for listing problems).
type Error struct {
	// Op is the operation that failed (e.g., "list", "cutoff", "temporal")
	Op string

	// Code classifies the failure
	Code ErrorCode

	// Prefix is the prefix being listed or matched (if applicable)
	Prefix string

	// Err is the underlying error
	Err error
}

// Error implements the error interface by providing a formatted error message.
func (e *Error) Error() string {
	if e.Prefix != "" {
		return fmt.Sprintf("recursor.%s prefix %q: %v", e.Op, e.Prefix, e.Err)
	}
	return fmt.Sprintf("recursor.%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error chaining support.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithPrefix adds prefix context to an existing error.
func (e *Error) WithPrefix(prefix string) *Error {
	e.Prefix = prefix
	return e
}

// WithCode replaces the error code.
func (e *Error) WithCode(code ErrorCode) *Error {
	e.Code = code
	return e
}

// WithMessage wraps the underlying error with a custom message.
func (e *Error) WithMessage(message string) *Error {
	e.Err = fmt.Errorf("%s: %w", message, e.Err)
	return e
}

// NewError creates a new Error with the given operation and underlying error.
// The code is derived from the underlying error when it is one of the sentinels.
func NewError(op string, err error) *Error {
	return &Error{
		Op:   op,
		Code: codeOf(err),
		Err:  err,
	}
}

// NewConfigError creates a configuration Error with a formatted message.
// The result matches ErrInvalidConfig with errors.Is.
func NewConfigError(op, format string, args ...any) *Error {
	return &Error{
		Op:   op,
		Code: CodeInvalidConfig,
		Err:  fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...)),
	}
}

// NewListError creates an Error for a failed listing of prefix.
func NewListError(prefix string, err error) *Error {
	code := codeOf(err)
	if code == CodeUnknown {
		code = CodeListFailed
	}
	return &Error{
		Op:     "list",
		Code:   code,
		Prefix: prefix,
		Err:    err,
	}
}

// Sentinel errors for common failures.
// These can be used with errors.Is() for error checking.
var (
	// ErrInvalidConfig indicates a walker or filter configuration error
	ErrInvalidConfig = errors.New("recursor: invalid configuration")

	// ErrInvalidInput indicates that the provided input is invalid
	ErrInvalidInput = errors.New("recursor: invalid input")

	// ErrBucketNotFound indicates that the listed bucket does not exist
	ErrBucketNotFound = errors.New("recursor: bucket not found")

	// ErrAccessDenied indicates that listing is not permitted
	ErrAccessDenied = errors.New("recursor: access denied")
)

func codeOf(err error) ErrorCode {
	switch {
	case errors.Is(err, ErrInvalidConfig):
		return CodeInvalidConfig
	case errors.Is(err, ErrInvalidInput):
		return CodeInvalidInput
	case errors.Is(err, ErrBucketNotFound):
		return CodeNotFound
	case errors.Is(err, ErrAccessDenied):
		return CodeForbidden
	}
	return CodeUnknown
}

// IsInvalidConfig checks if an error indicates a configuration error.
// This is a convenience function that handles both sentinel errors and wrapped errors.
func IsInvalidConfig(err error) bool {
	return errors.Is(err, ErrInvalidConfig)
}

// IsBucketNotFound checks if an error indicates that a bucket was not found.
func IsBucketNotFound(err error) bool {
	return errors.Is(err, ErrBucketNotFound)
}

// IsAccessDenied checks if an error indicates access was denied.
func IsAccessDenied(err error) bool {
	return errors.Is(err, ErrAccessDenied)
}

// CodeOf returns the code of the first *Error in err's chain, or CodeUnknown.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}
