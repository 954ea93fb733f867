// Package errors provides the error types returned by the recursor module.
// Errors carry a structured code so callers can tell configuration mistakes
// apart from failures reported by the underlying object store.
package errors

// ErrorCode classifies an Error.
// Codes are string-based for debuggability and natural JSON serialization.
type ErrorCode string

const (
	// Validation errors.

	// CodeInvalidInput indicates an argument passed at call time is invalid.
	CodeInvalidInput ErrorCode = "INVALID_INPUT"

	// CodeInvalidConfig indicates a walker or filter configuration error.
	// These are raised at configuration time, never while walking.
	CodeInvalidConfig ErrorCode = "INVALID_CONFIGURATION"

	// Storage errors.

	// CodeNotFound indicates the bucket or prefix being listed does not exist.
	CodeNotFound ErrorCode = "NOT_FOUND"

	// CodeForbidden indicates the credentials lack permission to list.
	CodeForbidden ErrorCode = "FORBIDDEN"

	// CodeListFailed indicates a listing call failed for any other reason.
	CodeListFailed ErrorCode = "LIST_FAILED"

	// Generic errors.

	// CodeUnknown indicates an unknown or unclassified error occurred.
	CodeUnknown ErrorCode = "UNKNOWN"
)

// String returns the code as a plain string.
func (c ErrorCode) String() string {
	return string(c)
}
