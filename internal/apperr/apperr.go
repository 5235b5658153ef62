// Package apperr defines the error taxonomy shared by the storage and HTTP
// layers. Every operation failure is one of four codes; handlers map the code
// to an HTTP status at the response boundary.
package apperr

import "net/http"

// Code is a machine-readable error classification.
type Code string

const (
	// CodeValidation marks missing or malformed input the client can fix.
	CodeValidation Code = "VALIDATION"
	// CodeConflict marks a uniqueness violation.
	CodeConflict Code = "CONFLICT"
	// CodeUnauthorized marks bad credentials or a bad token. Deliberately
	// uniform: callers must not learn whether the user exists.
	CodeUnauthorized Code = "UNAUTHORIZED"
	// CodeNotFound marks a resource that is absent or not owned by the
	// caller; the two cases are indistinguishable.
	CodeNotFound Code = "NOT_FOUND"
)

// Error carries a code, a message safe to return to clients, and an optional
// wrapped cause for logs.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// HTTPStatus maps the code to its response status.
func (e *Error) HTTPStatus() int {
	switch e.Code {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeConflict:
		return http.StatusConflict
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// New creates an error with a code and client-facing message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap creates an error that keeps the underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// Validation is shorthand for New(CodeValidation, message).
func Validation(message string) *Error {
	return New(CodeValidation, message)
}

// Conflict is shorthand for New(CodeConflict, message).
func Conflict(message string) *Error {
	return New(CodeConflict, message)
}

// Unauthorized is shorthand for New(CodeUnauthorized, message).
func Unauthorized(message string) *Error {
	return New(CodeUnauthorized, message)
}

// NotFound is shorthand for New(CodeNotFound, message).
func NotFound(message string) *Error {
	return New(CodeNotFound, message)
}
