// Package errs defines the failure classes surfaced by FashionBlend:
// auth failures carry the backend's message to the user, transient
// not-found is tolerated during role resolution, everything else maps
// to a generic message.
package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Re-export standard library helpers so callers only import this package.
var (
	Is = errors.Is
	As = errors.As
)

// Code is a machine-readable failure class.
type Code string

const (
	CodeAuth           Code = "AUTH_FAILURE"
	CodeDataAccess     Code = "DATA_ACCESS"
	CodeNotFound       Code = "NOT_FOUND"
	CodeUploadTimeout  Code = "UPLOAD_TIMEOUT"
	CodeUploadTooLarge Code = "UPLOAD_TOO_LARGE"
	CodeGeneric        Code = "GENERIC"
)

// HTTPStatus maps a failure class to its response status.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeAuth:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUploadTimeout:
		return http.StatusRequestTimeout
	case CodeUploadTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified failure with an optional wrapped cause.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

func Auth(message string) *Error {
	return &Error{Code: CodeAuth, Message: message}
}

func DataAccess(message string, cause error) *Error {
	return &Error{Code: CodeDataAccess, Message: message, cause: cause}
}

func NotFound(message string) *Error {
	return &Error{Code: CodeNotFound, Message: message}
}

func UploadTimeout(message string) *Error {
	return &Error{Code: CodeUploadTimeout, Message: message}
}

func UploadTooLarge(message string) *Error {
	return &Error{Code: CodeUploadTooLarge, Message: message}
}

func Generic(message string, cause error) *Error {
	return &Error{Code: CodeGeneric, Message: message, cause: cause}
}

// CodeOf returns the failure class of err, or CodeGeneric for
// unclassified errors.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeGeneric
}

// IsNotFound reports whether err is a no-matching-row condition.
func IsNotFound(err error) bool {
	return CodeOf(err) == CodeNotFound
}

// UserMessage is what the client shows for err. Auth failures pass the
// backend's message through; other classes get a fixed message so
// backend internals do not leak.
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return "Something went wrong. Please try again."
	}
	switch e.Code {
	case CodeAuth:
		return e.Message
	case CodeUploadTimeout:
		return "Upload took too long. Please try again with a smaller image."
	case CodeUploadTooLarge:
		return "Image size too large. Please choose a smaller image."
	default:
		return "Something went wrong. Please try again."
	}
}
