package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is an operational error: an expected business-rule violation that
// carries its own HTTP status and a message safe to show the client.
// Anything that is not an *Error is treated as a programming error and
// surfaced as a generic 500 at the boundary.
type Error struct {
	StatusCode int
	Message    string
	Err        error // optional wrapped cause
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an operational error with an explicit status code.
func New(statusCode int, message string) *Error {
	return &Error{StatusCode: statusCode, Message: message}
}

// Wrap attaches a cause to an operational error without leaking it to the
// client response.
func Wrap(statusCode int, message string, err error) *Error {
	return &Error{StatusCode: statusCode, Message: message, Err: err}
}

func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, message)
}

func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, message)
}

func Forbidden(message string) *Error {
	return New(http.StatusForbidden, message)
}

func NotFound(message string) *Error {
	return New(http.StatusNotFound, message)
}

func Conflict(message string) *Error {
	return New(http.StatusConflict, message)
}

// As unwraps err into an *Error if one is anywhere in its chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsNotFound reports whether err is an operational 404.
func IsNotFound(err error) bool {
	appErr, ok := As(err)
	return ok && appErr.StatusCode == http.StatusNotFound
}
