package services

import (
	"errors"
	"fmt"
)

type ErrorCode string

const (
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeConflict     ErrorCode = "CONFLICT"
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"
	CodeUpstream     ErrorCode = "UPSTREAM_ERROR"
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
)

// Error is returned by the services for failures a caller can act on.
// Reason is safe to show to the end user; Err keeps the underlying cause.
type Error struct {
	Code   ErrorCode
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Reason)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(code ErrorCode, reason string, err error) *Error {
	return &Error{Code: code, Reason: reason, Err: err}
}

func InvalidInput(reason string) *Error {
	return newError(CodeInvalidInput, reason, nil)
}

func NotFound(reason string) *Error {
	return newError(CodeNotFound, reason, nil)
}

func Conflict(reason string) *Error {
	return newError(CodeConflict, reason, nil)
}

func Unauthorized(reason string) *Error {
	return newError(CodeUnauthorized, reason, nil)
}

func Internal(reason string, err error) *Error {
	return newError(CodeInternal, reason, err)
}

func Upstream(reason string, err error) *Error {
	return newError(CodeUpstream, reason, err)
}

// CodeOf extracts the code of a service error, INTERNAL_ERROR for anything else.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}
