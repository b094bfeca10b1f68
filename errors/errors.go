package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Fixed messages for the request-scoped kinds.
const (
	MsgForbidden    = "Cannot get config: Forbidden"
	MsgUnauthorized = "Cannot get config: Unauthorized"
	MsgNotFound     = "Cannot get config: Not found"
)

// MsgInternal is rendered for Internal errors. The cause stays in Cause.
var MsgInternal = http.StatusText(http.StatusInternalServerError)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is the text rendered into the response body.
	Message string `json:"message"`
	// HTTPStatus is the status code used when the error becomes a response.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, if any.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil && e.Cause.Error() != e.Message {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// Is matches any AppError with the same code, so callers can write
// errors.Is(err, errors.Forbidden()).
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Forbidden is returned when the downstream denies access. It deliberately
// renders as 401, not 403.
func Forbidden() *AppError {
	return &AppError{Code: ErrCodeForbidden, Message: MsgForbidden, HTTPStatus: http.StatusUnauthorized}
}

// Unauthorized is returned when the caller is not authenticated.
func Unauthorized() *AppError {
	return &AppError{Code: ErrCodeUnauthorized, Message: MsgUnauthorized, HTTPStatus: http.StatusUnauthorized}
}

// NotFound is returned for a missing config and for unmatched routes.
func NotFound() *AppError {
	return &AppError{Code: ErrCodeNotFound, Message: MsgNotFound, HTTPStatus: http.StatusNotFound}
}

// TelemetryInit wraps an exporter, propagator or provider installation failure.
func TelemetryInit(cause error) *AppError {
	return &AppError{
		Code: ErrCodeTelemetryInit, Message: causeMessage(cause),
		HTTPStatus: http.StatusInternalServerError, Cause: cause,
	}
}

// LoggingInit wraps a failure to install the global logger.
func LoggingInit(cause error) *AppError {
	return &AppError{
		Code: ErrCodeLoggingInit, Message: causeMessage(cause),
		HTTPStatus: http.StatusInternalServerError, Cause: cause,
	}
}

// Internal wraps an error that has no place in the taxonomy. The response
// body carries MsgInternal only.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: MsgInternal,
		HTTPStatus: http.StatusInternalServerError, Cause: cause,
	}
}

// Wrap converts any error to an AppError. AppErrors anywhere in the chain are
// returned as-is, everything else becomes Internal. Wrap(nil) is nil.
func Wrap(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}

func causeMessage(cause error) string {
	if cause == nil {
		return http.StatusText(http.StatusInternalServerError)
	}
	return cause.Error()
}
