package httpclient

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode classifies a failed call.
type ErrorCode int

const (
	// ErrCodeTimeout: the connect, handshake or request deadline passed.
	ErrCodeTimeout ErrorCode = iota
	// ErrCodeConnection: DNS, dial, TLS or body read failure.
	ErrCodeConnection
	// ErrCodeUnauthorized: the upstream answered 401.
	ErrCodeUnauthorized
	// ErrCodeForbidden: the upstream answered 403.
	ErrCodeForbidden
	// ErrCodeNotFound: the upstream answered 404.
	ErrCodeNotFound
	// ErrCodeRateLimit: the upstream answered 429.
	ErrCodeRateLimit
	// ErrCodeValidation: the request was rejected before sending, or the
	// upstream answered another 4xx.
	ErrCodeValidation
	// ErrCodeServer: the upstream answered 5xx.
	ErrCodeServer
)

var codeNames = map[ErrorCode]string{
	ErrCodeTimeout:      "timeout",
	ErrCodeConnection:   "connection",
	ErrCodeUnauthorized: "unauthorized",
	ErrCodeForbidden:    "forbidden",
	ErrCodeNotFound:     "not_found",
	ErrCodeRateLimit:    "rate_limit",
	ErrCodeValidation:   "validation",
	ErrCodeServer:       "server",
}

func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "unknown"
}

// Error is returned by HTTPSClient.Do. For status failures the response is
// returned alongside it.
type Error struct {
	// StatusCode is 0 for failures without a response.
	StatusCode int
	Code       ErrorCode
	Message    string
	// Body is the upstream response body, nil without a response.
	Body []byte
	Err  error
}

func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("httpclient: %s (HTTP %d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("httpclient: %s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewTimeoutError wraps a deadline failure.
func NewTimeoutError(err error) *Error {
	return &Error{Code: ErrCodeTimeout, Message: err.Error(), Err: err}
}

// NewConnectionError wraps a transport failure.
func NewConnectionError(err error) *Error {
	return &Error{Code: ErrCodeConnection, Message: err.Error(), Err: err}
}

// NewValidationError reports a request that could not be built.
func NewValidationError(msg string) *Error {
	return &Error{Code: ErrCodeValidation, Message: msg}
}

// ClassifyStatusCode returns nil for 1xx, 2xx and 3xx and a typed error for
// everything else.
func ClassifyStatusCode(statusCode int, body []byte) *Error {
	if statusCode < http.StatusBadRequest {
		return nil
	}
	e := &Error{
		StatusCode: statusCode,
		Message:    http.StatusText(statusCode),
		Body:       body,
	}
	switch {
	case statusCode == http.StatusUnauthorized:
		e.Code = ErrCodeUnauthorized
	case statusCode == http.StatusForbidden:
		e.Code = ErrCodeForbidden
	case statusCode == http.StatusNotFound:
		e.Code = ErrCodeNotFound
	case statusCode == http.StatusTooManyRequests:
		e.Code = ErrCodeRateLimit
	case statusCode < http.StatusInternalServerError:
		e.Code = ErrCodeValidation
	default:
		e.Code = ErrCodeServer
	}
	if e.Message == "" {
		e.Message = fmt.Sprintf("HTTP %d", statusCode)
	}
	return e
}

// CodeOf returns the classification of err if it wraps an *Error.
func CodeOf(err error) (ErrorCode, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	return 0, false
}

func hasCode(err error, code ErrorCode) bool {
	c, ok := CodeOf(err)
	return ok && c == code
}

func IsTimeout(err error) bool      { return hasCode(err, ErrCodeTimeout) }
func IsConnection(err error) bool   { return hasCode(err, ErrCodeConnection) }
func IsUnauthorized(err error) bool { return hasCode(err, ErrCodeUnauthorized) }
func IsForbidden(err error) bool    { return hasCode(err, ErrCodeForbidden) }
func IsNotFound(err error) bool     { return hasCode(err, ErrCodeNotFound) }
func IsServerError(err error) bool  { return hasCode(err, ErrCodeServer) }
