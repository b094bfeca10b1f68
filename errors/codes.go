package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Request-scoped errors produced by handlers.
const (
	// ErrCodeForbidden indicates the downstream refused access to the config.
	ErrCodeForbidden ErrorCode = "FORBIDDEN"
	// ErrCodeUnauthorized indicates the caller is not authenticated.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	// ErrCodeNotFound indicates the requested config or route does not exist.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
)

// Startup errors. These abort the process before the listener binds.
const (
	// ErrCodeTelemetryInit indicates the tracing exporter or propagator failed.
	ErrCodeTelemetryInit ErrorCode = "TELEMETRY_INIT"
	// ErrCodeLoggingInit indicates the global log subscriber could not be installed.
	ErrCodeLoggingInit ErrorCode = "LOGGING_INIT"
)

// ErrCodeInternal wraps any error that is not an AppError.
const ErrCodeInternal ErrorCode = "INTERNAL_ERROR"

// IsStartupCode reports whether the code belongs to the startup-fatal tier.
func IsStartupCode(code ErrorCode) bool {
	return code == ErrCodeTelemetryInit || code == ErrCodeLoggingInit
}
