// Package errors defines the closed error taxonomy of the service and how
// each kind maps to an HTTP status and a JSON body of the form
// {"error": "<message>"}.
//
// Request-scoped kinds (Forbidden, Unauthorized, NotFound) have fixed
// messages. Startup kinds (TelemetryInit, LoggingInit) carry the message of
// their cause and abort the process when returned from initialization.
package errors
