// Package server provides the HTTP server of registry-api: a Gin engine
// behind an h2c handler, wrapped in request tracing and request logging.
//
// The server follows the component pattern with lifecycle management and
// self-reported routes for the startup summary.
//
// # Request pipeline
//
//	Tracing → RequestLogger → RequestID → Metrics → Recovery → ErrorHandler → handler
//
// The first two are server-level (net/http) middleware; the rest run inside
// the Gin engine. See package middleware.
//
// # Endpoints
//
// RegisterDefaultEndpoints adds /health, /version, /metrics and the
// not-found fallback (see package endpoint).
package server
