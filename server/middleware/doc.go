// Package middleware holds the inbound request pipeline.
//
// Server-level middleware (Middleware, applied around the whole handler):
//
//   - Tracing: one otelhttp server span per request
//   - RequestLogger: one log line per request, level chosen by status
//
// Gin middleware, in registration order:
//
//   - RequestID: X-Request-Id generation and propagation
//   - Metrics: request counter and latency histogram
//   - Recovery: panic recovery to a 500 response
//   - ErrorHandler: renders handler errors through errors.IntoResponse
package middleware
