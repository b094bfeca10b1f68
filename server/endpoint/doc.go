// Package endpoint provides the built-in Gin handlers: health, metrics,
// version, help, echo and the not-found fallback.
package endpoint
