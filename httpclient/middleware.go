package httpclient

import (
	"errors"
	"fmt"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ErrHTTPSRequired is wrapped by requests rejected for using plain http.
var ErrHTTPSRequired = errors.New("httpclient: https is required")

// Middleware wraps a RoundTripper with an outbound stage.
type Middleware func(next http.RoundTripper) http.RoundTripper

// RoundTripperFunc adapts a function to http.RoundTripper.
type RoundTripperFunc func(*http.Request) (*http.Response, error)

// RoundTrip implements http.RoundTripper.
func (f RoundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

// Chain wraps base with the middlewares. The first middleware is the
// outermost stage.
func Chain(base http.RoundTripper, mws ...Middleware) (http.RoundTripper, error) {
	rt := base
	for i := len(mws) - 1; i >= 0; i-- {
		rt = mws[i](rt)
		if rt == nil {
			return nil, fmt.Errorf("middleware %d returned a nil RoundTripper", i)
		}
	}
	return rt, nil
}

// EnforceHTTPS rejects any request whose scheme is not https.
func EnforceHTTPS() Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
			if r.URL.Scheme != "https" {
				return nil, &Error{
					Code:    ErrCodeValidation,
					Message: fmt.Sprintf("scheme %q rejected for %s", r.URL.Scheme, r.URL.Redacted()),
					Err:     ErrHTTPSRequired,
				}
			}
			return next.RoundTrip(r)
		})
	}
}

// Tracing starts a client span named after the client for every request and
// injects the W3C trace context into the outgoing headers.
func Tracing(name string, tp trace.TracerProvider) Middleware {
	return func(next http.RoundTripper) http.RoundTripper {
		opts := []otelhttp.Option{
			otelhttp.WithSpanNameFormatter(func(_ string, _ *http.Request) string {
				return name
			}),
		}
		if tp != nil {
			opts = append(opts, otelhttp.WithTracerProvider(tp))
		}
		return otelhttp.NewTransport(recordURL(next), opts...)
	}
}

// recordURL runs inside the otelhttp span and stores the full target URL on it.
func recordURL(next http.RoundTripper) http.RoundTripper {
	return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		trace.SpanFromContext(r.Context()).SetAttributes(attribute.String("url.full", r.URL.Redacted()))
		return next.RoundTrip(r)
	})
}
