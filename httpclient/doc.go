// Package httpclient builds the outbound HTTPS client used for downstream
// calls.
//
// A Builder collects a ClientConfig through fluent setters and produces an
// immutable *HTTPSClient. The client never follows redirects. Its transport
// is an ordered pipeline: a tracing span named after the client, then any
// stages added with Use, then HTTPS enforcement, then the dialer.
//
//	client, err := httpclient.NewBuilder().
//	    TimeoutSeconds(60).
//	    EnforceHTTPS(true).
//	    ImportCert("/etc/registry/ca.pem").
//	    Build()
//
//	resp, err := client.Do(ctx, httpclient.Request{
//	    Method: http.MethodGet,
//	    URL:    "https://registry.internal/config",
//	})
//
// Build failures are *BuildError values. Responses with status 4xx or 5xx
// come back with a classified *Error alongside the response.
package httpclient
