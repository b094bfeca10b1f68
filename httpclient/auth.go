package httpclient

import "net/http"

// AuthType identifies the authentication method.
type AuthType int

const (
	// AuthNone disables authentication.
	AuthNone AuthType = iota
	// AuthForward copies an inbound Authorization header verbatim.
	AuthForward
)

// AuthConfig configures request authentication.
type AuthConfig struct {
	// Type is the authentication method.
	Type AuthType
	// Header is the raw Authorization value (AuthForward).
	Header string
}

// ForwardAuth passes a caller's Authorization header to the downstream.
// An empty value yields nil, so no header is sent.
func ForwardAuth(header string) *AuthConfig {
	if header == "" {
		return nil
	}
	return &AuthConfig{Type: AuthForward, Header: header}
}

// apply applies authentication to an HTTP request.
func (a *AuthConfig) apply(req *http.Request) {
	if a == nil {
		return
	}
	if a.Type == AuthForward {
		req.Header.Set("Authorization", a.Header)
	}
}
