// Package security builds the client-side TLS configuration of outbound
// HTTPS clients.
//
//	cfg := security.TLSConfig{
//	    RootCAFile:             "/etc/registry/ca.pem",
//	    AcceptInvalidHostnames: true,
//	}
//
//	tlsConfig, err := cfg.Build()
//
// A missing root file fails with ErrCertRead and a file without a PEM
// certificate fails with ErrCertParse.
package security
