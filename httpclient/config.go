package httpclient

import (
	"time"

	"github.com/kbukum/registry-api/security"
	"github.com/kbukum/registry-api/validation"
)

const (
	// DefaultName is the client name used as span name when none is set.
	DefaultName    = "https-client"
	defaultTimeout = 60 * time.Second
)

// ClientConfig configures an outbound HTTPS client. A built client keeps its
// own copy; changing a ClientConfig after Build has no effect on it.
type ClientConfig struct {
	// Name identifies the client in spans. Defaults to "https-client".
	Name string `yaml:"name" mapstructure:"name" validate:"required"`

	// Timeout bounds connection establishment and the TLS handshake.
	// Defaults to 60s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout" validate:"gt=0"`

	// NoDelay sets TCP_NODELAY on dialed connections.
	NoDelay bool `yaml:"no_delay" mapstructure:"no_delay"`

	// EnforceHTTPS rejects plaintext http:// targets before dialing.
	EnforceHTTPS bool `yaml:"enforce_https" mapstructure:"enforce_https"`

	// ReuseAddress sets SO_REUSEADDR on dialed sockets (unix only).
	ReuseAddress bool `yaml:"reuse_address" mapstructure:"reuse_address"`

	// AcceptInvalidHostnames skips hostname verification only.
	AcceptInvalidHostnames bool `yaml:"accept_invalid_hostnames" mapstructure:"accept_invalid_hostnames"`

	// AcceptInvalidCerts skips certificate verification entirely.
	// Defaults to true.
	AcceptInvalidCerts bool `yaml:"accept_invalid_certs" mapstructure:"accept_invalid_certs"`

	// ImportCertPath is a PEM root certificate trusted on top of the system pool.
	ImportCertPath string `yaml:"import_cert_path" mapstructure:"import_cert_path"`
}

// DefaultClientConfig returns the configuration a new Builder starts from.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		Name:               DefaultName,
		Timeout:            defaultTimeout,
		AcceptInvalidCerts: true,
	}
}

// ApplyDefaults fills in zero-value fields with defaults. Boolean flags are
// left alone since false is a valid choice.
func (c *ClientConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = DefaultName
	}
	if c.Timeout == 0 {
		c.Timeout = defaultTimeout
	}
}

// Validate checks that the configuration is valid.
func (c *ClientConfig) Validate() error {
	return validation.Validate(c)
}

func (c *ClientConfig) tlsConfig() *security.TLSConfig {
	return &security.TLSConfig{
		RootCAFile:             c.ImportCertPath,
		AcceptInvalidCerts:     c.AcceptInvalidCerts,
		AcceptInvalidHostnames: c.AcceptInvalidHostnames,
	}
}
