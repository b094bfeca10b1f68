package httpclient

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/registry-api/security"
)

// Builder assembles an HTTPSClient. Setters only record values; all checks
// happen in Build.
type Builder struct {
	cfg         ClientConfig
	middlewares []Middleware
	tp          trace.TracerProvider
}

// NewBuilder returns a builder seeded with DefaultClientConfig.
func NewBuilder() *Builder {
	return &Builder{cfg: DefaultClientConfig()}
}

// FromConfig returns a builder seeded with cfg.
func FromConfig(cfg ClientConfig) *Builder {
	return &Builder{cfg: cfg}
}

// Timeout sets the connect and TLS handshake timeout.
func (b *Builder) Timeout(d time.Duration) *Builder {
	b.cfg.Timeout = d
	return b
}

// TimeoutSeconds sets the connect timeout in whole seconds.
func (b *Builder) TimeoutSeconds(s uint64) *Builder {
	b.cfg.Timeout = time.Duration(s) * time.Second
	return b
}

// NoDelay sets TCP_NODELAY on dialed connections.
func (b *Builder) NoDelay(v bool) *Builder {
	b.cfg.NoDelay = v
	return b
}

// EnforceHTTPS rejects plaintext targets.
func (b *Builder) EnforceHTTPS(v bool) *Builder {
	b.cfg.EnforceHTTPS = v
	return b
}

// ReuseAddress sets SO_REUSEADDR on dialed sockets.
func (b *Builder) ReuseAddress(v bool) *Builder {
	b.cfg.ReuseAddress = v
	return b
}

// AcceptInvalidHostnames skips hostname verification.
func (b *Builder) AcceptInvalidHostnames(v bool) *Builder {
	b.cfg.AcceptInvalidHostnames = v
	return b
}

// AcceptInvalidCerts skips certificate verification.
func (b *Builder) AcceptInvalidCerts(v bool) *Builder {
	b.cfg.AcceptInvalidCerts = v
	return b
}

// ImportCert trusts the PEM root certificate at path.
func (b *Builder) ImportCert(path string) *Builder {
	b.cfg.ImportCertPath = path
	return b
}

// Name sets the client name used for spans.
func (b *Builder) Name(name string) *Builder {
	b.cfg.Name = name
	return b
}

// Use appends an outbound stage. Stages run inside the tracing span and
// outside HTTPS enforcement, in the order they were added.
func (b *Builder) Use(mw Middleware) *Builder {
	b.middlewares = append(b.middlewares, mw)
	return b
}

// TracerProvider overrides the global tracer provider for client spans.
func (b *Builder) TracerProvider(tp trace.TracerProvider) *Builder {
	b.tp = tp
	return b
}

// Config returns a copy of the configuration collected so far.
func (b *Builder) Config() ClientConfig {
	return b.cfg
}

// Build validates the configuration and assembles the client. It reads the
// imported certificate, if any, and performs no network I/O.
func (b *Builder) Build() (*HTTPSClient, error) {
	cfg := b.cfg
	if err := cfg.Validate(); err != nil {
		return nil, newBuildError(BuildErrInvalidConfig, err)
	}

	tlsCfg, err := cfg.tlsConfig().Build()
	if err != nil {
		switch {
		case errors.Is(err, security.ErrCertRead):
			return nil, newBuildError(BuildErrCertRead, err)
		case errors.Is(err, security.ErrCertParse):
			return nil, newBuildError(BuildErrCertParse, err)
		default:
			return nil, newBuildError(BuildErrTransportInit, err)
		}
	}

	dialer := &net.Dialer{
		Timeout:   cfg.Timeout,
		KeepAlive: 30 * time.Second,
	}
	if cfg.ReuseAddress {
		dialer.Control = reuseAddrControl
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = dialContext(dialer, cfg.NoDelay)
	transport.TLSClientConfig = tlsCfg
	transport.TLSHandshakeTimeout = cfg.Timeout

	stages := []Middleware{Tracing(cfg.Name, b.tp)}
	stages = append(stages, b.middlewares...)
	if cfg.EnforceHTTPS {
		stages = append(stages, EnforceHTTPS())
	}
	rt, err := Chain(transport, stages...)
	if err != nil {
		return nil, newBuildError(BuildErrTransportInit, err)
	}

	return &HTTPSClient{
		httpClient: &http.Client{
			Transport: rt,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		transport: transport,
		config:    cfg,
	}, nil
}

// dialContext applies the TCP_NODELAY choice to every dialed TCP connection.
// Go enables it by default, so false is applied explicitly too.
func dialContext(d *net.Dialer, noDelay bool) func(ctx context.Context, network, addr string) (net.Conn, error) {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		conn, err := d.DialContext(ctx, network, addr)
		if err != nil {
			return nil, err
		}
		if tcp, ok := conn.(*net.TCPConn); ok {
			if err := tcp.SetNoDelay(noDelay); err != nil {
				_ = conn.Close()
				return nil, err
			}
		}
		return conn, nil
	}
}
