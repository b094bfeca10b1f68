package httpclient

import (
	"context"
	"fmt"
	"sync"

	"github.com/kbukum/registry-api/component"
)

// Component wraps a Builder with lifecycle management. The client is built
// on the first Start; later calls are no-ops.
type Component struct {
	builder *Builder

	mu     sync.RWMutex
	client *HTTPSClient
}

// compile-time assertions
var _ component.Component = (*Component)(nil)
var _ component.Describable = (*Component)(nil)

// NewComponent creates a new HTTPS client component.
func NewComponent(b *Builder) *Component {
	return &Component{builder: b}
}

// Name returns the component name.
func (c *Component) Name() string {
	return c.builder.Config().Name
}

// Start builds the client.
func (c *Component) Start(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client != nil {
		return nil
	}
	client, err := c.builder.Build()
	if err != nil {
		return err
	}
	c.client = client
	return nil
}

// Stop releases idle connections.
func (c *Component) Stop(_ context.Context) error {
	if client := c.Client(); client != nil {
		client.CloseIdleConnections()
	}
	return nil
}

// Health reports healthy once the client is built.
func (c *Component) Health(_ context.Context) component.Health {
	status := component.StatusHealthy
	msg := ""
	if c.Client() == nil {
		status = component.StatusUnhealthy
		msg = "client not built"
	}
	return component.Health{
		Name:    c.Name(),
		Status:  status,
		Message: msg,
	}
}

// Describe returns component description for the bootstrap summary.
func (c *Component) Describe() component.Description {
	cfg := c.builder.Config()
	return component.Description{
		Name: "HTTPS Client",
		Type: "https-client",
		Details: fmt.Sprintf("name=%s timeout=%s enforce_https=%t accept_invalid_certs=%t",
			cfg.Name, cfg.Timeout, cfg.EnforceHTTPS, cfg.AcceptInvalidCerts),
	}
}

// Client returns the built client, or nil before Start.
func (c *Component) Client() *HTTPSClient {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.client
}
