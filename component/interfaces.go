package component

import "context"

// HealthStatus is the state reported by a component.
type HealthStatus string

const (
	StatusHealthy   HealthStatus = "healthy"
	StatusUnhealthy HealthStatus = "unhealthy"
	StatusDegraded  HealthStatus = "degraded"
)

// Health is one entry of the /health components list.
type Health struct {
	Name    string       `json:"name"`
	Status  HealthStatus `json:"status"`
	Message string       `json:"message,omitempty"`
}

// Component is a piece of the service with a start/stop lifecycle, such as
// the HTTP listener or the outbound HTTPS client.
type Component interface {
	// Name identifies the component in the registry; it must be unique.
	Name() string
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Health(ctx context.Context) Health
}

// Description is a component's line in the startup summary.
type Description struct {
	// Name is the display name; empty falls back to Component.Name.
	Name string
	// Type is a short category such as "http-server" or "https-client".
	Type string
	// Details is a one-line configuration digest, e.g. "127.0.0.1:8080 h2c".
	Details string
	// Port is the bound port, 0 when not applicable.
	Port int
}

// Describable components list themselves in the startup summary.
type Describable interface {
	Describe() Description
}

// Route is a registered HTTP route.
type Route struct {
	Method  string
	Path    string
	Handler string
}

// RouteProvider components list their routes in the startup summary.
type RouteProvider interface {
	Routes() []Route
}
