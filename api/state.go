package api

import (
	"strings"

	"github.com/kbukum/registry-api/httpclient"
)

// UpstreamConfig locates the configuration service queried by the root route.
type UpstreamConfig struct {
	URL string `yaml:"url" mapstructure:"url" validate:"omitempty,url"`
}

// State is created once at startup and shared read-only by all handlers.
type State struct {
	client   *httpclient.HTTPSClient
	upstream UpstreamConfig
}

// NewState wraps a built client and the upstream configuration.
func NewState(client *httpclient.HTTPSClient, upstream UpstreamConfig) *State {
	upstream.URL = strings.TrimRight(upstream.URL, "/")
	return &State{client: client, upstream: upstream}
}

// Client returns the shared outbound client.
func (s *State) Client() *httpclient.HTTPSClient { return s.client }

// Upstream returns a copy of the upstream configuration.
func (s *State) Upstream() UpstreamConfig { return s.upstream }
