package observability

import (
	"io"
	"time"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/kbukum/registry-api/validation"
)

// DefaultServiceName is used when OTEL_SERVICE_NAME and the config are empty.
const DefaultServiceName = "cloudtechnologies.registry.api"

// TelemetryConfig configures logging, tracing and the optional OTLP meter.
type TelemetryConfig struct {
	// ServiceName is the fallback service.name resource attribute.
	ServiceName string `yaml:"service_name" mapstructure:"service_name" validate:"required"`
	// ServiceVersion is the fallback service.version resource attribute.
	ServiceVersion string `yaml:"service_version" mapstructure:"service_version"`

	// Endpoint is the OTLP/HTTP traces endpoint URL. Empty defers to the
	// OTEL_EXPORTER_OTLP_* environment variables.
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint" validate:"omitempty,url"`
	// Insecure disables TLS towards the collector.
	Insecure bool `yaml:"insecure" mapstructure:"insecure"`
	// SampleRate is the sampling rate (0.0 to 1.0).
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate" validate:"gte=0,lte=1"`

	// MetricsEndpoint enables the OTLP meter provider when set.
	MetricsEndpoint string `yaml:"metrics_endpoint" mapstructure:"metrics_endpoint" validate:"omitempty,url"`
	// MetricsInterval is the metric export interval.
	MetricsInterval time.Duration `yaml:"metrics_interval" mapstructure:"metrics_interval"`

	// LogLevel is the base log filter, e.g. "info" or "warn,handlers=debug".
	LogLevel string `yaml:"log_level" mapstructure:"log_level"`
	// OTelLogLevel is the level of the telemetry and handler components.
	OTelLogLevel string `yaml:"otel_log_level" mapstructure:"otel_log_level"`
	// Debug selects the human-readable console renderer.
	Debug bool `yaml:"debug" mapstructure:"debug"`

	// LogWriter overrides stdout for the installed logger.
	LogWriter io.Writer `yaml:"-" mapstructure:"-"`
	// SpanExporter replaces the OTLP exporter.
	SpanExporter sdktrace.SpanExporter `yaml:"-" mapstructure:"-"`
}

// ApplyDefaults fills in zero-value fields with defaults.
func (c *TelemetryConfig) ApplyDefaults() {
	if c.ServiceName == "" {
		c.ServiceName = DefaultServiceName
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.OTelLogLevel == "" {
		c.OTelLogLevel = "info"
	}
	if c.SampleRate == 0 {
		c.SampleRate = 1.0
	}
	if c.MetricsInterval <= 0 {
		c.MetricsInterval = 15 * time.Second
	}
}

// Validate checks that the configuration is valid.
func (c *TelemetryConfig) Validate() error {
	return validation.Validate(c)
}
