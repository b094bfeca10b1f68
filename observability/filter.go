package observability

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/kbukum/registry-api/logger"
)

// Components whose level follows OTEL_LOG_LEVEL.
var otelScopedComponents = []string{"handlers", "httpclient", "cache", "versions"}

// LogFilter builds the log filter from the base directives and the level of
// the telemetry-adjacent components. The otel exporter internals are always
// verbose: otel.tracing at trace and the rest of otel at debug.
func LogFilter(base, otelLevel string) (*logger.Filter, error) {
	if base == "" {
		base = "info"
	}
	if otelLevel == "" {
		otelLevel = "info"
	}
	f, err := logger.ParseFilter(base)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	overrides, err := logger.ParseFilter(otelLevel)
	if err != nil {
		return nil, fmt.Errorf("otel log level: %w", err)
	}

	f.Set("otel.tracing", zerolog.TraceLevel)
	f.Set("otel", zerolog.DebugLevel)
	for _, c := range otelScopedComponents {
		f.Set(c, overrides.Default)
	}
	return f, nil
}
