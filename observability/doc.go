// Package observability installs process-wide telemetry: the log filter and
// renderer, the OTLP tracer provider, the W3C propagator and an optional
// OTLP meter provider.
//
//	tel, err := observability.Init(ctx, observability.TelemetryConfig{
//	    LogLevel:     "info",
//	    OTelLogLevel: "warn",
//	})
//	if err != nil {
//	    // errors.TelemetryInit or errors.LoggingInit
//	}
//	defer tel.Shutdown(ctx)
//
// Init may run only once. Log events created through Logger.WithContext carry
// trace_id and span_id of the active span.
package observability
