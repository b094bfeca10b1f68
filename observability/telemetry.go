package observability

import (
	"context"
	"errors"
	"sync"

	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	apperrors "github.com/kbukum/registry-api/errors"
	"github.com/kbukum/registry-api/logger"
)

// ErrAlreadyInitialized is the cause of a second Init.
var ErrAlreadyInitialized = errors.New("telemetry already initialized")

var (
	initMu      sync.Mutex
	initialized bool
)

// Telemetry owns the providers installed by Init.
type Telemetry struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Logger         *logger.Logger
	Filter         *logger.Filter
}

// Init installs the global logger, tracer provider, propagator and, when a
// metrics endpoint is configured, the meter provider. It succeeds once per
// process; later calls fail with a TelemetryInit error and leave the first
// installation in place.
func Init(ctx context.Context, cfg TelemetryConfig) (*Telemetry, error) {
	initMu.Lock()
	defer initMu.Unlock()

	if initialized {
		return nil, apperrors.TelemetryInit(ErrAlreadyInitialized)
	}
	if logger.Installed() {
		return nil, apperrors.LoggingInit(logger.ErrAlreadyInitialized)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, apperrors.TelemetryInit(err)
	}

	filter, err := LogFilter(cfg.LogLevel, cfg.OTelLogLevel)
	if err != nil {
		return nil, apperrors.LoggingInit(err)
	}

	res, err := newResource(ctx, cfg.ServiceName, cfg.ServiceVersion)
	if err != nil {
		return nil, apperrors.TelemetryInit(err)
	}

	tp, err := newTracerProvider(ctx, cfg, res)
	if err != nil {
		return nil, apperrors.TelemetryInit(err)
	}

	var mp *sdkmetric.MeterProvider
	if cfg.MetricsEndpoint != "" {
		mp, err = newMeterProvider(ctx, cfg, res)
		if err != nil {
			_ = tp.Shutdown(ctx)
			return nil, apperrors.TelemetryInit(err)
		}
	}

	log := newLogger(cfg, filter)
	if err := logger.Install(log); err != nil {
		_ = tp.Shutdown(ctx)
		if mp != nil {
			_ = mp.Shutdown(ctx)
		}
		return nil, err
	}

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(newPropagator())
	if mp != nil {
		otel.SetMeterProvider(mp)
	}
	otelLog := log.WithComponent("otel")
	otel.SetErrorHandler(otel.ErrorHandlerFunc(func(err error) {
		otelLog.Error("telemetry error", logger.Fields(logger.FieldError, err.Error()))
	}))

	initialized = true

	log.WithComponent("otel.tracing").Info("telemetry initialized", logger.Fields(
		"service", cfg.ServiceName,
		"endpoint", cfg.Endpoint,
		"sample_rate", cfg.SampleRate,
		"metrics", mp != nil,
		"filter", filter.String(),
	))

	return &Telemetry{
		TracerProvider: tp,
		MeterProvider:  mp,
		Logger:         log,
		Filter:         filter,
	}, nil
}

// Shutdown flushes and stops the installed providers.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error
	if t.TracerProvider != nil {
		errs = append(errs, t.TracerProvider.Shutdown(ctx))
	}
	if t.MeterProvider != nil {
		errs = append(errs, t.MeterProvider.Shutdown(ctx))
	}
	return errors.Join(errs...)
}

// newLogger picks the renderer: console in debug mode, JSON lines otherwise.
func newLogger(cfg TelemetryConfig, filter *logger.Filter) *logger.Logger {
	format := logger.FormatJSON
	if cfg.Debug {
		format = logger.FormatPretty
	}
	lc := &logger.Config{
		Level:     filter.Default.String(),
		Format:    format,
		Output:    "stdout",
		Timestamp: true,
		Filter:    filter.String(),
		Writer:    cfg.LogWriter,
	}
	return logger.New(lc, cfg.ServiceName).WithHook(TraceHook{})
}
