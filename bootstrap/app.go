package bootstrap

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/kbukum/registry-api/component"
	"github.com/kbukum/registry-api/logger"
)

const defaultGracefulTimeout = 15 * time.Second

// App owns the component registry and the lifecycle hooks of one process.
// C is the config type; any struct embedding config.ServiceConfig
// satisfies Config.
type App[C Config] struct {
	Name       string
	Version    string
	Cfg        C
	Components *component.Registry
	Logger     *logger.Logger
	Summary    *Summary

	gracefulTimeout time.Duration
	onConfigure     []func(ctx context.Context, app *App[C]) error

	onStart []Hook
	onReady []Hook
	onStop  []Hook
}

// NewApp applies defaults to cfg and validates it. Without WithLogger the
// global logger is installed from cfg's Logging section, which fails when
// one is already installed.
func NewApp[C Config](cfg C, opts ...Option) (*App[C], error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	base := cfg.GetServiceConfig()

	o := appOptions{gracefulTimeout: defaultGracefulTimeout, summaryOut: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}

	log := o.logger
	if log == nil {
		if err := logger.Init(base.Logging); err != nil {
			return nil, err
		}
		log = logger.GetGlobalLogger()
	}

	summary := NewSummary(base.Name, base.Version)
	summary.SetOutput(o.summaryOut)

	return &App[C]{
		Name:            base.Name,
		Version:         base.Version,
		Cfg:             cfg,
		Components:      component.NewRegistry(),
		Logger:          log,
		Summary:         summary,
		gracefulTimeout: o.gracefulTimeout,
	}, nil
}

// RegisterComponent adds c to the registry; components start in
// registration order and stop in reverse.
func (a *App[C]) RegisterComponent(c component.Component) error {
	return a.Components.Register(c)
}

// OnConfigure registers a callback that runs once every component has
// started, before the ready check.
func (a *App[C]) OnConfigure(fn func(ctx context.Context, app *App[C]) error) {
	a.onConfigure = append(a.onConfigure, fn)
}

// ReadyCheck reports every component that is not healthy.
func (a *App[C]) ReadyCheck(ctx context.Context) error {
	var bad []string
	for _, h := range a.Components.HealthAll(ctx) {
		if h.Status == component.StatusHealthy {
			continue
		}
		entry := fmt.Sprintf("%s=%s", h.Name, h.Status)
		if h.Message != "" {
			entry += "(" + h.Message + ")"
		}
		bad = append(bad, entry)
	}
	if len(bad) > 0 {
		return fmt.Errorf("unhealthy components: %s", strings.Join(bad, ", "))
	}
	return nil
}

// Run starts everything, blocks until SIGINT, SIGTERM or ctx is done, then
// shuts down. A failed startup stops whatever did start and returns the
// startup error.
//
// Order: components, OnStart, OnConfigure, ready check, OnReady, summary,
// wait, OnStop, components in reverse.
func (a *App[C]) Run(ctx context.Context) error {
	if err := a.startup(ctx); err != nil {
		_ = a.stop()
		return err
	}

	a.Logger.Info("Ready, waiting for shutdown signal")
	a.WaitForSignal(ctx)
	return a.stop()
}

func (a *App[C]) startup(ctx context.Context) error {
	start := time.Now()
	a.Logger.Info("Starting", logger.Fields("name", a.Name, "version", a.Version))

	if err := a.Components.StartAll(ctx); err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}
	if err := runHooks(ctx, a.onStart); err != nil {
		return fmt.Errorf("onStart hook failed: %w", err)
	}
	for _, fn := range a.onConfigure {
		if err := fn(ctx, a); err != nil {
			return fmt.Errorf("configuration failed: %w", err)
		}
	}
	if err := a.ReadyCheck(ctx); err != nil {
		a.Logger.Warn("Ready check reported issues", logger.ErrorFields("ready_check", err))
	}
	if err := runHooks(ctx, a.onReady); err != nil {
		return fmt.Errorf("onReady hook failed: %w", err)
	}

	elapsed := time.Since(start)
	a.Logger.Info("Startup complete", logger.DurationFields("startup", elapsed))
	a.Summary.SetStartupDuration(elapsed)
	a.DisplaySummary(ctx)
	return nil
}

// DisplaySummary prints the startup summary with live component health.
func (a *App[C]) DisplaySummary(ctx context.Context) {
	a.Summary.DisplaySummary(ctx, a.Components)
}

// WaitForSignal blocks until SIGINT, SIGTERM or ctx is done. It returns
// nil when ctx ended the wait.
func (a *App[C]) WaitForSignal(ctx context.Context) os.Signal {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		a.Logger.Info("Shutdown signal received", logger.Fields("signal", sig.String()))
		return sig
	case <-ctx.Done():
		a.Logger.Info("Context done, shutting down")
		return nil
	}
}

// Shutdown runs the stop sequence for callers that drive the lifecycle
// themselves instead of using Run.
func (a *App[C]) Shutdown() error {
	return a.stop()
}

// stop runs OnStop hooks, then stops components, within the graceful
// timeout. The first error is returned; later ones are only logged.
func (a *App[C]) stop() error {
	a.Logger.Info("Shutting down", logger.Fields("timeout", a.gracefulTimeout.String()))

	ctx, cancel := context.WithTimeout(context.Background(), a.gracefulTimeout)
	defer cancel()

	var first error
	if err := runHooks(ctx, a.onStop); err != nil {
		a.Logger.Error("OnStop hook failed", logger.ErrorFields("on_stop", err))
		first = err
	}
	if err := a.Components.StopAll(ctx); err != nil {
		a.Logger.Error("Component shutdown failed", logger.ErrorFields("stop_all", err))
		if first == nil {
			first = err
		}
	}

	a.Logger.Info("Shutdown complete")
	return first
}
