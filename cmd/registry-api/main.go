// Command registry-api serves the registry HTTP API. It forwards GET / to
// the configuration service and exposes echo, help, health, version and
// metrics endpoints.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/kbukum/registry-api/api"
	"github.com/kbukum/registry-api/bootstrap"
	apperrors "github.com/kbukum/registry-api/errors"
	"github.com/kbukum/registry-api/httpclient"
	"github.com/kbukum/registry-api/logger"
	"github.com/kbukum/registry-api/metrics"
	"github.com/kbukum/registry-api/observability"
	"github.com/kbukum/registry-api/server"
	"github.com/kbukum/registry-api/server/endpoint"
	"github.com/kbukum/registry-api/version"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		report(os.Stderr, err)
		os.Exit(1)
	}
}

// report prints the failure that ended run. Telemetry and logging init
// failures happen before any logger exists, so only their message is shown.
func report(w io.Writer, err error) {
	if appErr, ok := apperrors.AsAppError(err); ok && apperrors.IsStartupCode(appErr.Code) {
		fmt.Fprintf(w, "%s: initialization failed (%s): %s\n", serviceName, appErr.Code, appErr.Message)
		return
	}
	fmt.Fprintf(w, "%s: %v\n", serviceName, err)
}

// run loads the configuration, installs the process-wide telemetry and
// metrics recorder, then serves until a signal or ctx ends it.
func run(ctx context.Context, args []string, out io.Writer) error {
	cfg, opts, err := loadConfig(args, out)
	if err != nil {
		return err
	}
	switch {
	case opts.showVersion:
		_, err = fmt.Fprintln(out, version.GetFullVersion())
		return err
	case opts.showHelp:
		_, err = fmt.Fprintf(out, "%s\nFlags:\n%s", endpoint.HelpText, opts.usage)
		return err
	}

	tel, err := observability.Init(ctx, cfg.Telemetry)
	if err != nil {
		return err
	}
	rec, err := metrics.Install(metrics.WithRuntimeCollectors())
	if err != nil {
		_ = tel.Shutdown(ctx)
		return err
	}

	app, err := newApp(ctx, cfg, tel.Logger, rec)
	if err != nil {
		tel.Logger.Error("startup failed", logger.ErrorFields("new_app", err))
		_ = tel.Shutdown(ctx)
		return err
	}
	app.OnStop(tel.Shutdown)
	return app.Run(ctx)
}

// newApp builds the HTTPS client, the router and the component registry.
// The client is built before anything listens so a bad certificate or
// timeout fails startup.
func newApp(ctx context.Context, cfg *AppConfig, log *logger.Logger, rec *metrics.Recorder) (*bootstrap.App[*AppConfig], error) {
	client := httpclient.NewComponent(cfg.clientBuilder())
	if err := client.Start(ctx); err != nil {
		return nil, fmt.Errorf("build https client: %w", err)
	}

	app, err := bootstrap.NewApp(cfg, bootstrap.WithLogger(log))
	if err != nil {
		return nil, err
	}

	srv := server.New(cfg.Server, log)
	srv.ApplyDefaults(cfg.Name, app.Components.HealthAll, rec)
	api.RegisterRoutes(srv.GinEngine(), api.NewState(client.Client(), cfg.Upstream))

	if err := app.RegisterComponent(client); err != nil {
		return nil, err
	}
	if err := app.RegisterComponent(server.NewComponent(srv)); err != nil {
		return nil, err
	}

	app.OnConfigure(func(_ context.Context, a *bootstrap.App[*AppConfig]) error {
		target := a.Cfg.Upstream.URL
		if target == "" {
			target = "(none)"
			a.Logger.Warn("No upstream configured, GET / answers 404")
		}
		a.Summary.TrackClient(client.Name(), target, "ready", "https")
		return nil
	})
	return app, nil
}
