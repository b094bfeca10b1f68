// Package bootstrap runs the application lifecycle: component start in
// registration order, startup and shutdown hooks, a startup summary, and
// graceful shutdown on SIGINT/SIGTERM.
//
// # Quick Start
//
//	app, err := bootstrap.NewApp(&cfg, bootstrap.WithLogger(log))
//	if err != nil {
//	    return err
//	}
//	_ = app.RegisterComponent(server.NewComponent(srv))
//	app.OnStop(tel.Shutdown)
//	return app.Run(ctx)
package bootstrap
