// Package component defines lifecycle-managed infrastructure services.
//
// A Component is started in registration order and stopped in reverse order
// by a Registry. Components may also implement Describable to appear in the
// startup summary.
//
//	reg := component.NewRegistry()
//	_ = reg.Register(httpclient.NewComponent(builder))
//	_ = reg.Register(server.NewComponent(srv))
//	err := reg.StartAll(ctx)
package component
