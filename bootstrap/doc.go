// Package bootstrap runs a service's lifecycle: components start in
// registration order, configure callbacks wire the business layer, hooks
// run around readiness, and a signal or context cancellation triggers a
// graceful stop in reverse order.
//
//	app, err := bootstrap.NewApp(cfg)
//	app.RegisterComponent(db)
//	app.OnConfigure(func(ctx context.Context, a *bootstrap.App[*Config]) error {
//	    return mountRoutes(a)
//	})
//	err = app.Run(ctx)
package bootstrap
