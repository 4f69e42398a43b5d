// Package bootstrap orchestrates application lifecycle for callsight services.
//
// It provides typed configuration, component registration, dependency
// injection, and startup/shutdown hooks for rapid service initialization.
//
// # Quick Start
//
//	app, err := bootstrap.NewApp(&cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	app.RegisterComponent(serverComponent)
//	if err := app.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// The bootstrap package handles component initialization, graceful shutdown
// on OS signals, and health aggregation.
package bootstrap
