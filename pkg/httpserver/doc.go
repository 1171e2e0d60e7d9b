// Package httpserver runs the application's HTTP server with graceful
// shutdown on context cancellation, and provides a liveness/readiness
// handler.
//
//	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil { ... }
package httpserver
