// Package httpserver wraps net/http with graceful shutdown, configurable
// timeouts, health-check handlers, and lifecycle logging via slog.
//
// Run blocks until the context is cancelled or an interrupt/TERM signal is
// received, then shuts the server down with a configurable deadline. Listen
// failures are wrapped with ErrStart and shutdown failures with ErrShutdown,
// so callers can distinguish them with errors.Is.
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
package httpserver
