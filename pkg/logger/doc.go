// Package logger builds configured slog.Logger instances with consistent
// defaults across environments.
//
// The factory applies functional options on top of production-safe defaults
// (JSON output, INFO level) and wraps the handler with a decorator that can
// pull request-scoped values out of context on every record:
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, "website"),
//		logger.WithContextValue("request_id", middleware.RequestIDKey),
//	)
//	logger.SetAsDefault(log)
package logger
