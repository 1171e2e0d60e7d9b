// Package logger builds log/slog loggers for the application and provides
// attribute helpers so that log keys stay consistent across packages.
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "bautagebuch"),
//	    logger.WithContextExtractors(requestIDExtractor),
//	)
//	log.LogAttrs(ctx, slog.LevelWarn, "autosave failed",
//	    logger.Form(formID),
//	    logger.Error(err),
//	)
package logger
