// Package logger provides a factory for configured slog.Logger instances
// plus attribute helpers that keep credentials and session tokens out of
// log output.
//
// Defaults are production-safe: JSON format at INFO level on stdout.
//
//	log := logger.New(
//	    logger.WithService("authkit"),
//	    logger.WithLevel(slog.LevelDebug),
//	    logger.WithFormat(logger.FormatText),
//	)
//	log.Info("login rejected", logger.Email(email), logger.Component("authn"))
package logger
