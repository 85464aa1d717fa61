// Package logging provides structured logging for Quill.
//
// It wraps log/slog with configuration-driven level, format, and output
// selection, plus a default "service" attribute on every record.
//
// Usage:
//
//	log := logging.New(cfg.Logging)
//	log.Info("connection opened", "driver", "sqlite3")
//
// Use Default() during early startup before configuration is available.
package logging
