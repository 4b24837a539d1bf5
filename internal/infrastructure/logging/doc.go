// Package logging provides structured logging for the sqlean CLI.
//
// This package wraps Go's standard log/slog package. A *Logger satisfies
// bundle.Logger, so it can be handed to the driver to report per-module
// activation results:
//
//	logger := logging.New(cfg.Logging, bundle.Version)
//	driver.SetLogger(logger.With("component", "bundle"))
//
// # Configuration
//
//	logging:
//	  level: "warn"      # debug, info, warn, error
//	  format: "text"     # json, text
//	  output: "stderr"   # stdout, stderr
//
// Output defaults to stderr so that query results on stdout stay clean.
package logging
