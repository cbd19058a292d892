// Package logging provides structured logging using uber/zap.
//
// Two modes are supported:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// Library components accept a *Logger and fall back to Nop() when none is
// given, so embedding programs decide whether file operations are logged.
//
// Example Usage:
//
//	logger := logging.NewDefault()
//	logger.Info("csv parsed", zap.String("path", path), zap.Int("rows", n))
//	logger.Warn("stream failed", zap.Error(err))
package logging
