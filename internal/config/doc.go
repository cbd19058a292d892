// Package config provides 12-factor configuration management for the file-access library.
//
// Configuration is loaded from environment variables with sensible defaults.
// An optional .env file is read first; it never overrides variables that are
// already present in the process environment.
//
// Configuration Sections:
//   - Paths: project-root marker, explicit root, dependency-install directory
//   - Stream: chunk size, write high-water mark, default encoding
//   - CSV: default delimiter and header line count
//   - Logging: log level and output format
//   - Metrics: Prometheus collector registration
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	pump := filesystem.NewPump(filesystem.WithChunkSize(cfg.Stream.ChunkSize))
//
// Environment Variables:
//   - FILES_ROOT, FILES_ROOT_MARKER, FILES_INSTALL_DIR
//   - FILES_CHUNK_SIZE, FILES_HIGH_WATER_MARK, FILES_ENCODING
//   - FILES_CSV_DELIMITER, FILES_CSV_HEADER_LINES
//   - LOG_LEVEL, LOG_DEV, METRICS_ENABLED
package config
