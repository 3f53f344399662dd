// Package logging provides structured logging utilities for kira.
//
// # Overview
//
// This package wraps the standard library slog package with project defaults
// so the CLI, the device queries and the logcat streaming engine all log the
// same way. It supports environment-based log level configuration,
// module/version context injection, and source location tracking for debug logs.
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: Detailed diagnostic information with source location
//   - INFO: General informational messages (default)
//   - WARN/WARNING: Warning messages for potentially problematic situations
//   - ERROR: Error messages for failures requiring attention
//
// # Usage
//
// Setting the default logger:
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("kira", version)
//	    slog.Info("device query", "serial", serial)
//	}
//
// Setting explicit log level:
//
//	logging.SetDefaultStructuredLoggerWithLevel("kira", "v1.0.0", "warn")
//
// Human readable output for interactive sessions:
//
//	slog.SetDefault(logging.NewTextLogger(os.Stderr, "kira", version, "info"))
//
// # Environment Configuration
//
// The LOG_LEVEL environment variable controls logging verbosity:
//
//	LOG_LEVEL=debug kira logcat stream
//
// If LOG_LEVEL is not set, defaults to INFO level.
//
// # Output Format
//
// Logs are written to stderr in JSON format:
//
//	{
//	    "time": "2025-01-15T10:30:00.123Z",
//	    "level": "INFO",
//	    "msg": "logcat stream started",
//	    "module": "kira",
//	    "version": "v1.0.0",
//	    "stream": "4d9c..."
//	}
package logging
