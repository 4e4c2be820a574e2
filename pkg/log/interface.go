// Package log provides a structured logging interface for the benchmark
// dataset tooling.
//
// The package defines a minimal, slog-compatible logging interface so the
// loading and partitioning pipeline can emit structured records (workload
// names, dataset roles, shapes, durations) without binding callers to a
// particular logging backend. The default implementation is built on Go's
// log/slog with a handler that extracts cockroachdb/errors stack traces.
//
// Example usage:
//
//	logger := log.GetLogger().With(
//	    log.WorkloadKey, "higgs_2m",
//	    log.RoleKey, "train",
//	)
//	logger.Info("slice loaded",
//	    log.RowsKey, 2000000,
//	    log.ColsKey, 28,
//	    log.BlocksKey, 4,
//	)
package log

import (
	"context"
)

// Logger defines a structured logging interface compatible with Go's
// log/slog. Fields are alternating key-value pairs, as in slog.
type Logger interface {
	// Debug logs a debug-level message with optional structured fields.
	Debug(msg string, fields ...any)

	// Info logs an info-level message with optional structured fields.
	Info(msg string, fields ...any)

	// Warn logs a warning-level message with optional structured fields.
	Warn(msg string, fields ...any)

	// Error logs an error-level message with optional structured fields.
	Error(msg string, fields ...any)

	// With returns a logger that includes the given fields in every record.
	With(fields ...any) Logger

	// Enabled reports whether the logger emits records at the given level.
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level, value-compatible with slog.Level.
type Level int

// Standard logging levels.
const (
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// LoggerProvider creates and configures loggers. It exists for dependency
// injection and for swapping in the test logger.
type LoggerProvider interface {
	// GetLogger returns the default logger instance.
	GetLogger() Logger

	// GetLoggerWithName returns a logger with a component identifier.
	GetLoggerWithName(name string) Logger

	// SetLevel sets the minimum log level for loggers from this provider.
	SetLevel(level Level)
}
