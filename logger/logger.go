// Package logger is the logging abstraction used across go-bts.
//
// Every package that logs accepts a Logger, so callers can plug in whichever
// backend they already run. Two backends ship with the module: a log/slog
// backend (JSON, or console-slog when ENV=development) and a zerolog backend.
// MockLogger is a testify mock for asserting log calls in tests.
//
// Log Levels:
//
//   - DebugLevel: per-command wire traffic, disabled in production.
//   - InfoLevel: connection lifecycle.
//   - WarnLevel: client-side refusals such as start precondition failures.
//   - ErrorLevel: connection and decode failures.
//   - FatalLevel: logs then exits the process.
package logger

import (
	"fmt"
	"strings"
)

// LogLevel indicates the logging severity level.
type LogLevel = int8

const (
	// DebugLevel logs are typically voluminous, and are usually disabled in production.
	DebugLevel LogLevel = iota - 1
	// InfoLevel is the default logging priority.
	InfoLevel
	// WarnLevel logs are more important than Info, but don't need individual
	// human review.
	WarnLevel
	// ErrorLevel logs are high-priority. If an application is running smoothly,
	// it shouldn't generate any error-level logs.
	ErrorLevel
	// FatalLevel logs a message, then calls os.Exit(1).
	FatalLevel
)

// Logger defines a common interface for logging.
type Logger interface {
	// Debug logs a message at DebugLevel.
	// The message includes any fields passed at the log site, as well as any fields accumulated on the logger.
	Debug(msg string, keysAndValues ...any)
	// Info logs a message at InfoLevel.
	// The message includes any fields passed at the log site, as well as any fields accumulated on the logger.
	Info(msg string, keysAndValues ...any)
	// Warn logs a message at WarnLevel.
	// The message includes any fields passed at the log site, as well as any fields accumulated on the logger.
	Warn(msg string, keysAndValues ...any)
	// Error logs a message at ErrorLevel.
	// The message includes any fields passed at the log site, as well as any fields accumulated on the logger.
	Error(msg string, keysAndValues ...any)
	// Fatal logs a message at FatalLevel, then calls os.Exit(1).
	Fatal(msg string, keysAndValues ...any)
	// With creates a child logger and adds structured context to it.
	// Key-values added to the child don't affect the parent, and vice versa.
	With(keyValues ...any) Logger
	// Level returns the minimum enabled level for this logger.
	Level() LogLevel
	// SetLevel sets the minimum enabled level for this logger.
	SetLevel(level LogLevel)
}

// ParseLevel converts a level name such as "debug" or "WARN" to a LogLevel.
// An empty string parses as InfoLevel.
func ParseLevel(s string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DebugLevel, nil
	case "", "info":
		return InfoLevel, nil
	case "warn", "warning":
		return WarnLevel, nil
	case "error":
		return ErrorLevel, nil
	case "fatal":
		return FatalLevel, nil
	default:
		return InfoLevel, fmt.Errorf("logger: unknown level %q", s)
	}
}
