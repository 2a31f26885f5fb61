package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// ZerologLogger adapts a zerolog.Logger to the Logger interface.
type ZerologLogger struct {
	logger zerolog.Logger
}

var _ Logger = (*ZerologLogger)(nil)

// NewZerolog creates a zerolog backed logger writing JSON lines to w.
func NewZerolog(w io.Writer, level LogLevel) Logger {
	zl := zerolog.New(w).With().Timestamp().Logger().Level(toZerologLevel(level))
	return &ZerologLogger{logger: zl}
}

// FromZerolog wraps an existing zerolog.Logger.
func FromZerolog(zl zerolog.Logger) Logger {
	return &ZerologLogger{logger: zl}
}

func (l *ZerologLogger) Debug(msg string, keysAndValues ...any) {
	l.logger.Debug().Fields(keysAndValues).Msg(msg)
}

func (l *ZerologLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Info().Fields(keysAndValues).Msg(msg)
}

func (l *ZerologLogger) Warn(msg string, keysAndValues ...any) {
	l.logger.Warn().Fields(keysAndValues).Msg(msg)
}

func (l *ZerologLogger) Error(msg string, keysAndValues ...any) {
	l.logger.Error().Fields(keysAndValues).Msg(msg)
}

// Fatal uses the error level and exits itself, zerolog's Fatal would skip
// deferred flushes of the caller's writer.
func (l *ZerologLogger) Fatal(msg string, keysAndValues ...any) {
	l.logger.Error().Fields(keysAndValues).Msg(msg)
	os.Exit(1)
}

func (l *ZerologLogger) With(keyValues ...any) Logger {
	return &ZerologLogger{logger: l.logger.With().Fields(keyValues).Logger()}
}

func (l *ZerologLogger) Level() LogLevel {
	switch l.logger.GetLevel() {
	case zerolog.TraceLevel, zerolog.DebugLevel:
		return DebugLevel
	case zerolog.InfoLevel:
		return InfoLevel
	case zerolog.WarnLevel:
		return WarnLevel
	default:
		return ErrorLevel
	}
}

func (l *ZerologLogger) SetLevel(level LogLevel) {
	l.logger = l.logger.Level(toZerologLevel(level))
}

func toZerologLevel(level LogLevel) zerolog.Level {
	switch level {
	case DebugLevel:
		return zerolog.DebugLevel
	case InfoLevel:
		return zerolog.InfoLevel
	case WarnLevel:
		return zerolog.WarnLevel
	case FatalLevel:
		return zerolog.FatalLevel
	default:
		return zerolog.ErrorLevel
	}
}
