package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/phsym/console-slog"
)

type SlogLogger struct {
	logger *slog.Logger
	level  *slog.LevelVar
}

var _ Logger = (*SlogLogger)(nil)

// NewSlog creates a slog backed logger writing to stdout.
func NewSlog(level LogLevel, addSource bool) Logger {
	return NewSlogTo(os.Stdout, level, addSource)
}

// NewSlogTo creates a slog backed logger writing to w.
//
// With ENV=development the output is colored console text from console-slog,
// otherwise it is JSON with the time key renamed to "ts".
func NewSlogTo(w io.Writer, level LogLevel, addSource bool) Logger {
	inst := &SlogLogger{level: &slog.LevelVar{}}
	inst.level.Set(toSlogLevel(level))

	var handler slog.Handler
	if os.Getenv("ENV") == "development" {
		handler = console.NewHandler(w, &console.HandlerOptions{
			AddSource: true,
			Level:     inst.level,
		})
	} else {
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			AddSource: addSource,
			Level:     inst.level,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey && len(groups) == 0 {
					a.Key = "ts"
				}
				return a
			},
		})
	}
	inst.logger = slog.New(handler)

	return inst
}

func (l *SlogLogger) Debug(msg string, keysAndValues ...any) {
	l.log(context.Background(), slog.LevelDebug, msg, keysAndValues...)
}

func (l *SlogLogger) Info(msg string, keysAndValues ...any) {
	l.log(context.Background(), slog.LevelInfo, msg, keysAndValues...)
}

func (l *SlogLogger) Warn(msg string, keysAndValues ...any) {
	l.log(context.Background(), slog.LevelWarn, msg, keysAndValues...)
}

func (l *SlogLogger) Error(msg string, keysAndValues ...any) {
	l.log(context.Background(), slog.LevelError, msg, keysAndValues...)
}

func (l *SlogLogger) Fatal(msg string, keysAndValues ...any) {
	l.log(context.Background(), slog.LevelError, msg, keysAndValues...)
	os.Exit(1)
}

// With shares the level with its parent, so SetLevel on either affects both.
func (l *SlogLogger) With(keyValues ...any) Logger {
	return &SlogLogger{
		logger: l.logger.With(keyValues...),
		level:  l.level,
	}
}

func (l *SlogLogger) Level() LogLevel {
	switch lv := l.level.Level(); {
	case lv <= slog.LevelDebug:
		return DebugLevel
	case lv <= slog.LevelInfo:
		return InfoLevel
	case lv <= slog.LevelWarn:
		return WarnLevel
	default:
		return ErrorLevel
	}
}

func (l *SlogLogger) SetLevel(level LogLevel) {
	l.level.Set(toSlogLevel(level))
}

// log must always be called directly by an exported logging method,
// because it uses a fixed call depth to obtain the pc.
func (l *SlogLogger) log(ctx context.Context, level slog.Level, msg string, args ...any) {
	if !l.logger.Enabled(ctx, level) {
		return
	}
	var pcs [1]uintptr
	// skip [runtime.Callers, this function, this function's caller]
	runtime.Callers(3, pcs[:])
	r := slog.NewRecord(time.Now(), level, msg, pcs[0])
	r.Add(args...)
	_ = l.logger.Handler().Handle(ctx, r)
}

func toSlogLevel(level LogLevel) slog.Level {
	switch level {
	case DebugLevel:
		return slog.LevelDebug
	case InfoLevel:
		return slog.LevelInfo
	case WarnLevel:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
