package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// LevelCritical sits above slog.LevelError and is rendered as CRITICAL.
const LevelCritical = slog.Level(12)

type Logger interface {
	Info(message string, args ...any)
	Warn(message string, args ...any)
	Error(message string, args ...any)
	Critical(message string, args ...any)
	// BusinessError logs an expected domain rejection at warn level.
	BusinessError(message string, err error, args ...any)
	// InternalError logs an unexpected failure at error level.
	InternalError(message string, err error, args ...any)
	Slog() *slog.Logger
}

var levels = map[string]slog.Level{
	"debug":    slog.LevelDebug,
	"info":     slog.LevelInfo,
	"warn":     slog.LevelWarn,
	"warning":  slog.LevelWarn,
	"error":    slog.LevelError,
	"critical": LevelCritical,
	"fatal":    LevelCritical,
}

type slogLogger struct {
	base *slog.Logger
}

// NewFromEnv reads LOG_LEVEL and LOG_FORMAT. Development defaults to debug.
func NewFromEnv() Logger {
	level := parseLevel(os.Getenv("LOG_LEVEL"), os.Getenv("ENV"))
	format := "json"
	if strings.EqualFold(strings.TrimSpace(os.Getenv("LOG_FORMAT")), "text") {
		format = "text"
	}
	return newSlog(os.Stdout, level, format).withService("shiftboard")
}

// NewNop returns a logger that drops every record. Tests use it.
func NewNop() Logger {
	return New(io.Discard, LevelCritical+1, "text")
}

func New(output io.Writer, level slog.Level, format string) Logger {
	return newSlog(output, level, format)
}

func newSlog(output io.Writer, level slog.Level, format string) *slogLogger {
	options := &slog.HandlerOptions{Level: level, ReplaceAttr: replaceAttr}
	if format == "json" {
		return &slogLogger{base: slog.New(slog.NewJSONHandler(output, options))}
	}
	return &slogLogger{base: slog.New(slog.NewTextHandler(output, options))}
}

func (l *slogLogger) withService(name string) *slogLogger {
	return &slogLogger{base: l.base.With("service", name)}
}

func (l *slogLogger) Info(message string, args ...any)  { l.base.Info(message, args...) }
func (l *slogLogger) Warn(message string, args ...any)  { l.base.Warn(message, args...) }
func (l *slogLogger) Error(message string, args ...any) { l.base.Error(message, args...) }

func (l *slogLogger) Critical(message string, args ...any) {
	l.base.Log(context.Background(), LevelCritical, message, args...)
}

func (l *slogLogger) BusinessError(message string, err error, args ...any) {
	if err != nil {
		l.base.Warn(message, append([]any{"err", err}, args...)...)
	}
}

func (l *slogLogger) InternalError(message string, err error, args ...any) {
	if err != nil {
		l.base.Error(message, append([]any{"err", err}, args...)...)
	}
}

// Slog exposes the underlying handler for libraries that accept *slog.Logger.
func (l *slogLogger) Slog() *slog.Logger {
	return l.base
}

func parseLevel(value, env string) slog.Level {
	if level, ok := levels[strings.ToLower(strings.TrimSpace(value))]; ok {
		return level
	}
	if strings.EqualFold(strings.TrimSpace(env), "development") {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

func replaceAttr(_ []string, attr slog.Attr) slog.Attr {
	if attr.Key == slog.LevelKey {
		if level, ok := attr.Value.Any().(slog.Level); ok && level == LevelCritical {
			attr.Value = slog.StringValue("CRITICAL")
		}
	}
	return attr
}
