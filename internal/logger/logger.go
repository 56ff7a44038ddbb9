package logger

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

// Logger is a thin structured logger the generator and parser report
// through. Warnings and errors are always shown; Info needs --debug and
// Debug needs --verbose.
type Logger struct {
	inner *slog.Logger
}

var (
	mu       sync.Mutex
	levelVar = new(slog.LevelVar)
	root     = newRoot(os.Stderr)
)

func newRoot(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: levelVar}))
}

func init() {
	levelVar.Set(slog.LevelWarn)
}

// SetVerbosity maps CLI flags onto log levels.
func SetVerbosity(debug, verbose bool) {
	switch {
	case verbose:
		levelVar.Set(slog.LevelDebug)
	case debug:
		levelVar.Set(slog.LevelInfo)
	default:
		levelVar.Set(slog.LevelWarn)
	}
}

// SetOutput redirects all loggers, used by tests to capture output.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	root = newRoot(w)
}

func base() Logger {
	mu.Lock()
	defer mu.Unlock()
	return Logger{inner: root}
}

// WithField returns a logger with one bound attribute.
func WithField(key string, value any) Logger {
	return Logger{inner: base().inner.With(key, value)}
}

// WithFields returns a logger with several bound attributes.
func WithFields(fields map[string]any) Logger {
	l := base().inner
	for k, v := range fields {
		l = l.With(k, v)
	}
	return Logger{inner: l}
}

// WithField returns a copy of the logger with one more bound attribute.
func (l Logger) WithField(key string, value any) Logger {
	return Logger{inner: l.inner.With(key, value)}
}

func (l Logger) Debug(msg string, args ...any) { l.inner.Debug(msg, args...) }
func (l Logger) Info(msg string, args ...any)  { l.inner.Info(msg, args...) }
func (l Logger) Warn(msg string, args ...any)  { l.inner.Warn(msg, args...) }
func (l Logger) Error(msg string, args ...any) { l.inner.Error(msg, args...) }

// Package-level helpers for code without a component context.

func Debug(msg string, args ...any) { base().Debug(msg, args...) }
func Info(msg string, args ...any)  { base().Info(msg, args...) }
func Warn(msg string, args ...any)  { base().Warn(msg, args...) }
func Error(msg string, args ...any) { base().Error(msg, args...) }
