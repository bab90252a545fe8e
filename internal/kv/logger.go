package kv

import (
	"context"
	"fmt"
	"log/slog"
	"os"
)

// LevelTrace is the slog level at which Pebble trace events are logged.
const LevelTrace = slog.LevelDebug - 4

// Logger routes Pebble's logs to a slog.Logger.
type Logger struct {
	l *slog.Logger
}

// NewLogger returns a Pebble logger writing to l. If l is nil, slog.Default is used.
func NewLogger(l *slog.Logger) *Logger {
	if l == nil {
		l = slog.Default()
	}

	return &Logger{l: l.With("component", "pebble")}
}

// Infof implements LoggerAndTracer.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.l.Info(fmt.Sprintf(format, args...))
}

// Errorf implements LoggerAndTracer.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.l.Error(fmt.Sprintf(format, args...))
}

// Fatalf implements LoggerAndTracer. It exits the process, like Pebble's default logger.
func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.l.Error(fmt.Sprintf(format, args...))
	os.Exit(1)
}

// Eventf implements LoggerAndTracer.
func (l *Logger) Eventf(ctx context.Context, format string, args ...interface{}) {
	l.l.Log(ctx, LevelTrace, fmt.Sprintf(format, args...))
}

// IsTracingEnabled implements LoggerAndTracer.
func (l *Logger) IsTracingEnabled(ctx context.Context) bool {
	return l.l.Enabled(ctx, LevelTrace)
}
