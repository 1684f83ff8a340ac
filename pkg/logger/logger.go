// Package logger provides a zap-based structured logger that stamps every
// entry with the service name and the active trace ID.
package logger

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level is a logging severity.
type Level = zapcore.Level

const (
	LevelDebug = zapcore.DebugLevel
	LevelInfo  = zapcore.InfoLevel
	LevelWarn  = zapcore.WarnLevel
	LevelError = zapcore.ErrorLevel
)

// ParseLevel converts a name such as "debug" or "WARN" into a Level.
func ParseLevel(s string) (Level, error) {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(strings.ToLower(s))); err != nil {
		return LevelInfo, fmt.Errorf("log level %q: %w", s, err)
	}
	return l, nil
}

// TraceIDFn extracts a trace ID from a context, or "" when there is none.
type TraceIDFn func(ctx context.Context) string

// Logger writes JSON log entries.
type Logger struct {
	z       *zap.SugaredLogger
	traceID TraceIDFn
}

// New builds a Logger writing to w at or above level.
func New(w io.Writer, level Level, service string, traceID TraceIDFn) *Logger {
	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "time"
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.AddSync(w), level)
	z := zap.New(core).With(zap.String("service", service))
	return &Logger{z: z.Sugar(), traceID: traceID}
}

func (l *Logger) with(ctx context.Context, kv []any) []any {
	if l.traceID == nil {
		return kv
	}
	if id := l.traceID(ctx); id != "" {
		return append(kv, "trace_id", id)
	}
	return kv
}

// Debug logs msg at debug level with key/value pairs.
func (l *Logger) Debug(ctx context.Context, msg string, kv ...any) {
	l.z.Debugw(msg, l.with(ctx, kv)...)
}

// Info logs msg at info level with key/value pairs.
func (l *Logger) Info(ctx context.Context, msg string, kv ...any) {
	l.z.Infow(msg, l.with(ctx, kv)...)
}

// Warn logs msg at warn level with key/value pairs.
func (l *Logger) Warn(ctx context.Context, msg string, kv ...any) {
	l.z.Warnw(msg, l.with(ctx, kv)...)
}

// Error logs msg at error level with key/value pairs.
func (l *Logger) Error(ctx context.Context, msg string, kv ...any) {
	l.z.Errorw(msg, l.with(ctx, kv)...)
}

// Sync flushes buffered entries.
func (l *Logger) Sync() error { return l.z.Sync() }
