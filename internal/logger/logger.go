// Package logger wraps logrus with a context-aware API.
package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// Field keys attached to every entry.
const (
	RequestIDKey = "request_id"
	ComponentKey = "component"
)

type ctxKey string

const requestIDCtxKey ctxKey = "request_id"

// Config controls level, format and destination.
type Config struct {
	Level  string
	Format string
	Output string
}

type Logger struct {
	*logrus.Logger
	component string
}

var (
	standardLogger *Logger
	once           sync.Once
)

// StdLogger returns the process-wide logger.
func StdLogger() *Logger {
	once.Do(func() {
		standardLogger = &Logger{Logger: logrus.New()}
		standardLogger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	})
	return standardLogger
}

// Init applies the configuration to the logger.
func (l *Logger) Init(c Config) error {
	level := logrus.InfoLevel
	if c.Level != "" {
		parsed, err := logrus.ParseLevel(c.Level)
		if err != nil {
			return fmt.Errorf("logger: %w", err)
		}
		level = parsed
	}
	l.SetLevel(level)

	switch c.Format {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	var out io.Writer
	switch c.Output {
	case "stderr":
		out = os.Stderr
	default:
		out = os.Stdout
	}
	l.SetOutput(out)
	return nil
}

// With returns a logger sharing the same backend, tagged with a component name.
func (l *Logger) With(component string) *Logger {
	return &Logger{Logger: l.Logger, component: component}
}

// WithRequestID stores a request id in ctx so that every entry logged with it carries the id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDCtxKey, id)
}

// RequestID extracts the request id placed by WithRequestID.
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDCtxKey).(string)
	return id
}

// entryFromContext creates a new log entry with fields from context
func (l *Logger) entryFromContext(ctx context.Context) *logrus.Entry {
	fields := logrus.Fields{}
	if id := RequestID(ctx); id != "" {
		fields[RequestIDKey] = id
	}
	if l.component != "" {
		fields[ComponentKey] = l.component
	}
	return l.WithFields(fields)
}

func (l *Logger) log(ctx context.Context, level logrus.Level, args ...any) {
	l.entryFromContext(ctx).Log(level, args...)
}

func (l *Logger) logf(ctx context.Context, level logrus.Level, format string, args ...any) {
	l.entryFromContext(ctx).Logf(level, format, args...)
}

func (l *Logger) Debug(ctx context.Context, args ...any) {
	l.log(ctx, logrus.DebugLevel, args...)
}
func (l *Logger) Info(ctx context.Context, args ...any) {
	l.log(ctx, logrus.InfoLevel, args...)
}
func (l *Logger) Warn(ctx context.Context, args ...any) {
	l.log(ctx, logrus.WarnLevel, args...)
}
func (l *Logger) Error(ctx context.Context, args ...any) {
	l.log(ctx, logrus.ErrorLevel, args...)
}

func (l *Logger) Debugf(ctx context.Context, format string, args ...any) {
	l.logf(ctx, logrus.DebugLevel, format, args...)
}
func (l *Logger) Infof(ctx context.Context, format string, args ...any) {
	l.logf(ctx, logrus.InfoLevel, format, args...)
}
func (l *Logger) Warnf(ctx context.Context, format string, args ...any) {
	l.logf(ctx, logrus.WarnLevel, format, args...)
}
func (l *Logger) Errorf(ctx context.Context, format string, args ...any) {
	l.logf(ctx, logrus.ErrorLevel, format, args...)
}

// Fatal and Fatalf log and then exit through the backend's ExitFunc.
func (l *Logger) Fatal(ctx context.Context, args ...any) {
	l.log(ctx, logrus.FatalLevel, args...)
	l.Exit(1)
}
func (l *Logger) Fatalf(ctx context.Context, format string, args ...any) {
	l.logf(ctx, logrus.FatalLevel, format, args...)
	l.Exit(1)
}
