package logging

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

type requestIDKey struct{}

var base = logrus.New()

// Setup configures the process-wide logger. Production gets JSON output.
func Setup(level string, production bool) {
	lvl, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	base.SetLevel(lvl)
	base.SetOutput(os.Stderr)
	if production {
		base.SetFormatter(&logrus.JSONFormatter{})
	} else {
		base.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}

// SetOutput redirects log output, mostly for tests and the CLI quiet mode.
func SetOutput(w io.Writer) {
	base.SetOutput(w)
}

// Base returns the process-wide logrus logger.
func Base() *logrus.Logger {
	return base
}

// WithRequestID stores a request id for loggers created from ctx.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestID returns the request id stored in ctx, or "".
func RequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDKey{}).(string); ok {
		return rid
	}
	return ""
}

// Logger provides structured logging scoped to one request.
type Logger struct {
	entry *logrus.Entry
}

// NewLogger creates a logger with request context
func NewLogger(ctx context.Context) *Logger {
	requestID := RequestID(ctx)
	if requestID == "" {
		requestID = "unknown"
	}
	return &Logger{entry: base.WithField("request_id", requestID)}
}

// With returns a copy of the logger carrying an extra field.
func (l *Logger) With(key string, value any) *Logger {
	return &Logger{entry: l.entry.WithField(key, value)}
}

// LogError logs an error with context
func (l *Logger) LogError(operation string, err error) {
	l.entry.WithField("operation", operation).WithError(err).Error("operation failed")
}

// LogErrorf logs a formatted error with context
func (l *Logger) LogErrorf(operation string, format string, args ...interface{}) {
	l.entry.WithField("operation", operation).Errorf(format, args...)
}

// LogInfo logs an info message with context
func (l *Logger) LogInfo(operation string, message string) {
	l.entry.WithField("operation", operation).Info(message)
}

// LogInfof logs a formatted info message with context
func (l *Logger) LogInfof(operation string, format string, args ...interface{}) {
	l.entry.WithField("operation", operation).Infof(format, args...)
}

// LogWarn logs a warning with context
func (l *Logger) LogWarn(operation string, message string) {
	l.entry.WithField("operation", operation).Warn(message)
}

// LogWarnf logs a formatted warning with context
func (l *Logger) LogWarnf(operation string, format string, args ...interface{}) {
	l.entry.WithField("operation", operation).Warnf(format, args...)
}

// LogDebugf logs a formatted debug message with context
func (l *Logger) LogDebugf(operation string, format string, args ...interface{}) {
	l.entry.WithField("operation", operation).Debugf(format, args...)
}
