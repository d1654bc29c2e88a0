package log

import (
	"log/slog"

	"github.com/felixgeelhaar/taskgen/internal/errors"
)

// Logger provides structured logging with slog
type Logger struct {
	slog   *slog.Logger
	config Config
}

// New creates a new Logger with the given configuration
func New(config Config) *Logger {
	opts := &slog.HandlerOptions{
		Level:     config.Level.ToSlogLevel(),
		AddSource: config.AddSource,
	}

	var handler slog.Handler
	switch config.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(config.Output.Writer(), opts)
	case FormatText:
		handler = slog.NewTextHandler(config.Output.Writer(), opts)
	default:
		handler = slog.NewJSONHandler(config.Output.Writer(), opts)
	}

	return &Logger{
		slog:   slog.New(handler),
		config: config,
	}
}

// Default creates a logger with default configuration
func Default() *Logger {
	return New(DefaultConfig())
}

// Development creates a logger with development configuration
func Development() *Logger {
	return New(DevelopmentConfig())
}

// With returns a new Logger with the given attributes added to all log entries
func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		slog:   l.slog.With(args...),
		config: l.config,
	}
}

// WithError adds error details to the logger.
// If the error is a TaskgenError, it adds error_code and suggestions.
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l
	}

	if tgErr, ok := err.(*errors.TaskgenError); ok {
		args := []any{
			"error", tgErr.Message,
			"error_code", string(tgErr.Code),
		}

		if len(tgErr.Suggestions) > 0 {
			args = append(args, "suggestions", tgErr.Suggestions)
		}

		if tgErr.Cause != nil {
			args = append(args, "cause", tgErr.Cause.Error())
		}

		return l.With(args...)
	}

	return l.With("error", err.Error())
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, args ...any) {
	l.slog.Debug(msg, args...)
}

// Info logs an info message
func (l *Logger) Info(msg string, args ...any) {
	l.slog.Info(msg, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, args ...any) {
	l.slog.Warn(msg, args...)
}

// Error logs an error message
func (l *Logger) Error(msg string, args ...any) {
	l.slog.Error(msg, args...)
}

// LogError logs a TaskgenError with full details
func (l *Logger) LogError(err error) {
	if err == nil {
		return
	}

	if tgErr, ok := err.(*errors.TaskgenError); ok {
		args := []any{
			"error_code", string(tgErr.Code),
			"error_message", tgErr.Message,
		}

		if len(tgErr.Suggestions) > 0 {
			args = append(args, "suggestions", tgErr.Suggestions)
		}

		if tgErr.Cause != nil {
			args = append(args, "cause", tgErr.Cause.Error())
		}

		l.Error("operation failed", args...)
	} else {
		l.Error("operation failed", "error", err.Error())
	}
}
