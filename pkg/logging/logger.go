package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// LogLevel defines the severity of the message
type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
)

// NewMockLogger returns a convenient mock logger for testing
func NewMockLogger() *DefaultLogger {
	l := &DefaultLogger{level: INFO}
	l.SetOutput(io.Discard)
	return l
}

// Logger interface defines logging operations
//
//go:generate mockery --name=Logger --output=./mocks
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
	SetOutput(w io.Writer)
	SetLevel(level LogLevel)
}

// DefaultLogger provides a standard implementation backed by zerolog
type DefaultLogger struct {
	zl    zerolog.Logger
	level LogLevel
}

// NewDefaultLogger creates a new logger writing human-readable lines to stderr
func NewDefaultLogger() *DefaultLogger {
	l := &DefaultLogger{level: INFO}
	l.zl = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.DateTime}).
		With().Timestamp().Logger().
		Level(toZerolog(l.level))
	return l
}

// NewJSONLogger creates a new logger writing one JSON object per line to w
func NewJSONLogger(w io.Writer) *DefaultLogger {
	l := &DefaultLogger{level: INFO}
	l.SetOutput(w)
	return l
}

// Debug logs debug messages
func (l *DefaultLogger) Debug(format string, args ...interface{}) {
	l.zl.Debug().Msgf(format, args...)
}

// Info logs informational messages
func (l *DefaultLogger) Info(format string, args ...interface{}) {
	l.zl.Info().Msgf(format, args...)
}

// Warn logs warning messages
func (l *DefaultLogger) Warn(format string, args ...interface{}) {
	l.zl.Warn().Msgf(format, args...)
}

// Error logs error messages
func (l *DefaultLogger) Error(format string, args ...interface{}) {
	l.zl.Error().Msgf(format, args...)
}

// SetOutput switches the logger to JSON lines on w
func (l *DefaultLogger) SetOutput(w io.Writer) {
	l.zl = zerolog.New(w).With().Timestamp().Logger().Level(toZerolog(l.level))
}

// SetLevel sets the logging level
func (l *DefaultLogger) SetLevel(level LogLevel) {
	l.level = level
	l.zl = l.zl.Level(toZerolog(level))
}

func toZerolog(level LogLevel) zerolog.Level {
	switch level {
	case DEBUG:
		return zerolog.DebugLevel
	case WARN:
		return zerolog.WarnLevel
	case ERROR:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// StringToLogLevel converts a string representation to a LogLevel
func StringToLogLevel(level string) LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return DEBUG
	case "info":
		return INFO
	case "warn", "warning":
		return WARN
	case "error":
		return ERROR
	default:
		return INFO
	}
}

// ParseLogLevel is the strict form of StringToLogLevel: unknown names are an error.
func ParseLogLevel(level string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug", "info", "warn", "warning", "error":
		return StringToLogLevel(level), nil
	default:
		return INFO, fmt.Errorf("unknown log level %q (use debug, info, warn or error)", level)
	}
}
