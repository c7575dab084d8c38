package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogLevels(t *testing.T) {
	buf := new(bytes.Buffer)
	logger := NewJSONLogger(buf)

	tests := []struct {
		name     string
		level    LogLevel
		logFunc  func(string, ...interface{})
		message  string
		expected bool // Whether the message should be logged
	}{
		{
			name:     "Debug logs at DEBUG level",
			level:    DEBUG,
			logFunc:  logger.Debug,
			message:  "debug message",
			expected: true,
		},
		{
			name:     "Info logs at DEBUG level",
			level:    DEBUG,
			logFunc:  logger.Info,
			message:  "info message",
			expected: true,
		},
		{
			name:     "Debug doesn't log at INFO level",
			level:    INFO,
			logFunc:  logger.Debug,
			message:  "debug message",
			expected: false,
		},
		{
			name:     "Warn logs at INFO level",
			level:    INFO,
			logFunc:  logger.Warn,
			message:  "warn message",
			expected: true,
		},
		{
			name:     "Info doesn't log at WARN level",
			level:    WARN,
			logFunc:  logger.Info,
			message:  "info message",
			expected: false,
		},
		{
			name:     "Error logs at WARN level",
			level:    WARN,
			logFunc:  logger.Error,
			message:  "error message",
			expected: true,
		},
		{
			name:     "Warn doesn't log at ERROR level",
			level:    ERROR,
			logFunc:  logger.Warn,
			message:  "warn message",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			logger.SetLevel(tt.level)
			tt.logFunc(tt.message)

			if tt.expected {
				assert.Contains(t, buf.String(), tt.message, "Expected message to be logged")
			} else {
				assert.NotContains(t, buf.String(), tt.message, "Expected message not to be logged")
			}
		})
	}
}

func TestLogFormatting(t *testing.T) {
	buf := new(bytes.Buffer)
	logger := NewJSONLogger(buf)
	logger.SetLevel(DEBUG)

	logger.Info("Test message with %s", "formatting")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), "Each log line should be a JSON object")
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "Test message with formatting", entry["message"])
	assert.Contains(t, entry, "time", "Should carry a timestamp")
}

func TestStringToLogLevel(t *testing.T) {
	assert.Equal(t, DEBUG, StringToLogLevel("debug"))
	assert.Equal(t, WARN, StringToLogLevel("WARNING"))
	assert.Equal(t, ERROR, StringToLogLevel(" error "))
	assert.Equal(t, INFO, StringToLogLevel("verbose"))
}

func TestMockLoggerDiscards(t *testing.T) {
	logger := NewMockLogger()
	assert.NotPanics(t, func() {
		logger.Error("nothing to see %d", 42)
	})
}

func TestParseLogLevel(t *testing.T) {
	level, err := ParseLogLevel("Warn")
	require.NoError(t, err)
	assert.Equal(t, WARN, level)

	_, err = ParseLogLevel("verbose")
	assert.Error(t, err)
}
