package log

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSlogLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogLogger(slog.LevelInfo, &buf)

	assert.NotNil(t, logger)
	assert.NotNil(t, logger.logger)
}

func TestSlogLogger_Levels(t *testing.T) {
	tests := []struct {
		name  string
		level slog.Level
		log   func(l *SlogLogger)
		want  string
	}{
		{"debug", slog.LevelDebug, func(l *SlogLogger) { l.Debug("test debug", "key", "value") }, "test debug"},
		{"info", slog.LevelInfo, func(l *SlogLogger) { l.Info("test info", "key", "value") }, "test info"},
		{"warn", slog.LevelWarn, func(l *SlogLogger) { l.Warn("test warn", "key", "value") }, "test warn"},
		{"error", slog.LevelError, func(l *SlogLogger) { l.Error("test error", "key", "value") }, "test error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(NewSlogLogger(tt.level, &buf))

			output := buf.String()
			assert.Contains(t, output, tt.want)
			assert.Contains(t, output, "key=value")
		})
	}
}

func TestSlogLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogLogger(slog.LevelWarn, &buf)

	logger.Debug("debug message") // should be filtered out
	logger.Info("info message")   // should be filtered out
	logger.Warn("warn message")   // should appear
	logger.Error("error message") // should appear

	output := buf.String()
	assert.NotContains(t, output, "debug message")
	assert.NotContains(t, output, "info message")
	assert.Contains(t, output, "warn message")
	assert.Contains(t, output, "error message")
}

func TestSlogLogger_With(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogLogger(slog.LevelInfo, &buf).With("command", "apps")

	logger.Info("running")

	assert.Contains(t, buf.String(), "command=apps")
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		" error ": slog.LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	assert.EqualError(t, err, "invalid log level: loud")
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() {
		Nop.Debug("a")
		Nop.Info("b", "k", "v")
		Nop.Warn("c")
		Nop.Error("d")
	})
}
