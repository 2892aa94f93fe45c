package logger_test

import (
	"bytes"
	"clinic/config"
	"clinic/shared/logger"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLogger(t *testing.T) {
	originalLogger := log.Logger
	defer func() { log.Logger = originalLogger }()

	logger.InitLogger()

	assert.Equal(t, zerolog.TimeFormatUnix, zerolog.TimeFieldFormat)
	assert.Equal(t, zerolog.TraceLevel, zerolog.GlobalLevel())
}

func TestErrorWithStack(t *testing.T) {
	originalLogger := log.Logger
	defer func() { log.Logger = originalLogger }()

	var buf bytes.Buffer
	log.Logger = log.Output(&buf)

	logger.ErrorWithStack(errors.New("serialization failure"))

	assert.Contains(t, buf.String(), "serialization failure")
}

func TestSetLogLevel(t *testing.T) {
	originalLevel := zerolog.GlobalLevel()
	defer zerolog.SetGlobalLevel(originalLevel)

	tests := []struct {
		name     string
		level    string
		expected zerolog.Level
	}{
		{name: "debug", level: "debug", expected: zerolog.DebugLevel},
		{name: "info", level: "info", expected: zerolog.InfoLevel},
		{name: "error", level: "error", expected: zerolog.ErrorLevel},
		{name: "unknown falls back to trace", level: "verbose", expected: zerolog.TraceLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.Server.LogLevel = tt.level

			logger.SetLogLevel(cfg)

			assert.Equal(t, tt.expected, zerolog.GlobalLevel())
		})
	}
}

func TestNewFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "activity.log")

	fileLogger, file, err := logger.NewFileLogger(path)
	require.NoError(t, err)

	fileLogger.Info().Str("action", "created").Msg("first")
	fileLogger.Info().Str("action", "cancelled").Msg("second")
	require.NoError(t, file.Close())

	// reopening must append, never truncate
	fileLogger, file, err = logger.NewFileLogger(path)
	require.NoError(t, err)

	fileLogger.Info().Msg("third")
	require.NoError(t, file.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := bytes.Split(bytes.TrimSpace(content), []byte("\n"))
	assert.Len(t, lines, 3)
	assert.Contains(t, string(lines[0]), `"action":"created"`)
	assert.Contains(t, string(lines[2]), "third")
}
