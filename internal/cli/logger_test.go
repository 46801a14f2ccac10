package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/quill/internal/config"
	"github.com/mrz1836/quill/internal/constants"
)

func TestInitLogger_VerboseMode(t *testing.T) {
	t.Parallel()

	// Use custom writer to avoid file creation side effects
	var buf bytes.Buffer
	logger := InitLoggerWithWriter(true, false, &buf)
	assert.Equal(t, zerolog.DebugLevel, logger.GetLevel())
}

func TestInitLogger_QuietMode(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := InitLoggerWithWriter(false, true, &buf)
	assert.Equal(t, zerolog.ErrorLevel, logger.GetLevel())
}

func TestInitLogger_DefaultMode(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := InitLoggerWithWriter(false, false, &buf)
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
}

func TestSelectLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		verbose       bool
		quiet         bool
		configured    string
		expectedLevel zerolog.Level
	}{
		{
			name:          "default returns info",
			expectedLevel: zerolog.InfoLevel,
		},
		{
			name:          "verbose returns debug",
			verbose:       true,
			expectedLevel: zerolog.DebugLevel,
		},
		{
			name:          "quiet returns error",
			quiet:         true,
			expectedLevel: zerolog.ErrorLevel,
		},
		{
			name:          "verbose takes precedence over quiet",
			verbose:       true,
			quiet:         true,
			expectedLevel: zerolog.DebugLevel,
		},
		{
			name:          "configured level applies without flags",
			configured:    "warn",
			expectedLevel: zerolog.WarnLevel,
		},
		{
			name:          "configured trace applies",
			configured:    "trace",
			expectedLevel: zerolog.TraceLevel,
		},
		{
			name:          "verbose overrides configured level",
			verbose:       true,
			configured:    "error",
			expectedLevel: zerolog.DebugLevel,
		},
		{
			name:          "quiet overrides configured level",
			quiet:         true,
			configured:    "debug",
			expectedLevel: zerolog.ErrorLevel,
		},
		{
			name:          "unparseable configured level falls back to info",
			configured:    "chatty",
			expectedLevel: zerolog.InfoLevel,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			level := selectLevel(tc.verbose, tc.quiet, tc.configured)
			assert.Equal(t, tc.expectedLevel, level)
		})
	}
}

func TestSelectOutput_NonTTY(t *testing.T) {
	// This test runs in a non-TTY environment (typical for CI/tests).
	// In non-TTY mode, selectOutput always returns os.Stderr regardless of NO_COLOR.

	output := selectOutput()
	assert.NotNil(t, output)
	assert.Equal(t, os.Stderr, output)
}

func TestSelectOutput_RespectsNO_COLOR(t *testing.T) {
	// t.Setenv automatically restores the original value after test
	t.Setenv("NO_COLOR", "1")

	output := selectOutput()
	assert.NotNil(t, output)
	// In non-TTY or NO_COLOR mode, output should be os.Stderr
	assert.Equal(t, os.Stderr, output)
}

func TestInitLogger_WithNO_COLOR(t *testing.T) {
	// Verify logger initializes correctly when NO_COLOR is set.

	// t.Setenv automatically restores the original value after test
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	logger := InitLoggerWithWriter(false, false, &buf)
	assert.NotEqual(t, zerolog.Logger{}, logger)
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
}

func TestCreateLogFileWriter_CreatesDirectory(t *testing.T) {
	// Can't use t.Parallel() with t.Setenv()

	tmpDir := t.TempDir()
	t.Setenv(constants.EnvHome, tmpDir)

	writer, err := createLogFileWriter()
	require.NoError(t, err)
	require.NotNil(t, writer)
	defer func() { _ = writer.Close() }()

	logDir := filepath.Join(tmpDir, constants.LogsDir)
	info, err := os.Stat(logDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestCreateLogFileWriter_CreatesLogFile(t *testing.T) {
	// Can't use t.Parallel() with t.Setenv()

	tmpDir := t.TempDir()
	t.Setenv(constants.EnvHome, tmpDir)

	writer, err := createLogFileWriter()
	require.NoError(t, err)
	require.NotNil(t, writer)

	// Write something to trigger file creation
	_, err = writer.Write([]byte(`{"level":"info","event":"test"}`))
	require.NoError(t, err)

	err = writer.Close()
	require.NoError(t, err)

	logPath := filepath.Join(tmpDir, constants.LogsDir, constants.CLILogFileName)
	info, err := os.Stat(logPath)
	require.NoError(t, err)
	assert.False(t, info.IsDir())
	assert.Positive(t, info.Size())
}

func TestCreateLogFileWriter_FailsOnInvalidPath(t *testing.T) {
	// Can't use t.Parallel() with t.Setenv()

	// Create a file where a directory is expected so MkdirAll fails
	tmpDir := t.TempDir()
	filePath := filepath.Join(tmpDir, "not_a_directory")
	err := os.WriteFile(filePath, []byte("test"), 0o600)
	require.NoError(t, err)

	t.Setenv(constants.EnvHome, filePath)

	writer, err := createLogFileWriter()
	require.Error(t, err)
	assert.Nil(t, writer)
	assert.Contains(t, err.Error(), "failed to create log directory")
}

func TestLogFilePath(t *testing.T) {
	// Can't use t.Parallel() with t.Setenv()

	tmpDir := t.TempDir()
	t.Setenv(constants.EnvHome, tmpDir)

	path, err := LogFilePath()
	require.NoError(t, err)

	expected := filepath.Join(tmpDir, constants.LogsDir, constants.CLILogFileName)
	assert.Equal(t, expected, path)
}

func TestInitLogger_WritesToFile(t *testing.T) {
	// Can't use t.Parallel() with t.Setenv()

	tmpDir := t.TempDir()
	t.Setenv(constants.EnvHome, tmpDir)

	// Reset log file writer from any previous tests
	logFileWriter = nil

	logger := InitLogger(false, false, config.LogConfig{Level: "info", FileEnabled: true})

	logger.Info().Str("test_key", "test_value").Msg("test message")

	// Close the log file to flush
	CloseLogFile()

	logPath := filepath.Join(tmpDir, constants.LogsDir, constants.CLILogFileName)
	data, err := os.ReadFile(logPath) //#nosec G304 -- path is constructed from test temp dir
	require.NoError(t, err)
	assert.Contains(t, string(data), "test_key")
	assert.Contains(t, string(data), "test_value")
	assert.Contains(t, string(data), "test message")
}

func TestInitLogger_FileDisabled(t *testing.T) {
	// Can't use t.Parallel() with t.Setenv()

	tmpDir := t.TempDir()
	t.Setenv(constants.EnvHome, tmpDir)

	logFileWriter = nil

	logger := InitLogger(false, false, config.LogConfig{Level: "info", FileEnabled: false})
	logger.Info().Msg("console only")

	CloseLogFile()

	// No log directory should have been created
	_, err := os.Stat(filepath.Join(tmpDir, constants.LogsDir))
	assert.True(t, os.IsNotExist(err))
}

func TestCloseLogFile_NoOpWhenNil(_ *testing.T) {
	// Can't use t.Parallel() when accessing package-level state

	logFileWriter = nil

	// Should not panic
	CloseLogFile()
}

func TestInitLoggerWithWriter_CustomOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := InitLoggerWithWriter(true, false, &buf)

	logger.Debug().Msg("debug message")

	output := buf.String()
	assert.Contains(t, output, "debug message")
}

func TestLogEntryStructure_MatchesExpectedFields(t *testing.T) {
	t.Parallel()

	configureZerologGlobals()

	var buf bytes.Buffer
	logger := InitLoggerWithWriter(false, false, &buf)

	logger.Info().
		Str("format", "blake3").
		Str("source", "notes.txt").
		Int("bytes", 42).
		Msg("signed input")

	output := buf.String()

	assert.Contains(t, output, `"ts":`)    // timestamp field
	assert.Contains(t, output, `"level":`) // level field
	assert.Contains(t, output, `"event":`) // message field (not "message")
	assert.Contains(t, output, `"run_id":`)
	assert.Contains(t, output, `"format":"blake3"`)
	assert.Contains(t, output, `"source":"notes.txt"`)
	assert.Contains(t, output, `"bytes":42`)
	assert.Contains(t, output, "signed input")
}

func TestInitLoggerWithWriter_RunIDIsShort(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := InitLoggerWithWriter(false, false, &buf)

	logger.Info().Msg("first")

	line := strings.SplitN(buf.String(), "\n", 2)[0]

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &entry))

	runID, ok := entry["run_id"].(string)
	require.True(t, ok, "run_id should be a string field")
	assert.Len(t, runID, 8)
}

func TestConfigureZerologGlobals_Idempotent(t *testing.T) {
	t.Parallel()

	// Call multiple times - should not panic or change behavior
	configureZerologGlobals()
	configureZerologGlobals()
	configureZerologGlobals()

	assert.Equal(t, "ts", zerolog.TimestampFieldName)
	assert.Equal(t, "event", zerolog.MessageFieldName)
}

func TestInitLogger_RedactsSensitiveDataInFile(t *testing.T) {
	// Can't use t.Parallel() with t.Setenv()

	tmpDir := t.TempDir()
	t.Setenv(constants.EnvHome, tmpDir)

	logFileWriter = nil

	logger := InitLogger(false, false, config.LogConfig{Level: "info", FileEnabled: true})

	// Log a message containing labelled key material
	hexKey := strings.Repeat("ab", 32)
	logger.Info().Msg("minted key: " + hexKey)

	CloseLogFile()

	logPath := filepath.Join(tmpDir, constants.LogsDir, constants.CLILogFileName)
	data, err := os.ReadFile(logPath) //#nosec G304 -- path is constructed from test temp dir
	require.NoError(t, err)

	content := string(data)

	// The key material should NOT appear in the log file
	assert.NotContains(t, content, hexKey, "key material should be redacted from log file")

	// The redaction marker should appear
	assert.Contains(t, content, "[REDACTED]", "redaction marker should be present")
}
