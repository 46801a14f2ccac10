// Package cli provides the command-line interface for quill.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/mrz1836/quill/internal/config"
	"github.com/mrz1836/quill/internal/constants"
	"github.com/mrz1836/quill/internal/logging"
)

// logFileWriter holds the log file writer for cleanup purposes.
// This is package-level to enable cleanup during shutdown.
var logFileWriter io.WriteCloser //nolint:gochecknoglobals // Needed for cleanup

// zerologConfigOnce ensures zerolog global settings are configured exactly once.
var zerologConfigOnce sync.Once //nolint:gochecknoglobals // One-time configuration

// zerologGlobalMu protects concurrent writes to the zerolog global logger.
// This is separate from globalLoggerMu to avoid deadlocks.
var zerologGlobalMu sync.Mutex //nolint:gochecknoglobals // Protects zerolog global

// configureZerologGlobals sets zerolog global field names so every sink
// shares the same entry structure. Safe for concurrent use.
func configureZerologGlobals() {
	zerologConfigOnce.Do(func() {
		zerolog.TimestampFieldName = "ts"
		zerolog.MessageFieldName = "event"
	})
}

// InitLogger creates and configures a zerolog.Logger from verbosity flags
// and the log section of the configuration.
//
// Log levels are set as follows:
//   - verbose=true: Debug level (most detailed)
//   - quiet=true: Error level (errors only)
//   - default: the configured log.level (info when unset)
//
// Output format is determined by the terminal:
//   - TTY with colors enabled: Console writer with timestamps
//   - Non-TTY or NO_COLOR set: JSON output to stderr
//
// When log.file_enabled is true the logger also writes to
// ~/.quill/logs/quill.log with rotation. If the log file cannot be created,
// the logger continues with console-only output.
//
// Every run is tagged with a short run_id field so the log lines of one
// invocation can be correlated across sinks.
func InitLogger(verbose, quiet bool, logCfg config.LogConfig) zerolog.Logger {
	configureZerologGlobals()

	level := selectLevel(verbose, quiet, logCfg.Level)
	hook := logging.NewSensitiveDataHook()
	console := selectOutput()

	writer := console
	if logCfg.FileEnabled {
		if fileWriter, err := createLogFileWriter(); err == nil {
			// Store file writer for cleanup
			logFileWriter = fileWriter
			writer = zerolog.MultiLevelWriter(console, fileWriter)
		}
	}

	logger := buildLogger(level, hook, writer)
	setGlobalLogger(logger)
	return logger
}

// InitLoggerWithWriter creates and configures a zerolog.Logger with a custom
// writer. This is primarily intended for testing purposes.
func InitLoggerWithWriter(verbose, quiet bool, w io.Writer) zerolog.Logger {
	configureZerologGlobals()

	level := selectLevel(verbose, quiet, "")
	hook := logging.NewSensitiveDataHook()

	logger := buildLogger(level, hook, w)
	setGlobalLogger(logger)
	return logger
}

// buildLogger assembles the logger with the shared field set.
func buildLogger(level zerolog.Level, hook zerolog.Hook, writer io.Writer) zerolog.Logger {
	runID := uuid.New().String()[:8]

	return zerolog.New(writer).
		Level(level).
		Hook(hook).
		With().
		Timestamp().
		Str("run_id", runID).
		Logger()
}

// setGlobalLogger configures the global zerolog logger to match our CLI logger
// config. This ensures that any code using log.Debug(), log.Info(), etc. from
// the github.com/rs/zerolog/log package uses the same formatting as our CLI
// logger. This function is safe for concurrent use.
func setGlobalLogger(cliLogger zerolog.Logger) {
	zerologGlobalMu.Lock()
	defer zerologGlobalMu.Unlock()
	log.Logger = cliLogger
}

// CloseLogFile closes the global log file writer if it was opened.
// This should be called during application shutdown for clean cleanup.
func CloseLogFile() {
	if logFileWriter != nil {
		_ = logFileWriter.Close()
		logFileWriter = nil
	}
}

// selectLevel determines the appropriate log level. The flags win over the
// configured level; an unparseable configured level falls back to info.
func selectLevel(verbose, quiet bool, configured string) zerolog.Level {
	switch {
	case verbose:
		return zerolog.DebugLevel
	case quiet:
		return zerolog.ErrorLevel
	}

	if configured != "" {
		if level, err := zerolog.ParseLevel(configured); err == nil {
			return level
		}
	}

	return zerolog.InfoLevel
}

// selectOutput determines the appropriate output writer based on
// terminal capabilities and environment settings.
func selectOutput() io.Writer {
	// Use console writer for TTY without NO_COLOR
	if term.IsTerminal(int(os.Stderr.Fd())) && os.Getenv("NO_COLOR") == "" {
		return zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
		}
	}

	// Default to JSON output for non-TTY or when NO_COLOR is set
	return os.Stderr
}

// filteringWriteCloser wraps a WriteCloser with sensitive data filtering.
// It implements io.WriteCloser so it can be used as a drop-in replacement.
type filteringWriteCloser struct {
	filter *logging.FilteringWriter
	closer io.Closer
}

// Write implements io.Writer by delegating to the filtering writer.
func (fwc *filteringWriteCloser) Write(p []byte) (n int, err error) {
	return fwc.filter.Write(p)
}

// Close implements io.Closer by delegating to the underlying closer.
func (fwc *filteringWriteCloser) Close() error {
	return fwc.closer.Close()
}

// createLogFileWriter creates a rotating file writer for the global CLI log.
// Returns a lumberjack logger configured with rotation settings, wrapped with
// a filtering writer so key material and passwords never reach the disk.
func createLogFileWriter() (io.WriteCloser, error) {
	logDir, err := config.DefaultLogsDir()
	if err != nil {
		return nil, err
	}

	logPath := filepath.Join(logDir, constants.CLILogFileName)

	// Ensure log directory exists
	if err := os.MkdirAll(logDir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	// Create rotating log file writer
	lj := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    constants.LogMaxSizeMB,
		MaxBackups: constants.LogMaxBackups,
		MaxAge:     constants.LogMaxAgeDays,
		Compress:   constants.LogCompress,
	}

	return &filteringWriteCloser{
		filter: logging.NewFilteringWriter(lj),
		closer: lj,
	}, nil
}

// LogFilePath returns the path to the global CLI log file.
// This is useful for displaying the log location to users.
func LogFilePath() (string, error) {
	logDir, err := config.DefaultLogsDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(logDir, constants.CLILogFileName), nil
}
