// Package cli provides the command-line interface for quill.
package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mrz1836/quill/internal/config"
	"github.com/mrz1836/quill/internal/errors"
	"github.com/mrz1836/quill/internal/tui"
)

// BuildInfo contains version information set at build time via ldflags.
type BuildInfo struct {
	// Version is the semantic version (e.g., "1.0.0").
	Version string
	// Commit is the git commit hash.
	Commit string
	// Date is the build date.
	Date string
}

// globalLogger stores the initialized logger for use by subcommands.
// This is set during PersistentPreRunE and should be accessed via GetLogger.
// This is a necessary global for CLI logger access across command handlers.
// Access is protected by globalLoggerMu for thread safety.
var (
	globalLogger   zerolog.Logger //nolint:gochecknoglobals // CLI logger requires global access
	globalLoggerMu sync.RWMutex   //nolint:gochecknoglobals // Protects globalLogger
)

// GetLogger returns the initialized logger for use by subcommands.
//
// IMPORTANT: This function MUST only be called after the root command's
// PersistentPreRunE has executed. Calling it before initialization will
// return a zero-value logger that discards all log output.
//
// This function is safe for concurrent use.
func GetLogger() zerolog.Logger {
	globalLoggerMu.RLock()
	defer globalLoggerMu.RUnlock()
	return globalLogger
}

// newRootCmd creates and returns the root command for the quill CLI.
// This function-based approach avoids package-level globals, making the
// code more testable and avoiding gochecknoglobals linter warnings.
func newRootCmd(flags *GlobalFlags, info BuildInfo) *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "quill",
		Short: "quill - sign, verify, and transform text from the command line",
		Long: `quill signs and verifies text with a symmetric keyed hash (blake3) or an
asymmetric signature scheme (ed25519), selected per call with --format.

It also carries the small text utilities that grew up alongside signing:
  • Random password generation with strength scoring
  • Base64 encoding and decoding (standard and URL-safe alphabets)
  • CSV conversion to JSON or YAML with a terminal preview

Every input flag accepts a file path or '-' for standard input.`,
		Version: formatVersion(info),
		// Run displays help when the root command is invoked without subcommands.
		// This ensures PersistentPreRunE is called for flag validation.
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Bind flags to Viper
			if err := BindGlobalFlags(v, cmd); err != nil {
				return fmt.Errorf("failed to bind flags: %w", err)
			}

			// Validate output format
			if !IsValidOutputFormat(flags.Output) {
				return fmt.Errorf("%w: %q must be one of %v", errors.ErrInvalidOutputFormat, flags.Output, ValidOutputFormats())
			}

			// The log section of the config shapes the default level and the
			// file sink. A broken config must not take logging down with it.
			logCfg := config.DefaultConfig().Log
			if cfg, err := config.Load(cmd.Context()); err == nil {
				logCfg = cfg.Log
			}

			// Initialize logger based on flags (protected by mutex for thread safety)
			globalLoggerMu.Lock()
			globalLogger = InitLogger(flags.Verbose, flags.Quiet, logCfg)
			globalLoggerMu.Unlock()

			return nil
		},
		// SilenceUsage prevents printing usage on error, SilenceErrors lets
		// Execute render errors through the tui output instead of cobra.
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add global flags
	AddGlobalFlags(cmd, flags)

	// Add subcommands
	AddTextCommand(cmd)
	AddGenPassCommand(cmd)
	AddBase64Command(cmd)
	AddCSVCommand(cmd)
	AddConfigCommand(cmd)
	AddCompletionCommand(cmd)

	return cmd
}

// formatVersion creates the version string from build info.
func formatVersion(info BuildInfo) string {
	if info.Version == "" {
		info.Version = "dev"
	}
	if info.Commit == "" {
		info.Commit = "none"
	}
	if info.Date == "" {
		info.Date = "unknown"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", info.Version, info.Commit, info.Date)
}

// Execute runs the root command with the provided context and build info.
// Errors are rendered to stderr through the tui output so the user sees the
// actionable message table on TTYs and structured objects in JSON mode; the
// caller maps the returned error to an exit code with ExitCodeForError.
func Execute(ctx context.Context, info BuildInfo) error {
	flags := &GlobalFlags{}
	//nolint:contextcheck // Cobra command pattern uses cmd.Context() internally
	cmd := newRootCmd(flags, info)

	err := cmd.ExecuteContext(ctx)
	if err != nil {
		printCommandError(os.Stderr, flags.Output, err)
	}

	return err
}

// printCommandError renders a command error through the tui output.
// Errors already emitted as JSON by the command are not printed again.
func printCommandError(w io.Writer, outputFormat string, err error) {
	if stderrors.Is(err, errors.ErrJSONErrorOutput) {
		return
	}

	out := tui.NewOutput(w, outputFormat)

	message, action := errors.Actionable(err)
	if action == "" {
		out.Error(err)
		return
	}

	actionable := tui.NewActionableError(message, action)
	if detail := err.Error(); detail != message {
		actionable = actionable.WithContext(detail)
	}
	out.Error(actionable)
}
