package cli

import (
	"bytes"
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/quill/internal/constants"
	"github.com/mrz1836/quill/internal/errors"
)

func TestRootCmd_Help(t *testing.T) {
	t.Parallel()

	flags := &GlobalFlags{}
	cmd := newRootCmd(flags, BuildInfo{Version: "test"})
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "quill")
	assert.Contains(t, output, "text")
	assert.Contains(t, output, "genpass")
	assert.Contains(t, output, "base64")
	assert.Contains(t, output, "csv")
	assert.Contains(t, output, "--output")
	assert.Contains(t, output, "--verbose")
	assert.Contains(t, output, "--quiet")
	assert.Contains(t, output, "--version")
}

func TestRootCmd_Version(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		info           BuildInfo
		expectContains []string
	}{
		{
			name: "full version info",
			info: BuildInfo{
				Version: "1.0.0",
				Commit:  "abc1234",
				Date:    "2025-01-01",
			},
			expectContains: []string{"1.0.0", "abc1234", "2025-01-01"},
		},
		{
			name:           "default dev version",
			info:           BuildInfo{},
			expectContains: []string{"dev", "none", "unknown"},
		},
		{
			name: "partial version info",
			info: BuildInfo{
				Version: "2.0.0-beta",
			},
			expectContains: []string{"2.0.0-beta", "none", "unknown"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			flags := &GlobalFlags{}
			cmd := newRootCmd(flags, tc.info)
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetErr(buf)
			cmd.SetArgs([]string{"--version"})

			err := cmd.Execute()
			require.NoError(t, err)

			output := buf.String()
			for _, expected := range tc.expectContains {
				assert.Contains(t, output, expected)
			}
		})
	}
}

func TestFormatVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		info     BuildInfo
		expected string
	}{
		{
			name: "all fields set",
			info: BuildInfo{
				Version: "1.0.0",
				Commit:  "abc123",
				Date:    "2025-01-01",
			},
			expected: "1.0.0 (commit: abc123, built: 2025-01-01)",
		},
		{
			name:     "empty info uses defaults",
			info:     BuildInfo{},
			expected: "dev (commit: none, built: unknown)",
		},
		{
			name: "partial info fills defaults",
			info: BuildInfo{
				Version: "2.0.0",
			},
			expected: "2.0.0 (commit: none, built: unknown)",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, formatVersion(tc.info))
		})
	}
}

func TestRootCmd_OutputFlag(t *testing.T) {
	// Can't use t.Parallel() with t.Setenv()
	tests := []struct {
		name          string
		args          []string
		expectedValue string
		expectError   bool
	}{
		{
			name:          "text output",
			args:          []string{"--output", "text"},
			expectedValue: OutputText,
		},
		{
			name:          "json output",
			args:          []string{"--output", "json"},
			expectedValue: OutputJSON,
		},
		{
			name:          "shorthand output",
			args:          []string{"-o", "json"},
			expectedValue: OutputJSON,
		},
		{
			name:        "invalid output format",
			args:        []string{"--output", "xml"},
			expectError: true,
		},
		{
			name:        "empty output format",
			args:        []string{"--output", ""},
			expectError: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(constants.EnvHome, t.TempDir())

			flags := &GlobalFlags{}
			cmd := newRootCmd(flags, BuildInfo{})
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetErr(buf)
			cmd.SetArgs(tc.args)

			err := cmd.Execute()

			if tc.expectError {
				require.Error(t, err)
				require.ErrorIs(t, err, errors.ErrInvalidOutputFormat)
				assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.expectedValue, flags.Output)
			}
		})
	}
}

func TestRootCmd_VerboseQuietMutuallyExclusive(t *testing.T) {
	// Cobra validates flag groups after PersistentPreRunE has initialized
	// config and logging, so the home directory must be redirected.
	// Can't use t.Parallel() with t.Setenv()
	t.Setenv(constants.EnvHome, t.TempDir())

	flags := &GlobalFlags{}
	cmd := newRootCmd(flags, BuildInfo{})
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--verbose", "--quiet"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "verbose")
	assert.Contains(t, err.Error(), "quiet")
	assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
}

func TestRootCmd_SilencesUsageOnError(t *testing.T) {
	t.Parallel()

	flags := &GlobalFlags{}
	cmd := newRootCmd(flags, BuildInfo{})
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--output", "invalid"})

	err := cmd.Execute()
	require.Error(t, err)

	// Usage should not be in output (SilenceUsage is set)
	output := buf.String()
	assert.NotContains(t, output, "Usage:")
}

func TestRootCmd_UnknownCommand(t *testing.T) {
	t.Parallel()

	flags := &GlobalFlags{}
	cmd := newRootCmd(flags, BuildInfo{})
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"frobnicate"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
}

func TestExecute(t *testing.T) {
	// Can't use t.Parallel() with t.Setenv()
	t.Setenv(constants.EnvHome, t.TempDir())

	ctx := context.Background()
	info := BuildInfo{
		Version: "test",
		Commit:  "test123",
		Date:    "today",
	}

	// Execute should not error with valid args
	err := Execute(ctx, info)
	require.NoError(t, err)
}

func TestGetLogger(t *testing.T) {
	// Can't use t.Parallel() with t.Setenv()
	t.Setenv(constants.EnvHome, t.TempDir())

	// Execute a command to initialize the logger
	flags := &GlobalFlags{}
	cmd := newRootCmd(flags, BuildInfo{})
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.NoError(t, err)

	// GetLogger should return a valid logger after execution
	logger := GetLogger()
	assert.NotNil(t, logger)
}

func TestPrintCommandError(t *testing.T) {
	t.Parallel()

	t.Run("json sentinel is not re-rendered", func(t *testing.T) {
		t.Parallel()

		buf := new(bytes.Buffer)
		printCommandError(buf, OutputText, errors.Wrap(errors.ErrJSONErrorOutput, "verification failed"))
		assert.Empty(t, buf.String())
	})

	t.Run("plain error renders with cross mark", func(t *testing.T) {
		t.Parallel()

		buf := new(bytes.Buffer)
		printCommandError(buf, OutputText, stderrors.New("something broke"))

		output := buf.String()
		assert.Contains(t, output, "✗")
		assert.Contains(t, output, "something broke")
	})

	t.Run("mapped sentinel renders message and suggestion", func(t *testing.T) {
		t.Parallel()

		buf := new(bytes.Buffer)
		printCommandError(buf, OutputText, errors.Wrap(errors.ErrKeyNotFound, "blake3.key"))

		output := buf.String()
		assert.Contains(t, output, "The key file was not found.")
		assert.Contains(t, output, "quill text keygen")
	})

	t.Run("json output renders structured error", func(t *testing.T) {
		t.Parallel()

		buf := new(bytes.Buffer)
		printCommandError(buf, OutputJSON, errors.Wrap(errors.ErrKeyNotFound, "blake3.key"))

		output := buf.String()
		assert.Contains(t, output, `"type":"error"`)
		assert.Contains(t, output, "The key file was not found.")
	})
}
