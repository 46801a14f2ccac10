// Package tui provides terminal user interface components for quill.
//
// This file provides the interactive confirmation prompt using Charm Huh.
// Quill only ever asks one kind of question (overwrite an existing key
// file?), so the menu surface is a single Confirm with theme and width
// handling shared through runFormWithConfig.
package tui

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	quillerrors "github.com/mrz1836/quill/internal/errors"
)

// Terminal layout constants.
const (
	// TerminalEdgeMargin is the number of characters to leave between
	// prompt content and the terminal edge for visual padding.
	TerminalEdgeMargin = 4

	// MinPromptWidth is the minimum usable width for prompt content.
	MinPromptWidth = 40

	// DefaultPromptWidth caps prompt width on wide terminals.
	DefaultPromptWidth = 100
)

// PromptConfig holds configuration for interactive prompts.
type PromptConfig struct {
	// Width is the maximum width for the prompt. If 0, adapts to terminal width.
	Width int
	// Accessible enables accessible mode for screen readers.
	Accessible bool
	// ShowKeyHints controls whether key hints are displayed.
	ShowKeyHints bool
}

// PromptOption is a functional option for configuring PromptConfig.
type PromptOption func(*PromptConfig)

// WithPromptWidth sets the prompt width.
func WithPromptWidth(width int) PromptOption {
	return func(c *PromptConfig) {
		c.Width = width
	}
}

// WithPromptAccessible enables or disables accessible mode.
func WithPromptAccessible(enabled bool) PromptOption {
	return func(c *PromptConfig) {
		c.Accessible = enabled
	}
}

// NewPromptConfig creates a PromptConfig with sensible defaults.
// It automatically detects accessible mode from the ACCESSIBLE environment variable.
func NewPromptConfig(opts ...PromptOption) *PromptConfig {
	_, accessible := os.LookupEnv("ACCESSIBLE")

	c := &PromptConfig{
		Width:        DefaultPromptWidth,
		Accessible:   accessible,
		ShowKeyHints: true,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// adaptWidth returns an appropriate prompt width based on terminal size.
// It respects the maxWidth constraint while adapting to narrower terminals.
func adaptWidth(maxWidth int) int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		if maxWidth <= 0 {
			return DefaultPromptWidth
		}
		return maxWidth
	}

	// Leave some margin from terminal edge for visual padding
	availableWidth := width - TerminalEdgeMargin

	// Use the smaller of maxWidth and available terminal width
	if maxWidth > 0 && maxWidth < availableWidth {
		return maxWidth
	}

	// Ensure minimum usable width
	if availableWidth < MinPromptWidth {
		return MinPromptWidth
	}

	return availableWidth
}

// runFormWithConfig creates and runs a form with the given field and config.
// It handles common setup (theme, width, accessibility) and error handling.
// The errorContext parameter is used to wrap errors with descriptive context.
func runFormWithConfig(field huh.Field, cfg *PromptConfig, errorContext string) error {
	// Interactive prompts need a terminal. Without one the caller must be
	// told to pass --force instead of silently blocking (and tests must
	// never hang waiting for input).
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return quillerrors.ErrNonInteractiveMode
	}

	CheckNoColor()

	width := adaptWidth(cfg.Width)

	form := huh.NewForm(huh.NewGroup(field)).
		WithTheme(QuillTheme()).
		WithWidth(width).
		WithAccessible(cfg.Accessible).
		WithShowHelp(cfg.ShowKeyHints)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return quillerrors.ErrOperationCanceled
		}
		return fmt.Errorf("%s: %w", errorContext, err)
	}

	return nil
}

// QuillTheme returns a custom Huh theme using quill colors from styles.go.
// Uses AdaptiveColor for proper light/dark terminal support.
func QuillTheme() *huh.Theme {
	// Check color support (NO_COLOR handling)
	CheckNoColor()

	// Start with base theme and customize
	t := huh.ThemeBase()

	// Map ColorPrimary to focused state (uses AdaptiveColor for light/dark support)
	t.Focused.Base = t.Focused.Base.BorderForeground(ColorPrimary)
	t.Focused.Title = t.Focused.Title.Foreground(ColorPrimary)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(ColorPrimary)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(ColorPrimary)
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(ColorPrimary)

	// Map ColorSuccess to selected/completed state
	t.Focused.SelectedPrefix = t.Focused.SelectedPrefix.Foreground(ColorSuccess)

	// Map ColorError to error/validation failed state
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(ColorError)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(ColorError)

	// Map ColorMuted to unfocused/help text state
	t.Blurred.Base = t.Blurred.Base.BorderForeground(ColorMuted)
	t.Blurred.Title = t.Blurred.Title.Foreground(ColorMuted)
	t.Focused.Description = t.Focused.Description.Foreground(ColorMuted)
	t.Help.Ellipsis = t.Help.Ellipsis.Foreground(ColorMuted)

	return t
}

// Confirm presents a yes/no confirmation prompt.
// Returns ErrNonInteractiveMode when stdin is not a terminal and
// ErrOperationCanceled when the user aborts with q or Esc.
func Confirm(message string, defaultYes bool) (bool, error) {
	return ConfirmWithConfig(message, defaultYes, NewPromptConfig())
}

// ConfirmWithConfig presents a confirmation prompt with custom configuration.
func ConfirmWithConfig(message string, defaultYes bool, cfg *PromptConfig) (bool, error) {
	confirmed := defaultYes

	confirmField := huh.NewConfirm().
		Title(message).
		Affirmative("Yes").
		Negative("No").
		Value(&confirmed)

	if err := runFormWithConfig(confirmField, cfg, "confirm prompt failed"); err != nil {
		return false, err
	}

	return confirmed, nil
}
