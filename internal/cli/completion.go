// Package cli provides the command-line interface for quill.
package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

// shellType represents supported shell types.
type shellType string

// Sentinel errors for completion commands.
var (
	errUnsupportedShell = errors.New("unsupported shell (supported: zsh, bash, fish)")
	errNoShellDetected  = errors.New("could not detect shell from $SHELL environment variable; use --shell flag")
)

const (
	shellZsh     shellType = "zsh"
	shellBash    shellType = "bash"
	shellFish    shellType = "fish"
	shellUnknown shellType = "unknown"
)

// completionShell describes one generation subcommand: how to load the
// script in the current session and how to generate it.
type completionShell struct {
	use   string
	load  string
	gen   func(root *cobra.Command, w io.Writer) error
	extra string
}

// completionShells lists the supported generation targets.
func completionShells() []completionShell {
	return []completionShell{
		{
			use:  "bash",
			load: "source <(quill completion bash)",
			gen: func(root *cobra.Command, w io.Writer) error {
				return root.GenBashCompletion(w)
			},
			extra: "To install completions permanently:\n  quill completion install --shell bash",
		},
		{
			use:  "zsh",
			load: "source <(quill completion zsh)",
			gen: func(root *cobra.Command, w io.Writer) error {
				return root.GenZshCompletion(w)
			},
			extra: "To install completions permanently:\n  quill completion install --shell zsh",
		},
		{
			use:  "fish",
			load: "quill completion fish | source",
			gen: func(root *cobra.Command, w io.Writer) error {
				return root.GenFishCompletion(w, true)
			},
			extra: "To install completions permanently:\n  quill completion install --shell fish",
		},
		{
			use:  "powershell",
			load: "quill completion powershell | Out-String | Invoke-Expression",
			gen: func(root *cobra.Command, w io.Writer) error {
				return root.GenPowerShellCompletionWithDesc(w)
			},
		},
	}
}

// AddCompletionCommand adds the completion command with subcommands to the
// root command. It replaces Cobra's default completion command with one that
// includes an "install" subcommand for easy setup.
func AddCompletionCommand(rootCmd *cobra.Command) {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	completionCmd := &cobra.Command{
		Use:   "completion",
		Short: "Generate shell completions",
		Long: `Generate shell completion scripts for quill.

To install completions automatically:
  quill completion install

To generate completion scripts manually:
  quill completion bash
  quill completion zsh
  quill completion fish
  quill completion powershell`,
	}

	for _, shell := range completionShells() {
		completionCmd.AddCommand(newShellCompletionCmd(shell))
	}
	completionCmd.AddCommand(newInstallCompletionCmd())

	rootCmd.AddCommand(completionCmd)
}

// newShellCompletionCmd builds the generation subcommand for one shell.
func newShellCompletionCmd(shell completionShell) *cobra.Command {
	long := fmt.Sprintf(`Generate %s completion script for quill.

To load completions in current session:
  %s`, shell.use, shell.load)
	if shell.extra != "" {
		long += "\n\n" + shell.extra
	}

	return &cobra.Command{
		Use:                   shell.use,
		Short:                 fmt.Sprintf("Generate %s completion script", shell.use),
		Long:                  long,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return shell.gen(cmd.Root(), cmd.OutOrStdout())
		},
	}
}

func newInstallCompletionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install shell completions automatically",
		Long: `Install shell completions for quill.

This command auto-detects your shell and installs completions to the
appropriate location. You can override the detected shell with the
--shell flag.

Supported shells: zsh, bash, fish

Examples:
  quill completion install              # Auto-detect shell
  quill completion install --shell zsh  # Force zsh`,
		RunE: runCompletionInstall,
	}

	cmd.Flags().String("shell", "", "Shell to install completions for (zsh, bash, fish)")

	return cmd
}

// runCompletionInstall handles the completion install subcommand.
func runCompletionInstall(cmd *cobra.Command, _ []string) error {
	shellFlag, _ := cmd.Flags().GetString("shell")
	quiet, _ := cmd.Flags().GetBool("quiet")

	var shell shellType
	if shellFlag != "" {
		shell = shellType(shellFlag)
		if shell != shellZsh && shell != shellBash && shell != shellFish {
			return fmt.Errorf("%s: %w", shellFlag, errUnsupportedShell)
		}
	} else {
		shell = detectShell()
		if shell == shellUnknown {
			return errNoShellDetected
		}
	}

	if !quiet {
		cmd.Printf("Detected shell: %s\n\n", shell)
		cmd.Println("Installing completions...")
	}

	rootCmd := cmd.Root()

	var err error
	var completionPath string
	var rcUpdated bool

	switch shell {
	case shellZsh:
		completionPath, rcUpdated, err = installZshCompletions(rootCmd)
	case shellBash:
		completionPath, rcUpdated, err = installBashCompletions(rootCmd)
	case shellFish:
		completionPath, err = installFishCompletions(rootCmd)
	case shellUnknown:
		return errNoShellDetected
	}

	if err != nil {
		return err
	}

	if !quiet {
		cmd.Printf("  Created %s\n", completionPath)
		if rcUpdated {
			cmd.Printf("  Updated %s\n", getShellRCFile(shell))
		}
		cmd.Println()
		cmd.Printf("Done! Restart your shell or run: source %s\n", getShellRCFile(shell))
	}

	return nil
}

// detectShell detects the user's shell from the $SHELL environment variable.
func detectShell() shellType {
	shellPath := os.Getenv("SHELL")
	if shellPath == "" {
		return shellUnknown
	}

	switch filepath.Base(shellPath) {
	case "zsh":
		return shellZsh
	case "bash":
		return shellBash
	case "fish":
		return shellFish
	default:
		return shellUnknown
	}
}

// getShellRCFile returns the path to the shell's RC file.
func getShellRCFile(shell shellType) string {
	home, _ := os.UserHomeDir()
	switch shell {
	case shellZsh:
		return filepath.Join(home, ".zshrc")
	case shellBash:
		return filepath.Join(home, ".bashrc")
	case shellFish:
		return filepath.Join(home, ".config", "fish", "config.fish")
	case shellUnknown:
		return ""
	}
	return ""
}

// installZshCompletions installs zsh completions to ~/.zsh/completions/_quill.
func installZshCompletions(rootCmd *cobra.Command) (string, bool, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", false, fmt.Errorf("could not determine home directory: %w", err)
	}
	return installZshCompletionsToDir(rootCmd, home)
}

// installZshCompletionsToDir installs zsh completions under a specific home
// directory. Extracted for testability.
func installZshCompletionsToDir(rootCmd *cobra.Command, home string) (string, bool, error) {
	completionsDir := filepath.Join(home, ".zsh", "completions")
	if err := os.MkdirAll(completionsDir, 0o750); err != nil {
		return "", false, fmt.Errorf("could not create %s: %w", completionsDir, err)
	}

	completionPath := filepath.Join(completionsDir, "_quill")
	var buf bytes.Buffer
	if err := rootCmd.GenZshCompletion(&buf); err != nil {
		return "", false, fmt.Errorf("could not generate zsh completions: %w", err)
	}

	if err := os.WriteFile(completionPath, buf.Bytes(), 0o600); err != nil {
		return "", false, fmt.Errorf("could not write %s: %w", completionPath, err)
	}

	rcUpdated, err := updateZshRC(home, completionsDir)
	if err != nil {
		return completionPath, false, fmt.Errorf("could not update .zshrc: %w", err)
	}

	return completionPath, rcUpdated, nil
}

// updateZshRC ensures fpath and compinit are configured in .zshrc.
func updateZshRC(home, completionsDir string) (bool, error) {
	rcPath := filepath.Clean(filepath.Join(home, ".zshrc"))

	content, err := os.ReadFile(rcPath)
	if err != nil && !os.IsNotExist(err) {
		return false, err
	}

	contentStr := string(content)
	var additions []string

	if !strings.Contains(contentStr, completionsDir) {
		additions = append(additions, fmt.Sprintf("fpath=(%s $fpath)", completionsDir))
	}

	if !strings.Contains(contentStr, "compinit") {
		additions = append(additions, "autoload -U compinit && compinit")
	}

	if len(additions) == 0 {
		return false, nil
	}

	f, err := os.OpenFile(rcPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return false, err
	}
	defer func() { _ = f.Close() }()

	toWrite := "\n# Quill shell completions\n" + strings.Join(additions, "\n") + "\n"
	if _, err = f.WriteString(toWrite); err != nil {
		return false, err
	}

	return true, nil
}

// installBashCompletions installs bash completions to ~/.bash_completion.d/quill.
func installBashCompletions(rootCmd *cobra.Command) (string, bool, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", false, fmt.Errorf("could not determine home directory: %w", err)
	}
	return installBashCompletionsToDir(rootCmd, home)
}

// installBashCompletionsToDir installs bash completions under a specific
// home directory. Extracted for testability.
func installBashCompletionsToDir(rootCmd *cobra.Command, home string) (string, bool, error) {
	completionsDir := filepath.Join(home, ".bash_completion.d")
	if err := os.MkdirAll(completionsDir, 0o750); err != nil {
		return "", false, fmt.Errorf("could not create %s: %w", completionsDir, err)
	}

	completionPath := filepath.Join(completionsDir, "quill")
	var buf bytes.Buffer
	if err := rootCmd.GenBashCompletion(&buf); err != nil {
		return "", false, fmt.Errorf("could not generate bash completions: %w", err)
	}

	if err := os.WriteFile(completionPath, buf.Bytes(), 0o600); err != nil {
		return "", false, fmt.Errorf("could not write %s: %w", completionPath, err)
	}

	rcUpdated, err := updateBashRC(home, completionsDir)
	if err != nil {
		return completionPath, false, fmt.Errorf("could not update .bashrc: %w", err)
	}

	return completionPath, rcUpdated, nil
}

// updateBashRC ensures completion sourcing is configured in .bashrc.
func updateBashRC(home, completionsDir string) (bool, error) {
	rcPath := filepath.Clean(filepath.Join(home, ".bashrc"))

	content, err := os.ReadFile(rcPath)
	if err != nil && !os.IsNotExist(err) {
		return false, err
	}

	if strings.Contains(string(content), ".bash_completion.d") {
		return false, nil
	}

	f, err := os.OpenFile(rcPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return false, err
	}
	defer func() { _ = f.Close() }()

	sourceLine := fmt.Sprintf(`
# Quill shell completions
for f in %s/*; do
  [ -f "$f" ] && source "$f"
done
`, completionsDir)

	if _, err = f.WriteString(sourceLine); err != nil {
		return false, err
	}

	return true, nil
}

// installFishCompletions installs fish completions to ~/.config/fish/completions/quill.fish.
func installFishCompletions(rootCmd *cobra.Command) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return installFishCompletionsToDir(rootCmd, home)
}

// installFishCompletionsToDir installs fish completions under a specific
// home directory. Extracted for testability.
func installFishCompletionsToDir(rootCmd *cobra.Command, home string) (string, error) {
	completionsDir := filepath.Join(home, ".config", "fish", "completions")
	if err := os.MkdirAll(completionsDir, 0o750); err != nil {
		return "", fmt.Errorf("could not create %s: %w", completionsDir, err)
	}

	completionPath := filepath.Join(completionsDir, "quill.fish")
	var buf bytes.Buffer
	if err := rootCmd.GenFishCompletion(&buf, true); err != nil {
		return "", fmt.Errorf("could not generate fish completions: %w", err)
	}

	if err := os.WriteFile(completionPath, buf.Bytes(), 0o600); err != nil {
		return "", fmt.Errorf("could not write %s: %w", completionPath, err)
	}

	// Fish auto-loads from this directory, no RC update needed
	return completionPath, nil
}
