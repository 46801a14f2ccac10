// Package cli provides the command-line interface for quill.
package cli

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrz1836/quill/internal/config"
	"github.com/mrz1836/quill/internal/crypto"
	"github.com/mrz1836/quill/internal/errors"
	"github.com/mrz1836/quill/internal/input"
	"github.com/mrz1836/quill/internal/tui"
)

// TextVerifyFlags holds flags specific to the text verify command.
type TextVerifyFlags struct {
	// Input is the source that was signed: a file path or "-" for stdin.
	Input string
	// Key is the key file: a path, or a bare name resolved in the keys dir.
	Key string
	// Signature is the signature text: a literal, "@path", or "-" for stdin.
	Signature string
	// Format selects the signing scheme. Required; there is no default.
	Format crypto.Format
}

// verifyVerdict is the JSON shape of a verification result.
type verifyVerdict struct {
	Input  string `json:"input"`
	Format string `json:"format"`
	Valid  bool   `json:"valid"`
}

// newTextVerifyCmd creates the 'text verify' subcommand.
func newTextVerifyCmd(flags *TextVerifyFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a signature over text",
		Long: `Verify a signature over text read from a file or standard input.

The --signature flag takes the signature text exactly as printed by
'quill text sign'. Prefix a path with '@' to read the signature from a
file, or pass '-' to read it from stdin.

A valid signature prints a ✓ verdict and exits 0. A well-formed signature
that does not match prints a ✗ verdict and exits 1; that is a result, not
a crash. Malformed signature text is rejected before any input is read.

Examples:
  quill text verify -i notes.txt -k blake3.key -f blake3 -s 'nmw8u...'
  quill text verify -i release.tar.gz -k ed25519.pk -f ed25519 -s @release.sig
  cat release.sig | quill text verify -i release.tar.gz -k ed25519.pk -f ed25519 -s -`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTextVerify(cmd.Context(), cmd, flags)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVarP(&flags.Input, "in", "i", "-", "input file, or '-' for stdin")
	cmd.Flags().StringVarP(&flags.Key, "key", "k", "", "key file (path or name in the keys dir)")
	cmd.Flags().StringVarP(&flags.Signature, "signature", "s", "", "signature text, '@path', or '-' for stdin")
	cmd.Flags().VarP(&flags.Format, "format", "f", "signing scheme (blake3|ed25519)")
	_ = cmd.MarkFlagRequired("key")
	_ = cmd.MarkFlagRequired("signature")
	_ = cmd.MarkFlagRequired("format")

	return cmd
}

// addTextVerifyCmd adds the verify subcommand to the text command.
func addTextVerifyCmd(textCmd *cobra.Command) {
	flags := &TextVerifyFlags{}
	textCmd.AddCommand(newTextVerifyCmd(flags))
}

// runTextVerify executes the text verify command.
func runTextVerify(ctx context.Context, cmd *cobra.Command, flags *TextVerifyFlags) error {
	logger := GetLogger()
	ctx = logger.WithContext(ctx)

	// Stdin is a single stream; it cannot carry both the input and the
	// signature in one invocation.
	if flags.Signature == "-" && flags.Input == "-" {
		return errors.NewExitCode2Error(
			errors.Wrap(errors.ErrUserInputRequired, "cannot read both --in and --signature from stdin"))
	}

	sigText, err := resolveSignatureText(ctx, flags.Signature)
	if err != nil {
		return err
	}
	if sigText == "" {
		return errors.NewExitCode2Error(errors.ErrEmptySignature)
	}

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	keyPath, err := cfg.KeyPath(flags.Key)
	if err != nil {
		return err
	}

	ok, err := crypto.VerifyText(ctx, flags.Input, keyPath, sigText, flags.Format)
	if err != nil {
		return err
	}

	return writeVerdict(cmd, flags, ok)
}

// resolveSignatureText turns the --signature flag value into signature text.
// A leading '@' reads the signature from a file and '-' reads it from stdin;
// anything else is the signature itself. Surrounding whitespace is trimmed
// so a trailing newline from 'quill text sign > f' does not break decoding.
func resolveSignatureText(ctx context.Context, value string) (string, error) {
	switch {
	case value == "-":
		data, err := input.ReadAll(ctx, "-")
		if err != nil {
			return "", err
		}
		return string(data), nil
	case strings.HasPrefix(value, "@"):
		data, err := os.ReadFile(strings.TrimPrefix(value, "@")) //nolint:gosec // User-supplied signature path
		if err != nil {
			return "", errors.Wrapf(errors.ErrInputNotFound, "signature file: %v", err)
		}
		return strings.TrimSpace(string(data)), nil
	default:
		return strings.TrimSpace(value), nil
	}
}

// writeVerdict prints the verification verdict. A mismatch is reported
// through the returned error so the process exits non-zero.
func writeVerdict(cmd *cobra.Command, flags *TextVerifyFlags, ok bool) error {
	verdict := verifyVerdict{
		Input:  flags.Input,
		Format: flags.Format.String(),
		Valid:  ok,
	}

	if outputFormat(cmd) == OutputJSON {
		if err := writeJSON(cmd.OutOrStdout(), verdict); err != nil {
			return err
		}
		if !ok {
			// The verdict has been printed; the sentinel only carries the
			// exit code.
			return errors.Wrap(errors.ErrJSONErrorOutput, "signature verification failed")
		}
		return nil
	}

	if !ok {
		return errors.ErrVerificationFailed
	}

	out := tui.NewOutput(cmd.OutOrStdout(), outputFormat(cmd))
	out.Success("Signature is valid.")

	return nil
}
