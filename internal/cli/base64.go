// Package cli provides the command-line interface for quill.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrz1836/quill/internal/b64"
	"github.com/mrz1836/quill/internal/errors"
	"github.com/mrz1836/quill/internal/tui"
)

// Base64Flags holds flags shared by the base64 subcommands.
type Base64Flags struct {
	// Input is the source to transform: a file path or "-" for stdin.
	Input string
	// Format selects the base64 alphabet.
	Format b64.Format
}

// base64Result is the JSON shape of a base64 encode run.
type base64Result struct {
	Format  string `json:"format"`
	Encoded string `json:"encoded"`
}

// newBase64Cmd creates the base64 parent command.
func newBase64Cmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "base64",
		Short: "Encode and decode base64",
		Long: `Encode bytes to base64 text or decode base64 text back to bytes.

Two alphabets are supported: standard (RFC 4648 with padding) and urlsafe
(RFC 4648 URL-safe without padding). Signatures printed by 'quill text
sign' use the urlsafe alphabet.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	addBase64EncodeCmd(cmd)
	addBase64DecodeCmd(cmd)

	return cmd
}

// AddBase64Command adds the base64 command to the root command.
func AddBase64Command(rootCmd *cobra.Command) {
	rootCmd.AddCommand(newBase64Cmd())
}

// addBase64EncodeCmd adds the encode subcommand to the base64 command.
func addBase64EncodeCmd(base64Cmd *cobra.Command) {
	flags := &Base64Flags{Format: b64.FormatStandard}

	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode input as base64 text",
		Long: `Encode input as base64 text in the chosen alphabet.

Examples:
  quill base64 encode -i photo.jpg
  echo 'hello' | quill base64 encode -f urlsafe`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBase64Encode(cmd.Context(), cmd, flags)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVarP(&flags.Input, "in", "i", "-", "input file, or '-' for stdin")
	cmd.Flags().VarP(&flags.Format, "format", "f", "base64 alphabet (standard|urlsafe)")

	base64Cmd.AddCommand(cmd)
}

// addBase64DecodeCmd adds the decode subcommand to the base64 command.
func addBase64DecodeCmd(base64Cmd *cobra.Command) {
	flags := &Base64Flags{Format: b64.FormatStandard}

	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode base64 text to raw bytes",
		Long: `Decode base64 text back to the original bytes.

The decoded bytes are written to stdout verbatim, so binary content
round-trips; --output json does not apply here.

Examples:
  quill base64 decode -i photo.b64 > photo.jpg
  echo 'aGVsbG8=' | quill base64 decode`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBase64Decode(cmd.Context(), cmd, flags)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVarP(&flags.Input, "in", "i", "-", "input file, or '-' for stdin")
	cmd.Flags().VarP(&flags.Format, "format", "f", "base64 alphabet (standard|urlsafe)")

	base64Cmd.AddCommand(cmd)
}

// runBase64Encode executes the base64 encode command.
func runBase64Encode(ctx context.Context, cmd *cobra.Command, flags *Base64Flags) error {
	logger := GetLogger()

	encoded, err := b64.Encode(logger.WithContext(ctx), flags.Input, flags.Format)
	if err != nil {
		return err
	}

	if outputFormat(cmd) == OutputJSON {
		out := tui.NewOutput(cmd.OutOrStdout(), OutputJSON)
		return out.JSON(base64Result{Format: flags.Format.String(), Encoded: encoded})
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), encoded)

	return nil
}

// runBase64Decode executes the base64 decode command.
func runBase64Decode(ctx context.Context, cmd *cobra.Command, flags *Base64Flags) error {
	logger := GetLogger()

	decoded, err := b64.Decode(logger.WithContext(ctx), flags.Input, flags.Format)
	if err != nil {
		return err
	}

	if _, err = cmd.OutOrStdout().Write(decoded); err != nil {
		return errors.Wrap(err, "writing decoded bytes")
	}

	return nil
}
