// Package cli provides the command-line interface for quill.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mrz1836/quill/internal/config"
	"github.com/mrz1836/quill/internal/crypto"
)

// TextSignFlags holds flags specific to the text sign command.
type TextSignFlags struct {
	// Inputs are the sources to sign: file paths or "-" for stdin.
	Inputs []string
	// Key is the key file: a path, or a bare name resolved in the keys dir.
	Key string
	// Format selects the signing scheme. Required; there is no default.
	Format crypto.Format
}

// signedInput pairs an input source with its signature for JSON output.
type signedInput struct {
	Input     string `json:"input"`
	Signature string `json:"signature"`
}

// newTextSignCmd creates the 'text sign' subcommand.
func newTextSignCmd(flags *TextSignFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign text with a key",
		Long: `Sign text read from files or standard input.

The signature is printed as URL-safe base64 without padding. A single input
prints the bare signature; multiple inputs print one "path<TAB>signature"
line per input, in input order. Multiple inputs are signed concurrently,
bounded by sign.workers from the configuration.

The --key flag accepts a path, or a bare file name resolved against the
configured keys directory (~/.quill/keys by default).

Examples:
  echo -n 'hello' | quill text sign --key blake3.key --format blake3
  quill text sign --in release.tar.gz --key ed25519.sk --format ed25519
  quill text sign -i a.txt -i b.txt -k blake3.key -f blake3`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTextSign(cmd.Context(), cmd, flags)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringArrayVarP(&flags.Inputs, "in", "i", []string{"-"}, "input file, or '-' for stdin (repeatable)")
	cmd.Flags().StringVarP(&flags.Key, "key", "k", "", "key file (path or name in the keys dir)")
	cmd.Flags().VarP(&flags.Format, "format", "f", "signing scheme (blake3|ed25519)")
	_ = cmd.MarkFlagRequired("key")
	_ = cmd.MarkFlagRequired("format")

	return cmd
}

// addTextSignCmd adds the sign subcommand to the text command.
func addTextSignCmd(textCmd *cobra.Command) {
	flags := &TextSignFlags{}
	textCmd.AddCommand(newTextSignCmd(flags))
}

// runTextSign executes the text sign command.
func runTextSign(ctx context.Context, cmd *cobra.Command, flags *TextSignFlags) error {
	logger := GetLogger()
	ctx = logger.WithContext(ctx)

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	keyPath, err := cfg.KeyPath(flags.Key)
	if err != nil {
		return err
	}

	// A configured timeout bounds the whole run, not each input.
	if cfg.Sign.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Sign.Timeout)
		defer cancel()
	}

	signatures, err := signInputs(ctx, flags.Inputs, keyPath, flags.Format, cfg.Sign.Workers)
	if err != nil {
		return err
	}

	return writeSignatures(cmd, flags.Inputs, signatures)
}

// signInputs signs every input and returns the signatures in input order.
// Inputs are signed concurrently with at most workers goroutines; the first
// failure cancels the rest.
func signInputs(ctx context.Context, inputs []string, keyPath string, format crypto.Format, workers int) ([]string, error) {
	if len(inputs) == 1 {
		sig, err := crypto.SignText(ctx, inputs[0], keyPath, format)
		if err != nil {
			return nil, err
		}
		return []string{sig}, nil
	}

	// SetLimit(0) would admit no goroutines at all.
	if workers < 1 {
		workers = 1
	}

	signatures := make([]string, len(inputs))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, source := range inputs {
		g.Go(func() error {
			sig, err := crypto.SignText(gCtx, source, keyPath, format)
			if err != nil {
				return fmt.Errorf("signing %s: %w", source, err)
			}
			signatures[i] = sig
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return signatures, nil
}

// writeSignatures prints the signing result in the requested output format.
func writeSignatures(cmd *cobra.Command, inputs, signatures []string) error {
	if outputFormat(cmd) == OutputJSON {
		results := make([]signedInput, len(inputs))
		for i := range inputs {
			results[i] = signedInput{Input: inputs[i], Signature: signatures[i]}
		}
		return writeJSON(cmd.OutOrStdout(), results)
	}

	w := cmd.OutOrStdout()
	if len(inputs) == 1 {
		_, err := fmt.Fprintln(w, signatures[0])
		return err
	}

	for i := range inputs {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", inputs[i], signatures[i]); err != nil {
			return err
		}
	}

	return nil
}

// outputFormat reads the global output flag from any command in the tree.
func outputFormat(cmd *cobra.Command) string {
	format, err := cmd.Flags().GetString("output")
	if err != nil {
		return OutputText
	}
	return format
}

// writeJSON writes v as indented JSON, matching the tui JSON renderer.
func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
