// Package cli provides the command-line interface for quill.
package cli

import (
	"github.com/spf13/cobra"
)

// newTextCmd creates the parent text command.
func newTextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "text",
		Short: "Sign and verify text",
		Long: `Commands for signing text, verifying signatures, and generating keys.

Two schemes are supported, selected per call with --format:
  blake3   symmetric keyed hash; one shared 32-byte key signs and verifies
  ed25519  asymmetric signatures; the seed signs, the public key verifies

Signatures travel as URL-safe base64 without padding, so they paste cleanly
into shell arguments and query strings.`,
		// Bare 'quill text' just displays help
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	// Add subcommands
	addTextSignCmd(cmd)
	addTextVerifyCmd(cmd)
	addTextKeygenCmd(cmd)

	return cmd
}

// AddTextCommand adds the text command tree to the root command.
func AddTextCommand(parent *cobra.Command) {
	parent.AddCommand(newTextCmd())
}
