// Package cli provides the command-line interface for quill.
package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mrz1836/quill/internal/config"
	"github.com/mrz1836/quill/internal/constants"
	"github.com/mrz1836/quill/internal/crypto"
	"github.com/mrz1836/quill/internal/errors"
	"github.com/mrz1836/quill/internal/flock"
	"github.com/mrz1836/quill/internal/tui"
)

// TextKeygenFlags holds flags specific to the text keygen command.
type TextKeygenFlags struct {
	// Format selects the signing scheme to generate keys for.
	Format crypto.Format
	// OutDir is where key files are written. Empty means the configured
	// keys directory.
	OutDir string
	// Force overwrites existing key files without prompting.
	Force bool
}

// keygenResult is the JSON shape of a keygen run.
type keygenResult struct {
	Format string   `json:"format"`
	Files  []string `json:"files"`
}

// newTextKeygenCmd creates the 'text keygen' subcommand.
func newTextKeygenCmd(flags *TextKeygenFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate key files for signing",
		Long: `Generate fresh key material for a signing scheme.

blake3 writes a single symmetric key (blake3.key) used for both signing
and verification. ed25519 writes a key pair: the private seed (ed25519.sk)
stays with the signer, the public key (ed25519.pk) can be handed to anyone
who needs to verify.

Key files are written with mode 0600. Existing files are only replaced
after confirmation, or unconditionally with --force.

Examples:
  quill text keygen -f blake3
  quill text keygen -f ed25519 --out-dir ./keys
  quill text keygen -f ed25519 --force`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTextKeygen(cmd.Context(), cmd, flags)
		},
		SilenceUsage: true,
	}

	cmd.Flags().VarP(&flags.Format, "format", "f", "signing scheme (blake3|ed25519)")
	cmd.Flags().StringVar(&flags.OutDir, "out-dir", "", "directory for key files (default: configured keys dir)")
	cmd.Flags().BoolVar(&flags.Force, "force", false, "overwrite existing key files without prompting")
	_ = cmd.MarkFlagRequired("format")

	return cmd
}

// addTextKeygenCmd adds the keygen subcommand to the text command.
func addTextKeygenCmd(textCmd *cobra.Command) {
	flags := &TextKeygenFlags{}
	textCmd.AddCommand(newTextKeygenCmd(flags))
}

// runTextKeygen executes the text keygen command.
func runTextKeygen(ctx context.Context, cmd *cobra.Command, flags *TextKeygenFlags) error {
	logger := GetLogger()
	ctx = logger.WithContext(ctx)

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	outDir := flags.OutDir
	if outDir == "" {
		outDir, err = cfg.KeysDir()
		if err != nil {
			return err
		}
	}

	if err = os.MkdirAll(outDir, 0o750); err != nil {
		return errors.Wrapf(err, "creating key directory %s", outDir)
	}

	unlock, err := lockKeyDir(outDir)
	if err != nil {
		return err
	}
	defer unlock()

	paths := make([]string, 0, 2)
	for _, name := range keyFileNames(flags.Format) {
		paths = append(paths, filepath.Join(outDir, name))
	}

	if err = confirmOverwrites(paths, flags.Force); err != nil {
		return err
	}

	blobs, err := crypto.GenerateKey(ctx, flags.Format)
	if err != nil {
		return err
	}

	for i, blob := range blobs {
		if err = os.WriteFile(paths[i], blob, constants.KeyFilePerm); err != nil {
			return errors.Wrapf(err, "writing key file %s", paths[i])
		}
		logger.Info().
			Str("path", paths[i]).
			Str("format", flags.Format.String()).
			Msg("key file written")
	}

	return writeKeygenResult(cmd, flags.Format, paths)
}

// lockKeyDir holds an exclusive lock on the key directory for the duration
// of a keygen run, so two runs cannot interleave their existence checks and
// writes. The lock file stays behind; only the lock itself is released.
func lockKeyDir(dir string) (func(), error) {
	lockPath := filepath.Join(dir, ".keygen.lock")
	f, err := os.OpenFile(lockPath, os.O_RDWR|os.O_CREATE, 0o600) //nolint:gosec // lock file lives inside the key dir
	if err != nil {
		return nil, errors.Wrapf(err, "opening lock file %s", lockPath)
	}

	if err := flock.Exclusive(f.Fd()); err != nil {
		_ = f.Close()
		return nil, errors.Wrapf(err, "key directory %s is in use by another keygen run", dir)
	}

	return func() {
		_ = flock.Unlock(f.Fd())
		_ = f.Close()
	}, nil
}

// keyFileNames returns the file names a scheme produces, in write order
// matching the blobs from crypto.GenerateKey.
func keyFileNames(format crypto.Format) []string {
	if format == crypto.FormatEd25519 {
		return []string{constants.Ed25519SecretFileName, constants.Ed25519PublicFileName}
	}
	return []string{constants.Blake3KeyFileName}
}

// confirmOverwrites prompts before replacing any existing key file. Losing a
// key silently would strand every signature made with it.
func confirmOverwrites(paths []string, force bool) error {
	if force {
		return nil
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}

		ok, err := tui.Confirm(fmt.Sprintf("Overwrite existing key %s?", path), false)
		if err != nil {
			if stderrors.Is(err, errors.ErrNonInteractiveMode) {
				return errors.Wrapf(errors.ErrKeyExists, "%s", path)
			}
			return err
		}
		if !ok {
			return errors.ErrOperationCanceled
		}
	}

	return nil
}

// writeKeygenResult reports the generated files.
func writeKeygenResult(cmd *cobra.Command, format crypto.Format, paths []string) error {
	out := tui.NewOutput(cmd.OutOrStdout(), outputFormat(cmd))

	if outputFormat(cmd) == OutputJSON {
		return out.JSON(keygenResult{Format: format.String(), Files: paths})
	}

	for _, path := range paths {
		out.Success(fmt.Sprintf("Wrote %s", path))
	}
	if format == crypto.FormatEd25519 {
		out.Info("Share the .pk file with verifiers; keep the .sk file private.")
	}

	return nil
}
