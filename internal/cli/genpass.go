// Package cli provides the command-line interface for quill.
package cli

import (
	"context"
	"fmt"

	zxcvbn "github.com/nbutton23/zxcvbn-go"
	"github.com/spf13/cobra"

	"github.com/mrz1836/quill/internal/config"
	"github.com/mrz1836/quill/internal/genpass"
	"github.com/mrz1836/quill/internal/tui"
)

// GenPassFlags holds flags specific to the genpass command.
type GenPassFlags struct {
	Length  int
	Upper   bool
	Lower   bool
	Digits  bool
	Symbols bool
}

// genPassResult is the JSON shape of a genpass run.
type genPassResult struct {
	Password string `json:"password"`
	Score    int    `json:"score"`
}

// newGenPassCmd creates the genpass command.
func newGenPassCmd(flags *GenPassFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "genpass",
		Short: "Generate a random password",
		Long: `Generate a random password from configurable character classes.

Every enabled class contributes at least one character, and look-alike
characters (I, O, l, 0) are excluded so the result survives being read
aloud. The password goes to stdout; the strength score (0-4) goes to
stderr, so piping the password never captures the score.

Flags override the [genpass] section of the config file. Disabling a
class requires --<class>=false because the classes default to on.

Examples:
  quill genpass
  quill genpass -l 24
  quill genpass --symbols=false --upper=false`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenPass(cmd.Context(), cmd, flags)
		},
		SilenceUsage: true,
	}

	defaults := genpass.DefaultOptions()
	cmd.Flags().IntVarP(&flags.Length, "length", "l", defaults.Length, "password length")
	cmd.Flags().BoolVar(&flags.Upper, "upper", defaults.Upper, "include uppercase letters")
	cmd.Flags().BoolVar(&flags.Lower, "lower", defaults.Lower, "include lowercase letters")
	cmd.Flags().BoolVar(&flags.Digits, "digits", defaults.Digits, "include digits")
	cmd.Flags().BoolVar(&flags.Symbols, "symbols", defaults.Symbols, "include symbols")

	return cmd
}

// AddGenPassCommand adds the genpass command to the root command.
func AddGenPassCommand(rootCmd *cobra.Command) {
	flags := &GenPassFlags{}
	rootCmd.AddCommand(newGenPassCmd(flags))
}

// runGenPass executes the genpass command.
func runGenPass(ctx context.Context, cmd *cobra.Command, flags *GenPassFlags) error {
	logger := GetLogger()

	cfg, err := config.Load(logger.WithContext(ctx))
	if err != nil {
		return err
	}

	opts := resolveGenPassOptions(cmd, flags, cfg.GenPass)

	password, err := genpass.Generate(opts)
	if err != nil {
		return err
	}

	score := zxcvbn.PasswordStrength(password, nil).Score

	logger.Info().
		Int("length", opts.Length).
		Int("score", score).
		Msg("password generated")

	if outputFormat(cmd) == OutputJSON {
		out := tui.NewOutput(cmd.OutOrStdout(), OutputJSON)
		return out.JSON(genPassResult{Password: password, Score: score})
	}

	// The password is the only thing on stdout so `quill genpass | pbcopy`
	// copies exactly the password.
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), password)

	quiet, _ := cmd.Flags().GetBool("quiet")
	if !quiet {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Password strength: %d\n", score)
	}

	return nil
}

// resolveGenPassOptions merges config values with explicit flags. A flag the
// user set wins; otherwise the config value applies.
func resolveGenPassOptions(cmd *cobra.Command, flags *GenPassFlags, cfg config.GenPassConfig) genpass.Options {
	opts := genpass.Options{
		Length:  cfg.Length,
		Upper:   cfg.Upper,
		Lower:   cfg.Lower,
		Digits:  cfg.Digits,
		Symbols: cfg.Symbols,
	}

	if cmd.Flags().Changed("length") {
		opts.Length = flags.Length
	}
	if cmd.Flags().Changed("upper") {
		opts.Upper = flags.Upper
	}
	if cmd.Flags().Changed("lower") {
		opts.Lower = flags.Lower
	}
	if cmd.Flags().Changed("digits") {
		opts.Digits = flags.Digits
	}
	if cmd.Flags().Changed("symbols") {
		opts.Symbols = flags.Symbols
	}

	return opts
}
