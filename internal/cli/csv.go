// Package cli provides the command-line interface for quill.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrz1836/quill/internal/config"
	"github.com/mrz1836/quill/internal/errors"
	"github.com/mrz1836/quill/internal/tabular"
	"github.com/mrz1836/quill/internal/tui"
)

// CSVConvertFlags holds flags specific to the csv convert command.
type CSVConvertFlags struct {
	// Input is the CSV source: a file path or "-" for stdin.
	Input string
	// Out is the output file. Empty derives the path from the input.
	Out string
	// Format selects the conversion target.
	Format tabular.OutputFormat
	// Delimiter is the field separator. Empty means the configured one.
	Delimiter string
}

// CSVPreviewFlags holds flags specific to the csv preview command.
type CSVPreviewFlags struct {
	// Input is the CSV source: a file path or "-" for stdin.
	Input string
	// Rows caps how many records the preview shows.
	Rows int
	// Delimiter is the field separator. Empty means the configured one.
	Delimiter string
}

// csvConvertResult is the JSON shape of a csv convert run.
type csvConvertResult struct {
	Input  string `json:"input"`
	Output string `json:"output"`
	Format string `json:"format"`
}

// newCSVCmd creates the csv parent command.
func newCSVCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "csv",
		Short: "Convert and preview CSV data",
		Long: `Convert CSV files to JSON or YAML, or preview them as a table.

The first row is treated as the header. Rows with a field count different
from the header are rejected.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	addCSVConvertCmd(cmd)
	addCSVPreviewCmd(cmd)

	return cmd
}

// AddCSVCommand adds the csv command to the root command.
func AddCSVCommand(rootCmd *cobra.Command) {
	rootCmd.AddCommand(newCSVCmd())
}

// addCSVConvertCmd adds the convert subcommand to the csv command.
func addCSVConvertCmd(csvCmd *cobra.Command) {
	flags := &CSVConvertFlags{Format: tabular.OutputJSON}

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert CSV to JSON or YAML",
		Long: `Convert CSV to JSON or YAML, preserving column order.

Without --out the target path is derived from the input by swapping the
extension: people.csv becomes people.json. Reading from stdin requires an
explicit --out because there is no input path to derive from.

Examples:
  quill csv convert -i people.csv
  quill csv convert -i people.csv -f yaml --out team.yaml
  cat people.csv | quill csv convert --out people.json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCSVConvert(cmd.Context(), cmd, flags)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVarP(&flags.Input, "in", "i", "-", "input file, or '-' for stdin")
	cmd.Flags().StringVar(&flags.Out, "out", "", "output file (default: derived from input)")
	cmd.Flags().VarP(&flags.Format, "format", "f", "target format (json|yaml)")
	cmd.Flags().StringVarP(&flags.Delimiter, "delimiter", "d", "", "field separator (default: configured delimiter)")

	csvCmd.AddCommand(cmd)
}

// addCSVPreviewCmd adds the preview subcommand to the csv command.
func addCSVPreviewCmd(csvCmd *cobra.Command) {
	flags := &CSVPreviewFlags{}

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Preview CSV as a table",
		Long: `Render the first rows of a CSV file as an aligned table.

Header names are title-cased for display: first_name becomes First Name.

Examples:
  quill csv preview -i people.csv
  quill csv preview -i people.csv --rows 3`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCSVPreview(cmd.Context(), cmd, flags)
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringVarP(&flags.Input, "in", "i", "-", "input file, or '-' for stdin")
	cmd.Flags().IntVar(&flags.Rows, "rows", 10, "maximum rows to show")
	cmd.Flags().StringVarP(&flags.Delimiter, "delimiter", "d", "", "field separator (default: configured delimiter)")

	csvCmd.AddCommand(cmd)
}

// runCSVConvert executes the csv convert command.
func runCSVConvert(ctx context.Context, cmd *cobra.Command, flags *CSVConvertFlags) error {
	logger := GetLogger()
	ctx = logger.WithContext(ctx)

	if flags.Input == "-" && flags.Out == "" {
		return errors.NewExitCode2Error(
			errors.Wrap(errors.ErrUserInputRequired, "--out is required when reading from stdin"))
	}

	opts, err := readOptions(ctx, flags.Delimiter)
	if err != nil {
		return err
	}

	outPath, err := tabular.Convert(ctx, flags.Input, flags.Out, flags.Format, opts)
	if err != nil {
		return err
	}

	out := tui.NewOutput(cmd.OutOrStdout(), outputFormat(cmd))
	if outputFormat(cmd) == OutputJSON {
		return out.JSON(csvConvertResult{
			Input:  flags.Input,
			Output: outPath,
			Format: flags.Format.String(),
		})
	}

	out.Success(fmt.Sprintf("Converted %s to %s", flags.Input, outPath))

	return nil
}

// runCSVPreview executes the csv preview command.
func runCSVPreview(ctx context.Context, cmd *cobra.Command, flags *CSVPreviewFlags) error {
	logger := GetLogger()
	ctx = logger.WithContext(ctx)

	opts, err := readOptions(ctx, flags.Delimiter)
	if err != nil {
		return err
	}

	records, err := tabular.Read(ctx, flags.Input, opts)
	if err != nil {
		return err
	}

	if flags.Rows > 0 && len(records) > flags.Rows {
		records = records[:flags.Rows]
	}

	out := tui.NewOutput(cmd.OutOrStdout(), outputFormat(cmd))
	if outputFormat(cmd) == OutputJSON {
		return out.JSON(records)
	}

	if len(records) == 0 {
		out.Info("No records to preview.")
		return nil
	}

	rows := make([][]string, len(records))
	for i, record := range records {
		rows[i] = record.Values()
	}

	out.Table(tabular.TitleHeaders(records[0].Keys()), rows)

	return nil
}

// readOptions builds tabular read options from the flag or the configured
// delimiter. The delimiter must be a single character.
func readOptions(ctx context.Context, flagDelimiter string) (tabular.ReadOptions, error) {
	delimiter := flagDelimiter
	if delimiter == "" {
		cfg, err := config.Load(ctx)
		if err != nil {
			return tabular.ReadOptions{}, err
		}
		delimiter = cfg.CSV.Delimiter
	}

	if delimiter == "" {
		return tabular.ReadOptions{}, nil
	}

	runes := []rune(delimiter)
	if len(runes) != 1 {
		return tabular.ReadOptions{}, errors.NewExitCode2Error(
			errors.Wrapf(errors.ErrConfigInvalid, "delimiter %q must be a single character", delimiter))
	}

	return tabular.ReadOptions{Delimiter: runes[0]}, nil
}
