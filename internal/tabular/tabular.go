// Package tabular converts CSV input into JSON or YAML records. The header
// row names the fields and records keep the column order of the source, so
// converted output reads in the same order the CSV was written.
package tabular

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/mrz1836/quill/internal/constants"
	"github.com/mrz1836/quill/internal/errors"
	"github.com/mrz1836/quill/internal/input"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Record is one CSV row keyed by the header, preserving column order.
// All field values are strings; CSV carries no type information.
type Record struct {
	keys   []string
	values []string
}

// NewRecord pairs header names with row values. Extra values beyond the
// headers are dropped; missing values read as empty strings.
func NewRecord(headers, values []string) Record {
	r := Record{
		keys:   append([]string(nil), headers...),
		values: make([]string, len(headers)),
	}
	for i := range headers {
		if i < len(values) {
			r.values[i] = values[i]
		}
	}

	return r
}

// Keys returns the field names in column order.
func (r Record) Keys() []string {
	return append([]string(nil), r.keys...)
}

// Values returns the field values in column order.
func (r Record) Values() []string {
	return append([]string(nil), r.values...)
}

// Get returns the value for a field name and whether the field exists.
func (r Record) Get(key string) (string, bool) {
	for i, k := range r.keys {
		if k == key {
			return r.values[i], true
		}
	}

	return "", false
}

// MarshalJSON writes the record as an object with fields in column order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, key := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}

		name, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')

		value, err := json.Marshal(r.values[i])
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// MarshalYAML emits the record as a mapping with fields in column order.
// Values carry an explicit string tag so "30" stays a string on re-read.
func (r Record) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}

	for i, key := range r.keys {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: r.values[i]},
		)
	}

	return node, nil
}

// ReadOptions configures CSV parsing.
type ReadOptions struct {
	// Delimiter is the field separator. Zero means comma.
	Delimiter rune
}

// Read parses CSV from the source into records. The first row is the
// header; input with no header row fails with ErrEmptyCSV. Rows with a
// field count different from the header fail.
func Read(ctx context.Context, source string, opts ReadOptions) ([]Record, error) {
	data, err := input.ReadAll(ctx, source)
	if err != nil {
		return nil, err
	}

	delimiter := opts.Delimiter
	if delimiter == 0 {
		delimiter = rune(constants.DefaultCSVDelimiter[0])
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "parsing csv from %s", source)
	}

	if len(rows) == 0 {
		return nil, errors.Wrapf(errors.ErrEmptyCSV, "%s", source)
	}

	headers := rows[0]
	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		records = append(records, NewRecord(headers, row))
	}

	zerolog.Ctx(ctx).Debug().
		Str("source", source).
		Int("columns", len(headers)).
		Int("records", len(records)).
		Msg("parsed csv")

	return records, nil
}

// OutputFormat selects the conversion target.
type OutputFormat string

// Supported conversion targets.
const (
	// OutputJSON converts to pretty-printed JSON with two-space indent.
	OutputJSON OutputFormat = "json"

	// OutputYAML converts to a YAML document.
	OutputYAML OutputFormat = "yaml"
)

// OutputFormats returns the supported target names in display order.
func OutputFormats() []string {
	return []string{string(OutputJSON), string(OutputYAML)}
}

// ParseOutputFormat converts a user-supplied name into an OutputFormat.
// Unknown names fail with ErrUnsupportedOutputFormat.
func ParseOutputFormat(name string) (OutputFormat, error) {
	switch name {
	case string(OutputJSON):
		return OutputJSON, nil
	case string(OutputYAML):
		return OutputYAML, nil
	default:
		return "", errors.Wrapf(errors.ErrUnsupportedOutputFormat, "%q (expected one of: %s)", name, strings.Join(OutputFormats(), ", "))
	}
}

// String returns the target name.
func (f OutputFormat) String() string {
	return string(f)
}

// Set parses and stores a conversion target from the command line.
func (f *OutputFormat) Set(value string) error {
	parsed, err := ParseOutputFormat(value)
	if err != nil {
		return err
	}

	*f = parsed

	return nil
}

// Type returns the flag type name shown in usage text.
func (f *OutputFormat) Type() string {
	return "format"
}

var _ pflag.Value = (*OutputFormat)(nil)

// Marshal renders records in the given output format.
func Marshal(records []Record, format OutputFormat) ([]byte, error) {
	switch format {
	case OutputJSON:
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, "encoding json")
		}

		return append(data, '\n'), nil
	case OutputYAML:
		data, err := yaml.Marshal(records)
		if err != nil {
			return nil, errors.Wrap(err, "encoding yaml")
		}

		return data, nil
	default:
		return nil, errors.Wrapf(errors.ErrUnsupportedOutputFormat, "%q", format)
	}
}

// DefaultOutputPath derives the output file from the input by swapping the
// extension for the format name: people.csv becomes people.json.
func DefaultOutputPath(inputPath string, format OutputFormat) string {
	base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))

	return base + "." + format.String()
}

// Convert reads CSV from the source and writes it to outPath in the given
// format. An empty outPath derives the target from the source path. The
// written path is returned.
func Convert(ctx context.Context, source, outPath string, format OutputFormat, opts ReadOptions) (string, error) {
	records, err := Read(ctx, source, opts)
	if err != nil {
		return "", err
	}

	data, err := Marshal(records, format)
	if err != nil {
		return "", err
	}

	if outPath == "" {
		outPath = DefaultOutputPath(source, format)
	}

	if err := os.WriteFile(outPath, data, 0o600); err != nil {
		return "", errors.Wrapf(err, "writing %s", outPath)
	}

	zerolog.Ctx(ctx).Debug().
		Str("source", source).
		Str("output", outPath).
		Str("format", format.String()).
		Int("records", len(records)).
		Msg("converted csv")

	return outPath, nil
}

// TitleHeaders converts raw header names into display form for previews:
// underscores become spaces and each word is title-cased.
func TitleHeaders(headers []string) []string {
	caser := cases.Title(language.English)

	titled := make([]string, len(headers))
	for i, h := range headers {
		titled[i] = caser.String(strings.ReplaceAll(h, "_", " "))
	}

	return titled
}
