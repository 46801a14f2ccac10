package tabular_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	quillerrors "github.com/mrz1836/quill/internal/errors"
	"github.com/mrz1836/quill/internal/tabular"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const sampleCSV = "name,position,kit_number\nLionel Messi,Forward,10\nManuel Neuer,Goalkeeper,1\n"

func writeCSV(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "players.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestRead(t *testing.T) {
	t.Run("parses header named records in column order", func(t *testing.T) {
		path := writeCSV(t, sampleCSV)

		records, err := tabular.Read(context.Background(), path, tabular.ReadOptions{})
		require.NoError(t, err)
		require.Len(t, records, 2)

		assert.Equal(t, []string{"name", "position", "kit_number"}, records[0].Keys())
		assert.Equal(t, []string{"Lionel Messi", "Forward", "10"}, records[0].Values())

		position, ok := records[1].Get("position")
		require.True(t, ok)
		assert.Equal(t, "Goalkeeper", position)

		_, ok = records[1].Get("salary")
		assert.False(t, ok)
	})

	t.Run("honors a custom delimiter", func(t *testing.T) {
		path := writeCSV(t, "name;position\nLionel Messi;Forward\n")

		records, err := tabular.Read(context.Background(), path, tabular.ReadOptions{Delimiter: ';'})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, []string{"Lionel Messi", "Forward"}, records[0].Values())
	})

	t.Run("header only input yields zero records", func(t *testing.T) {
		path := writeCSV(t, "name,position\n")

		records, err := tabular.Read(context.Background(), path, tabular.ReadOptions{})
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("fails with empty csv error on empty input", func(t *testing.T) {
		path := writeCSV(t, "")

		_, err := tabular.Read(context.Background(), path, tabular.ReadOptions{})
		assert.ErrorIs(t, err, quillerrors.ErrEmptyCSV)
	})

	t.Run("whitespace only input is empty after trimming", func(t *testing.T) {
		path := writeCSV(t, "\n\n  \n")

		_, err := tabular.Read(context.Background(), path, tabular.ReadOptions{})
		assert.ErrorIs(t, err, quillerrors.ErrEmptyCSV)
	})

	t.Run("fails on ragged rows", func(t *testing.T) {
		path := writeCSV(t, "name,position\nLionel Messi,Forward,extra\n")

		_, err := tabular.Read(context.Background(), path, tabular.ReadOptions{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parsing csv")
	})

	t.Run("fails with input not found for a missing source", func(t *testing.T) {
		_, err := tabular.Read(context.Background(), filepath.Join(t.TempDir(), "missing.csv"), tabular.ReadOptions{})
		assert.ErrorIs(t, err, quillerrors.ErrInputNotFound)
	})
}

func TestParseOutputFormat(t *testing.T) {
	t.Run("parses supported names", func(t *testing.T) {
		got, err := tabular.ParseOutputFormat("json")
		require.NoError(t, err)
		assert.Equal(t, tabular.OutputJSON, got)

		got, err = tabular.ParseOutputFormat("yaml")
		require.NoError(t, err)
		assert.Equal(t, tabular.OutputYAML, got)
	})

	t.Run("rejects unknown names", func(t *testing.T) {
		for _, name := range []string{"", "toml", "xml", "JSON"} {
			_, err := tabular.ParseOutputFormat(name)
			assert.ErrorIs(t, err, quillerrors.ErrUnsupportedOutputFormat, "name %q", name)
		}
	})
}

func TestMarshal(t *testing.T) {
	records := []tabular.Record{
		tabular.NewRecord([]string{"name", "kit_number"}, []string{"Lionel Messi", "10"}),
	}

	t.Run("json keeps column order and string values", func(t *testing.T) {
		data, err := tabular.Marshal(records, tabular.OutputJSON)
		require.NoError(t, err)

		// Column order must survive, so check the raw text, not a map.
		assert.JSONEq(t, `[{"name":"Lionel Messi","kit_number":"10"}]`, string(data))
		assert.Less(t,
			strings.Index(string(data), `"name"`), strings.Index(string(data), `"kit_number"`),
			"name column must precede kit_number")

		var decoded []map[string]string
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, "10", decoded[0]["kit_number"], "numeric looking fields stay strings")
	})

	t.Run("yaml keeps string values", func(t *testing.T) {
		data, err := tabular.Marshal(records, tabular.OutputYAML)
		require.NoError(t, err)

		var decoded []map[string]any
		require.NoError(t, yaml.Unmarshal(data, &decoded))
		require.Len(t, decoded, 1)
		assert.Equal(t, "10", decoded[0]["kit_number"], "numeric looking fields stay strings")
	})

	t.Run("empty records marshal to an empty list", func(t *testing.T) {
		data, err := tabular.Marshal(nil, tabular.OutputJSON)
		require.NoError(t, err)
		assert.JSONEq(t, `[]`, string(data))
	})

	t.Run("fails on an unsupported format", func(t *testing.T) {
		_, err := tabular.Marshal(records, tabular.OutputFormat("toml"))
		assert.ErrorIs(t, err, quillerrors.ErrUnsupportedOutputFormat)
	})
}

func TestDefaultOutputPath(t *testing.T) {
	tests := []struct {
		input  string
		format tabular.OutputFormat
		want   string
	}{
		{"players.csv", tabular.OutputJSON, "players.json"},
		{"players.csv", tabular.OutputYAML, "players.yaml"},
		{"data/players.csv", tabular.OutputJSON, "data/players.json"},
		{"noext", tabular.OutputJSON, "noext.json"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tabular.DefaultOutputPath(tt.input, tt.format))
	}
}

func TestConvert(t *testing.T) {
	t.Run("writes json next to the input by default", func(t *testing.T) {
		path := writeCSV(t, sampleCSV)

		outPath, err := tabular.Convert(context.Background(), path, "", tabular.OutputJSON, tabular.ReadOptions{})
		require.NoError(t, err)
		assert.Equal(t, tabular.DefaultOutputPath(path, tabular.OutputJSON), outPath)

		data, err := os.ReadFile(outPath) //nolint:gosec // Test reads its own output
		require.NoError(t, err)

		var decoded []map[string]string
		require.NoError(t, json.Unmarshal(data, &decoded))
		require.Len(t, decoded, 2)
		assert.Equal(t, "Lionel Messi", decoded[0]["name"])
	})

	t.Run("writes yaml to an explicit output path", func(t *testing.T) {
		path := writeCSV(t, sampleCSV)
		outPath := filepath.Join(t.TempDir(), "players.yaml")

		got, err := tabular.Convert(context.Background(), path, outPath, tabular.OutputYAML, tabular.ReadOptions{})
		require.NoError(t, err)
		assert.Equal(t, outPath, got)

		data, err := os.ReadFile(outPath) //nolint:gosec // Test reads its own output
		require.NoError(t, err)

		var decoded []map[string]any
		require.NoError(t, yaml.Unmarshal(data, &decoded))
		require.Len(t, decoded, 2)
		assert.Equal(t, "Goalkeeper", decoded[1]["position"])
	})

	t.Run("propagates read failures", func(t *testing.T) {
		_, err := tabular.Convert(context.Background(), filepath.Join(t.TempDir(), "missing.csv"), "", tabular.OutputJSON, tabular.ReadOptions{})
		assert.ErrorIs(t, err, quillerrors.ErrInputNotFound)
	})
}

func TestTitleHeaders(t *testing.T) {
	got := tabular.TitleHeaders([]string{"name", "kit_number", "shirt size"})
	assert.Equal(t, []string{"Name", "Kit Number", "Shirt Size"}, got)
}
