package tui

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	quillerrors "github.com/mrz1836/quill/internal/errors"
)

// TestOutputInterface_TTYOutput tests TTYOutput implements the Output interface.
func TestOutputInterface_TTYOutput(t *testing.T) {
	var buf bytes.Buffer
	var out Output = NewTTYOutput(&buf)
	assert.NotNil(t, out)
}

// TestOutputInterface_JSONOutput tests JSONOutput implements the Output interface.
func TestOutputInterface_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	var out Output = NewJSONOutput(&buf)
	assert.NotNil(t, out)
}

func TestNewOutput(t *testing.T) {
	var buf bytes.Buffer

	out := NewOutput(&buf, "json")
	assert.IsType(t, &JSONOutput{}, out)

	out = NewOutput(&buf, "text")
	assert.IsType(t, &TTYOutput{}, out)

	out = NewOutput(&buf, "")
	assert.IsType(t, &TTYOutput{}, out)
}

func TestTTYOutput_Success(t *testing.T) {
	var buf bytes.Buffer
	out := NewTTYOutput(&buf)
	out.Success("signature valid")
	output := buf.String()
	assert.Contains(t, output, "✓")
	assert.Contains(t, output, "signature valid")
}

func TestTTYOutput_Error(t *testing.T) {
	var buf bytes.Buffer
	out := NewTTYOutput(&buf)
	out.Error(quillerrors.ErrKeyNotFound)
	output := buf.String()
	assert.Contains(t, output, "✗")
	assert.Contains(t, output, "not found")
}

func TestTTYOutput_Error_Actionable(t *testing.T) {
	var buf bytes.Buffer
	out := NewTTYOutput(&buf)

	out.Error(NewActionableError("key file not found", "Run: quill text keygen --format blake3").
		WithContext("/tmp/blake3.key"))

	output := buf.String()
	assert.Contains(t, output, "✗ key file not found (/tmp/blake3.key)")
	assert.Contains(t, output, "▸ Try: Run: quill text keygen --format blake3")
}

func TestTTYOutput_Warning(t *testing.T) {
	var buf bytes.Buffer
	out := NewTTYOutput(&buf)
	out.Warning("weak password")
	output := buf.String()
	assert.Contains(t, output, "⚠")
	assert.Contains(t, output, "weak password")
}

func TestTTYOutput_Info(t *testing.T) {
	var buf bytes.Buffer
	out := NewTTYOutput(&buf)
	out.Info("wrote 2 key files")
	output := buf.String()
	assert.Contains(t, output, "ℹ")
	assert.Contains(t, output, "wrote 2 key files")
}

func TestTTYOutput_Table(t *testing.T) {
	t.Run("basic table", func(t *testing.T) {
		var buf bytes.Buffer
		out := NewTTYOutput(&buf)
		out.Table([]string{"Name", "Position"}, [][]string{
			{"Lionel Messi", "Forward"},
			{"Manuel Neuer", "Goalkeeper"},
		})
		output := buf.String()
		assert.Contains(t, output, "Name")
		assert.Contains(t, output, "Position")
		assert.Contains(t, output, "Lionel Messi")
		assert.Contains(t, output, "Forward")
		assert.Contains(t, output, "Manuel Neuer")
		assert.Contains(t, output, "Goalkeeper")
	})

	t.Run("empty table", func(t *testing.T) {
		var buf bytes.Buffer
		out := NewTTYOutput(&buf)
		out.Table([]string{}, [][]string{})
		assert.Empty(t, buf.String())
	})

	t.Run("table with short row", func(t *testing.T) {
		var buf bytes.Buffer
		out := NewTTYOutput(&buf)
		out.Table([]string{"A", "B", "C"}, [][]string{
			{"1"}, // Short row - should handle gracefully
		})
		output := buf.String()
		assert.Contains(t, output, "A")
		assert.Contains(t, output, "B")
		assert.Contains(t, output, "C")
		assert.Contains(t, output, "1")
	})

	t.Run("table with unicode", func(t *testing.T) {
		var buf bytes.Buffer
		out := NewTTYOutput(&buf)
		out.Table([]string{"Icon", "Text"}, [][]string{
			{"✓", "Valid"},
			{"✗", "Invalid"},
		})
		output := buf.String()
		assert.Contains(t, output, "✓")
		assert.Contains(t, output, "✗")
	})
}

func TestTTYOutput_JSON(t *testing.T) {
	var buf bytes.Buffer
	out := NewTTYOutput(&buf)
	err := out.JSON(map[string]string{"key": "value"})
	require.NoError(t, err)

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "value", decoded["key"])
}

func TestJSONOutput_Success(t *testing.T) {
	var buf bytes.Buffer
	out := NewJSONOutput(&buf)
	out.Success("key files written")

	var msg map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &msg))
	assert.Equal(t, "success", msg["type"])
	assert.Equal(t, "key files written", msg["message"])
}

func TestJSONOutput_Error(t *testing.T) {
	t.Run("plain error", func(t *testing.T) {
		var buf bytes.Buffer
		out := NewJSONOutput(&buf)
		out.Error(quillerrors.ErrKeyNotFound)

		var msg map[string]string
		require.NoError(t, json.Unmarshal(buf.Bytes(), &msg))
		assert.Equal(t, "error", msg["type"])
		assert.Equal(t, "key file not found", msg["message"])
	})

	t.Run("wrapped error includes details", func(t *testing.T) {
		var buf bytes.Buffer
		out := NewJSONOutput(&buf)
		out.Error(quillerrors.Wrap(quillerrors.ErrKeyFormat, "loading blake3 key"))

		var msg map[string]string
		require.NoError(t, json.Unmarshal(buf.Bytes(), &msg))
		assert.Equal(t, "error", msg["type"])
		assert.Contains(t, msg["message"], "loading blake3 key")
		assert.Equal(t, "invalid key format", msg["details"])
	})

	t.Run("actionable error includes suggestion and context", func(t *testing.T) {
		var buf bytes.Buffer
		out := NewJSONOutput(&buf)
		out.Error(NewActionableError("key file not found", "Run: quill text keygen").
			WithContext("/tmp/missing.key"))

		var msg map[string]string
		require.NoError(t, json.Unmarshal(buf.Bytes(), &msg))
		assert.Equal(t, "Run: quill text keygen", msg["suggestion"])
		assert.Equal(t, "/tmp/missing.key", msg["context"])
	})
}

func TestJSONOutput_Warning(t *testing.T) {
	var buf bytes.Buffer
	out := NewJSONOutput(&buf)
	out.Warning("weak password")

	var msg map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &msg))
	assert.Equal(t, "warning", msg["type"])
	assert.Equal(t, "weak password", msg["message"])
}

func TestJSONOutput_Info(t *testing.T) {
	var buf bytes.Buffer
	out := NewJSONOutput(&buf)
	out.Info("3 records")

	var msg map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &msg))
	assert.Equal(t, "info", msg["type"])
	assert.Equal(t, "3 records", msg["message"])
}

func TestJSONOutput_Table(t *testing.T) {
	t.Run("rows become objects", func(t *testing.T) {
		var buf bytes.Buffer
		out := NewJSONOutput(&buf)
		out.Table([]string{"name", "position"}, [][]string{
			{"Lionel Messi", "Forward"},
			{"Manuel Neuer"},
		})

		var rows []map[string]string
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
		require.Len(t, rows, 2)
		assert.Equal(t, "Forward", rows[0]["position"])
		assert.Empty(t, rows[1]["position"], "missing cells become empty strings")
	})

	t.Run("empty headers produce empty array", func(t *testing.T) {
		var buf bytes.Buffer
		out := NewJSONOutput(&buf)
		out.Table(nil, nil)
		assert.Equal(t, "[]", strings.TrimSpace(buf.String()))
	})
}

func TestJSONOutput_JSON(t *testing.T) {
	var buf bytes.Buffer
	out := NewJSONOutput(&buf)
	err := out.JSON(map[string]int{"count": 3})
	require.NoError(t, err)

	var decoded map[string]int
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 3, decoded["count"])
}
