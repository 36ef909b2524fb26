package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apnerr "apncat/pkg/errors"
)

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, ParseFormat("json"))
	assert.Equal(t, FormatJSON, ParseFormat(" JSON "))
	assert.Equal(t, FormatText, ParseFormat("text"))
	assert.Equal(t, FormatAuto, ParseFormat("auto"))
	assert.Equal(t, FormatAuto, ParseFormat("unknown"))
}

func TestDetectFormat(t *testing.T) {
	var buf bytes.Buffer

	// Explicit formats pass through untouched.
	assert.Equal(t, FormatJSON, DetectFormat(&buf, FormatJSON))
	assert.Equal(t, FormatText, DetectFormat(&buf, FormatText))

	// A plain buffer is not a TTY, so auto resolves to JSON.
	assert.Equal(t, FormatJSON, DetectFormat(&buf, FormatAuto))
}

func TestFormatterPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(FormatJSON, &buf)
	require.True(t, f.IsJSON())

	require.NoError(t, f.Print(map[string]int{"field_n": 3}))

	var decoded map[string]int
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 3, decoded["field_n"])
}

func TestFormatterPrintText(t *testing.T) {
	var buf bytes.Buffer
	f := NewFormatter(FormatText, &buf)
	require.False(t, f.IsJSON())

	require.NoError(t, f.Print("x^3 + x + 1"))
	assert.Equal(t, "x^3 + x + 1\n", buf.String())
}

func TestFormatErrorJSON(t *testing.T) {
	var buf bytes.Buffer
	err := apnerr.WithSuggestion(
		apnerr.WithDetails(apnerr.ErrUnknownInvariant, map[string]string{"name": "uniformty"}),
		"did you mean 'uniformity'?",
	)

	require.NoError(t, FormatError(&buf, err, FormatJSON))

	var out ErrorOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "UNKNOWN_INVARIANT", out.Error.Code)
	assert.Equal(t, "uniformty", out.Error.Details["name"])
	assert.Equal(t, "did you mean 'uniformity'?", out.Error.Suggestion)
	assert.Equal(t, apnerr.ExitInput, out.Error.ExitCode)
}

func TestFormatErrorText(t *testing.T) {
	var buf bytes.Buffer
	err := apnerr.WithDetails(apnerr.ErrUnparseableField, map[string]string{
		"modulus": "x^3 + wat",
		"reason":  "unknown token",
	})

	require.NoError(t, FormatError(&buf, err, FormatText))
	s := buf.String()

	assert.True(t, strings.HasPrefix(s, "Error: "))
	assert.Contains(t, s, "modulus: x^3 + wat")
	// Detail keys come out sorted.
	assert.Less(t, strings.Index(s, "modulus:"), strings.Index(s, "reason:"))
}

func TestFormatErrorPlain(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatError(&buf, errors.New("boom"), FormatText))
	assert.Equal(t, "Error: boom\n", buf.String())

	require.NoError(t, FormatError(&buf, nil, FormatText))
}

func TestFormatSuccess(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatSuccess(&buf, "stored 2 functions", FormatText))
	assert.Equal(t, "stored 2 functions\n", buf.String())

	buf.Reset()
	require.NoError(t, FormatSuccess(&buf, "stored 2 functions", FormatJSON))
	var out map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "success", out["status"])
}

func TestTableRender(t *testing.T) {
	table := NewTable("N", "IRREDUCIBLE POLYNOMIAL")
	table.AddRow("3", "x^3 + x + 1")
	table.AddRow("8", "x^8 + x^4 + x^3 + x^2 + 1")

	lines := strings.Split(strings.TrimRight(table.String(), "\n"), "\n")
	require.Len(t, lines, 4)

	assert.True(t, strings.HasPrefix(lines[0], "N"))
	assert.True(t, strings.HasPrefix(lines[1], "-"))
	assert.Contains(t, lines[2], "x^3 + x + 1")

	// Every line is padded to the same column boundaries.
	col := strings.Index(lines[0], "IRREDUCIBLE")
	assert.Equal(t, col, strings.Index(lines[2], "x^3"))
}

func TestTableNoHeader(t *testing.T) {
	table := NewTable("A", "B")
	table.SetNoHeader(true)
	table.AddRow("1", "2")

	assert.Equal(t, "1  2\n", table.String())
}

func TestTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTable().Render(&buf))
	assert.Empty(t, buf.String())
}
