// Package output renders apncat command results as either human-readable
// text or JSON, resolving the choice from the destination when the user
// leaves it to auto.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Format names an output mode.
type Format string

const (
	// FormatText renders prose and tables for a person at a terminal.
	FormatText Format = "text"
	// FormatJSON renders structured values for pipelines.
	FormatJSON Format = "json"
	// FormatAuto defers the choice to DetectFormat.
	FormatAuto Format = "auto"
)

// ParseFormat maps a flag or config string to a Format. Anything
// unrecognized means auto.
func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(FormatText):
		return FormatText
	case string(FormatJSON):
		return FormatJSON
	default:
		return FormatAuto
	}
}

// DetectFormat resolves auto: a terminal gets text, a pipe or file gets
// JSON, so catalog output composes with jq without an explicit flag.
func DetectFormat(w io.Writer, explicit Format) Format {
	if explicit != FormatAuto {
		return explicit
	}

	if f, ok := w.(*os.File); ok {
		if term.IsTerminal(int(f.Fd())) { //nolint:gosec // G115: Fd fits an int on supported platforms
			return FormatText
		}
	}
	return FormatJSON
}

// Formatter writes command results in one resolved format.
type Formatter struct {
	format Format
	writer io.Writer
}

// NewFormatter binds a resolved format to a destination writer.
func NewFormatter(format Format, w io.Writer) *Formatter {
	return &Formatter{format: format, writer: w}
}

// Format returns the resolved format.
func (f *Formatter) Format() Format {
	return f.format
}

// Writer exposes the destination for renderers that write directly, like
// Table.
func (f *Formatter) Writer() io.Writer {
	return f.writer
}

// IsJSON reports whether structured values should be emitted instead of
// prose.
func (f *Formatter) IsJSON() bool {
	return f.format == FormatJSON
}

// Print renders v: indented JSON in JSON mode, one line of text
// otherwise.
func (f *Formatter) Print(v any) error {
	if f.format == FormatJSON {
		enc := json.NewEncoder(f.writer)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}

	if s, ok := v.(fmt.Stringer); ok {
		_, err := fmt.Fprintln(f.writer, s.String())
		return err
	}
	_, err := fmt.Fprintf(f.writer, "%v\n", v)
	return err
}

// Printf writes formatted text directly, bypassing format resolution.
// Callers guard with IsJSON when the text would corrupt a JSON stream.
func (f *Formatter) Printf(format string, args ...any) error {
	_, err := fmt.Fprintf(f.writer, format, args...)
	return err
}

// Println writes its arguments as one text line.
func (f *Formatter) Println(args ...any) error {
	_, err := fmt.Fprintln(f.writer, args...)
	return err
}
