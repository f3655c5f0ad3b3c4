// Package output renders service results as tables, JSON, or plain lines.
package output

import (
	"encoding/json"
	"fmt"
	"io"
)

// Format is the output format requested by the user.
type Format string

// Output format constants supported by the --output flag.
const (
	FormatText  Format = "text"
	FormatJSON  Format = "json"
	FormatPlain Format = "plain"
)

// Formats lists every supported format name.
var Formats = []string{string(FormatText), string(FormatJSON), string(FormatPlain)}

// Valid reports whether f is a supported format.
func (f Format) Valid() bool {
	switch f {
	case FormatText, FormatJSON, FormatPlain:
		return true
	}
	return false
}

// TextFormattable results render themselves as a human-readable table.
type TextFormattable interface {
	WriteText(w io.Writer) error
}

// PlainFormattable results render themselves one record per line for piping.
type PlainFormattable interface {
	WritePlain(w io.Writer) error
}

// Write dispatches a result to the formatter for format.
func Write(w io.Writer, format Format, result any) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, result)
	case FormatText:
		tf, ok := result.(TextFormattable)
		if !ok {
			return fmt.Errorf("result type %T does not support text output", result)
		}
		return tf.WriteText(w)
	case FormatPlain:
		pf, ok := result.(PlainFormattable)
		if !ok {
			return fmt.Errorf("result type %T does not support plain output", result)
		}
		return pf.WritePlain(w)
	default:
		return fmt.Errorf("unsupported output format: %q", format)
	}
}

// WriteJSON encodes v as indented JSON without HTML escaping, so non-ASCII
// province and carrier names stay readable.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
