// Package serializer renders validated rulesets and devices to generic
// structured output (YAML or JSON) on stdout or a file.
package serializer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// StdoutPath is the special output path meaning "write to stdout".
const StdoutPath = "-"

// Format selects the output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// IsUnknown reports whether the format is outside the supported set.
func (f Format) IsUnknown() bool {
	switch f {
	case FormatJSON, FormatYAML:
		return false
	default:
		return true
	}
}

// Writer serializes values in a fixed format to a destination stream.
type Writer struct {
	format Format
	out    io.Writer
}

// NewWriter creates a Writer for the given format and stream.
func NewWriter(format Format, out io.Writer) *Writer {
	return &Writer{format: format, out: out}
}

// NewFileWriterOrStdout returns a writer to path, or to stdout when path is
// empty or "-". The returned cleanup closes the file when one was opened.
func NewFileWriterOrStdout(format Format, path string) (*Writer, func() error, error) {
	if path == "" || path == StdoutPath {
		return NewWriter(format, os.Stdout), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return NewWriter(format, f), f.Close, nil
}

// Serialize encodes v in the writer's format.
func (w *Writer) Serialize(v any) error {
	switch w.format {
	case FormatYAML:
		enc := yaml.NewEncoder(w.out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to serialize to yaml: %w", err)
		}
		return enc.Close()
	default:
		// JSON is the fallback, matching FormatJSON and anything unknown
		// that slipped past flag validation.
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to serialize to json: %w", err)
		}
		_, err = fmt.Fprintln(w.out, string(out))
		return err
	}
}
