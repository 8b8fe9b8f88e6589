package report

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONWriter outputs reports as JSON for tool integration. Field
// names come from the Report struct tags and are part of the stable
// contract.
type JSONWriter struct {
	baseWriter

	indent bool
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithPrettyPrint enables two-space indented output.
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the report as one JSON document followed by a newline.
func (w *JSONWriter) Write(r *Report) (int, error) {
	if r == nil {
		return 0, ErrNilReport
	}

	var data []byte
	var err error
	if w.indent {
		data, err = json.MarshalIndent(r, "", "  ")
	} else {
		data, err = json.Marshal(r)
	}
	if err != nil {
		return 0, fmt.Errorf("report: marshal: %w", err)
	}
	return w.output.Write(append(data, '\n'))
}
