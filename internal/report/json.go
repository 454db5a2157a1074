package report

import (
	"bytes"
	"encoding/json"
	"io"
	"time"

	"github.com/nao1215/neocc/internal/model"
)

// JSONWriter renders results as a single JSON envelope per call.
type JSONWriter struct {
	baseWriter

	// indent is the per-level indentation; empty means compact output.
	indent string

	version string
	now     func() time.Time
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent indents nested values by indent per level.
func WithIndent(indent string) JSONWriterOption {
	return func(w *JSONWriter) { w.indent = indent }
}

// WithPrettyPrint indents with two spaces.
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("  ")
}

// WithVersion records the neocc version in every envelope.
func WithVersion(version string) JSONWriterOption {
	return func(w *JSONWriter) { w.version = version }
}

// NewJSONWriter returns a compact JSONWriter unless an indent option is
// given.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output), now: time.Now}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Envelope wraps a result with output metadata, keeping the result types
// free of output-only fields.
type Envelope struct {
	Version     string            `json:"version,omitempty"`
	GeneratedAt time.Time         `json:"generated_at"`
	List        *model.ListResult `json:"list,omitempty"`
	Objects     []ObjectReport    `json:"objects,omitempty"`
}

// WriteList outputs the list in JSON format.
func (w *JSONWriter) WriteList(list *model.ListResult) (int, error) {
	return w.writeJSON(Envelope{Version: w.version, GeneratedAt: w.now().UTC(), List: list})
}

// WriteObjects outputs the object results in JSON format.
func (w *JSONWriter) WriteObjects(objects []ObjectReport) (int, error) {
	return w.writeJSON(Envelope{Version: w.version, GeneratedAt: w.now().UTC(), Objects: objects})
}

// writeJSON encodes v on one line, or indented, followed by a newline.
// HTML characters are kept as is since designators and notes may contain
// '<' and '&'.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", w.indent)
	if err := enc.Encode(v); err != nil {
		return 0, err
	}
	return w.output.Write(buf.Bytes())
}
