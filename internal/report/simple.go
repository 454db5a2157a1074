package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/nao1215/neocc/internal/model"
)

// SimpleWriter outputs human-readable text tables for terminal display.
type SimpleWriter struct {
	baseWriter

	// maxRows limits the rows printed per table. Zero prints every row.
	maxRows int
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithMaxRows limits the rows printed per table. Omitted rows are counted
// in a trailer line.
func WithMaxRows(n int) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.maxRows = n
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// WriteList outputs the list as one table.
func (w *SimpleWriter) WriteList(list *model.ListResult) (int, error) {
	var buf bytes.Buffer

	writeBanner(&buf, "NEOCC LIST: "+strings.ToUpper(string(list.Name)))
	fmt.Fprintf(&buf, "Entries: %d\n\n", list.Len())
	if err := w.writeSection(&buf, listSection(list), false); err != nil {
		return 0, err
	}

	return w.output.Write(buf.Bytes())
}

// WriteObjects outputs every section of every object.
func (w *SimpleWriter) WriteObjects(objects []ObjectReport) (int, error) {
	var buf bytes.Buffer

	for _, o := range objects {
		writeBanner(&buf, fmt.Sprintf("%s (%s)", o.Object, o.Tab))
		if o.Failed() {
			fmt.Fprintf(&buf, "ERROR: %s\n\n", o.Error)
			continue
		}
		for _, s := range o.sections() {
			if err := w.writeSection(&buf, s, true); err != nil {
				return 0, err
			}
		}
	}

	return w.output.Write(buf.Bytes())
}

func (w *SimpleWriter) writeSection(buf *bytes.Buffer, s model.Section, titled bool) error {
	if titled {
		buf.WriteString(s.Title + "\n")
		buf.WriteString(strings.Repeat("-", len(s.Title)) + "\n")
	}

	if len(s.Fields) > 0 {
		width := 0
		for _, f := range s.Fields {
			width = max(width, len(f.Name))
		}
		for _, f := range s.Fields {
			fmt.Fprintf(buf, "%-*s  %s\n", width+1, f.Name+":", f.Value)
		}
	}

	if s.Table != nil {
		header, rows := records(s.Table)
		omitted := 0
		if w.maxRows > 0 && len(rows) > w.maxRows {
			omitted = len(rows) - w.maxRows
			rows = rows[:w.maxRows]
		}
		if err := renderTable(buf, header, rows); err != nil {
			return err
		}
		if omitted > 0 {
			fmt.Fprintf(buf, "... %d more rows\n", omitted)
		}
	}

	if s.Text != "" {
		buf.WriteString(s.Text + "\n")
	}
	buf.WriteString("\n")
	return nil
}

func renderTable(out io.Writer, header []string, rows [][]string) error {
	tw := tablewriter.NewWriter(out)
	cells := make([]any, len(header))
	for i, h := range header {
		cells[i] = h
	}
	tw.Header(cells...)
	if err := tw.Bulk(rows); err != nil {
		return fmt.Errorf("failed to build table: %w", err)
	}
	if err := tw.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	return nil
}

func writeBanner(buf *bytes.Buffer, title string) {
	buf.WriteString(strings.Repeat("=", 70) + "\n")
	buf.WriteString(title + "\n")
	buf.WriteString(strings.Repeat("=", 70) + "\n\n")
}
