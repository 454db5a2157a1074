package report

import (
	"io"

	"github.com/nao1215/neocc/internal/model"
	"github.com/nao1215/neocc/internal/table"
)

// Writer renders query results to a destination.
type Writer interface {
	// WriteList outputs a parsed list.
	// Returns the number of bytes written and any error encountered.
	WriteList(list *model.ListResult) (int, error)

	// WriteObjects outputs the tab results of one or more objects.
	WriteObjects(objects []ObjectReport) (int, error)
}

// ObjectReport is the outcome of one object query.
type ObjectReport struct {
	Object string          `json:"object"`
	Tab    model.Tab       `json:"tab"`
	Result model.TabResult `json:"result,omitempty"`

	// Error is set instead of Result when the query failed.
	Error string `json:"error,omitempty"`
}

// Failed reports whether the query produced no result.
func (o ObjectReport) Failed() bool { return o.Result == nil }

// sections returns the renderable blocks of the report. A failed query
// renders as a single text block.
func (o ObjectReport) sections() []model.Section {
	if o.Result == nil {
		return []model.Section{{Title: "Error", Text: o.Error}}
	}
	return o.Result.Sections()
}

// listSection returns a list as a single section.
func listSection(list *model.ListResult) model.Section {
	if list.Table != nil {
		return model.Section{Title: string(list.Name), Table: list.Table}
	}
	t := table.New("Object")
	for _, d := range list.Designators {
		// Append cannot fail: the row width matches the single column.
		_ = t.Append(table.Str(d))
	}
	return model.Section{Title: string(list.Name), Table: t}
}

// records returns the header and text rows of t. Row labels become a
// leading unnamed column.
func records(t *table.Table) ([]string, [][]string) {
	rows := t.Records()
	if len(t.Index) != t.Len() || len(t.Index) == 0 {
		return append([]string(nil), t.Columns...), rows
	}
	header := append([]string{""}, t.Columns...)
	for i, r := range rows {
		rows[i] = append([]string{t.Index[i]}, r...)
	}
	return header, rows
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
