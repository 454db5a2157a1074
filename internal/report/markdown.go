package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"

	"github.com/nao1215/neocc/internal/model"
)

// MarkdownWriter outputs results as GitHub-flavored Markdown.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// WriteList outputs the list as a single table.
func (w *MarkdownWriter) WriteList(list *model.ListResult) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("NEOCC list: " + string(list.Name))
	md.PlainText("")
	md.PlainTextf("%s entries", strconv.Itoa(list.Len()))
	md.PlainText("")
	w.writeSection(md, listSection(list), false)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// WriteObjects outputs one chapter per object.
func (w *MarkdownWriter) WriteObjects(objects []ObjectReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	for _, o := range objects {
		md.H1(o.Object + " (" + string(o.Tab) + ")")
		md.PlainText("")
		if o.Failed() {
			md.Cautionf("Query failed: %s", o.Error)
			md.PlainText("")
			continue
		}
		for _, s := range o.sections() {
			w.writeSection(md, s, true)
		}
	}
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeSection(md *markdown.Markdown, s model.Section, titled bool) {
	if titled {
		md.H2(s.Title)
		md.PlainText("")
	}

	if len(s.Fields) > 0 {
		rows := make([][]string, len(s.Fields))
		for i, f := range s.Fields {
			rows[i] = []string{f.Name, orDash(f.Value)}
		}
		md.Table(markdown.TableSet{Header: []string{"Property", "Value"}, Rows: rows})
		md.PlainText("")
	}

	if s.Table != nil {
		header, rows := records(s.Table)
		md.Table(markdown.TableSet{Header: header, Rows: rows})
		md.PlainText("")
	}

	switch {
	case s.Text == "":
	case strings.Contains(s.Text, "\n"):
		md.CodeBlocks(markdown.SyntaxHighlightText, s.Text)
		md.PlainText("")
	default:
		md.Note(s.Text)
		md.PlainText("")
	}
}

func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Generated by [neocc](https://github.com/nao1215/neocc) from ESA NEOCC data*")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
