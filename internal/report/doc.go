// Package report renders query results.
//
// Writers share one interface and differ only in format:
//   - SimpleWriter: text tables for the terminal
//   - JSONWriter: structured output for other tools
//   - MarkdownWriter: documents for issues and wikis
//   - XLSXWriter: one spreadsheet sheet per object
//
// Tab results are rendered through model.TabResult.Sections, so a writer
// never switches on the concrete result type.
package report
