package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/nao1215/neocc/internal/model"
	"github.com/nao1215/neocc/internal/table"
)

// maxSheetName is the longest sheet name a workbook accepts.
const maxSheetName = 31

// XLSXWriter outputs results as an Excel workbook. Lists take one sheet;
// objects take one sheet each with their sections stacked vertically.
// Numeric and time cells keep their type.
type XLSXWriter struct {
	baseWriter
}

// NewXLSXWriter creates an XLSXWriter that outputs to the given writer.
func NewXLSXWriter(output io.Writer) *XLSXWriter {
	return &XLSXWriter{
		baseWriter: newBaseWriter(output),
	}
}

// WriteList outputs the list on a sheet named after it.
func (w *XLSXWriter) WriteList(list *model.ListResult) (int, error) {
	b, err := newWorkbook()
	if err != nil {
		return 0, err
	}
	defer b.close()

	sheet, err := b.addSheet(string(list.Name))
	if err != nil {
		return 0, err
	}
	if _, err := b.writeSection(sheet, 1, listSection(list), false); err != nil {
		return 0, err
	}
	return b.writeTo(w.output)
}

// WriteObjects outputs one sheet per object.
func (w *XLSXWriter) WriteObjects(objects []ObjectReport) (int, error) {
	b, err := newWorkbook()
	if err != nil {
		return 0, err
	}
	defer b.close()

	for _, o := range objects {
		sheet, err := b.addSheet(o.Object + " " + string(o.Tab))
		if err != nil {
			return 0, err
		}
		row := 1
		for _, s := range o.sections() {
			if row, err = b.writeSection(sheet, row, s, true); err != nil {
				return 0, err
			}
			row++
		}
	}
	return b.writeTo(w.output)
}

// workbook tracks sheet names and the header style of one export.
type workbook struct {
	file   *excelize.File
	bold   int
	sheets map[string]bool
}

func newWorkbook() (*workbook, error) {
	f := excelize.NewFile()
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	return &workbook{file: f, bold: bold, sheets: make(map[string]bool)}, nil
}

func (b *workbook) close() { _ = b.file.Close() }

// addSheet creates a sheet with a valid, unique name derived from title.
// The default sheet is renamed for the first call.
func (b *workbook) addSheet(title string) (string, error) {
	name := uniqueSheetName(sanitizeSheetName(title), b.sheets)
	if len(b.sheets) == 0 {
		if err := b.file.SetSheetName(b.file.GetSheetName(0), name); err != nil {
			return "", fmt.Errorf("failed to rename sheet: %w", err)
		}
	} else if _, err := b.file.NewSheet(name); err != nil {
		return "", fmt.Errorf("failed to create sheet %q: %w", name, err)
	}
	b.sheets[strings.ToLower(name)] = true
	return name, nil
}

// writeSection writes s starting at row and returns the next free row.
func (b *workbook) writeSection(sheet string, row int, s model.Section, titled bool) (int, error) {
	if titled {
		if err := b.setRow(sheet, row, []any{s.Title}, true); err != nil {
			return row, err
		}
		row++
	}
	for _, f := range s.Fields {
		if err := b.setRow(sheet, row, []any{f.Name, f.Value}, false); err != nil {
			return row, err
		}
		row++
	}
	if s.Table != nil {
		header, _ := records(s.Table)
		if err := b.setRow(sheet, row, toAny(header), true); err != nil {
			return row, err
		}
		row++
		labelled := len(header) > s.Table.Width()
		for i, r := range s.Table.Rows {
			cells := make([]any, 0, len(header))
			if labelled {
				cells = append(cells, s.Table.Index[i])
			}
			for _, v := range r {
				cells = append(cells, cellValue(v))
			}
			if err := b.setRow(sheet, row, cells, false); err != nil {
				return row, err
			}
			row++
		}
	}
	if s.Text != "" {
		for _, line := range strings.Split(s.Text, "\n") {
			if err := b.setRow(sheet, row, []any{line}, false); err != nil {
				return row, err
			}
			row++
		}
	}
	return row, nil
}

func (b *workbook) setRow(sheet string, row int, cells []any, header bool) error {
	start, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := b.file.SetSheetRow(sheet, start, &cells); err != nil {
		return fmt.Errorf("failed to write row %d of %q: %w", row, sheet, err)
	}
	if !header || len(cells) == 0 {
		return nil
	}
	end, err := excelize.CoordinatesToCellName(len(cells), row)
	if err != nil {
		return err
	}
	return b.file.SetCellStyle(sheet, start, end, b.bold)
}

func (b *workbook) writeTo(out io.Writer) (int, error) {
	n, err := b.file.WriteTo(out)
	if err != nil {
		return int(n), fmt.Errorf("failed to write workbook: %w", err)
	}
	return int(n), nil
}

// cellValue keeps numbers and times typed so spreadsheets can sort and
// plot them.
func cellValue(v table.Value) any {
	switch v.Kind() {
	case table.KindNull:
		return nil
	case table.KindInt:
		n, _ := v.AsInt()
		return n
	case table.KindFloat:
		f, _ := v.AsFloat()
		return f
	case table.KindTime:
		t, _ := v.AsTime()
		return t
	default:
		return v.String()
	}
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

func sanitizeSheetName(s string) string {
	s = strings.Map(func(r rune) rune {
		if strings.ContainsRune(`:\/?*[]`, r) {
			return '_'
		}
		return r
	}, strings.TrimSpace(s))
	if s == "" {
		s = "Sheet"
	}
	return truncateRunes(s, maxSheetName)
}

// uniqueSheetName appends a counter until name is free. Workbooks compare
// sheet names case-insensitively, so taken holds lower-cased names.
func uniqueSheetName(name string, taken map[string]bool) string {
	if !taken[strings.ToLower(name)] {
		return name
	}
	for i := 2; ; i++ {
		suffix := " (" + strconv.Itoa(i) + ")"
		candidate := truncateRunes(name, maxSheetName-len(suffix)) + suffix
		if !taken[strings.ToLower(candidate)] {
			return candidate
		}
	}
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
