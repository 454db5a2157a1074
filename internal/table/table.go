package table

import (
	"fmt"
	"strconv"
)

// Table is an ordered sequence of rows of typed cells.
// Every row holds exactly len(Columns) cells.
type Table struct {
	// Columns are the column names in display order.
	Columns []string `json:"columns"`

	// Index holds optional row labels (e.g. "RMS" or matrix variable names).
	// When set it has one label per row.
	Index []string `json:"index,omitempty"`

	// Rows are the table rows.
	Rows [][]Value `json:"rows"`
}

// New creates an empty table with the given columns.
func New(columns ...string) *Table {
	return &Table{
		Columns: append([]string(nil), columns...),
		Rows:    make([][]Value, 0),
	}
}

// FromRecords builds a table from raw string records, inferring the type
// of every cell. Short records are padded with nulls and surplus cells are
// dropped, so the result always satisfies the width invariant.
func FromRecords(columns []string, records [][]string) *Table {
	t := New(columns...)
	for _, rec := range records {
		row := make([]Value, len(columns))
		for i := range row {
			if i < len(rec) {
				row[i] = Infer(rec[i])
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// Positional returns the column names "0".."n-1" used for tables read
// without a header.
func Positional(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = strconv.Itoa(i)
	}
	return names
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// Width returns the number of columns.
func (t *Table) Width() int { return len(t.Columns) }

// Append adds a row. The row must have one cell per column.
func (t *Table) Append(row ...Value) error {
	if len(row) != len(t.Columns) {
		return fmt.Errorf("%w: got %d cells for %d columns", ErrRowWidth, len(row), len(t.Columns))
	}
	t.Rows = append(t.Rows, row)
	return nil
}

// ColumnIndex returns the position of a column, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Column returns a copy of every cell in the named column.
func (t *Table) Column(name string) ([]Value, error) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}
	out := make([]Value, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[idx]
	}
	return out, nil
}

// Cell returns the cell at a row and named column.
func (t *Table) Cell(row int, column string) (Value, error) {
	idx := t.ColumnIndex(column)
	if idx < 0 {
		return Value{}, fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}
	if row < 0 || row >= len(t.Rows) {
		return Value{}, fmt.Errorf("row %d out of range [0,%d)", row, len(t.Rows))
	}
	return t.Rows[row][idx], nil
}

// At returns the cell at a positional row and column, or a null Value
// when the position is outside the table.
func (t *Table) At(row, col int) Value {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return Value{}
	}
	return t.Rows[row][col]
}

// Set replaces the cell at a row and named column.
func (t *Table) Set(row int, column string, v Value) error {
	idx := t.ColumnIndex(column)
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}
	if row < 0 || row >= len(t.Rows) {
		return fmt.Errorf("row %d out of range [0,%d)", row, len(t.Rows))
	}
	t.Rows[row][idx] = v
	return nil
}

// SetColumns replaces all column names at once.
func (t *Table) SetColumns(names ...string) error {
	if len(names) != len(t.Columns) {
		return fmt.Errorf("%w: %d names for %d columns", ErrRowWidth, len(names), len(t.Columns))
	}
	t.Columns = append([]string(nil), names...)
	return nil
}

// Rename renames columns. All renames are applied simultaneously, so a
// mapping such as {"en.": "PS", "PS": "TS"} swaps names without chaining.
func (t *Table) Rename(names map[string]string) {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		if n, ok := names[c]; ok {
			out[i] = n
			continue
		}
		out[i] = c
	}
	t.Columns = out
}

// Drop removes the named columns.
func (t *Table) Drop(columns ...string) error {
	drop := make(map[int]bool, len(columns))
	for _, c := range columns {
		idx := t.ColumnIndex(c)
		if idx < 0 {
			return fmt.Errorf("%w: %q", ErrUnknownColumn, c)
		}
		drop[idx] = true
	}
	t.keepColumns(func(i int) bool { return !drop[i] })
	return nil
}

// DropLastColumn removes the rightmost column.
func (t *Table) DropLastColumn() {
	last := len(t.Columns) - 1
	if last < 0 {
		return
	}
	t.keepColumns(func(i int) bool { return i != last })
}

func (t *Table) keepColumns(keep func(int) bool) {
	cols := make([]string, 0, len(t.Columns))
	for i, c := range t.Columns {
		if keep(i) {
			cols = append(cols, c)
		}
	}
	for r, row := range t.Rows {
		out := make([]Value, 0, len(cols))
		for i, v := range row {
			if keep(i) {
				out = append(out, v)
			}
		}
		t.Rows[r] = out
	}
	t.Columns = cols
}

// DropRow removes a row by position.
func (t *Table) DropRow(i int) {
	if i < 0 || i >= len(t.Rows) {
		return
	}
	t.Rows = append(t.Rows[:i], t.Rows[i+1:]...)
	if len(t.Index) > i {
		t.Index = append(t.Index[:i], t.Index[i+1:]...)
	}
}

// Apply replaces every cell of a column with fn(cell).
func (t *Table) Apply(column string, fn func(Value) (Value, error)) error {
	idx := t.ColumnIndex(column)
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, column)
	}
	for r, row := range t.Rows {
		v, err := fn(row[idx])
		if err != nil {
			return fmt.Errorf("column %q row %d: %w", column, r, err)
		}
		row[idx] = v
	}
	return nil
}

// ToNumeric coerces the named columns to int or float cells.
func (t *Table) ToNumeric(columns ...string) error {
	for _, c := range columns {
		if err := t.Apply(c, toNumeric); err != nil {
			return err
		}
	}
	return nil
}

// ColumnKind returns the common kind of a column's non-null cells.
// Mixed int and float columns report KindFloat; any other mix reports
// KindString. An all-null column reports KindNull.
func (t *Table) ColumnKind(column string) Kind {
	idx := t.ColumnIndex(column)
	if idx < 0 {
		return KindNull
	}
	kind := KindNull
	for _, row := range t.Rows {
		k := row[idx].kind
		switch {
		case k == KindNull || k == kind:
		case kind == KindNull:
			kind = k
		case (kind == KindInt && k == KindFloat) || (kind == KindFloat && k == KindInt):
			kind = KindFloat
		default:
			return KindString
		}
	}
	return kind
}

// Slice returns a positional sub-table of rows [r0,r1) and columns
// [c0,c1). Bounds are clipped to the table; cells missing from a row are
// null.
func (t *Table) Slice(r0, r1, c0, c1 int) *Table {
	r0, r1 = clip(r0, r1, len(t.Rows))
	c0, c1 = clip(c0, c1, len(t.Columns))
	out := New(t.Columns[c0:c1]...)
	for r := r0; r < r1; r++ {
		row := make([]Value, c1-c0)
		for c := c0; c < c1; c++ {
			row[c-c0] = t.At(r, c)
		}
		out.Rows = append(out.Rows, row)
	}
	if len(t.Index) == len(t.Rows) {
		out.Index = append([]string(nil), t.Index[r0:r1]...)
	}
	return out
}

func clip(lo, hi, n int) (int, int) {
	lo = max(lo, 0)
	hi = min(hi, n)
	if lo > hi {
		lo = hi
	}
	return lo, hi
}

// Records renders every cell as text, row by row.
func (t *Table) Records() [][]string {
	out := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		rec := make([]string, len(row))
		for j, v := range row {
			rec[j] = v.String()
		}
		out[i] = rec
	}
	return out
}
