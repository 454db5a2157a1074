package table

// Anchor is the position of a cell whose text matched a searched value.
type Anchor struct {
	Row    int
	Column string
}

// Locate returns every anchor whose cell text equals value exactly,
// ordered by row and then by column order. It never fails: an absent
// value yields an empty slice and callers branch on its length.
func Locate(t *Table, value string) []Anchor {
	anchors := make([]Anchor, 0)
	for r, row := range t.Rows {
		for c, v := range row {
			if v.String() == value {
				anchors = append(anchors, Anchor{Row: r, Column: t.Columns[c]})
			}
		}
	}
	return anchors
}

// LocateFirst returns the first anchor of value, if any.
func LocateFirst(t *Table, value string) (Anchor, bool) {
	anchors := Locate(t, value)
	if len(anchors) == 0 {
		return Anchor{}, false
	}
	return anchors[0], true
}

// LocateRows returns the distinct row indexes, in ascending order, that
// contain value in any column.
func LocateRows(t *Table, value string) []int {
	rows := make([]int, 0)
	for _, a := range Locate(t, value) {
		if len(rows) == 0 || rows[len(rows)-1] != a.Row {
			rows = append(rows, a.Row)
		}
	}
	return rows
}
