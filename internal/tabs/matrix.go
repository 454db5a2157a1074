package tabs

import (
	"fmt"

	"github.com/nao1215/neocc/internal/model"
	"github.com/nao1215/neocc/internal/table"
)

// cellOffset locates one matrix value relative to the matrix anchor: the
// record line below the anchor and the field within that line.
type cellOffset struct {
	line  int
	field int
}

// matrixOffsets lists, per dimension, the position of every upper
// triangle cell (i <= j) in row-major order. Records hold three values
// after the keyword.
var matrixOffsets = map[int][]cellOffset{
	6: {
		{0, 1}, {0, 2}, {0, 3}, {1, 1}, {1, 2}, {1, 3},
		{2, 1}, {2, 2}, {2, 3}, {3, 1}, {3, 2},
		{3, 3}, {4, 1}, {4, 2}, {4, 3},
		{5, 1}, {5, 2}, {5, 3},
		{6, 1}, {6, 2},
		{6, 3},
	},
	7: {
		{0, 1}, {0, 2}, {0, 3}, {1, 1}, {1, 2}, {1, 3}, {2, 1},
		{2, 2}, {2, 3}, {3, 1}, {3, 2}, {3, 3}, {4, 1},
		{4, 2}, {4, 3}, {5, 1}, {5, 2}, {5, 3},
		{6, 1}, {6, 2}, {6, 3}, {7, 1},
		{7, 2}, {7, 3}, {8, 1},
		{8, 2}, {8, 3},
		{9, 1},
	},
	8: {
		{0, 1}, {0, 2}, {0, 3}, {1, 1}, {1, 2}, {1, 3}, {2, 1}, {2, 2},
		{2, 3}, {3, 1}, {3, 2}, {3, 3}, {4, 1}, {4, 2}, {4, 3},
		{5, 1}, {5, 2}, {5, 3}, {6, 1}, {6, 2}, {6, 3},
		{7, 1}, {7, 2}, {7, 3}, {8, 1}, {8, 2},
		{8, 3}, {9, 1}, {9, 2}, {9, 3},
		{10, 1}, {10, 2}, {10, 3},
		{11, 1}, {11, 2},
		{11, 3},
	},
}

// parseMatrix rebuilds the symmetric matrix whose records start at the
// first row keyed by keyword. A missing keyword yields a nil table.
func parseMatrix(rows *table.Table, keyword string, names []string) (*table.Table, error) {
	dim := len(names)
	offsets, ok := matrixOffsets[dim]
	if !ok {
		return nil, fmt.Errorf("%w: no matrix layout for dimension %d", model.ErrMalformedContent, dim)
	}
	anchor := -1
	for r := range rows.Rows {
		if rows.At(r, 0).String() == keyword {
			anchor = r
			break
		}
	}
	if anchor < 0 {
		return nil, nil
	}

	cells := make([][]float64, dim)
	for i := range cells {
		cells[i] = make([]float64, dim)
	}
	k := 0
	for i := 0; i < dim; i++ {
		for j := i; j < dim; j++ {
			off := offsets[k]
			k++
			r := anchor + off.line
			v := rows.At(r, off.field)
			f, ok := v.AsFloat()
			if !ok || r >= rows.Len() || rows.At(r, 0).String() != keyword {
				return nil, fmt.Errorf("%w: %s matrix cell (%d,%d) = %q", model.ErrMalformedContent, keyword, i, j, v.String())
			}
			cells[i][j] = f
			cells[j][i] = f
		}
	}

	m := table.New(names...)
	m.Index = append([]string(nil), names...)
	for _, row := range cells {
		vals := make([]table.Value, dim)
		for c, f := range row {
			vals[c] = table.Float(f)
		}
		if err := m.Append(vals...); err != nil {
			return nil, err
		}
	}
	return m, nil
}
