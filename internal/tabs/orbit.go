package tabs

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/nao1215/neocc/internal/model"
	"github.com/nao1215/neocc/internal/table"
)

var (
	orbitFormatTemplate  = regexp.MustCompile(`^format\s*=\s*'([^']*)'`)
	orbitRecTypeTemplate = regexp.MustCompile(`^rectype\s*=\s*'([^']*)'`)
	orbitRefSysTemplate  = regexp.MustCompile(`^refsys\s*=\s*([^!]*?)\s*(!|$)`)
)

// orbitSkipRows are the physical lines dropped before the record table,
// keyed on whether the file carries a SOLUTION line.
var orbitSkipRows = map[bool][]int{
	false: {0, 1, 2, 3, 4, 9},
	true:  {0, 1, 2, 3, 4, 5, 10},
}

const orbitSolutionLine = 5

var keplerianNames = []string{"a", "e", "i", "long. node", "arg. peric.", "mean anomaly"}

var equinoctialNames = []string{
	"a", "e*sin(LP)", "e*cos(LP)", "tan(i/2)*sin(LN)", "tan(i/2)*cos(LN)", "mean long.",
}

var lspColumns = []string{"model used", "number of model parameters", "dimension"}

var ngrColumns = []string{"Area-to-mass ratio in m^2/ton", "Yarkovsky parameter in 1E-10au/day^2"}

const (
	areaToMass = "Area-to-mass ratio"
	yarkovsky  = "Yarkovsky parameter"
)

// orbitRecord is the whitespace table of an orbit file together with the
// fields shared by both element sets.
type orbitRecord struct {
	base  model.OrbitBase
	rows  *table.Table
	names []string
}

// parseOrbitBase reads the header, epoch, MAG, LSP and NGR blocks and
// resolves the variable names of the solution for the given base names.
func parseOrbitBase(name, text string, baseNames []string) (*orbitRecord, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: orbit properties unavailable for object %s", model.ErrDataUnavailable, name)
	}
	lines := table.Lines(text)
	rec := &orbitRecord{base: model.OrbitBase{Object: name}}

	header := []struct {
		re  *regexp.Regexp
		dst *string
		key string
	}{
		{orbitFormatTemplate, &rec.base.Format, "format"},
		{orbitRecTypeTemplate, &rec.base.RecordType, "rectype"},
		{orbitRefSysTemplate, &rec.base.RefSystem, "refsys"},
	}
	for i, h := range header {
		if i >= len(lines) {
			return nil, fmt.Errorf("%w: orbit header: missing %s", model.ErrMalformedContent, h.key)
		}
		m := h.re.FindStringSubmatch(strings.TrimSpace(lines[i]))
		if m == nil {
			return nil, fmt.Errorf("%w: orbit header: unexpected %s line %q", model.ErrMalformedContent, h.key, lines[i])
		}
		*h.dst = m[1]
	}

	solution := false
	if len(lines) > orbitSolutionLine {
		f := strings.Fields(lines[orbitSolutionLine])
		solution = len(f) > 0 && strings.Contains(f[0], "SOLUTION")
	}
	kept := keepLines(lines, orbitSkipRows[solution])
	kept = table.NonBlank(kept)
	if len(kept) < 2 {
		return nil, fmt.Errorf("%w: orbit file has no records", model.ErrMalformedContent)
	}
	rec.rows = table.FromFields(kept[1:])
	rows := rec.rows

	if rows.Len() < 3 {
		return nil, fmt.Errorf("%w: orbit file has %d records", model.ErrMalformedContent, rows.Len())
	}
	rec.base.Epoch = rows.At(1, 1).String() + " MJD"

	rec.base.MAG = rows.Slice(2, 3, 1, 3)
	rec.base.MAG.Columns = []string{"H", "G"}
	rec.base.MAG.Index = []string{"MAG"}

	lsp, ok := locateKeyword(rows, "LSP", 0)
	if !ok {
		return nil, fmt.Errorf("%w: orbit file has no LSP record", model.ErrMalformedContent)
	}
	dim, ok := rows.At(lsp, 3).AsInt()
	if !ok || dim < 6 || dim > 8 {
		return nil, fmt.Errorf("%w: unsupported solution dimension %q", model.ErrMalformedContent, rows.At(lsp, 3).String())
	}
	rec.base.Dimension = int(dim)

	extra := rec.base.Dimension - 6
	rec.base.LSP = rows.Slice(lsp, lsp+1, 1, 4+extra)
	cols := append([]string(nil), lspColumns...)
	for i := 1; i <= extra; i++ {
		cols = append(cols, "parameter "+strconv.Itoa(i))
	}
	if err := rec.base.LSP.SetColumns(cols...); err != nil {
		return nil, fmt.Errorf("%w: LSP record: %w", model.ErrMalformedContent, err)
	}
	rec.base.LSP.Index = []string{"LSP"}

	if extra > 0 {
		ngr, ok := locateKeyword(rows, "NGR", lsp+1)
		if !ok {
			return nil, fmt.Errorf("%w: dimension %d solution has no NGR record", model.ErrMalformedContent, dim)
		}
		width := 0
		for c := 1; c <= len(ngrColumns) && !rows.At(ngr, c).IsNull(); c++ {
			width = c
		}
		if width == 0 {
			return nil, fmt.Errorf("%w: empty NGR record", model.ErrMalformedContent)
		}
		rec.base.NGR = rows.Slice(ngr, ngr+1, 1, 1+width)
		rec.base.NGR.Columns = append([]string(nil), ngrColumns[:width]...)
		rec.base.NGR.Index = []string{"NGR"}
	}

	names, err := variableNames(baseNames, rec.base.Dimension, rec.base.NGR)
	if err != nil {
		return nil, err
	}
	rec.names = names
	return rec, nil
}

// variableNames appends the non-gravitational parameter names a solution
// of the given dimension estimates.
func variableNames(base []string, dim int, ngr *table.Table) ([]string, error) {
	names := append([]string(nil), base...)
	switch dim {
	case 6:
	case 7:
		first, ok := ngr.At(0, 0).AsFloat()
		if !ok {
			return nil, fmt.Errorf("%w: NGR value %q", model.ErrMalformedContent, ngr.At(0, 0).String())
		}
		if first == 0 {
			names = append(names, yarkovsky)
		} else {
			names = append(names, areaToMass)
		}
	case 8:
		names = append(names, areaToMass, yarkovsky)
	}
	return names, nil
}

func keepLines(lines []string, skip []int) []string {
	drop := make(map[int]bool, len(skip))
	for _, i := range skip {
		drop[i] = true
	}
	out := make([]string, 0, len(lines))
	for i, l := range lines {
		if !drop[i] {
			out = append(out, l)
		}
	}
	return out
}

// locateKeyword returns the first row at or after from that holds
// keyword in any field.
func locateKeyword(t *table.Table, keyword string, from int) (int, bool) {
	for _, r := range table.LocateRows(t, keyword) {
		if r >= from {
			return r, true
		}
	}
	return 0, false
}

// namedRow returns the record row as a one-row table of dim values
// starting at column c0.
func namedRow(t *table.Table, row, c0 int, names []string, label string) (*table.Table, error) {
	out := t.Slice(row, row+1, c0, c0+len(names))
	if out.Width() != len(names) {
		return nil, fmt.Errorf("%w: %s record has %d values, want %d", model.ErrMalformedContent, label, out.Width(), len(names))
	}
	out.Columns = append([]string(nil), names...)
	out.Index = []string{label}
	return out, nil
}
