package tabs

import (
	"fmt"
	"strings"

	"github.com/nao1215/neocc/internal/model"
	"github.com/nao1215/neocc/internal/table"
)

const (
	summaryCellClass     = "simple-list__cell"
	summaryMagnitudeAnch = "Absolute Magnitude (H)"
	summaryRotationAnch  = "Rotation period (T)"
)

// ParseSummary parses the summary page of an object.
func ParseSummary(name, text string) (*model.Summary, error) {
	p, err := parsePage(strings.NewReader(text))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrMalformedContent, err)
	}

	var lines []string
	for _, cell := range p.findAll("div", "class", classIs(summaryCellClass)) {
		for _, l := range strings.Split(textContent(cell), "\n") {
			l = strings.TrimSpace(strings.ReplaceAll(l, ",", ""))
			if l != "" {
				lines = append(lines, l)
			}
		}
	}
	cells := make([][]string, len(lines))
	for i, l := range lines {
		cells[i] = []string{l}
	}
	lineTable := table.FromRecords([]string{"cell"}, cells)

	idx, ok := table.LocateFirst(lineTable, summaryMagnitudeAnch)
	if !ok {
		return nil, fmt.Errorf("%w: object not found: %s", model.ErrDataUnavailable, name)
	}
	red, ok := table.LocateFirst(lineTable, summaryRotationAnch)
	if !ok {
		return nil, fmt.Errorf("%w: object not found: %s", model.ErrDataUnavailable, name)
	}
	line := func(i int) string {
		if i < 0 || i >= len(lines) {
			return ""
		}
		return lines[i]
	}

	diameter := ""
	if spans := p.findAll("span", "id", idIs(diameterSpanID)); len(spans) > 0 {
		diameter = strings.TrimSpace(textContent(spans[0]))
	}

	props := table.New("Physical Properties", "Value", "Units")
	rows := [][3]string{
		{"Absolute Magnitude (H)", line(idx.Row + 1), line(idx.Row + 2)},
		{"Diameter", diameter, line(idx.Row + 7)},
		{"Taxonomic Type", line(idx.Row + 9), ""},
		{"Rotation Period (T)", line(red.Row + 1), line(red.Row + 2)},
	}
	for _, r := range rows {
		if err := props.Append(table.Str(r[0]), table.Infer(r[1]), table.Infer(r[2])); err != nil {
			return nil, err
		}
	}

	return &model.Summary{
		Object:        name,
		Properties:    props,
		DiscoveryDate: line(red.Row + 4),
		Observatory:   line(red.Row + 6),
	}, nil
}
