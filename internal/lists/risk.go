package lists

import (
	"fmt"
	"strings"

	"github.com/nao1215/neocc/internal/model"
	"github.com/nao1215/neocc/internal/table"
)

// Header row of the risk and close-approach lists. Preamble lines precede
// it and a decorative separator follows it.
const pipeHeaderLine = 2

var riskRenames = map[string]string{
	"Num/des.       Name": "Object Name",
	"m":                   "Diameter in m",
	"Vel km/s":            "Vel in km/s",
}

var closeApproachColumns = []string{
	"Object Name",
	"Date",
	"Miss Distance in km",
	"Miss Distance in au",
	"Miss Distance in LD",
	"Diameter in m",
	"*=Yes",
	"H",
	"Max Bright",
	"Rel. vel in km/s",
}

// readPipeTable reads a "|" separated list framed with the header on
// pipeHeaderLine.
func readPipeTable(text string) *table.Table {
	header, records := readPipeRecords(text, pipeHeaderLine)
	return table.FromRecords(header, records)
}

// readPipeRecords splits a "|" separated list whose header sits on
// headerLine and is followed by one decorative separator line. Earlier
// lines are preamble. Column names are trimmed and cells have their
// whitespace collapsed. Blank lines are ignored.
func readPipeRecords(text string, headerLine int) ([]string, [][]string) {
	lines := table.Lines(text)
	if len(lines) <= headerLine {
		return nil, nil
	}
	header := table.SplitDelimited(lines[headerLine], "|")
	records := make([][]string, 0, len(lines))
	for i, l := range lines {
		if i <= headerLine+1 || strings.TrimSpace(l) == "" {
			continue
		}
		rec := strings.Split(l, "|")
		for j := range rec {
			rec[j] = table.CollapseSpaces(rec[j])
		}
		records = append(records, rec)
	}
	return header, records
}

// ParseRisk parses the risk list and the special risk list.
func ParseRisk(text string) (*table.Table, error) {
	t := readPipeTable(text)
	if t.Width() <= 1 {
		return nil, fmt.Errorf("%w: risk list has no columns", model.ErrMalformedContent)
	}
	t.Rename(riskRenames)
	t.DropLastColumn()
	if err := t.ToDecimalYear("Date/Time"); err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrMalformedContent, err)
	}
	return t, nil
}

// ParseCloseApproaches parses the upcoming and recent close-approach lists.
// A payload that collapses to a single column is what the portal returns
// on an internal error and is reported as transient.
func ParseCloseApproaches(text string) (*table.Table, error) {
	t := readPipeTable(text)
	if t.Width() <= 1 {
		return nil, fmt.Errorf("%w: close approach list has %d columns", model.ErrTransientServer, t.Width())
	}
	t.DropLastColumn()
	if err := t.SetColumns(closeApproachColumns...); err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrMalformedContent, err)
	}
	if err := t.ToDecimalYear("Date"); err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrMalformedContent, err)
	}
	return t, nil
}
