package lists

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/nao1215/neocc/internal/model"
	"github.com/nao1215/neocc/internal/table"
)

// priorityInferRows bounds the rows used to infer column spans, matching
// the 100-row window of pandas read_fwf. Later rows are cut with the
// inferred spans whatever their layout.
const priorityInferRows = 100

var priorityColumns = []string{
	"Priority",
	"Object",
	"R.A. in arcsec",
	"Decl. in deg",
	"Elong. in deg",
	"V in mag",
	"Sky uncert.",
	"End of Visibility",
}

// ParsePriority parses the priority and faint priority lists. Columns are
// inferred from the character layout; the object number and designation
// are merged into one whitespace-free designator.
func ParsePriority(text string) (*table.Table, error) {
	lines := table.Lines(text)
	if len(lines) > 0 {
		lines = lines[1:]
	}
	lines = table.NonBlank(lines)
	specs := table.InferColSpecs(lines[:min(len(lines), priorityInferRows)])
	if len(specs) != len(priorityColumns)+1 {
		return nil, fmt.Errorf("%w: priority list has %d columns, want %d",
			model.ErrMalformedContent, len(specs), len(priorityColumns)+1)
	}

	records := make([][]string, 0, len(lines))
	for _, l := range lines {
		raw := table.SliceFixed(l, specs)
		rec := make([]string, 0, len(priorityColumns))
		rec = append(rec, raw[0], removeSpaces(raw[1]+" "+raw[2]))
		rec = append(rec, raw[3:]...)
		for i := range rec {
			rec[i] = strings.ReplaceAll(rec[i], `"`, "")
		}
		records = append(records, rec)
	}

	t := table.FromRecords(priorityColumns, records)
	if err := t.ToDecimalYear("End of Visibility"); err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrMalformedContent, err)
	}
	return t, nil
}

func removeSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
