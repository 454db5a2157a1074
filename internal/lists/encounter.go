package lists

import (
	"fmt"

	"github.com/nao1215/neocc/internal/model"
	"github.com/nao1215/neocc/internal/table"
)

// encounterHeaderLine is the header row of close_encounter2.txt. Line 0 is
// a title and line 2 a dash separator.
const encounterHeaderLine = 1

// closeEncounterColumns replaces the file's own header names, which are
// abbreviated ("Name/desig") and vary between releases.
var closeEncounterColumns = []string{
	"Name/design",
	"Planet",
	"Date",
	"Time approach",
	"Time uncert",
	"Distance",
	"Minimum distance",
	"Distance uncertainty",
	"Width",
	"Stretch",
	"Probability",
	"Velocity",
	"Max Mag",
}

var closeEncounterWidth = len(closeEncounterColumns)

// ParseCloseEncounter parses the "|" separated close encounter list.
// The header must have 13 names; they are replaced with the canonical
// column names. A trailing "|" on every line adds an empty last column,
// which is dropped.
func ParseCloseEncounter(text string) (*table.Table, error) {
	header, records := readPipeRecords(text, encounterHeaderLine)
	trailing := len(header) > 0 && header[len(header)-1] == ""
	if trailing {
		header = header[:len(header)-1]
	}
	if len(header) != closeEncounterWidth {
		return nil, fmt.Errorf("%w: close encounter header has %d columns, want %d",
			model.ErrMalformedContent, len(header), closeEncounterWidth)
	}

	for i, rec := range records {
		if trailing && len(rec) == closeEncounterWidth+1 && rec[closeEncounterWidth] == "" {
			rec = rec[:closeEncounterWidth]
			records[i] = rec
		}
		if len(rec) != closeEncounterWidth {
			return nil, fmt.Errorf("%w: close encounter row %d has %d fields, want %d",
				model.ErrMalformedContent, i+1, len(rec), closeEncounterWidth)
		}
	}
	return table.FromRecords(closeEncounterColumns, records), nil
}
