package tabs

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/nao1215/neocc/internal/model"
	"github.com/nao1215/neocc/internal/table"
)

const impactsNoteMarker = "<p> </p>"

// impactsShape is the footer layout of a risk file.
type impactsShape struct {
	shift      int // extra non-blank lines the note adds after the footer
	skipFooter int // physical lines excluded from the data table
}

var impactsShapes = map[bool]impactsShape{
	false: {shift: 0, skipFooter: 12},
	true:  {shift: 6, skipFooter: 21},
}

const impactsNoteLines = 5

var impactsHeaderSkip = map[int]bool{0: true, 2: true, 3: true, 4: true}

var (
	impactsObsTemplate = regexp.MustCompile(`^Based on (\d+) optical observations \(of which (\d+) are rejected as outliers\)$`)
	impactsArcTemplate = regexp.MustCompile(`^from (.+) to (.+)\.$`)
)

var impactsNoteReplacer = strings.NewReplacer(
	"<p>", "",
	"</p>", "",
	`<span style="color: #0000CD;"><strong>`, "",
	"</strong></span>", "",
	"<sup>", "^",
	"</sup>", "",
)

var impactsNumeric = []string{"MJD", "sigimp", "dist", "width", "p_RE", "exp.", "en.", "PS"}

var impactsRenames = map[string]string{
	"exp.": "Exp. Energy in MT",
	"en.":  "PS",
	"PS":   "TS",
}

// ParseImpacts parses the .risk file of an object.
func ParseImpacts(name, text string) (*model.Impacts, error) {
	lines := table.Lines(text)
	nonBlank := table.NonBlank(lines)

	trimmed := make([][]string, len(nonBlank))
	for i, l := range nonBlank {
		trimmed[i] = []string{strings.TrimSpace(l)}
	}
	lineTable := table.FromRecords([]string{"line"}, trimmed)
	marker, hasNote := table.LocateFirst(lineTable, impactsNoteMarker)
	shape := impactsShapes[hasNote]

	data, err := readImpactsTable(lines, shape.skipFooter)
	if err != nil {
		return nil, err
	}
	if data.Len() == 0 {
		return nil, fmt.Errorf("%w: impact data unavailable for object %s", model.ErrDataUnavailable, name)
	}

	last := data.Len() - 1
	if data.At(last, 0).String() == "Based" {
		data.DropRow(last)
		if err := data.ToNumeric(impactsNumeric...); err != nil {
			return nil, fmt.Errorf("%w: %w", model.ErrMalformedContent, err)
		}
	}
	if err := data.Drop("+/-", "TS"); err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrMalformedContent, err)
	}
	data.Rename(impactsRenames)

	res := &model.Impacts{Object: name, Table: data}
	if err := parseImpactsFooter(res, nonBlank, shape.shift); err != nil {
		return nil, err
	}
	if hasNote {
		res.AdditionalNote = impactsNote(nonBlank, marker.Row)
	}
	return res, nil
}

// readImpactsTable reads the whitespace table whose header is line 1.
func readImpactsTable(lines []string, skipFooter int) (*table.Table, error) {
	if len(lines) < 2 {
		return nil, fmt.Errorf("%w: risk file has %d lines", model.ErrMalformedContent, len(lines))
	}
	header := strings.Fields(lines[1])
	end := max(len(lines)-skipFooter, 0)
	records := make([][]string, 0, end)
	for i := 2; i < end; i++ {
		if impactsHeaderSkip[i] || strings.TrimSpace(lines[i]) == "" {
			continue
		}
		records = append(records, strings.Fields(lines[i]))
	}
	return table.FromRecords(header, records), nil
}

// parseImpactsFooter fills the observation arc, counts, computation date
// and information block from the lines at the end of the file.
func parseImpactsFooter(res *model.Impacts, lines []string, j int) error {
	n := len(lines)
	at := func(back int) (string, error) {
		i := n - back - j
		if i < 0 {
			return "", fmt.Errorf("%w: risk file footer too short", model.ErrMalformedContent)
		}
		return strings.TrimSpace(lines[i]), nil
	}

	obsLine, err := at(7)
	if err != nil {
		return err
	}
	obsLine, _, _ = strings.Cut(obsLine, " and")
	m := impactsObsTemplate.FindStringSubmatch(obsLine)
	if m == nil {
		return fmt.Errorf("%w: unexpected observations line %q", model.ErrMalformedContent, obsLine)
	}
	total, _ := strconv.Atoi(m[1])
	rejected, _ := strconv.Atoi(m[2])
	res.ObservationsAccepted = total - rejected
	res.ObservationsRejected = rejected

	arcLine, err := at(6)
	if err != nil {
		return err
	}
	m = impactsArcTemplate.FindStringSubmatch(arcLine)
	if m == nil {
		return fmt.Errorf("%w: unexpected arc line %q", model.ErrMalformedContent, arcLine)
	}
	res.ArcStart, res.ArcEnd = m[1], m[2]

	compLine, err := at(1)
	if err != nil {
		return err
	}
	parts := strings.Split(compLine, "=")
	if len(parts) < 3 {
		return fmt.Errorf("%w: unexpected computation line %q", model.ErrMalformedContent, compLine)
	}
	res.ComputationDate = strings.TrimSpace(parts[2])

	info := make([]string, 4)
	for k := range info {
		if info[k], err = at(5 - k); err != nil {
			return err
		}
	}
	res.Info = info[0] + "\n\n" + info[1] + "\n" + info[2] + "\n\n" + info[3]
	return nil
}

func impactsNote(lines []string, marker int) string {
	end := min(marker+1+impactsNoteLines, len(lines))
	note := make([]string, 0, impactsNoteLines)
	for _, l := range lines[marker+1 : end] {
		note = append(note, strings.TrimSpace(l))
	}
	return impactsNoteReplacer.Replace(strings.Join(note, "\n"))
}
