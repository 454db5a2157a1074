package tabs

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/nao1215/neocc/internal/model"
	"github.com/nao1215/neocc/internal/table"
)

var (
	obsVersionTemplate = regexp.MustCompile(`^version\s*=\s*(\d+)\s*$`)
	obsErrmodTemplate  = regexp.MustCompile(`^errmod\s*=\s*'([^']*)'\s*$`)
	obsRMSAstTemplate  = regexp.MustCompile(`^RMSast\s*=\s*(\S+)\s*$`)
	obsRMSMagTemplate  = regexp.MustCompile(`^RMSmag\s*=\s*(\S+)\s*$`)
)

// obsHeaderSkip is the number of lines before the column header, keyed on
// whether the file publishes RMSmag.
var obsHeaderSkip = map[bool]int{false: 5, true: 6}

const obsRadarMarker = "! Object"

var opticalColSpecs = []table.ColSpec{
	{Start: 0, End: 10}, {Start: 11, End: 12}, {Start: 12, End: 15}, {Start: 15, End: 16},
	{Start: 17, End: 21}, {Start: 22, End: 24}, {Start: 25, End: 38}, {Start: 40, End: 49},
	{Start: 50, End: 52}, {Start: 53, End: 55}, {Start: 56, End: 62}, {Start: 64, End: 73},
	{Start: 76, End: 82}, {Start: 83, End: 84}, {Start: 87, End: 93}, {Start: 96, End: 102},
	{Start: 103, End: 106}, {Start: 107, End: 109}, {Start: 110, End: 115}, {Start: 117, End: 126},
	{Start: 129, End: 135}, {Start: 136, End: 137}, {Start: 140, End: 146}, {Start: 149, End: 155},
	{Start: 156, End: 161}, {Start: 161, End: 162}, {Start: 164, End: 168}, {Start: 170, End: 175},
	{Start: 177, End: 179}, {Start: 180, End: 183}, {Start: 188, End: 193}, {Start: 194, End: 195},
	{Start: 196, End: 197},
}

var opticalColumns = []string{
	"Design.", "K", "T", "N", "YYYY", "MM", "DD.dddddddddd", "Date Accuracy",
	"RA HH", "RA MM", "RA SS.sss", "RA Accuracy", "RA RMS", "RA F", "RA Bias",
	"RA Resid", "DEC sDD", "DEC MM", "DEC SS.ss", "DEC Accuracy", "DEC RMS",
	"DEC F", "DEC Bias", "DEC Resid", "MAG Val", "MAG B", "MAG RMS",
	"MAG Resid", "Ast Cat", "Obs Code", "Chi", "A", "M",
}

var rovingColSpecs = []table.ColSpec{
	{Start: 0, End: 10}, {Start: 11, End: 12}, {Start: 12, End: 14}, {Start: 15, End: 16},
	{Start: 17, End: 21}, {Start: 22, End: 24}, {Start: 25, End: 34}, {Start: 34, End: 44},
	{Start: 45, End: 55}, {Start: 56, End: 64}, {Start: 65, End: 68},
}

var rovingColumns = []string{
	"Design.", "K", "T", "N", "YYYY", "MM", "DD.dddddd", "E longitude",
	"Latitude", "Altitude", "Obs Code",
}

var satelliteColSpecs = []table.ColSpec{
	{Start: 0, End: 10}, {Start: 11, End: 12}, {Start: 12, End: 15}, {Start: 15, End: 16},
	{Start: 17, End: 21}, {Start: 22, End: 24}, {Start: 25, End: 34}, {Start: 34, End: 35},
	{Start: 40, End: 59}, {Start: 64, End: 83}, {Start: 88, End: 107}, {Start: 108, End: 111},
}

var satelliteColumns = []string{
	"Design.", "K", "T", "N", "YYYY", "MM", "DD.dddddd", "Parallax info.",
	"X", "Y", "Z", "Obs Code",
}

var radarColSpecs = []table.ColSpec{
	{Start: 0, End: 10}, {Start: 11, End: 12}, {Start: 13, End: 14}, {Start: 15, End: 16},
	{Start: 17, End: 21}, {Start: 22, End: 24}, {Start: 25, End: 27}, {Start: 28, End: 36},
	{Start: 37, End: 52}, {Start: 53, End: 74}, {Start: 75, End: 76}, {Start: 77, End: 87},
	{Start: 88, End: 98}, {Start: 99, End: 106}, {Start: 107, End: 115}, {Start: 116, End: 118},
}

var radarColumns = []string{
	"Design", "K", "T", "Datetime", "Measure", "Accuracy", "rms", "F",
	"Bias", "Resid", "TRX", "RCX", "Chi", "S",
}

// radarHeaderLines is the marker line plus the column header line.
const radarHeaderLines = 2

// ParseObservations parses the .rwo file of an object.
func ParseObservations(name, text string) (*model.Observations, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: observations empty for object %s", model.ErrDataUnavailable, name)
	}
	lines := table.Lines(text)
	res := &model.Observations{Object: name}
	if err := parseObsHeader(res, lines); err != nil {
		return nil, err
	}

	start := obsHeaderSkip[res.HasRMSMag] + 1
	if len(lines) < start {
		return nil, fmt.Errorf("%w: observations file has %d lines", model.ErrMalformedContent, len(lines))
	}
	body := table.NonBlank(lines[start:])

	// Markers are searched in the designator and K/T/N fields only.
	keys := table.FromFixedWidth(body, opticalColSpecs[:4], opticalColumns[:4])
	opticalEnd := len(body)
	for _, a := range table.Locate(keys, obsRadarMarker) {
		if a.Column == opticalColumns[0] {
			opticalEnd = a.Row
			break
		}
	}

	markerKeys := keys.Slice(0, opticalEnd, 1, 4)
	roving := rowSet(table.LocateRows(markerKeys, "v"))
	satellite := rowSet(table.LocateRows(markerKeys, "s"))

	var optical, rov, sat []string
	for i, l := range body[:opticalEnd] {
		switch {
		case roving[i]:
			rov = append(rov, l)
		case satellite[i]:
			sat = append(sat, l)
		default:
			optical = append(optical, l)
		}
	}

	res.Optical = table.FromFixedWidth(optical, opticalColSpecs, opticalColumns)
	if len(rov) > 0 {
		res.Roving = table.FromFixedWidth(rov, rovingColSpecs, rovingColumns)
	}
	if len(sat) > 0 {
		res.Satellite = table.FromFixedWidth(sat, satelliteColSpecs, satelliteColumns)
	}
	if opticalEnd < len(body) {
		radar, err := parseRadar(body[min(opticalEnd+radarHeaderLines, len(body)):])
		if err != nil {
			return nil, err
		}
		res.Radar = radar
	}
	return res, nil
}

func rowSet(rows []int) map[int]bool {
	set := make(map[int]bool, len(rows))
	for _, r := range rows {
		set[r] = true
	}
	return set
}

func parseObsHeader(res *model.Observations, lines []string) error {
	match := func(i int, re *regexp.Regexp) (string, bool) {
		if i >= len(lines) {
			return "", false
		}
		m := re.FindStringSubmatch(strings.TrimSpace(lines[i]))
		if m == nil {
			return "", false
		}
		return m[1], true
	}

	v, ok := match(0, obsVersionTemplate)
	if !ok {
		return fmt.Errorf("%w: observations header: missing version", model.ErrMalformedContent)
	}
	res.Version, _ = strconv.Atoi(v)

	if res.ErrorModel, ok = match(1, obsErrmodTemplate); !ok {
		return fmt.Errorf("%w: observations header: missing errmod", model.ErrMalformedContent)
	}

	ast, ok := match(2, obsRMSAstTemplate)
	if !ok {
		return fmt.Errorf("%w: observations header: missing RMSast", model.ErrMalformedContent)
	}
	var err error
	if res.RMSAst, err = strconv.ParseFloat(ast, 64); err != nil {
		return fmt.Errorf("%w: observations header: RMSast %q", model.ErrMalformedContent, ast)
	}

	if mag, ok := match(3, obsRMSMagTemplate); ok {
		if res.RMSMag, err = strconv.ParseFloat(mag, 64); err != nil {
			return fmt.Errorf("%w: observations header: RMSmag %q", model.ErrMalformedContent, mag)
		}
		res.HasRMSMag = true
	}
	return nil
}

// parseRadar reads the radar rows. The date fields are combined into one
// timestamp and the two composite fields are split in two.
func parseRadar(lines []string) (*table.Table, error) {
	t := table.New(radarColumns...)
	for _, l := range lines {
		f := table.SliceFixed(l, radarColSpecs)
		ts, err := time.Parse("2006-1-2 15:04:05", fmt.Sprintf("%s-%s-%s %s", f[4], f[5], f[6], f[7]))
		if err != nil {
			return nil, fmt.Errorf("%w: radar datetime: %w", model.ErrMalformedContent, err)
		}
		accuracy, rms := splitFirstSpace(f[9])
		trx, rcx := splitFirstSpace(f[13])
		row := []table.Value{
			table.Infer(f[0]), table.Infer(f[1]), table.Infer(f[2]), table.Time(ts),
			table.Infer(f[8]), table.Infer(accuracy), table.Infer(rms), table.Infer(f[10]),
			table.Infer(f[11]), table.Infer(f[12]), table.Infer(trx), table.Infer(rcx),
			table.Infer(f[14]), table.Infer(f[15]),
		}
		if err := t.Append(row...); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func splitFirstSpace(s string) (string, string) {
	a, b, _ := strings.Cut(strings.TrimSpace(s), " ")
	return a, strings.TrimSpace(b)
}
