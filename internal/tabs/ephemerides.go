package tabs

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/nao1215/neocc/internal/model"
	"github.com/nao1215/neocc/internal/table"
)

// EphemeridesRequest holds the arguments of an ephemerides query.
// Field names in validation errors are the CLI flag names.
type EphemeridesRequest struct {
	Observatory string  `flag:"observatory" validate:"required"`
	Start       string  `flag:"start" validate:"required,datetime=2006-01-02 15:04"`
	Stop        string  `flag:"stop" validate:"required,datetime=2006-01-02 15:04"`
	Step        float64 `flag:"step" validate:"gt=0"`
	Unit        string  `flag:"step-unit" validate:"oneof=days hours minutes"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("flag")
	})
	return v
}

// Validate checks that every argument is present and well formed.
func (r EphemeridesRequest) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", model.ErrInvalidSelector, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describeFieldError(fe))
	}
	return fmt.Errorf("%w: tab %q: %s", model.ErrInvalidSelector, model.TabEphemerides, strings.Join(msgs, "; "))
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("--%s is required", fe.Field())
	case "datetime":
		return fmt.Sprintf("--%s must be formatted as YYYY-MM-DD hh:mm", fe.Field())
	case "gt":
		return fmt.Sprintf("--%s must be greater than %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("--%s must be one of: %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("--%s is invalid (%s)", fe.Field(), fe.Tag())
	}
}

const (
	ephemHeaderLines = 9
	ephemFooterLines = 2
	ephemDateLayout  = "02 Jan 2006"
)

var ephemColSpecs = []table.ColSpec{
	{Start: 1, End: 12}, {Start: 13, End: 19}, {Start: 20, End: 32},
	{Start: 34, End: 37}, {Start: 37, End: 40}, {Start: 40, End: 47},
	{Start: 49, End: 52}, {Start: 52, End: 55}, {Start: 55, End: 61},
	{Start: 62, End: 67}, {Start: 68, End: 73}, {Start: 74, End: 82},
	{Start: 83, End: 89}, {Start: 90, End: 96}, {Start: 97, End: 103},
	{Start: 104, End: 110}, {Start: 111, End: 116}, {Start: 116, End: 122},
	{Start: 123, End: 130}, {Start: 131, End: 138}, {Start: 140, End: 148},
	{Start: 150, End: 158}, {Start: 160, End: 168}, {Start: 170, End: 178},
	{Start: 178, End: 184},
}

var ephemColumns = []string{
	"Date", "Hour", "MJD", "H", "M", "S", "D", "'", `"`, "Mag", "Alt",
	"Airmass", "Sun elev.", "SolEl (deg)", "LunEl (deg)", "Phase (deg)",
	"Glat (deg)", "Glon (deg)", "R (au)", "Delta (au)", `Ra*cosDE ("/min)`,
	`DEC ("/min)`, "Err1", "Err2", "PA",
}

var ephemHeader = []*regexp.Regexp{
	regexp.MustCompile(`^\s*Observatory:\s*(.*?)\s*$`),
	regexp.MustCompile(`^\s*Initial Date:\s*(.*?)\s*$`),
	regexp.MustCompile(`^\s*Final Date:\s*(.*?)\s*$`),
	regexp.MustCompile(`^\s*Time step:\s*(.*?)\s*$`),
}

// ParseEphemerides parses a generated ephemeris. A response made of a
// single line is the portal's explanation of a rejected request.
func ParseEphemerides(name, text string) (*model.Ephemerides, error) {
	lines := table.Lines(text)
	nonBlank := table.NonBlank(lines)
	if len(nonBlank) == 0 {
		return nil, fmt.Errorf("%w: ephemerides empty for object %s", model.ErrDataUnavailable, name)
	}
	if len(nonBlank) == 1 {
		msg := strings.TrimSpace(strings.ReplaceAll(nonBlank[0], `"`, ""))
		return nil, fmt.Errorf("%w: %s", model.ErrInvalidSelector, msg)
	}
	if len(lines) < ephemHeaderLines+ephemFooterLines {
		return nil, fmt.Errorf("%w: ephemerides has %d lines", model.ErrMalformedContent, len(lines))
	}

	head := make([]string, len(ephemHeader))
	for i, re := range ephemHeader {
		m := re.FindStringSubmatch(lines[i+1])
		if m == nil {
			return nil, fmt.Errorf("%w: ephemerides header line %d: %q", model.ErrMalformedContent, i+1, lines[i+1])
		}
		head[i] = m[1]
	}

	body := table.NonBlank(lines[ephemHeaderLines : len(lines)-ephemFooterLines])
	t := table.FromFixedWidth(body, ephemColSpecs, ephemColumns)
	if err := t.Apply("Date", canonicalDate); err != nil {
		return nil, fmt.Errorf("%w: %w", model.ErrMalformedContent, err)
	}
	// Declination degrees become integers like the rest of the column, so
	// "-00" is 0 and a declination in (-1°, 0°) reads as positive. The
	// cell text keeps the sign for display.
	if t.ColumnKind("D") == table.KindString {
		if err := t.Apply("D", compactInt); err != nil {
			return nil, fmt.Errorf("%w: %w", model.ErrMalformedContent, err)
		}
	}

	return &model.Ephemerides{
		Object:      name,
		Observatory: head[0],
		InitialDate: head[1],
		FinalDate:   head[2],
		TimeStep:    head[3],
		Table:       t,
	}, nil
}

func canonicalDate(v table.Value) (table.Value, error) {
	if v.IsNull() {
		return v, nil
	}
	d, err := time.Parse(ephemDateLayout, v.String())
	if err != nil {
		return table.Value{}, fmt.Errorf("%w: %q", table.ErrDateFormat, v.String())
	}
	return table.Str(d.Format(ephemDateLayout)), nil
}

// compactInt joins a split sign and number ("- 5") and coerces it to an
// integer. The integer of "-0" is 0.
func compactInt(v table.Value) (table.Value, error) {
	if v.Kind() != table.KindString {
		return v, nil
	}
	s := strings.Join(strings.Fields(v.String()), "")
	out := table.Infer(s)
	if out.Kind() != table.KindInt {
		return table.Value{}, fmt.Errorf("%w: %q", table.ErrNotNumeric, v.String())
	}
	return out, nil
}
