package table

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// dateLayouts are the calendar notations used by NEOCC list files.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02 15:04",
	"2006/01/02",
}

// fractionalDay matches dates whose day carries a decimal fraction,
// e.g. "2021/03/05.5417".
var fractionalDay = regexp.MustCompile(`^(\d{4}[-/]\d{2}[-/]\d{2})(\.\d+)$`)

// ParseDate parses a NEOCC date in the local time zone.
func ParseDate(s string) (time.Time, error) {
	s = CollapseSpaces(s)
	if m := fractionalDay.FindStringSubmatch(s); m != nil {
		day, err := ParseDate(m[1])
		if err != nil {
			return time.Time{}, err
		}
		frac, err := strconv.ParseFloat("0"+m[2], 64)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", ErrDateFormat, s)
		}
		return day.Add(time.Duration(frac * float64(24*time.Hour))), nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrDateFormat, s)
}

// DecimalYear converts t to a fractional year:
//
//	year + (t - Jan 1) / (Jan 1 next year - Jan 1)
//
// Year boundaries are taken in t's location, so the denominator is the
// real length of that calendar year.
func DecimalYear(t time.Time) float64 {
	loc := t.Location()
	start := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, loc)
	next := time.Date(t.Year()+1, time.January, 1, 0, 0, 0, 0, loc)
	return float64(t.Year()) + t.Sub(start).Seconds()/next.Sub(start).Seconds()
}

// ToDecimalYear converts a column of date strings to float decimal years.
// Null cells stay null.
func (t *Table) ToDecimalYear(column string) error {
	return t.Apply(column, func(v Value) (Value, error) {
		switch v.Kind() {
		case KindNull:
			return v, nil
		case KindTime:
			return Float(DecimalYear(v.tm)), nil
		}
		d, err := ParseDate(strings.TrimSpace(v.String()))
		if err != nil {
			return Value{}, err
		}
		return Float(DecimalYear(d)), nil
	})
}
