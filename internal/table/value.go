package table

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind identifies the type held by a Value.
type Kind int

// Cell kinds.
const (
	KindNull Kind = iota
	KindString
	KindInt
	KindFloat
	KindTime
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindTime:
		return "time"
	default:
		return "unknown"
	}
}

// TimeLayout is the layout used to render KindTime cells.
const TimeLayout = "2006-01-02 15:04:05"

// Value is a single typed table cell.
// The zero Value is a null cell.
type Value struct {
	kind Kind
	str  string
	num  int64
	flt  float64
	tm   time.Time

	// text is the source text the value was inferred from, if any.
	text string
}

// Null returns an empty cell.
func Null() Value { return Value{} }

// Str returns a string cell.
func Str(s string) Value { return Value{kind: KindString, str: s} }

// Int returns an integer cell.
func Int(i int64) Value { return Value{kind: KindInt, num: i} }

// Float returns a floating point cell.
func Float(f float64) Value { return Value{kind: KindFloat, flt: f} }

// Time returns a timestamp cell.
func Time(t time.Time) Value { return Value{kind: KindTime, tm: t} }

// Infer builds a Value from source text. Surrounding whitespace is
// trimmed; empty text is null, integers and decimal/exponent floats are
// numeric, anything else stays a string.
func Infer(s string) Value {
	s = strings.TrimSpace(s)
	if s == "" {
		return Value{}
	}
	if looksNumeric(s) {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return Value{kind: KindInt, num: i, text: s}
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return Value{kind: KindFloat, flt: f, text: s}
		}
	}
	return Value{kind: KindString, str: s, text: s}
}

// looksNumeric rejects spellings strconv accepts but NEOCC files never
// mean as numbers (NaN, Inf, hex floats, digit separators).
func looksNumeric(s string) bool {
	c := s[0]
	if c != '+' && c != '-' && c != '.' && (c < '0' || c > '9') {
		return false
	}
	return !strings.ContainsAny(s, "xX_pPnNiI")
}

// Kind returns the cell kind.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the cell is empty.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsFloat returns the numeric value of an int or float cell.
func (v Value) AsFloat() (float64, bool) {
	switch v.kind {
	case KindFloat:
		return v.flt, true
	case KindInt:
		return float64(v.num), true
	default:
		return 0, false
	}
}

// AsInt returns the value of an int cell.
func (v Value) AsInt() (int64, bool) {
	if v.kind != KindInt {
		return 0, false
	}
	return v.num, true
}

// AsTime returns the value of a time cell.
func (v Value) AsTime() (time.Time, bool) {
	if v.kind != KindTime {
		return time.Time{}, false
	}
	return v.tm, true
}

// String renders the cell. Cells inferred from text render as that text.
func (v Value) String() string {
	if v.text != "" {
		return v.text
	}
	switch v.kind {
	case KindString:
		return v.str
	case KindInt:
		return strconv.FormatInt(v.num, 10)
	case KindFloat:
		return strconv.FormatFloat(v.flt, 'f', -1, 64)
	case KindTime:
		return v.tm.Format(TimeLayout)
	default:
		return ""
	}
}

// Equal reports whether two cells hold the same kind and value.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == o.str
	case KindInt:
		return v.num == o.num
	case KindFloat:
		return v.flt == o.flt
	case KindTime:
		return v.tm.Equal(o.tm)
	default:
		return true
	}
}

// MarshalJSON encodes the cell as its natural JSON type.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindInt:
		return json.Marshal(v.num)
	case KindFloat:
		if math.IsNaN(v.flt) || math.IsInf(v.flt, 0) {
			return []byte("null"), nil
		}
		return json.Marshal(v.flt)
	case KindTime:
		return json.Marshal(v.tm.Format(time.RFC3339))
	default:
		return []byte("null"), nil
	}
}

// toNumeric coerces a cell to int or float. Null stays null.
func toNumeric(v Value) (Value, error) {
	switch v.kind {
	case KindInt, KindFloat, KindNull:
		return v, nil
	case KindString:
		s := strings.TrimSpace(v.str)
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return Value{kind: KindInt, num: i, text: s}, nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return Value{kind: KindFloat, flt: f, text: s}, nil
		}
	}
	return Value{}, ErrNotNumeric
}
