package table

import "errors"

// Table errors. Parsers wrap these into the domain error kinds of the
// model package.
var (
	// ErrUnknownColumn is returned when a column name is not part of the table.
	ErrUnknownColumn = errors.New("unknown column")

	// ErrRowWidth is returned when a row does not have one cell per column.
	ErrRowWidth = errors.New("row width does not match column count")

	// ErrNotNumeric is returned when a cell cannot be coerced to a number.
	ErrNotNumeric = errors.New("value is not numeric")

	// ErrDateFormat is returned when a date string matches none of the
	// supported notations.
	ErrDateFormat = errors.New("unrecognized date format")
)
