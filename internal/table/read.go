package table

import "strings"

// ColSpec is a half-open character range [Start, End) of a fixed-width
// column.
type ColSpec struct {
	Start int
	End   int
}

// Lines splits decoded text into physical lines. CR characters are
// dropped and a trailing newline does not produce an extra empty line.
func Lines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r", "")
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}

// NonBlank returns the lines that contain a non-space character.
func NonBlank(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			out = append(out, l)
		}
	}
	return out
}

// SliceFixed cuts a line at the given character ranges and trims each
// field. Ranges beyond the end of the line yield empty fields.
func SliceFixed(line string, specs []ColSpec) []string {
	runes := []rune(line)
	out := make([]string, len(specs))
	for i, s := range specs {
		start := min(max(s.Start, 0), len(runes))
		end := min(max(s.End, start), len(runes))
		out[i] = strings.TrimSpace(string(runes[start:end]))
	}
	return out
}

// InferColSpecs derives fixed-width columns from a block of lines: a
// column is a maximal run of positions where at least one line has a
// non-space character.
func InferColSpecs(lines []string) []ColSpec {
	used := make([]bool, 0)
	for _, l := range lines {
		for i, r := range []rune(l) {
			for len(used) <= i {
				used = append(used, false)
			}
			if r != ' ' && r != '\t' {
				used[i] = true
			}
		}
	}
	specs := make([]ColSpec, 0)
	start := -1
	for i, u := range used {
		switch {
		case u && start < 0:
			start = i
		case !u && start >= 0:
			specs = append(specs, ColSpec{Start: start, End: i})
			start = -1
		}
	}
	if start >= 0 {
		specs = append(specs, ColSpec{Start: start, End: len(used)})
	}
	return specs
}

// Fields splits every line on runs of whitespace.
func Fields(lines []string) [][]string {
	out := make([][]string, len(lines))
	for i, l := range lines {
		out[i] = strings.Fields(l)
	}
	return out
}

// SplitDelimited splits a line on sep and trims each field.
func SplitDelimited(line, sep string) []string {
	parts := strings.Split(line, sep)
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// FromFields builds a positional table from whitespace tokens. The width
// is the longest row; shorter rows are padded with nulls.
func FromFields(lines []string) *Table {
	records := Fields(lines)
	width := 0
	for _, r := range records {
		width = max(width, len(r))
	}
	return FromRecords(Positional(width), records)
}

// FromFixedWidth builds a table by slicing every line with specs and
// naming the columns.
func FromFixedWidth(lines []string, specs []ColSpec, names []string) *Table {
	records := make([][]string, len(lines))
	for i, l := range lines {
		records[i] = SliceFixed(l, specs)
	}
	return FromRecords(names, records)
}

// CollapseSpaces trims s and replaces internal whitespace runs with a
// single space.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
