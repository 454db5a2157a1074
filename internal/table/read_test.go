package table

import (
	"reflect"
	"testing"
)

// TestLines tests physical line splitting.
func TestLines(t *testing.T) {
	t.Parallel()

	if got := Lines(""); len(got) != 0 {
		t.Errorf("expected no lines, got %v", got)
	}
	got := Lines("a\r\n\nb\n")
	if !reflect.DeepEqual(got, []string{"a", "", "b"}) {
		t.Errorf("got %q", got)
	}
	if got := NonBlank(got); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("got %q", got)
	}
}

// TestSliceFixed tests character-offset slicing.
func TestSliceFixed(t *testing.T) {
	t.Parallel()

	specs := []ColSpec{{0, 5}, {6, 8}, {9, 20}}
	got := SliceFixed("99942 O  short", specs)
	want := []string{"99942", "O", "short"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}

	got = SliceFixed("ab", specs)
	if !reflect.DeepEqual(got, []string{"ab", "", ""}) {
		t.Errorf("short line: got %q", got)
	}

	// Offsets count characters, not bytes.
	got = SliceFixed("Sütterlin X", []ColSpec{{0, 9}, {10, 11}})
	if !reflect.DeepEqual(got, []string{"Sütterlin", "X"}) {
		t.Errorf("multibyte: got %q", got)
	}
}

// TestInferColSpecs tests fixed-width layout inference.
func TestInferColSpecs(t *testing.T) {
	t.Parallel()

	lines := []string{
		`0 "433     Eros"     1.5`,
		`1 "99942   Apophis"  2.0`,
	}
	got := InferColSpecs(lines)
	want := []ColSpec{{0, 1}, {2, 8}, {11, 19}, {21, 24}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	fields := SliceFixed(lines[1], got)
	if fields[1] != `"99942` || fields[2] != `Apophis"` {
		t.Errorf("unexpected designator split %q", fields)
	}
}

// TestSplitDelimited tests separator splitting.
func TestSplitDelimited(t *testing.T) {
	t.Parallel()

	got := SplitDelimited(" 2021DE  | 2021-02-25 |", "|")
	if !reflect.DeepEqual(got, []string{"2021DE", "2021-02-25", ""}) {
		t.Errorf("got %q", got)
	}
}

// TestCollapseSpaces tests whitespace normalization.
func TestCollapseSpaces(t *testing.T) {
	t.Parallel()

	if got := CollapseSpaces("  433    Eros \t"); got != "433 Eros" {
		t.Errorf("got %q", got)
	}
}
