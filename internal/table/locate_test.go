package table

import (
	"reflect"
	"testing"
)

// TestLocate tests anchor discovery and its ordering.
func TestLocate(t *testing.T) {
	t.Parallel()

	tbl := FromFields([]string{
		"! RMS x",
		"COV 1 2 3",
		"COV 4 COV 6",
		"COR 7 8 9",
	})

	t.Run("row then column order", func(t *testing.T) {
		t.Parallel()
		got := Locate(tbl, "COV")
		want := []Anchor{{Row: 1, Column: "0"}, {Row: 2, Column: "0"}, {Row: 2, Column: "2"}}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("absent value is empty, not an error", func(t *testing.T) {
		t.Parallel()
		got := Locate(tbl, "NOR")
		if got == nil || len(got) != 0 {
			t.Errorf("expected empty non-nil slice, got %#v", got)
		}
		if _, ok := LocateFirst(tbl, "NOR"); ok {
			t.Error("expected LocateFirst to report absence")
		}
	})

	t.Run("matches source text of numeric cells", func(t *testing.T) {
		t.Parallel()
		a, ok := LocateFirst(tbl, "7")
		if !ok || a.Row != 3 || a.Column != "1" {
			t.Errorf("unexpected anchor %v %v", a, ok)
		}
	})

	t.Run("distinct rows", func(t *testing.T) {
		t.Parallel()
		if got := LocateRows(tbl, "COV"); !reflect.DeepEqual(got, []int{1, 2}) {
			t.Errorf("got %v", got)
		}
	})
}
