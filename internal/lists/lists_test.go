package lists

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/nao1215/neocc/internal/model"
	"github.com/nao1215/neocc/internal/table"
)

const riskFixture = `Last update: 2024-01-10 08:00 UTC
  
Num/des.       Name | m | Vel km/s | Date/Time | IP max |
-----|---|---|---|---|
 2023DW        | 50 |  24.6 | 2046-02-14 21:36 | 1.5E-3 |
 2000SG344     | 37 |   1.4 | 2069-09-16 06:24 | 2.7E-3 |
`

const closeApproachFixture = `Upcoming close approaches
generated 2024-01-10
Object | Date | km | au | LD | m | * | H | V | vel |
------------------------------------------------------
2021DE | 2021/02/26.0 | 5333057 | 0.035649 | 13.874 | 90 | * | 24.1 | 15.2 | 26.0 |
455176 1999VF22 | 2022/02/22 | 4842000 | 0.0324 | 12.6 | 300 |  | 20.5 | 13.0 | 25.1 |
`

// fixedLine places each value at its start column.
func fixedLine(t *testing.T, starts []int, values ...string) string {
	t.Helper()
	var b strings.Builder
	for i, v := range values {
		for b.Len() < starts[i] {
			b.WriteByte(' ')
		}
		if b.Len() > starts[i] {
			t.Fatalf("value %q overlaps column %d", values[i-1], i)
		}
		b.WriteString(v)
	}
	return b.String()
}

func priorityFixture(t *testing.T) string {
	t.Helper()
	starts := []int{0, 2, 10, 20, 30, 38, 46, 52, 58}
	return strings.Join([]string{
		"ESA NEOCC priority list",
		fixedLine(t, starts, "1", `"433`, `Eros"`, "123.45", "-12.30", "110.2", "18.5", "0.3", `"2021/03/05"`),
		fixedLine(t, starts, "2", `"99942`, `Apophis"`, "10.00", "5.00", "90.0", "20.1", "12", `"2021/07/02"`),
	}, "\n") + "\n"
}

// TestResolveURL tests list identifier to file resolution.
func TestResolveURL(t *testing.T) {
	t.Parallel()

	want := map[model.ListName]string{
		model.ListNEA:                   "allneo.lst",
		model.ListUpdatedNEA:            "updated_nea.lst",
		model.ListMonthlyUpdate:         "monthly_update.done",
		model.ListRisk:                  "esa_risk_list",
		model.ListRiskSpecial:           "esa_special_risk_list",
		model.ListCloseApproachUpcoming: "esa_upcoming_close_app",
		model.ListCloseApproachRecent:   "esa_recent_close_app",
		model.ListPriority:              "esa_priority_neo_list",
		model.ListPriorityFaint:         "esa_faint_neo_list",
		model.ListCloseEncounter:        "close_encounter2.txt",
	}
	for _, name := range model.ListNames() {
		got, err := ResolveURL("", name)
		if err != nil {
			t.Errorf("ResolveURL(%q) error: %v", name, err)
			continue
		}
		if got != DefaultBaseURL+want[name] {
			t.Errorf("ResolveURL(%q) = %q", name, got)
		}
	}

	if got, _ := ResolveURL("http://127.0.0.1/dl?file=", model.ListNEA); got != "http://127.0.0.1/dl?file=allneo.lst" {
		t.Errorf("custom base not honoured: %q", got)
	}

	_, err := ResolveURL("", "neo_list")
	if !errors.Is(err, model.ErrInvalidSelector) {
		t.Fatalf("expected ErrInvalidSelector, got %v", err)
	}
	for _, name := range model.ListNames() {
		if !strings.Contains(err.Error(), string(name)) {
			t.Errorf("error does not list %q", name)
		}
	}
}

// TestParsePlain tests the designator list format.
func TestParsePlain(t *testing.T) {
	t.Parallel()

	got := ParsePlain("  433   Eros \n\n719 Albert\n# 2021DY1\n")
	want := []string{"433 Eros", "719 Albert", "2021DY1"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("designator %d = %q, want %q", i, got[i], want[i])
		}
	}
}

// TestParseRisk tests the pipe-delimited risk list.
func TestParseRisk(t *testing.T) {
	t.Parallel()

	tbl, err := ParseRisk(riskFixture)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantCols := []string{"Object Name", "Diameter in m", "Vel in km/s", "Date/Time", "IP max"}
	if strings.Join(tbl.Columns, ",") != strings.Join(wantCols, ",") {
		t.Errorf("columns = %q, want %q", tbl.Columns, wantCols)
	}
	if tbl.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", tbl.Len())
	}
	if k := tbl.ColumnKind("Date/Time"); k != table.KindFloat {
		t.Errorf("Date/Time kind = %v, want float", k)
	}
	if v, _ := tbl.Cell(0, "Object Name"); v.String() != "2023DW" {
		t.Errorf("object = %q", v.String())
	}
	v, _ := tbl.Cell(1, "Date/Time")
	if f, _ := v.AsFloat(); f < 2069 || f >= 2070 {
		t.Errorf("decimal year out of range: %v", f)
	}
}

// TestParseCloseApproaches tests the close-approach lists.
func TestParseCloseApproaches(t *testing.T) {
	t.Parallel()

	t.Run("canonical columns", func(t *testing.T) {
		t.Parallel()
		tbl, err := ParseCloseApproaches(closeApproachFixture)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Join(tbl.Columns, "|") != strings.Join(closeApproachColumns, "|") {
			t.Errorf("columns = %q", tbl.Columns)
		}
		if tbl.ColumnKind("Date") != table.KindFloat {
			t.Error("Date should be a decimal year")
		}
		if v, _ := tbl.Cell(1, "Object Name"); v.String() != "455176 1999VF22" {
			t.Errorf("object = %q", v.String())
		}
		if v, _ := tbl.Cell(1, "*=Yes"); !v.IsNull() {
			t.Errorf("expected null flag, got %q", v.String())
		}
	})

	t.Run("single column payload is transient", func(t *testing.T) {
		t.Parallel()
		for _, text := range []string{"", "Internal Server Error\n", "a\nb\nInternal Server Error\n"} {
			_, err := ParseCloseApproaches(text)
			if !errors.Is(err, model.ErrTransientServer) {
				t.Errorf("%q: expected ErrTransientServer, got %v", text, err)
			}
		}
	})
}

// TestParsePriority tests the fixed-width priority lists.
func TestParsePriority(t *testing.T) {
	t.Parallel()

	tbl, err := ParsePriority(priorityFixture(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tbl.Width() != 8 {
		t.Fatalf("expected 8 columns, got %d", tbl.Width())
	}
	objects, _ := tbl.Column("Object")
	for _, want := range []string{"433Eros", "99942Apophis"} {
		var found bool
		for _, v := range objects {
			if strings.ContainsAny(v.String(), " \t\"") {
				t.Errorf("designator %q has whitespace or quotes", v.String())
			}
			found = found || v.String() == want
		}
		if !found {
			t.Errorf("designator %q not found", want)
		}
	}
	if tbl.ColumnKind("End of Visibility") != table.KindFloat {
		t.Error("End of Visibility should be a decimal year")
	}
	if v, _ := tbl.Cell(0, "Priority"); v.Kind() != table.KindInt {
		t.Errorf("priority kind = %v", v.Kind())
	}
}

// TestParsePriorityInferenceWindow tests that rows past the inference
// window do not change the column layout.
func TestParsePriorityInferenceWindow(t *testing.T) {
	t.Parallel()

	starts := []int{0, 4, 12, 22, 32, 40, 48, 54, 60}
	lines := []string{"ESA NEOCC priority list"}
	for i := range priorityInferRows {
		lines = append(lines, fixedLine(t, starts, strconv.Itoa(i+1), `"2023`, `DW"`,
			"123.45", "-12.30", "110.2", "18.5", "0.3", `"2021/03/05"`))
	}
	// Text in the gaps between columns would merge spans if inferred.
	stray := []rune(fixedLine(t, starts, "101", `"2024`, `AB"`,
		"10.00", "5.00", "90.0", "20.1", "12", `"2021/07/02"`))
	for _, gap := range []int{3, 10, 20, 30} {
		stray[gap] = 'x'
	}
	lines = append(lines, string(stray))

	tbl, err := ParsePriority(strings.Join(lines, "\n") + "\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tbl.Len() != priorityInferRows+1 || tbl.Width() != 8 {
		t.Fatalf("shape = %dx%d", tbl.Len(), tbl.Width())
	}
	if v, _ := tbl.Cell(priorityInferRows, "Object"); v.String() != "2024AB" {
		t.Errorf("stray row designator = %q", v)
	}

	// The same stray row inside the window merges columns and is rejected.
	short := append([]string{lines[0], string(stray)}, lines[1:3]...)
	if _, err := ParsePriority(strings.Join(short, "\n")); !errors.Is(err, model.ErrMalformedContent) {
		t.Errorf("expected ErrMalformedContent, got %v", err)
	}
}

// TestParse tests dispatch by list identity.
func TestParse(t *testing.T) {
	t.Parallel()

	res, err := Parse(model.ListNEA, "433 Eros\n")
	if err != nil || len(res.Designators) != 1 || res.Table != nil {
		t.Errorf("plain list: %+v, %v", res, err)
	}
	res, err = Parse(model.ListRiskSpecial, riskFixture)
	if err != nil || res.Table == nil || res.Name != model.ListRiskSpecial {
		t.Errorf("risk list: %+v, %v", res, err)
	}
	if _, err := Parse("unknown", ""); !errors.Is(err, model.ErrInvalidSelector) {
		t.Errorf("expected ErrInvalidSelector, got %v", err)
	}
}
