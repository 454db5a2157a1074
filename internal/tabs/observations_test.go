package tabs

import (
	"errors"
	"testing"
	"time"

	"github.com/nao1215/neocc/internal/model"
	"github.com/nao1215/neocc/internal/table"
)

func opticalLine(t *testing.T, kind, day, code string) string {
	t.Helper()
	return layout(t,
		cell{0, "2023DW"}, cell{11, "O"}, cell{12, kind}, cell{17, "2023"},
		cell{22, "02"}, cell{25, day}, cell{50, "10"}, cell{53, "20"},
		cell{56, "30.123"}, cell{180, code}, cell{188, "0.52"}, cell{194, "1"}, cell{196, "1"},
	)
}

func rovingLine(t *testing.T) string {
	t.Helper()
	return layout(t,
		cell{0, "2023DW"}, cell{11, "O"}, cell{12, "v"}, cell{17, "2023"},
		cell{22, "03"}, cell{25, "01.12345"}, cell{34, "210.1234"}, cell{45, "-31.5000"},
		cell{56, "1200.0"}, cell{65, "247"},
	)
}

func satelliteLine(t *testing.T) string {
	t.Helper()
	return layout(t,
		cell{0, "2023DW"}, cell{11, "O"}, cell{12, "s"}, cell{17, "2023"},
		cell{22, "03"}, cell{25, "02.12345"}, cell{34, "1"},
		cell{40, "1234.5678"}, cell{64, "-2345.6789"}, cell{88, "3456.7890"}, cell{108, "C51"},
	)
}

func radarLine(t *testing.T) string {
	t.Helper()
	return layout(t,
		cell{0, "2023DW"}, cell{11, "R"}, cell{13, "c"}, cell{17, "2023"},
		cell{22, "03"}, cell{25, "05"}, cell{28, "23:30:00"}, cell{37, "1.23456789E+00"},
		cell{53, "1.000E-06 2.0"}, cell{75, "T"}, cell{77, "0.000E+00"},
		cell{88, "1.0E-06"}, cell{99, "251 252"}, cell{107, "0.50"}, cell{116, "1"},
	)
}

func obsHeader(withMag bool) []string {
	h := []string{
		"version =   2",
		"errmod  = 'vfcc17'",
		"RMSast  =   3.53003E-01",
	}
	if withMag {
		h = append(h, "RMSmag  =   4.64000E-01")
	}
	return append(h,
		"END_OF_HEADER",
		"! Object   Obser ====== Date =======  ============ Right Ascension =================",
		"! Design   K T N YYYY MM DD.dddddddddd   Accuracy HH MM SS.sss  Accuracy      RMS  F",
	)
}

// TestParseObservations tests the .rwo parser for every block kind.
func TestParseObservations(t *testing.T) {
	t.Parallel()

	t.Run("all blocks", func(t *testing.T) {
		t.Parallel()
		body := []string{
			opticalLine(t, "C", "26.12345", "500"),
			rovingLine(t),
			"",
			opticalLine(t, "C", "27.54321", "G96"),
			satelliteLine(t),
			"! Object   Obser ====== Date ======= ============ Radar range/range rate",
			"! Design   K T N YYYY MM DD hh:mm:ss        Measure  Accuracy    rms F",
			radarLine(t),
		}
		lines := append(obsHeader(true), body...)
		res, err := ParseObservations("2023DW", joinLines(lines...))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if res.Version != 2 || res.ErrorModel != "vfcc17" || res.RMSAst != 0.353003 {
			t.Errorf("header = %d %q %v", res.Version, res.ErrorModel, res.RMSAst)
		}
		if !res.HasRMSMag || res.RMSMag != 0.464 {
			t.Errorf("RMSmag = %v (%v)", res.RMSMag, res.HasRMSMag)
		}

		if res.Optical.Len() != 2 {
			t.Fatalf("expected 2 optical rows, got %d", res.Optical.Len())
		}
		if code, _ := res.Optical.Cell(1, "Obs Code"); code.String() != "G96" {
			t.Errorf("Obs Code = %q", code)
		}
		if res.Roving == nil || res.Roving.Len() != 1 {
			t.Fatalf("expected one roving row, got %v", res.Roving)
		}
		if lon, _ := res.Roving.Cell(0, "E longitude"); lon.String() != "210.1234" {
			t.Errorf("E longitude = %q", lon)
		}
		if res.Satellite == nil || res.Satellite.Len() != 1 {
			t.Fatalf("expected one satellite row, got %v", res.Satellite)
		}
		if z, _ := res.Satellite.Cell(0, "Z"); z.String() != "3456.7890" {
			t.Errorf("Z = %q", z)
		}

		if res.Radar == nil || res.Radar.Len() != 1 {
			t.Fatalf("expected one radar row, got %v", res.Radar)
		}
		dt, _ := res.Radar.Cell(0, "Datetime")
		want := time.Date(2023, time.March, 5, 23, 30, 0, 0, time.UTC)
		if got, ok := dt.AsTime(); !ok || !got.Equal(want) {
			t.Errorf("Datetime = %v, want %v", dt, want)
		}
		for col, want := range map[string]string{
			"Accuracy": "1.000E-06", "rms": "2.0", "TRX": "251", "RCX": "252", "S": "1",
		} {
			if v, _ := res.Radar.Cell(0, col); v.String() != want {
				t.Errorf("radar %s = %q, want %q", col, v, want)
			}
		}

		// Every observation line lands in exactly one block.
		nonBlank := len(table.NonBlank(body))
		got := res.Optical.Len() + res.Roving.Len() + res.Satellite.Len() + res.Radar.Len() + radarHeaderLines
		if got != nonBlank {
			t.Errorf("blocks hold %d lines, body has %d", got, nonBlank)
		}
	})

	t.Run("roving and satellite without radar", func(t *testing.T) {
		t.Parallel()
		body := []string{
			opticalLine(t, "C", "26.12345", "500"),
			rovingLine(t),
			satelliteLine(t),
			"",
			opticalLine(t, "C", "27.54321", "G96"),
			rovingLine(t),
			opticalLine(t, "C", "28.00001", "F51"),
			satelliteLine(t),
		}
		lines := append(obsHeader(false), body...)
		res, err := ParseObservations("2023DW", joinLines(lines...))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Radar != nil {
			t.Errorf("expected no radar block, got %d rows", res.Radar.Len())
		}
		if res.Optical.Len() != 3 || res.Roving.Len() != 2 || res.Satellite.Len() != 2 {
			t.Fatalf("blocks = %d optical, %d roving, %d satellite; want 3, 2, 2",
				res.Optical.Len(), res.Roving.Len(), res.Satellite.Len())
		}

		// Every observation line lands in exactly one block, including the
		// last line of the file.
		nonBlank := len(table.NonBlank(body))
		if got := res.Optical.Len() + res.Roving.Len() + res.Satellite.Len(); got != nonBlank {
			t.Errorf("blocks hold %d lines, body has %d", got, nonBlank)
		}
		for i, want := range []string{"500", "G96", "F51"} {
			if code, _ := res.Optical.Cell(i, "Obs Code"); code.String() != want {
				t.Errorf("optical row %d Obs Code = %q, want %q", i, code, want)
			}
		}
		for i := range 2 {
			if k, _ := res.Roving.Cell(i, "T"); k.String() != "v" {
				t.Errorf("roving row %d T = %q", i, k)
			}
			if k, _ := res.Satellite.Cell(i, "T"); k.String() != "s" {
				t.Errorf("satellite row %d T = %q", i, k)
			}
		}
	})

	t.Run("optical only without RMSmag", func(t *testing.T) {
		t.Parallel()
		lines := append(obsHeader(false), opticalLine(t, "C", "26.12345", "500"))
		res, err := ParseObservations("2023DW", joinLines(lines...))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.HasRMSMag {
			t.Error("RMSmag should be absent")
		}
		if res.Optical.Len() != 1 {
			t.Errorf("expected 1 optical row, got %d", res.Optical.Len())
		}
		if res.Roving != nil || res.Satellite != nil || res.Radar != nil {
			t.Error("expected no roving, satellite or radar blocks")
		}
		for _, s := range res.Sections() {
			if s.Title == "Radar observations" && s.Text != model.NoRadarObservations {
				t.Errorf("radar section text = %q", s.Text)
			}
		}
	})

	t.Run("empty file", func(t *testing.T) {
		t.Parallel()
		_, err := ParseObservations("2023DW", "\n\n")
		if !errors.Is(err, model.ErrDataUnavailable) {
			t.Errorf("expected ErrDataUnavailable, got %v", err)
		}
	})

	t.Run("bad header", func(t *testing.T) {
		t.Parallel()
		_, err := ParseObservations("2023DW", "<html>not found</html>\n")
		if !errors.Is(err, model.ErrMalformedContent) {
			t.Errorf("expected ErrMalformedContent, got %v", err)
		}
	})
}
