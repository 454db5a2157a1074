package tabs

import (
	"errors"
	"testing"

	"github.com/nao1215/neocc/internal/model"
)

// TestParseCloseApproaches tests the .clolin parser.
func TestParseCloseApproaches(t *testing.T) {
	t.Parallel()

	t.Run("table", func(t *testing.T) {
		t.Parallel()
		doc := joinLines(
			"BODY     CALENDAR-TIME     MJD-TIME      TP-DIST    S-ALONG   S-WIDTH   STRETCH  WIDTH     PROB",
			"EARTH    2029/04/13.90725  62239.907246  0.2544E-03 1.00E-01  2.37E-06  1.05E+02 2.10E-05  1.000E+00",
			"",
			"MOON     2029/04/14.10550  62240.105500  0.6521E-03 5.00E-02  1.10E-06  3.20E+01 8.00E-06  1.000E+00",
		)
		res, err := ParseCloseApproaches("99942 Apophis", doc)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Table.Len() != 2 || res.Table.Width() != 9 {
			t.Fatalf("table shape = %dx%d", res.Table.Len(), res.Table.Width())
		}
		if body, _ := res.Table.Cell(1, "BODY"); body.String() != "MOON" {
			t.Errorf("BODY = %q", body)
		}
		if mjd, _ := res.Table.Cell(0, "MJD-TIME"); mjd.String() != "62239.907246" {
			t.Errorf("MJD-TIME = %q", mjd)
		}
	})

	for _, text := range []string{"", "\n  \n"} {
		_, err := ParseCloseApproaches("2023DW", text)
		if !errors.Is(err, model.ErrDataUnavailable) {
			t.Errorf("text %q: expected ErrDataUnavailable, got %v", text, err)
		}
	}
}
