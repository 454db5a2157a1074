package tabs

import (
	"fmt"

	"github.com/nao1215/neocc/internal/model"
)

// ParseEquinoctial parses a .eq0 or .eq1 orbit file.
func ParseEquinoctial(name, text string) (*model.EquinoctialOrbit, error) {
	rec, err := parseOrbitBase(name, text, equinoctialNames)
	if err != nil {
		return nil, err
	}
	rows := rec.rows
	res := &model.EquinoctialOrbit{OrbitBase: rec.base}

	if res.EQU, err = namedRow(rows, 0, 1, equinoctialNames, "EQU"); err != nil {
		return nil, err
	}

	rms, ok := locateKeyword(rows, "RMS", 0)
	if !ok {
		return nil, fmt.Errorf("%w: orbit file has no RMS record", model.ErrMalformedContent)
	}
	if res.RMS, err = namedRow(rows, rms, 2, rec.names, "RMS"); err != nil {
		return nil, err
	}
	if res.EIG, err = namedRow(rows, rms+1, 2, rec.names, "EIG"); err != nil {
		return nil, err
	}
	if res.WEA, err = namedRow(rows, rms+2, 2, rec.names, "WEA"); err != nil {
		return nil, err
	}

	if res.COV, err = parseMatrix(rows, "COV", rec.names); err != nil {
		return nil, err
	}
	if res.NOR, err = parseMatrix(rows, "NOR", rec.names); err != nil {
		return nil, err
	}
	return res, nil
}
