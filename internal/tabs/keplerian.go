package tabs

import (
	"fmt"

	"github.com/nao1215/neocc/internal/model"
	"github.com/nao1215/neocc/internal/table"
)

// ParseKeplerian parses a .ke0 or .ke1 orbit file.
func ParseKeplerian(name, text string) (*model.KeplerianOrbit, error) {
	rec, err := parseOrbitBase(name, text, keplerianNames)
	if err != nil {
		return nil, err
	}
	rows := rec.rows
	res := &model.KeplerianOrbit{OrbitBase: rec.base}

	if res.KEP, err = namedRow(rows, 0, 1, keplerianNames, "KEP"); err != nil {
		return nil, err
	}

	peri, ok := locateKeyword(rows, "PERIHELION", 0)
	if !ok {
		return nil, fmt.Errorf("%w: orbit file has no PERIHELION record", model.ErrMalformedContent)
	}
	for i, dst := range []*table.Value{
		&res.Perihelion, &res.Aphelion, &res.AscendingNode, &res.DescendingNode,
		&res.MOID, &res.Period, &res.PHA, &res.VInfinity,
	} {
		*dst = rows.At(peri+i, 2)
	}
	if upar, ok := locateKeyword(rows, "U_PAR", 0); ok {
		res.UPar = rows.At(upar, 2)
	}

	rms, ok := locateKeyword(rows, "RMS", 0)
	if !ok {
		return nil, fmt.Errorf("%w: orbit file has no RMS record", model.ErrMalformedContent)
	}
	if res.RMS, err = namedRow(rows, rms, 2, rec.names, "RMS"); err != nil {
		return nil, err
	}

	if res.COV, err = parseMatrix(rows, "COV", rec.names); err != nil {
		return nil, err
	}
	if res.COR, err = parseMatrix(rows, "COR", rec.names); err != nil {
		return nil, err
	}
	return res, nil
}
