package tabs

import (
	"github.com/nao1215/neocc/internal/model"
)

// Parse decodes the text of one object tab. Orbit files are parsed with
// the element set selected in opts.
func Parse(tab model.Tab, name, text string, opts Options) (model.TabResult, error) {
	var (
		res model.TabResult
		err error
	)
	switch tab {
	case model.TabImpacts:
		res, err = result(ParseImpacts(name, text))
	case model.TabCloseApproaches:
		res, err = result(ParseCloseApproaches(name, text))
	case model.TabObservations:
		res, err = result(ParseObservations(name, text))
	case model.TabOrbitProperties:
		var elements model.OrbitElements
		if elements, err = model.ParseOrbitElements(string(opts.Elements)); err != nil {
			return nil, err
		}
		if elements == model.ElementsEquinoctial {
			res, err = result(ParseEquinoctial(name, text))
		} else {
			res, err = result(ParseKeplerian(name, text))
		}
	case model.TabEphemerides:
		res, err = result(ParseEphemerides(name, text))
	case model.TabPhysicalProperties:
		res, err = result(ParsePhysicalProperties(name, text))
	case model.TabSummary:
		res, err = result(ParseSummary(name, text))
	default:
		_, err = model.ParseTab(string(tab))
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

// result drops the typed nil a failed parser returns so callers never see
// a non-nil TabResult holding a nil pointer.
func result[T model.TabResult](r T, err error) (model.TabResult, error) {
	if err != nil {
		return nil, err
	}
	return r, nil
}
