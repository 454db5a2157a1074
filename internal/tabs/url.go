package tabs

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/nao1215/neocc/internal/lists"
	"github.com/nao1215/neocc/internal/model"
)

// Default NEOCC endpoints.
const (
	DefaultDownloadURL    = lists.DefaultBaseURL
	DefaultPropertiesURL  = "https://neo.ssa.esa.int/search-for-asteroids?tab=physprops&des="
	DefaultEphemeridesURL = "https://neo.ssa.esa.int/PSDB-portlet/ephemerides?des="
	DefaultSummaryURL     = "https://neo.ssa.esa.int/search-for-asteroids?sum=1&des="
)

// Endpoints holds the URL prefixes object resources are appended to.
type Endpoints struct {
	Download    string
	Properties  string
	Ephemerides string
	Summary     string
}

// DefaultEndpoints returns the public NEOCC endpoints.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		Download:    DefaultDownloadURL,
		Properties:  DefaultPropertiesURL,
		Ephemerides: DefaultEphemeridesURL,
		Summary:     DefaultSummaryURL,
	}
}

// Options carries the arguments some tabs require.
type Options struct {
	Elements    model.OrbitElements
	Epoch       model.OrbitEpoch
	Ephemerides EphemeridesRequest
}

var fileSuffixes = map[model.Tab]string{
	model.TabImpacts:         ".risk",
	model.TabCloseApproaches: ".clolin",
	model.TabObservations:    ".rwo",
}

type orbitKey struct {
	elements model.OrbitElements
	epoch    model.OrbitEpoch
}

var orbitSuffixes = map[orbitKey]string{
	{model.ElementsKeplerian, model.EpochMiddle}:    ".ke0",
	{model.ElementsKeplerian, model.EpochPresent}:   ".ke1",
	{model.ElementsEquinoctial, model.EpochMiddle}:  ".eq0",
	{model.ElementsEquinoctial, model.EpochPresent}: ".eq1",
}

// EscapeDesignator encodes the spaces of an object designator the way
// the portal expects them.
func EscapeDesignator(name string) string {
	return strings.ReplaceAll(name, " ", "%20")
}

// ObjectURL returns the URL of one tab of an object.
func (e Endpoints) ObjectURL(name string, tab model.Tab, opts Options) (string, error) {
	des := EscapeDesignator(strings.TrimSpace(name))
	switch tab {
	case model.TabImpacts, model.TabCloseApproaches, model.TabObservations:
		return e.Download + des + fileSuffixes[tab], nil
	case model.TabOrbitProperties:
		elements, err := model.ParseOrbitElements(string(opts.Elements))
		if err != nil {
			return "", err
		}
		epoch, err := model.ParseOrbitEpoch(string(opts.Epoch))
		if err != nil {
			return "", err
		}
		return e.Download + des + orbitSuffixes[orbitKey{elements, epoch}], nil
	case model.TabPhysicalProperties:
		return e.Properties + des, nil
	case model.TabSummary:
		return e.Summary + des, nil
	case model.TabEphemerides:
		if err := opts.Ephemerides.Validate(); err != nil {
			return "", err
		}
		return e.Ephemerides + des + opts.Ephemerides.query(), nil
	default:
		_, err := model.ParseTab(string(tab))
		if err == nil {
			err = fmt.Errorf("%w: tab %q has no URL", model.ErrInvalidSelector, tab)
		}
		return "", err
	}
}

func (r EphemeridesRequest) query() string {
	var b strings.Builder
	b.WriteString("&oc=")
	b.WriteString(url.QueryEscape(r.Observatory))
	b.WriteString("&t0=")
	b.WriteString(strings.ReplaceAll(r.Start, " ", "T"))
	b.WriteString("Z&t1=")
	b.WriteString(strings.ReplaceAll(r.Stop, " ", "T"))
	b.WriteString("Z&ti=")
	b.WriteString(strconv.FormatFloat(r.Step, 'f', -1, 64))
	b.WriteString("&tiu=")
	b.WriteString(r.Unit)
	return b.String()
}
