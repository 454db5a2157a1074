package model

import "github.com/nao1215/neocc/internal/table"

// Tab selects which per-object resource to query.
type Tab string

// Object tabs.
const (
	TabSummary            Tab = "summary"
	TabImpacts            Tab = "impacts"
	TabCloseApproaches    Tab = "close_approaches"
	TabPhysicalProperties Tab = "physical_properties"
	TabObservations       Tab = "observations"
	TabOrbitProperties    Tab = "orbit_properties"
	TabEphemerides        Tab = "ephemerides"
)

// Tabs returns every tab identifier.
func Tabs() []Tab {
	return []Tab{
		TabSummary,
		TabImpacts,
		TabCloseApproaches,
		TabPhysicalProperties,
		TabObservations,
		TabOrbitProperties,
		TabEphemerides,
	}
}

// ParseTab validates a tab identifier.
func ParseTab(s string) (Tab, error) {
	valid := make([]string, 0, len(Tabs()))
	for _, t := range Tabs() {
		if string(t) == s {
			return t, nil
		}
		valid = append(valid, string(t))
	}
	return "", InvalidSelector("tab", s, valid)
}

// OrbitElements selects the orbital element set.
type OrbitElements string

// Orbital element sets.
const (
	ElementsKeplerian   OrbitElements = "keplerian"
	ElementsEquinoctial OrbitElements = "equinoctial"
)

// ParseOrbitElements validates an element set. An empty string is a
// missing argument.
func ParseOrbitElements(s string) (OrbitElements, error) {
	valid := []string{string(ElementsKeplerian), string(ElementsEquinoctial)}
	switch OrbitElements(s) {
	case ElementsKeplerian, ElementsEquinoctial:
		return OrbitElements(s), nil
	case "":
		return "", MissingArgument(TabOrbitProperties, "orbital elements", valid)
	default:
		return "", InvalidSelector("orbital element set", s, valid)
	}
}

// OrbitEpoch selects the reference epoch of the orbit solution.
type OrbitEpoch string

// Orbit epochs.
const (
	EpochMiddle  OrbitEpoch = "middle"
	EpochPresent OrbitEpoch = "present"
)

// ParseOrbitEpoch validates an epoch. An empty string is a missing argument.
func ParseOrbitEpoch(s string) (OrbitEpoch, error) {
	valid := []string{string(EpochMiddle), string(EpochPresent)}
	switch OrbitEpoch(s) {
	case EpochMiddle, EpochPresent:
		return OrbitEpoch(s), nil
	case "":
		return "", MissingArgument(TabOrbitProperties, "orbit epoch", valid)
	default:
		return "", InvalidSelector("orbit epoch", s, valid)
	}
}

// TabResult is the parsed content of one object tab. The concrete type
// tells which tab produced it; the set of variants is closed.
type TabResult interface {
	// Tab returns the tab the result was parsed from.
	Tab() Tab

	// Sections returns the result as titled blocks for rendering.
	// Absent blocks are reported as a Text explanation.
	Sections() []Section

	tabResult()
}

// Section is one renderable block of a TabResult.
type Section struct {
	Title  string
	Fields []Field
	Table  *table.Table
	Text   string
}

// Field is a named scalar.
type Field struct {
	Name  string
	Value string
}

// tableOr returns a section holding t, or the absence text when t is nil.
func tableOr(title string, t *table.Table, absent string) Section {
	if t == nil {
		return Section{Title: title, Text: absent}
	}
	return Section{Title: title, Table: t}
}
