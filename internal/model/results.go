package model

import (
	"strconv"

	"github.com/nao1215/neocc/internal/table"
)

// NoAdditionalNote explains an impacts result without a note block.
const NoAdditionalNote = "There is no relevant information for this object"

// Impacts is the parsed risk (virtual impactor) file of an object.
type Impacts struct {
	Object string       `json:"object"`
	Table  *table.Table `json:"table"`

	// ArcStart and ArcEnd bound the observation arc used by the solution.
	ArcStart string `json:"arc_start"`
	ArcEnd   string `json:"arc_end"`

	ObservationsAccepted int `json:"observations_accepted"`
	ObservationsRejected int `json:"observations_rejected"`

	ComputationDate string `json:"computation_date"`
	Info            string `json:"info"`

	// AdditionalNote is empty when the document has no note block.
	AdditionalNote string `json:"additional_note,omitempty"`
}

// HasAdditionalNote reports whether the document carried a note block.
func (r *Impacts) HasAdditionalNote() bool { return r.AdditionalNote != "" }

// Tab implements TabResult.
func (r *Impacts) Tab() Tab { return TabImpacts }

// Sections implements TabResult.
func (r *Impacts) Sections() []Section {
	note := r.AdditionalNote
	if !r.HasAdditionalNote() {
		note = NoAdditionalNote
	}
	return []Section{
		{Title: "Impacts", Table: r.Table},
		{Title: "Observation arc", Fields: []Field{
			{Name: "Start", Value: r.ArcStart},
			{Name: "End", Value: r.ArcEnd},
			{Name: "Accepted observations", Value: strconv.Itoa(r.ObservationsAccepted)},
			{Name: "Rejected observations", Value: strconv.Itoa(r.ObservationsRejected)},
			{Name: "Computation date", Value: r.ComputationDate},
		}},
		{Title: "Information", Text: r.Info},
		{Title: "Additional note", Text: note},
	}
}

func (*Impacts) tabResult() {}

// CloseApproaches is the close-approach file of an object.
type CloseApproaches struct {
	Object string       `json:"object"`
	Table  *table.Table `json:"table"`
}

// Tab implements TabResult.
func (r *CloseApproaches) Tab() Tab { return TabCloseApproaches }

// Sections implements TabResult.
func (r *CloseApproaches) Sections() []Section {
	return []Section{{Title: "Close approaches", Table: r.Table}}
}

func (*CloseApproaches) tabResult() {}

// PhysicalProperties is the physical-properties page of an object.
type PhysicalProperties struct {
	Object     string       `json:"object"`
	Properties *table.Table `json:"properties"`
	Sources    *table.Table `json:"sources"`
}

// Tab implements TabResult.
func (r *PhysicalProperties) Tab() Tab { return TabPhysicalProperties }

// Sections implements TabResult.
func (r *PhysicalProperties) Sections() []Section {
	return []Section{
		{Title: "Physical properties", Table: r.Properties},
		{Title: "Sources", Table: r.Sources},
	}
}

func (*PhysicalProperties) tabResult() {}

// Summary is the summary page of an object.
type Summary struct {
	Object        string       `json:"object"`
	Properties    *table.Table `json:"properties"`
	DiscoveryDate string       `json:"discovery_date"`
	Observatory   string       `json:"observatory"`
}

// Tab implements TabResult.
func (r *Summary) Tab() Tab { return TabSummary }

// Sections implements TabResult.
func (r *Summary) Sections() []Section {
	return []Section{
		{Title: "Summary", Table: r.Properties},
		{Title: "Discovery", Fields: []Field{
			{Name: "Discovery date", Value: r.DiscoveryDate},
			{Name: "Observatory", Value: r.Observatory},
		}},
	}
}

func (*Summary) tabResult() {}

// Ephemerides is a generated ephemeris for one observatory.
type Ephemerides struct {
	Object      string       `json:"object"`
	Observatory string       `json:"observatory"`
	InitialDate string       `json:"initial_date"`
	FinalDate   string       `json:"final_date"`
	TimeStep    string       `json:"time_step"`
	Table       *table.Table `json:"table"`
}

// Tab implements TabResult.
func (r *Ephemerides) Tab() Tab { return TabEphemerides }

// Sections implements TabResult.
func (r *Ephemerides) Sections() []Section {
	return []Section{
		{Title: "Request", Fields: []Field{
			{Name: "Observatory", Value: r.Observatory},
			{Name: "Initial date", Value: r.InitialDate},
			{Name: "Final date", Value: r.FinalDate},
			{Name: "Time step", Value: r.TimeStep},
		}},
		{Title: "Ephemerides", Table: r.Table},
	}
}

func (*Ephemerides) tabResult() {}
