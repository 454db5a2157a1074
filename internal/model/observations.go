package model

import (
	"strconv"

	"github.com/nao1215/neocc/internal/table"
)

// Absence explanations for observation blocks.
const (
	NoRMSMag                = "There is no RMSmag value for this object"
	NoRovingObservations    = "There are no roving observations for this object"
	NoSatelliteObservations = "There are no satellite observations for this object"
	NoRadarObservations     = "There are no radar observations for this object"
)

// Observations is the parsed .rwo file of an object.
type Observations struct {
	Object     string  `json:"object"`
	Version    int     `json:"version"`
	ErrorModel string  `json:"error_model"`
	RMSAst     float64 `json:"rms_ast"`

	// RMSMag is meaningful only when HasRMSMag is set.
	RMSMag    float64 `json:"rms_mag,omitempty"`
	HasRMSMag bool    `json:"has_rms_mag"`

	Optical *table.Table `json:"optical"`

	// Roving, Satellite and Radar are nil when the file has no such rows.
	Roving    *table.Table `json:"roving,omitempty"`
	Satellite *table.Table `json:"satellite,omitempty"`
	Radar     *table.Table `json:"radar,omitempty"`
}

// Tab implements TabResult.
func (r *Observations) Tab() Tab { return TabObservations }

// Sections implements TabResult.
func (r *Observations) Sections() []Section {
	mag := NoRMSMag
	if r.HasRMSMag {
		mag = strconv.FormatFloat(r.RMSMag, 'f', -1, 64)
	}
	return []Section{
		{Title: "Header", Fields: []Field{
			{Name: "Version", Value: strconv.Itoa(r.Version)},
			{Name: "Error model", Value: r.ErrorModel},
			{Name: "RMSast", Value: strconv.FormatFloat(r.RMSAst, 'f', -1, 64)},
			{Name: "RMSmag", Value: mag},
		}},
		{Title: "Optical observations", Table: r.Optical},
		tableOr("Roving observations", r.Roving, NoRovingObservations),
		tableOr("Satellite observations", r.Satellite, NoSatelliteObservations),
		tableOr("Radar observations", r.Radar, NoRadarObservations),
	}
}

func (*Observations) tabResult() {}
