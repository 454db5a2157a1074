package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/soniakeys/meeus/v3/julian"

	"github.com/nao1215/neocc/internal/table"
)

// Absence explanations for orbit blocks.
const (
	NoNonGravParameters = "There are no non-gravitational parameters for this object"
	NoUPar              = "There is no uncertainty parameter for this object"
	NoMatrix            = "There is no matrix for this object"
)

// mjdOffset converts a modified Julian date to a Julian date.
const mjdOffset = 2400000.5

// OrbitBase holds the blocks shared by both orbital element sets.
type OrbitBase struct {
	Object     string `json:"object"`
	Format     string `json:"format"`
	RecordType string `json:"record_type"`
	RefSystem  string `json:"ref_system"`

	// Epoch is the epoch as published, e.g. "60200.000000 MJD".
	Epoch string `json:"epoch"`

	MAG *table.Table `json:"mag"`
	LSP *table.Table `json:"lsp"`

	// Dimension is the size of the covariance matrices: 6, 7 or 8.
	Dimension int `json:"dimension"`

	// NGR is nil for six-parameter solutions.
	NGR *table.Table `json:"ngr,omitempty"`
}

// EpochTime converts Epoch to a UTC instant.
func (b *OrbitBase) EpochTime() (time.Time, error) {
	fields := strings.Fields(b.Epoch)
	if len(fields) == 0 {
		return time.Time{}, fmt.Errorf("%w: empty epoch", ErrMalformedContent)
	}
	mjd, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: epoch %q: %v", ErrMalformedContent, b.Epoch, err)
	}
	return julian.JDToTime(mjd + mjdOffset).UTC(), nil
}

func (b *OrbitBase) sections() []Section {
	fields := []Field{
		{Name: "Format", Value: b.Format},
		{Name: "Record type", Value: b.RecordType},
		{Name: "Reference system", Value: b.RefSystem},
		{Name: "Epoch", Value: b.Epoch},
	}
	if t, err := b.EpochTime(); err == nil {
		fields = append(fields, Field{Name: "Epoch (UTC)", Value: t.Format(time.RFC3339)})
	}
	return []Section{
		{Title: "Orbit", Fields: fields},
		{Title: "MAG", Table: b.MAG},
		{Title: "LSP", Table: b.LSP},
		tableOr("NGR", b.NGR, NoNonGravParameters),
	}
}

// KeplerianOrbit is an orbit solution in Keplerian elements.
type KeplerianOrbit struct {
	OrbitBase

	KEP *table.Table `json:"kep"`

	Perihelion     table.Value `json:"perihelion"`
	Aphelion       table.Value `json:"aphelion"`
	AscendingNode  table.Value `json:"ascending_node"`
	DescendingNode table.Value `json:"descending_node"`
	MOID           table.Value `json:"moid"`
	Period         table.Value `json:"period"`
	PHA            table.Value `json:"pha"`
	VInfinity      table.Value `json:"v_infinity"`

	// UPar is null when the file has no U_PAR record.
	UPar table.Value `json:"u_par"`

	RMS *table.Table `json:"rms"`
	COV *table.Table `json:"cov,omitempty"`
	COR *table.Table `json:"cor,omitempty"`
}

// HasUPar reports whether the uncertainty parameter was published.
func (r *KeplerianOrbit) HasUPar() bool { return !r.UPar.IsNull() }

// Tab implements TabResult.
func (r *KeplerianOrbit) Tab() Tab { return TabOrbitProperties }

// Sections implements TabResult.
func (r *KeplerianOrbit) Sections() []Section {
	upar := NoUPar
	if r.HasUPar() {
		upar = r.UPar.String()
	}
	out := r.sections()
	out = append(out,
		Section{Title: "KEP", Table: r.KEP},
		Section{Title: "Derived quantities", Fields: []Field{
			{Name: "Perihelion", Value: r.Perihelion.String()},
			{Name: "Aphelion", Value: r.Aphelion.String()},
			{Name: "Ascending node", Value: r.AscendingNode.String()},
			{Name: "Descending node", Value: r.DescendingNode.String()},
			{Name: "MOID", Value: r.MOID.String()},
			{Name: "Period", Value: r.Period.String()},
			{Name: "PHA", Value: r.PHA.String()},
			{Name: "Vinfinity", Value: r.VInfinity.String()},
			{Name: "U_PAR", Value: upar},
		}},
		Section{Title: "RMS", Table: r.RMS},
		tableOr("COV", r.COV, NoMatrix),
		tableOr("COR", r.COR, NoMatrix),
	)
	return out
}

func (*KeplerianOrbit) tabResult() {}

// EquinoctialOrbit is an orbit solution in equinoctial elements.
type EquinoctialOrbit struct {
	OrbitBase

	EQU *table.Table `json:"equ"`
	RMS *table.Table `json:"rms"`
	EIG *table.Table `json:"eig"`
	WEA *table.Table `json:"wea"`
	COV *table.Table `json:"cov,omitempty"`
	NOR *table.Table `json:"nor,omitempty"`
}

// Tab implements TabResult.
func (r *EquinoctialOrbit) Tab() Tab { return TabOrbitProperties }

// Sections implements TabResult.
func (r *EquinoctialOrbit) Sections() []Section {
	out := r.sections()
	out = append(out,
		Section{Title: "EQU", Table: r.EQU},
		Section{Title: "RMS", Table: r.RMS},
		Section{Title: "EIG", Table: r.EIG},
		Section{Title: "WEA", Table: r.WEA},
		tableOr("COV", r.COV, NoMatrix),
		tableOr("NOR", r.NOR, NoMatrix),
	)
	return out
}

func (*EquinoctialOrbit) tabResult() {}
