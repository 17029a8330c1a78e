package model

import (
	"encoding/json"
	"math"
	"strconv"
	"time"
)

// Variant selects which maintainability formula and column set a report uses
type Variant string

const (
	// VariantMean uses project means of CBO, DAM, MOA, DIT and MFA
	VariantMean Variant = "mean"
	// VariantOutlier weights per-class values falling outside the inner band
	VariantOutlier Variant = "outlier"
)

// Column is one named output field
type Column string

const (
	ColumnDI      Column = "DI"
	ColumnMAI     Column = "MAI"
	ColumnDIWMAI  Column = "DIW-MAI"
	ColumnREU     Column = "REU"
	ColumnLOC     Column = "LOC"
	ColumnCBO     Column = "CBO"
	ColumnDIWCBO  Column = "DIW-CBO"
	ColumnDIT     Column = "DIT"
	ColumnLCOM    Column = "LCOM"
	ColumnNOC     Column = "NOC"
	ColumnWMCNOM  Column = "WMC-NOM"
	ColumnDAM     Column = "DAM"
	ColumnMOA     Column = "MOA"
	ColumnMFA     Column = "MFA"
	ColumnProject Column = "Project"
)

// ReportRow is the finished numeric result for one project
type ReportRow struct {
	Project string    `json:"project"`
	Variant Variant   `json:"variant"`
	Columns []Column  `json:"columns"`
	Values  []float64 `json:"-"`
}

// Value returns the value of column c and whether the row carries it
func (r ReportRow) Value(c Column) (float64, bool) {
	for i, col := range r.Columns {
		if col == c {
			return r.Values[i], true
		}
	}
	return 0, false
}

// Strings renders every value with FormatValue
func (r ReportRow) Strings() []string {
	out := make([]string, len(r.Values))
	for i, v := range r.Values {
		out[i] = FormatValue(v)
	}
	return out
}

// MarshalJSON encodes values as strings so NaN and infinities survive
func (r ReportRow) MarshalJSON() ([]byte, error) {
	type cell struct {
		Column Column `json:"column"`
		Value  string `json:"value"`
	}
	cells := make([]cell, len(r.Columns))
	for i, c := range r.Columns {
		cells[i] = cell{Column: c, Value: FormatValue(r.Values[i])}
	}
	return json.Marshal(struct {
		Project string  `json:"project"`
		Variant Variant `json:"variant"`
		Values  []cell  `json:"values"`
	}{r.Project, r.Variant, cells})
}

// FormatValue renders v in its shortest exact decimal form without an
// exponent: 1 -> "1", 0.5 -> "0.5", NaN -> "NaN", +Inf -> "inf".
func FormatValue(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// SubIndices are the outlier-weighted maintainability sub-totals
type SubIndices struct {
	Analyzability float64 `json:"analyzability"`
	Changeability float64 `json:"changeability"`
	Stability     float64 `json:"stability"`
	Testability   float64 `json:"testability"`
}

// Raw returns the sum of the four sub-totals
func (s SubIndices) Raw() float64 {
	return s.Analyzability + s.Changeability + s.Stability + s.Testability
}

// ProjectReport is a row plus the detail needed by richer output formats
type ProjectReport struct {
	Row          ReportRow   `json:"row"`
	ClassCount   int         `json:"class_count"`
	DIClassCount int         `json:"di_class_count"`
	DIClassRatio float64     `json:"di_class_ratio"`
	DIScheme     string      `json:"di_scheme"`
	SubIndices   *SubIndices `json:"sub_indices,omitempty"`
}

// Report gathers the project reports of one run for a single variant
type Report struct {
	Variant     Variant         `json:"variant"`
	GeneratedAt time.Time       `json:"generated_at"`
	Columns     []Column        `json:"columns"`
	Projects    []ProjectReport `json:"projects"`
}
