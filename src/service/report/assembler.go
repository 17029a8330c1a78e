package report

import (
	"fmt"

	"di-quality/src/model"
	"di-quality/src/service/aggregate"
)

// Indices carries the computed project-level indices into the assembler
type Indices struct {
	Maintainability    float64
	DIWMaintainability float64
	Reusability        float64
}

var variantColumns = map[model.Variant][]model.Column{
	model.VariantMean: {
		model.ColumnDI, model.ColumnMAI, model.ColumnDIWMAI, model.ColumnREU, model.ColumnLOC,
		model.ColumnCBO, model.ColumnDIWCBO, model.ColumnDIT, model.ColumnLCOM, model.ColumnNOC,
		model.ColumnWMCNOM, model.ColumnDAM, model.ColumnMOA, model.ColumnMFA,
	},
	model.VariantOutlier: {
		model.ColumnDI, model.ColumnMAI, model.ColumnREU, model.ColumnLOC,
		model.ColumnCBO, model.ColumnDIWCBO, model.ColumnDIT, model.ColumnLCOM, model.ColumnNOC,
		model.ColumnWMCNOM,
	},
}

// columnMetric maps mean-valued columns to their metric series
var columnMetric = map[model.Column]model.Metric{
	model.ColumnCBO:    model.MetricCBO,
	model.ColumnDIT:    model.MetricDIT,
	model.ColumnLCOM:   model.MetricLCOM,
	model.ColumnNOC:    model.MetricNOC,
	model.ColumnWMCNOM: model.MetricWMCNOM,
	model.ColumnDAM:    model.MetricDAM,
	model.ColumnMOA:    model.MetricMOA,
	model.ColumnMFA:    model.MetricMFA,
}

// ParseVariant validates a variant name
func ParseVariant(name string) (model.Variant, error) {
	v := model.Variant(name)
	if _, ok := variantColumns[v]; !ok {
		return "", fmt.Errorf("unknown variant: %q", name)
	}
	return v, nil
}

// Columns returns the ordered header of a variant
func Columns(v model.Variant) []model.Column {
	cols := variantColumns[v]
	out := make([]model.Column, len(cols))
	copy(out, cols)
	return out
}

// Assemble packages a finalized summary and its indices into a row
func Assemble(summary *aggregate.ProjectSummary, variant model.Variant, idx Indices) model.ReportRow {
	cols := Columns(variant)
	values := make([]float64, len(cols))

	for i, c := range cols {
		switch c {
		case model.ColumnDI:
			values[i] = summary.DIProportion
		case model.ColumnMAI:
			values[i] = idx.Maintainability
		case model.ColumnDIWMAI:
			values[i] = idx.DIWMaintainability
		case model.ColumnREU:
			values[i] = idx.Reusability
		case model.ColumnLOC:
			values[i] = summary.TotalLOC
		case model.ColumnDIWCBO:
			values[i] = summary.DIWCBO.Mean()
		default:
			values[i] = summary.Mean(columnMetric[c])
		}
	}

	return model.ReportRow{
		Project: summary.Name,
		Variant: variant,
		Columns: cols,
		Values:  values,
	}
}
