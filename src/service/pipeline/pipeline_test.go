package pipeline

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"di-quality/src/config"
	"di-quality/src/model"
)

var sampleLines = []string{
	"com.shop.Cart 6 1 0 4 20 3 1 4 5 0.5 120 1 2 0 0.4 0 0 19",
	"FIELD_TYPES: com.shop.Pricing, com.shop.Inventory, int",
	"METHOD_PARAMS: com.shop.Pricing com.shop.Inventory java.lang.String",
	" ~ public void add(Item): 2",
	"com.shop.Pricing 3 1 0 2 8 1 2 2 3 0.2 40 0.5 0 0.5 0.6 0 0 12",
	"FIELD_TYPES: java.util.Map",
	"com.shop.Inventory 4 2 1 1 9 0 1 1 4 0 60 0 0 1 0.5 0 0 14",
	"com.shop.Item 1 1 0 0 2 0 3 0 1 0 10 1 0 0 1 0 0 4",
}

func options(t *testing.T, variant model.Variant) Options {
	t.Helper()
	opts, err := OptionsFromConfig(config.DefaultConfig(), variant)
	require.NoError(t, err)
	return opts
}

func TestRun_MeanVariant(t *testing.T) {
	in := Input{
		Project:    "shop",
		Lines:      sampleLines,
		ClassNames: []string{"Cart", "Pricing", "Inventory", "Item"},
	}
	rep, err := Run(in, options(t, model.VariantMean))
	require.NoError(t, err)

	assert.Equal(t, 4, rep.ClassCount)
	assert.Equal(t, 1, rep.DIClassCount)
	assert.Equal(t, "class_names", rep.DIScheme)
	assert.Nil(t, rep.SubIndices)

	di, _ := rep.Row.Value(model.ColumnDI)
	assert.InDelta(t, 2.0/7.0, di, 1e-12)

	cbo, _ := rep.Row.Value(model.ColumnCBO)
	diwCBO, _ := rep.Row.Value(model.ColumnDIWCBO)
	assert.InDelta(t, 7.0/4.0, cbo, 1e-12)
	assert.InDelta(t, 6.0/4.0, diwCBO, 1e-12)

	loc, _ := rep.Row.Value(model.ColumnLOC)
	assert.Equal(t, 230.0, loc)

	mai, _ := rep.Row.Value(model.ColumnMAI)
	diwMAI, _ := rep.Row.Value(model.ColumnDIWMAI)
	assert.Greater(t, diwMAI, mai)
}

func TestRun_OutlierVariant(t *testing.T) {
	in := Input{Project: "shop", Lines: sampleLines}
	rep, err := Run(in, options(t, model.VariantOutlier))
	require.NoError(t, err)

	require.NotNil(t, rep.SubIndices)
	assert.Equal(t, "field_method", rep.DIScheme)
	assert.Len(t, rep.Row.Columns, 10)

	mai, _ := rep.Row.Value(model.ColumnMAI)
	assert.InDelta(t, 1-rep.SubIndices.Raw()/(35*4), mai, 1e-12)
}

func TestRun_Idempotent(t *testing.T) {
	in := Input{Project: "shop", Lines: sampleLines, ClassNames: []string{"Cart", "Pricing"}, XMLBeans: []string{"Pricing"}}
	for _, v := range []model.Variant{model.VariantMean, model.VariantOutlier} {
		first, err := Run(in, options(t, v))
		require.NoError(t, err)
		second, err := Run(in, options(t, v))
		require.NoError(t, err)
		assert.Equal(t, first.Row.Strings(), second.Row.Strings())
	}
}

func TestRun_EmptyProject(t *testing.T) {
	in := Input{Project: "empty", Lines: []string{"", "   "}}

	rep, err := Run(in, options(t, model.VariantMean))
	require.NoError(t, err)
	di, _ := rep.Row.Value(model.ColumnDI)
	assert.True(t, math.IsNaN(di))

	opts := options(t, model.VariantMean)
	opts.Strict = true
	_, err = Run(in, opts)
	var degenerate *DegenerateProjectError
	require.True(t, errors.As(err, &degenerate))
	assert.Equal(t, NoClasses, degenerate.Kind)
}

func TestRun_StrictMissingMetric(t *testing.T) {
	opts := options(t, model.VariantMean)
	opts.Strict = true

	_, err := Run(Input{Project: "short", Lines: []string{"A 1 2 3 4"}}, opts)
	var degenerate *DegenerateProjectError
	require.True(t, errors.As(err, &degenerate))
	assert.Equal(t, NoMetricSamples, degenerate.Kind)
	assert.Equal(t, model.MetricDAM, degenerate.Metric)
	assert.Contains(t, err.Error(), "DAM")
}

func TestRun_ShortLineStaysOutOfCouplingTotals(t *testing.T) {
	in := Input{Project: "short", Lines: []string{
		"app.A 3 1 0 4 9 1 1 1 1 0 50 1 0 0",
		"app.B 2 1",
	}}
	rep, err := Run(in, options(t, model.VariantMean))
	require.NoError(t, err)

	assert.Equal(t, 2, rep.ClassCount)
	assert.Equal(t, 0, rep.DIClassCount)

	cbo, _ := rep.Row.Value(model.ColumnCBO)
	diwCBO, _ := rep.Row.Value(model.ColumnDIWCBO)
	assert.Equal(t, 4.0, cbo)
	assert.Equal(t, cbo, diwCBO)

	di, _ := rep.Row.Value(model.ColumnDI)
	assert.Equal(t, 0.0, di)

	mai, _ := rep.Row.Value(model.ColumnMAI)
	diwMAI, _ := rep.Row.Value(model.ColumnDIWMAI)
	assert.Equal(t, mai, diwMAI)
}
