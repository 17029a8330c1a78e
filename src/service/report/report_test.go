package report

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"di-quality/src/config"
	"di-quality/src/model"
	"di-quality/src/service/aggregate"
)

func finalizedSummary() *aggregate.ProjectSummary {
	s := aggregate.NewProjectSummary("shop")
	a := s.Class("Cart")
	for m, v := range map[model.Metric]float64{
		model.MetricCBO: 4, model.MetricDIT: 1, model.MetricLCOM: 3, model.MetricNOC: 0,
		model.MetricWMCNOM: 6, model.MetricDAM: 1, model.MetricMOA: 2, model.MetricMFA: 0, model.MetricLOC: 120,
	} {
		a.SetMetric(m, v)
	}
	a.DIParamCount = 2
	a.DIWCBO = 3
	s.Finalize()
	return s
}

func TestAssemble_MeanColumns(t *testing.T) {
	row := Assemble(finalizedSummary(), model.VariantMean, Indices{Maintainability: 0.25, DIWMaintainability: 0.5, Reusability: 1.5})

	assert.Equal(t, Columns(model.VariantMean), row.Columns)
	assert.Equal(t, []string{"0.5", "0.25", "0.5", "1.5", "120", "4", "3", "1", "3", "0", "6", "1", "2", "0"}, row.Strings())

	v, ok := row.Value(model.ColumnDIWCBO)
	require.True(t, ok)
	assert.Equal(t, 3.0, v)
	_, ok = Assemble(finalizedSummary(), model.VariantOutlier, Indices{}).Value(model.ColumnDIWMAI)
	assert.False(t, ok)
}

func TestColumns_ReturnsCopy(t *testing.T) {
	cols := Columns(model.VariantOutlier)
	cols[0] = "mutated"
	assert.Equal(t, model.ColumnDI, Columns(model.VariantOutlier)[0])

	_, err := ParseVariant("median")
	assert.Error(t, err)
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "1", model.FormatValue(1))
	assert.Equal(t, "0.1", model.FormatValue(0.1))
	assert.Equal(t, "23.0108", model.FormatValue(-37.111+3.973*10+32.5*0.5+20.709*0.2))
	assert.Equal(t, "NaN", model.FormatValue(math.NaN()))
	assert.Equal(t, "inf", model.FormatValue(math.Inf(1)))
	assert.Equal(t, "-inf", model.FormatValue(math.Inf(-1)))
	assert.Equal(t, "100000000000000000000", model.FormatValue(1e20))
}

func sampleReport() *model.Report {
	row := Assemble(finalizedSummary(), model.VariantOutlier, Indices{Maintainability: 0.9, Reusability: math.NaN()})
	return &model.Report{
		Variant:     model.VariantOutlier,
		GeneratedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Columns:     Columns(model.VariantOutlier),
		Projects: []model.ProjectReport{{
			Row: row, ClassCount: 1, DIClassCount: 1, DIClassRatio: 1, DIScheme: "class_names",
			SubIndices: &model.SubIndices{Analyzability: 2},
		}},
	}
}

func TestGenerate_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewGenerator(config.OutputConfig{}).Generate(&buf, sampleReport(), "csv"))
	assert.Equal(t, "DI,MAI,REU,LOC,CBO,DIW-CBO,DIT,LCOM,NOC,WMC-NOM\n0.5,0.9,NaN,120,4,3,1,3,0,6\n", buf.String())

	buf.Reset()
	require.NoError(t, NewGenerator(config.OutputConfig{IncludeProjectColumn: true}).Generate(&buf, sampleReport(), "csv"))
	assert.True(t, strings.HasPrefix(buf.String(), "Project,DI,"))
	assert.Contains(t, buf.String(), "\nshop,0.5,")
}

func TestGenerate_JSON(t *testing.T) {
	out, err := NewGenerator(config.OutputConfig{IncludeSubIndices: false}).GenerateString(sampleReport(), "json")
	require.NoError(t, err)

	var decoded struct {
		Variant  string `json:"variant"`
		Projects []struct {
			Row struct {
				Project string `json:"project"`
				Values  []struct {
					Column string `json:"column"`
					Value  string `json:"value"`
				} `json:"values"`
			} `json:"row"`
			SubIndices *model.SubIndices `json:"sub_indices"`
		} `json:"projects"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded.Projects, 1)
	assert.Equal(t, "outlier", decoded.Variant)
	assert.Equal(t, "shop", decoded.Projects[0].Row.Project)
	assert.Equal(t, "REU", decoded.Projects[0].Row.Values[2].Column)
	assert.Equal(t, "NaN", decoded.Projects[0].Row.Values[2].Value)
	assert.Nil(t, decoded.Projects[0].SubIndices)
}

func TestGenerate_Markdown(t *testing.T) {
	out, err := NewGenerator(config.OutputConfig{IncludeSubIndices: true}).GenerateString(sampleReport(), "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "| shop | 0.5 | 0.9 | NaN |")
	assert.Contains(t, out, "## Maintainability Sub-indices")
	assert.Contains(t, out, "| shop | 1 | 1 | 1 | class_names |")
}

func TestGenerate_XLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewGenerator(config.OutputConfig{IncludeProjectColumn: true}).Generate(&buf, sampleReport(), "xlsx"))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(xlsxSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Project", rows[0][0])
	assert.Equal(t, "shop", rows[1][0])
	assert.Equal(t, "NaN", rows[1][3])

	_, err = NewGenerator(config.OutputConfig{}).GenerateString(sampleReport(), "xlsx")
	assert.Error(t, err)
}

func TestGenerate_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, NewGenerator(config.OutputConfig{}).Generate(&buf, sampleReport(), "pdf"))
}
