package controller

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"di-quality/src/config"
	"di-quality/src/model"
	"di-quality/src/service/pipeline"
)

type stubExecutor struct {
	calls int
}

func (s *stubExecutor) Run(ctx context.Context, classFiles []string) ([]string, error) {
	s.calls++
	var lines []string
	for _, f := range classFiles {
		name := filepath.Base(f)
		name = name[:len(name)-len(filepath.Ext(name))]
		lines = append(lines, name+" 2 1 0 3 5 1 1 2 3 0 40 1 0 0.5")
	}
	return lines, nil
}

func projectTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for _, f := range []string{"beta/Beta.class", "alpha/A.class", "alpha/B.class"} {
		path := filepath.Join(root, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, nil, 0o644))
	}
	return root
}

func TestAnalyze_ReportsPerVariantInDiscoveryOrder(t *testing.T) {
	cfg := config.DefaultConfig()
	exec := &stubExecutor{}
	ctrl := NewAnalysisController(cfg).WithExecutor(exec)

	var progress bytes.Buffer
	reports, err := ctrl.Analyze(context.Background(), AnalyzeRequest{
		Root:     projectTree(t),
		Variants: []string{"mean", "outlier", "mean"},
		Progress: &progress,
	})
	require.NoError(t, err)

	require.Len(t, reports, 2)
	assert.Equal(t, model.VariantMean, reports[0].Variant)
	assert.Equal(t, model.VariantOutlier, reports[1].Variant)
	for _, r := range reports {
		require.Len(t, r.Projects, 2)
		assert.Equal(t, "alpha", r.Projects[0].Row.Project)
		assert.Equal(t, "beta", r.Projects[1].Row.Project)
	}
	loc, _ := reports[0].Projects[0].Row.Value(model.ColumnLOC)
	assert.Equal(t, 80.0, loc)
	assert.Equal(t, 2, exec.calls)
	assert.NotEmpty(t, progress.String())
}

func TestAnalyze_MissingRoot(t *testing.T) {
	ctrl := NewAnalysisController(config.DefaultConfig()).WithExecutor(&stubExecutor{})
	_, err := ctrl.Analyze(context.Background(), AnalyzeRequest{Root: filepath.Join(t.TempDir(), "missing")})
	assert.Error(t, err)
}

func TestAnalyze_CacheReusedAcrossRuns(t *testing.T) {
	cfg := config.DefaultConfig()
	exec := &stubExecutor{}
	ctrl := NewAnalysisController(cfg).WithExecutor(exec)
	root := projectTree(t)

	_, err := ctrl.Analyze(context.Background(), AnalyzeRequest{Root: root})
	require.NoError(t, err)
	_, err = ctrl.Analyze(context.Background(), AnalyzeRequest{Root: root, Variants: []string{"outlier"}})
	require.NoError(t, err)
	assert.Equal(t, 2, exec.calls)
}

func TestAnalyze_UnknownVariant(t *testing.T) {
	ctrl := NewAnalysisController(config.DefaultConfig()).WithExecutor(&stubExecutor{})
	_, err := ctrl.Analyze(context.Background(), AnalyzeRequest{Root: t.TempDir(), Variants: []string{"median"}})
	assert.Error(t, err)
}

func TestScore_SingleInput(t *testing.T) {
	ctrl := NewAnalysisController(config.DefaultConfig())
	reports, err := ctrl.Score(ScoreRequest{
		Input: pipeline.Input{
			Project:    "captured",
			Lines:      []string{"a.Cart 1 1 0 2 4 0 0 0 0 0 10 1 0 0", "FIELD_TYPES: a.Repo", "METHOD_PARAMS: a.Repo"},
			ClassNames: []string{"Repo"},
		},
		Variants: []string{"mean"},
	})
	require.NoError(t, err)
	require.Len(t, reports, 1)

	di, _ := reports[0].Projects[0].Row.Value(model.ColumnDI)
	assert.Equal(t, 0.5, di)
}

func TestGenerateReports_FileNames(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Output.OutputDir = filepath.Join(t.TempDir(), "out")
	cfg.Output.Formats = []string{"csv", "markdown"}

	reports := []*model.Report{{Variant: model.VariantMean}, {Variant: model.VariantOutlier}}
	paths, err := NewReportController(cfg).GenerateReports(reports)
	require.NoError(t, err)

	want := []string{"metrics_output-mean.csv", "metrics_output-mean.md", "metrics_output-outlier.csv", "metrics_output-outlier.md"}
	require.Len(t, paths, len(want))
	for i, name := range want {
		assert.Equal(t, filepath.Join(cfg.Output.OutputDir, name), paths[i])
		assert.FileExists(t, paths[i])
	}

	paths, err = NewReportController(cfg).GenerateReports(reports[:1])
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cfg.Output.OutputDir, "metrics_output.csv"), paths[0])
}

func TestWriteTo_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	err := NewReportController(config.DefaultConfig()).WriteTo(&buf, []*model.Report{{Variant: model.VariantMean}}, "sarif")
	assert.Error(t, err)
}

func TestWriteTo_CSVSingleVariantOnly(t *testing.T) {
	ctrl := NewReportController(config.DefaultConfig())
	reports := []*model.Report{
		{Variant: model.VariantMean, Columns: []model.Column{model.ColumnDI}},
		{Variant: model.VariantOutlier, Columns: []model.Column{model.ColumnDI}},
	}

	var buf bytes.Buffer
	err := ctrl.WriteTo(&buf, reports, "csv")
	require.Error(t, err)
	assert.Empty(t, buf.String())

	require.NoError(t, ctrl.WriteTo(&buf, reports[:1], "csv"))
	assert.Equal(t, "DI\n", buf.String())

	buf.Reset()
	require.NoError(t, ctrl.WriteTo(&buf, reports, "markdown"))
	assert.Equal(t, 2, strings.Count(buf.String(), "# Quality Indices Report"))
}
