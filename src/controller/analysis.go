package controller

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"

	"di-quality/src/config"
	"di-quality/src/model"
	"di-quality/src/service/analyzer"
	"di-quality/src/service/pipeline"
	"di-quality/src/service/report"
	"di-quality/src/service/runner"
	"di-quality/src/util"
)

// AnalysisController orchestrates scoring of project folders or captured
// analyzer output
type AnalysisController struct {
	cfg      *config.Config
	executor analyzer.Executor
	provider *analyzer.Provider
}

// NewAnalysisController creates a controller that runs ckjm through java
func NewAnalysisController(cfg *config.Config) *AnalysisController {
	return &AnalysisController{cfg: cfg, executor: analyzer.NewCKJM(cfg.Analyzer)}
}

// WithExecutor replaces the analyzer executor
func (c *AnalysisController) WithExecutor(e analyzer.Executor) *AnalysisController {
	c.executor = e
	c.provider = nil
	return c
}

// AnalyzeRequest represents a request to analyze every project under Root
type AnalyzeRequest struct {
	Root     string
	Variants []string  // Optional: overrides analysis.variants
	Progress io.Writer // Optional: renders a progress bar
}

// ScoreRequest represents a request to score one captured analyzer output
type ScoreRequest struct {
	Input    pipeline.Input
	Variants []string
}

// Analyze discovers projects, runs the analyzer and returns one report per variant
func (c *AnalysisController) Analyze(ctx context.Context, req AnalyzeRequest) ([]*model.Report, error) {
	startTime := time.Now()
	util.Info("Starting analysis of projects under %s", req.Root)

	variants, err := c.variants(req.Variants)
	if err != nil {
		return nil, err
	}

	projects, err := analyzer.DiscoverProjects(req.Root)
	if err != nil {
		util.Error("Project discovery failed: %v", err)
		return nil, err
	}

	provider, err := c.getProvider()
	if err != nil {
		return nil, err
	}

	r, err := runner.NewRunner(provider, c.cfg, variants)
	if err != nil {
		return nil, err
	}
	if req.Progress != nil {
		r.WithProgress(newProgressBar("Scoring projects", len(projects), req.Progress))
	}

	results, err := r.RunAll(ctx, projects)
	if err != nil {
		util.Error("Analysis failed: %v", err)
		return nil, err
	}

	reports := make([]*model.Report, len(variants))
	for i, v := range variants {
		reports[i] = newReport(v)
	}
	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			continue
		}
		for i, v := range variants {
			reports[i].Projects = append(reports[i].Projects, res.Reports[v])
		}
	}

	util.Info("Analysis complete: %d projects scored, %d skipped (took %v)",
		len(projects)-failed, failed, time.Since(startTime))
	return reports, nil
}

// Score scores a single captured analyzer output for each variant
func (c *AnalysisController) Score(req ScoreRequest) ([]*model.Report, error) {
	variants, err := c.variants(req.Variants)
	if err != nil {
		return nil, err
	}

	reports := make([]*model.Report, 0, len(variants))
	for _, v := range variants {
		opts, err := pipeline.OptionsFromConfig(c.cfg, v)
		if err != nil {
			return nil, err
		}
		rep, err := pipeline.Run(req.Input, opts)
		if err != nil {
			util.Error("Scoring %s failed: %v", req.Input.Project, err)
			return nil, err
		}
		r := newReport(v)
		r.Projects = append(r.Projects, rep)
		reports = append(reports, r)
	}
	return reports, nil
}

func (c *AnalysisController) getProvider() (*analyzer.Provider, error) {
	if c.provider != nil {
		return c.provider, nil
	}
	provider, err := analyzer.NewProvider(c.executor, c.cfg.Analyzer, c.cfg.Cache, util.NewExclusionMatcher(c.cfg.Exclusions))
	if err != nil {
		return nil, err
	}
	util.Debug("Analyzer provider initialized (cache enabled: %v)", c.cfg.Cache.Enabled)
	c.provider = provider
	return provider, nil
}

func (c *AnalysisController) variants(override []string) ([]model.Variant, error) {
	names := override
	if len(names) == 0 {
		names = c.cfg.Analysis.Variants
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no index variants selected")
	}

	seen := make(map[model.Variant]bool, len(names))
	var variants []model.Variant
	for _, name := range names {
		v, err := report.ParseVariant(name)
		if err != nil {
			return nil, err
		}
		if !seen[v] {
			seen[v] = true
			variants = append(variants, v)
		}
	}
	return variants, nil
}

func newReport(v model.Variant) *model.Report {
	return &model.Report{
		Variant:     v,
		GeneratedAt: time.Now().UTC(),
		Columns:     report.Columns(v),
	}
}

func newProgressBar(description string, max int, writer io.Writer) *progressbar.ProgressBar {
	return progressbar.NewOptions(max,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionSetWriter(writer),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(writer)
		}),
	)
}
