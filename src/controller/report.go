package controller

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"di-quality/src/config"
	"di-quality/src/model"
	"di-quality/src/service/report"
	"di-quality/src/util"
)

// ReportController handles report generation
type ReportController struct {
	cfg *config.Config
}

// NewReportController creates a new report controller
func NewReportController(cfg *config.Config) *ReportController {
	return &ReportController{cfg: cfg}
}

// GenerateReports writes every report in all configured formats and
// returns the written paths
func (c *ReportController) GenerateReports(reports []*model.Report) ([]string, error) {
	util.Debug("Generating reports for %d formats: %v", len(c.cfg.Output.Formats), c.cfg.Output.Formats)
	reportGenerator := report.NewGenerator(c.cfg.Output)
	var outputPaths []string

	if err := os.MkdirAll(c.cfg.Output.OutputDir, 0755); err != nil {
		util.Error("Failed to create output directory: %v", err)
		return nil, err
	}

	for _, r := range reports {
		for _, format := range c.cfg.Output.Formats {
			outputPath := c.getOutputPath(r.Variant, format, len(reports) > 1)
			if err := c.writeFile(reportGenerator, r, format, outputPath); err != nil {
				util.Error("Failed to write report to %s: %v", outputPath, err)
				return nil, err
			}
			util.Info("Report written: %s", outputPath)
			outputPaths = append(outputPaths, outputPath)
		}
	}

	return outputPaths, nil
}

// WriteTo renders reports one after another to w. Variants have different
// headers, so csv accepts a single report only.
func (c *ReportController) WriteTo(w io.Writer, reports []*model.Report, format string) error {
	if format == "csv" && len(reports) > 1 {
		return fmt.Errorf("csv output holds one variant, got %d; write to an output directory instead", len(reports))
	}
	reportGenerator := report.NewGenerator(c.cfg.Output)
	for i, r := range reports {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if err := reportGenerator.Generate(w, r, format); err != nil {
			return err
		}
	}
	return nil
}

func (c *ReportController) writeFile(g *report.Generator, r *model.Report, format, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := g.Generate(f, r, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (c *ReportController) getOutputPath(variant model.Variant, format string, perVariant bool) string {
	filename := c.cfg.Output.FileName
	if filename == "" {
		filename = "metrics_output"
	}
	if perVariant {
		filename += "-" + string(variant)
	}
	return filepath.Join(c.cfg.Output.OutputDir, filename+"."+report.Extension(format))
}
