package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/xuri/excelize/v2"

	"di-quality/src/config"
	"di-quality/src/model"
	"di-quality/src/util"
)

const xlsxSheet = "indices"

// Generator renders reports in various formats
type Generator struct {
	cfg config.OutputConfig
}

// NewGenerator creates a new report generator
func NewGenerator(cfg config.OutputConfig) *Generator {
	return &Generator{cfg: cfg}
}

// Extension returns the file extension used for a format
func Extension(format string) string {
	switch format {
	case "markdown", "md":
		return "md"
	default:
		return format
	}
}

// Generate writes the report to w in the specified format
func (g *Generator) Generate(w io.Writer, report *model.Report, format string) error {
	util.Debug("Generating %s report in %s format (%d projects)", report.Variant, format, len(report.Projects))
	switch format {
	case "csv":
		return g.generateCSV(w, report)
	case "json":
		return g.generateJSON(w, report)
	case "markdown", "md":
		return g.generateMarkdown(w, report)
	case "xlsx":
		return g.generateXLSX(w, report)
	default:
		util.Warn("Unsupported report format requested: %s", format)
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// GenerateString renders a text format into a string
func (g *Generator) GenerateString(report *model.Report, format string) (string, error) {
	if format == "xlsx" {
		return "", fmt.Errorf("format %s is binary and cannot be rendered as text", format)
	}
	var buf bytes.Buffer
	if err := g.Generate(&buf, report, format); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (g *Generator) header(report *model.Report) []string {
	var header []string
	if g.cfg.IncludeProjectColumn {
		header = append(header, string(model.ColumnProject))
	}
	for _, c := range report.Columns {
		header = append(header, string(c))
	}
	return header
}

func (g *Generator) generateCSV(w io.Writer, report *model.Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(g.header(report)); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for _, p := range report.Projects {
		var record []string
		if g.cfg.IncludeProjectColumn {
			record = append(record, p.Row.Project)
		}
		record = append(record, p.Row.Strings()...)
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing csv row for %s: %w", p.Row.Project, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func (g *Generator) generateJSON(w io.Writer, report *model.Report) error {
	out := *report
	if !g.cfg.IncludeSubIndices {
		out.Projects = make([]model.ProjectReport, len(report.Projects))
		for i, p := range report.Projects {
			p.SubIndices = nil
			out.Projects[i] = p
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func (g *Generator) generateMarkdown(w io.Writer, report *model.Report) error {
	var sb strings.Builder

	sb.WriteString("# Quality Indices Report\n\n")
	sb.WriteString(fmt.Sprintf("**Variant:** %s\n", report.Variant))
	sb.WriteString(fmt.Sprintf("**Generated:** %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05 UTC")))
	sb.WriteString(fmt.Sprintf("**Projects:** %d\n\n", len(report.Projects)))

	sb.WriteString("## Indices\n\n")
	sb.WriteString("| Project |")
	for _, c := range report.Columns {
		sb.WriteString(" " + string(c) + " |")
	}
	sb.WriteString("\n|---------|")
	for range report.Columns {
		sb.WriteString("---|")
	}
	sb.WriteString("\n")
	for _, p := range report.Projects {
		sb.WriteString("| " + p.Row.Project + " |")
		for _, v := range p.Row.Strings() {
			sb.WriteString(" " + v + " |")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	sb.WriteString("## Dependency Injection\n\n")
	sb.WriteString("| Project | Classes | DI classes | DI class ratio | Scheme |\n")
	sb.WriteString("|---------|---------|------------|----------------|--------|\n")
	for _, p := range report.Projects {
		sb.WriteString(fmt.Sprintf("| %s | %d | %d | %s | %s |\n",
			p.Row.Project, p.ClassCount, p.DIClassCount, model.FormatValue(p.DIClassRatio), p.DIScheme))
	}
	sb.WriteString("\n")

	if g.cfg.IncludeSubIndices && report.Variant == model.VariantOutlier {
		sb.WriteString("## Maintainability Sub-indices\n\n")
		sb.WriteString("| Project | Analyzability | Changeability | Stability | Testability |\n")
		sb.WriteString("|---------|---------------|---------------|-----------|-------------|\n")
		for _, p := range report.Projects {
			if p.SubIndices == nil {
				continue
			}
			s := p.SubIndices
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s |\n", p.Row.Project,
				model.FormatValue(s.Analyzability), model.FormatValue(s.Changeability),
				model.FormatValue(s.Stability), model.FormatValue(s.Testability)))
		}
		sb.WriteString("\n")
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func (g *Generator) generateXLSX(w io.Writer, report *model.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	header := make([]interface{}, 0, len(report.Columns)+1)
	for _, h := range g.header(report) {
		header = append(header, h)
	}
	if err := f.SetSheetRow(xlsxSheet, "A1", &header); err != nil {
		return fmt.Errorf("writing xlsx header: %w", err)
	}

	for i, p := range report.Projects {
		row := make([]interface{}, 0, len(p.Row.Values)+1)
		if g.cfg.IncludeProjectColumn {
			row = append(row, p.Row.Project)
		}
		for _, v := range p.Row.Values {
			// Spreadsheets have no NaN or infinity; keep the textual form.
			if math.IsNaN(v) || math.IsInf(v, 0) {
				row = append(row, model.FormatValue(v))
				continue
			}
			row = append(row, v)
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(xlsxSheet, cell, &row); err != nil {
			return fmt.Errorf("writing xlsx row for %s: %w", p.Row.Project, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("encoding xlsx: %w", err)
	}
	return nil
}
