package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"di-quality/src/controller"
	"di-quality/src/model"
	"di-quality/src/util"
)

func (h *Handler) analyzeCmd() *cobra.Command {
	var (
		root      string
		jar       string
		variants  []string
		outputDir string
		format    string
		timeout   time.Duration
		progress  bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze every project folder under a root",
		Long: "Runs ckjm over the class files of each immediate subdirectory of --path " +
			"and writes one index row per project",
		RunE: func(cmd *cobra.Command, args []string) error {
			if root == "" {
				return fmt.Errorf("--path is required")
			}
			if jar != "" {
				h.cfg.Analyzer.Jar = jar
			}
			if cmd.Flags().Changed("timeout") {
				h.cfg.Analyzer.Timeout = timeout
			}

			util.Info("Analyzing projects under %s (analyzer: %s)", root, h.cfg.Analyzer.Jar)

			var progressOut io.Writer
			if progress {
				progressOut = cmd.ErrOrStderr()
			}

			analysisCtrl := controller.NewAnalysisController(h.cfg)
			reports, err := analysisCtrl.Analyze(context.Background(), controller.AnalyzeRequest{
				Root:     root,
				Variants: variants,
				Progress: progressOut,
			})
			if err != nil {
				util.Error("Analysis failed: %v", err)
				return fmt.Errorf("analysis failed: %w", err)
			}

			if err := h.emit(cmd.OutOrStdout(), cmd.ErrOrStderr(), reports, outputDir, format); err != nil {
				return err
			}
			printSummary(cmd.ErrOrStderr(), reports)
			return nil
		},
	}

	cmd.Flags().StringVarP(&root, "path", "p", "", "Folder whose subdirectories are projects (required)")
	cmd.Flags().StringVar(&jar, "jar", "", "Path to the ckjm jar")
	cmd.Flags().StringSliceVarP(&variants, "variant", "v", nil, "Index variant (mean, outlier); repeatable")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory path")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format (csv, json, markdown, xlsx)")
	cmd.Flags().DurationVarP(&timeout, "timeout", "t", 2*time.Minute, "Analyzer timeout per project")
	cmd.Flags().BoolVar(&progress, "progress", false, "Show a progress bar on stderr")

	cmd.MarkFlagRequired("path")

	return cmd
}

// emit writes report files to outputDir, or to stdout when no directory is
// configured on the command line or in the config file
func (h *Handler) emit(stdout, stderr io.Writer, reports []*model.Report, outputDir, format string) error {
	if format != "" {
		h.cfg.Output.Formats = []string{format}
	}
	reportCtrl := controller.NewReportController(h.cfg)

	if outputDir == "" && h.cfg.Output.OutputDir == "" {
		outputFormat := format
		if outputFormat == "" {
			outputFormat = "csv"
		}
		return reportCtrl.WriteTo(stdout, reports, outputFormat)
	}

	if outputDir != "" {
		h.cfg.Output.OutputDir = outputDir
	}
	paths, err := reportCtrl.GenerateReports(reports)
	if err != nil {
		return fmt.Errorf("generating reports: %w", err)
	}
	for _, path := range paths {
		fmt.Fprintf(stderr, "Report written to %s\n", path)
	}
	return nil
}

func printSummary(w io.Writer, reports []*model.Report) {
	if len(reports) == 0 {
		return
	}
	fmt.Fprintf(w, "\nAnalysis complete:\n")
	fmt.Fprintf(w, "  Projects scored: %d\n", len(reports[0].Projects))
	for _, r := range reports {
		for _, p := range r.Projects {
			mai, _ := p.Row.Value(model.ColumnMAI)
			di, _ := p.Row.Value(model.ColumnDI)
			fmt.Fprintf(w, "  [%s] %s: DI=%s MAI=%s\n", r.Variant, p.Row.Project,
				model.FormatValue(di), model.FormatValue(mai))
		}
	}
}
