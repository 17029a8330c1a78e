package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"di-quality/src/model"
	"di-quality/src/service/report"
)

func (h *Handler) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", h.cfg.Agent.Name, h.cfg.Agent.Version)
		},
	}
}

func (h *Handler) metricsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: "List the analyzer metric schema and report columns",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Analyzer columns (in line order):")
			for i, m := range model.MetricSchema {
				fmt.Fprintf(out, "  %2d %-8s: %s\n", i+1, m, model.MetricDescriptions[m])
			}
			fmt.Fprintln(out, "")
			fmt.Fprintln(out, "Report columns:")
			for _, v := range []model.Variant{model.VariantMean, model.VariantOutlier} {
				cols := report.Columns(v)
				names := make([]string, len(cols))
				for i, c := range cols {
					names[i] = string(c)
				}
				fmt.Fprintf(out, "  %-8s: %s\n", v, strings.Join(names, ", "))
			}
		},
	}
}
