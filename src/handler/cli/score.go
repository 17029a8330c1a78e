package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"di-quality/src/config"
	"di-quality/src/controller"
	"di-quality/src/service/analyzer"
	"di-quality/src/service/pipeline"
	"di-quality/src/util"
)

func (h *Handler) scoreCmd() *cobra.Command {
	var (
		input       string
		project     string
		classesFile string
		beans       string
		variants    []string
		format      string
		outputDir   string
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score captured analyzer output",
		Long:  "Scores ckjm output read from a file or stdin without running java",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := buildScoreInput(cmd.InOrStdin(), input, project, classesFile, beans, h.cfg)
			if err != nil {
				return err
			}

			analysisCtrl := controller.NewAnalysisController(h.cfg)
			reports, err := analysisCtrl.Score(controller.ScoreRequest{Input: in, Variants: variants})
			if err != nil {
				return fmt.Errorf("scoring failed: %w", err)
			}

			if outputDir == "" {
				h.cfg.Output.OutputDir = ""
			}
			return h.emit(cmd.OutOrStdout(), cmd.ErrOrStderr(), reports, outputDir, format)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "-", "Analyzer output file, or - for stdin")
	cmd.Flags().StringVar(&project, "project", "", "Project name (default: input file name)")
	cmd.Flags().StringVar(&classesFile, "classes", "", "File listing the project's class names, one per line")
	cmd.Flags().StringVar(&beans, "beans", "", "XML bean file or directory of XML files")
	cmd.Flags().StringSliceVarP(&variants, "variant", "v", nil, "Index variant (mean, outlier); repeatable")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format (csv, json, markdown, xlsx)")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory path (default: stdout)")

	return cmd
}

func buildScoreInput(stdin io.Reader, input, project, classesFile, beans string, cfg *config.Config) (pipeline.Input, error) {
	lines, err := readInput(stdin, input)
	if err != nil {
		return pipeline.Input{}, err
	}
	classNames, err := readClassNames(classesFile)
	if err != nil {
		return pipeline.Input{}, err
	}
	beanNames, err := readBeans(beans, cfg)
	if err != nil {
		return pipeline.Input{}, err
	}

	in := pipeline.Input{
		Project:    projectName(project, input),
		Lines:      lines,
		ClassNames: classNames,
		XMLBeans:   beanNames,
	}
	util.Debug("Scoring %s: %d lines, %d class names, %d bean classes",
		in.Project, len(lines), len(classNames), len(beanNames))
	return in, nil
}

func readInput(stdin io.Reader, path string) ([]string, error) {
	if path == "" || path == "-" {
		return analyzer.ReadLines(stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening analyzer output: %w", err)
	}
	defer f.Close()
	return analyzer.ReadLines(f)
}

func readClassNames(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening class list: %w", err)
	}
	defer f.Close()

	lines, err := analyzer.ReadLines(f)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, l := range lines {
		if n := util.SimpleName(strings.TrimSpace(l)); n != "" {
			names = append(names, n)
		}
	}
	return names, nil
}

func readBeans(path string, cfg *config.Config) ([]string, error) {
	if path == "" {
		return nil, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading beans: %w", err)
	}
	if !info.IsDir() {
		return analyzer.BeanClasses([]string{path}), nil
	}
	files, err := analyzer.FindFiles(path, cfg.Analyzer.BeanGlob, util.NewExclusionMatcher(cfg.Exclusions))
	if err != nil {
		return nil, err
	}
	return analyzer.BeanClasses(files), nil
}

func projectName(project, input string) string {
	if project != "" {
		return project
	}
	if input == "" || input == "-" {
		return "stdin"
	}
	return strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
}
