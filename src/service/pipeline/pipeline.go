package pipeline

import (
	"fmt"

	"di-quality/src/config"
	"di-quality/src/model"
	"di-quality/src/service/aggregate"
	"di-quality/src/service/di"
	"di-quality/src/service/index"
	"di-quality/src/service/ingest"
	"di-quality/src/service/report"
	"di-quality/src/util"
)

// DegenerateKind names why a project could not be scored
type DegenerateKind string

const (
	NoClasses       DegenerateKind = "no_classes"
	NoMetricSamples DegenerateKind = "no_metric_samples"
)

// DegenerateProjectError is returned in strict mode instead of a NaN row
type DegenerateProjectError struct {
	Project string
	Kind    DegenerateKind
	Metric  model.Metric
}

func (e *DegenerateProjectError) Error() string {
	if e.Kind == NoMetricSamples {
		return fmt.Sprintf("project %s: no samples for metric %s", e.Project, e.Metric)
	}
	return fmt.Sprintf("project %s: no classes in analyzer output", e.Project)
}

// Input is everything the core needs to score one project
type Input struct {
	Project    string
	Lines      []string
	ClassNames []string
	XMLBeans   []string
}

// Options fixes the conventions of one scoring run
type Options struct {
	Variant    model.Variant
	Scheme     di.Scheme
	Bounds     index.BoundPolicy
	Polarity   index.Polarity
	Strict     bool
	Markers    config.IngestionConfig
	Exclusions *util.ExclusionMatcher
}

// OptionsFromConfig builds options for variant from the analysis config
func OptionsFromConfig(cfg *config.Config, variant model.Variant) (Options, error) {
	scheme, err := di.ParseScheme(cfg.Analysis.DIScheme)
	if err != nil {
		return Options{}, err
	}
	bounds, err := index.ParseBoundPolicy(cfg.Analysis.OutlierBounds)
	if err != nil {
		return Options{}, err
	}
	polarity, err := index.ParsePolarity(cfg.Analysis.MaintainabilityPolarity)
	if err != nil {
		return Options{}, err
	}
	return Options{
		Variant:    variant,
		Scheme:     scheme,
		Bounds:     bounds,
		Polarity:   polarity,
		Strict:     cfg.Analysis.Strict,
		Markers:    cfg.Ingestion,
		Exclusions: util.NewExclusionMatcher(cfg.Exclusions),
	}, nil
}

// requiredMetrics lists the series each variant cannot do without
var requiredMetrics = map[model.Variant][]model.Metric{
	model.VariantMean:    {model.MetricCBO, model.MetricDAM, model.MetricMOA, model.MetricDIT, model.MetricMFA},
	model.VariantOutlier: {model.MetricCBO, model.MetricDIT, model.MetricLCOM, model.MetricNOC, model.MetricWMCNOM},
}

// Run scores one project. Only strict mode returns an error; otherwise
// degenerate projects yield NaN values.
func Run(in Input, opts Options) (model.ProjectReport, error) {
	summary := aggregate.NewProjectSummary(in.Project)
	classifier := di.NewClassifier(opts.Scheme, in.ClassNames, in.XMLBeans)

	parser := ingest.NewParser(opts.Markers, summary, classifier, opts.Exclusions)
	for _, line := range in.Lines {
		parser.Feed(line)
	}
	parser.Finish()
	summary.Finalize()

	if err := checkDegenerate(summary, opts.Variant); err != nil {
		if opts.Strict {
			return model.ProjectReport{}, err
		}
		util.Warn("Scoring degenerate project: %v", err)
	}

	idx := report.Indices{
		Reusability: index.ProjectReusability(summary.Classes()),
	}
	var sub *model.SubIndices
	switch opts.Variant {
	case model.VariantOutlier:
		mai, s := index.OutlierMaintainability(summary, opts.Bounds, opts.Polarity)
		idx.Maintainability = mai
		sub = &s
	default:
		idx.Maintainability, idx.DIWMaintainability = index.ProjectMeanMaintainability(summary)
	}

	row := report.Assemble(summary, opts.Variant, idx)
	util.Debug("Project %s scored: %d classes, DI=%s, MAI=%s", in.Project, summary.ClassCount(),
		model.FormatValue(summary.DIProportion), model.FormatValue(idx.Maintainability))

	return model.ProjectReport{
		Row:          row,
		ClassCount:   summary.ClassCount(),
		DIClassCount: summary.DIClassCount,
		DIClassRatio: summary.DIClassRatio(),
		DIScheme:     string(classifier.Scheme()),
		SubIndices:   sub,
	}, nil
}

func checkDegenerate(summary *aggregate.ProjectSummary, variant model.Variant) error {
	if summary.ClassCount() == 0 {
		return &DegenerateProjectError{Project: summary.Name, Kind: NoClasses}
	}
	for _, m := range requiredMetrics[variant] {
		if summary.Metric(m).Count == 0 {
			return &DegenerateProjectError{Project: summary.Name, Kind: NoMetricSamples, Metric: m}
		}
	}
	return nil
}
