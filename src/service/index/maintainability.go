package index

import (
	"fmt"

	"di-quality/src/model"
	"di-quality/src/service/aggregate"
)

// BoundPolicy decides whether a value sitting exactly on an outlier bound counts
type BoundPolicy string

const (
	BoundsInclusive BoundPolicy = "inclusive"
	BoundsExclusive BoundPolicy = "exclusive"
)

// Polarity decides which way the normalized outlier index is reported
type Polarity string

const (
	// PolarityInverted reports 1 - normalized, so higher is more maintainable
	PolarityInverted Polarity = "inverted"
	// PolarityViolations reports the normalized violation share itself
	PolarityViolations Polarity = "violations"
)

// ParseBoundPolicy validates a bound policy name
func ParseBoundPolicy(name string) (BoundPolicy, error) {
	switch p := BoundPolicy(name); p {
	case BoundsInclusive, BoundsExclusive:
		return p, nil
	}
	return "", fmt.Errorf("unknown outlier bound policy: %q", name)
}

// ParsePolarity validates a polarity name
func ParsePolarity(name string) (Polarity, error) {
	switch p := Polarity(name); p {
	case PolarityInverted, PolarityViolations:
		return p, nil
	}
	return "", fmt.Errorf("unknown maintainability polarity: %q", name)
}

// Weights is one row of the outlier weight table
type Weights struct {
	Analyzability float64
	Changeability float64
	Stability     float64
	Testability   float64
}

// OutlierWeights is added to the sub-totals whenever a class's value of the
// metric is an outlier. See http://ijcce.org/papers/38-Z012.pdf.
var OutlierWeights = map[model.Metric]Weights{
	model.MetricCBO:    {Analyzability: 2, Changeability: 2, Stability: 2, Testability: 2},
	model.MetricDIT:    {Analyzability: 2, Changeability: 2, Stability: 1, Testability: 2},
	model.MetricLCOM:   {Analyzability: 2, Changeability: 2, Stability: 2, Testability: 2},
	model.MetricNOC:    {Analyzability: 1, Changeability: 2, Stability: 1, Testability: 1},
	model.MetricWMCNOM: {Analyzability: 2, Changeability: 2, Stability: 1, Testability: 2},
}

// outlierMetrics fixes the iteration order over OutlierWeights
var outlierMetrics = []model.Metric{
	model.MetricCBO, model.MetricDIT, model.MetricLCOM, model.MetricNOC, model.MetricWMCNOM,
}

// PerClassCeiling is the largest sum one class can add to the sub-totals
const PerClassCeiling = 35.0

// IsOutlier reports whether v falls outside the inner band of s.
// A series without spread has no outliers.
func IsOutlier(v float64, s *aggregate.MetricSeries, policy BoundPolicy) bool {
	if s.Range() == 0 {
		return false
	}
	if policy == BoundsExclusive {
		return v < s.LowBound || v > s.HighBound
	}
	return v <= s.LowBound || v >= s.HighBound
}

// OutlierSubIndices sums the weights of every outlying class value.
// summary must be finalized.
func OutlierSubIndices(summary *aggregate.ProjectSummary, policy BoundPolicy) model.SubIndices {
	var sub model.SubIndices
	for _, rec := range summary.Classes() {
		for _, m := range outlierMetrics {
			v, ok := rec.Metric(m)
			if !ok || !IsOutlier(v, summary.Metric(m), policy) {
				continue
			}
			w := OutlierWeights[m]
			sub.Analyzability += w.Analyzability
			sub.Changeability += w.Changeability
			sub.Stability += w.Stability
			sub.Testability += w.Testability
		}
	}
	return sub
}

// OutlierMaintainability normalizes the sub-totals by the per-class ceiling
// and applies the requested polarity. A project without classes yields NaN.
func OutlierMaintainability(summary *aggregate.ProjectSummary, policy BoundPolicy, polarity Polarity) (float64, model.SubIndices) {
	sub := OutlierSubIndices(summary, policy)
	normalized := sub.Raw() / (PerClassCeiling * float64(summary.ClassCount()))
	if polarity == PolarityInverted {
		return 1 - normalized, sub
	}
	return normalized, sub
}

// MeanMaintainability combines project means into a single index.
// Weights follow http://ijcce.org/papers/38-Z012.pdf.
func MeanMaintainability(meanCBO, meanDAM, meanMOA, meanDIT, meanMFA float64) float64 {
	return 0.5*(0.25*meanDAM-0.25*meanCBO+0.5*meanMOA) +
		0.5*(0.5*meanDIT-0.5*meanCBO+0.5*meanMFA)
}

// ProjectMeanMaintainability returns the plain and DI-weighted mean-based
// indices of a finalized summary.
func ProjectMeanMaintainability(summary *aggregate.ProjectSummary) (plain, diWeighted float64) {
	dam := summary.Mean(model.MetricDAM)
	moa := summary.Mean(model.MetricMOA)
	dit := summary.Mean(model.MetricDIT)
	mfa := summary.Mean(model.MetricMFA)

	plain = MeanMaintainability(summary.Mean(model.MetricCBO), dam, moa, dit, mfa)
	diWeighted = MeanMaintainability(summary.DIWCBO.Mean(), dam, moa, dit, mfa)
	return plain, diWeighted
}
