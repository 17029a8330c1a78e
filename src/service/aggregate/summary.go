package aggregate

import (
	"di-quality/src/model"
)

// ProjectSummary owns the classes of one project and the series derived
// from them. It is never shared between projects.
type ProjectSummary struct {
	Name   string
	Series map[model.Metric]*MetricSeries
	// DIWCBO is kept apart from Series since it depends on DI classification
	// rather than raw analyzer columns.
	DIWCBO *MetricSeries

	TotalLOC       float64
	DICouplings    float64
	TotalCouplings float64
	DIProportion   float64
	DIClassCount   int

	classes   map[string]*model.ClassRecord
	order     []string
	finalized bool
}

// NewProjectSummary creates a summary with one empty series per schema metric
func NewProjectSummary(name string) *ProjectSummary {
	s := &ProjectSummary{
		Name:    name,
		Series:  make(map[model.Metric]*MetricSeries, len(model.MetricSchema)),
		DIWCBO:  NewMetricSeries(),
		classes: make(map[string]*model.ClassRecord),
	}
	for _, m := range model.MetricSchema {
		s.Series[m] = NewMetricSeries()
	}
	return s
}

// Class returns the record for name, creating it on first sight
func (s *ProjectSummary) Class(name string) *model.ClassRecord {
	if rec, ok := s.classes[name]; ok {
		return rec
	}
	rec := model.NewClassRecord(name)
	s.classes[name] = rec
	s.order = append(s.order, name)
	return rec
}

// Lookup returns an existing record without creating one
func (s *ProjectSummary) Lookup(name string) (*model.ClassRecord, bool) {
	rec, ok := s.classes[name]
	return rec, ok
}

// Classes returns the records in the order they were first seen
func (s *ProjectSummary) Classes() []*model.ClassRecord {
	out := make([]*model.ClassRecord, len(s.order))
	for i, name := range s.order {
		out[i] = s.classes[name]
	}
	return out
}

// ClassCount returns the number of distinct classes
func (s *ProjectSummary) ClassCount() int {
	return len(s.order)
}

// Metric returns the series for m
func (s *ProjectSummary) Metric(m model.Metric) *MetricSeries {
	return s.Series[m]
}

// Mean returns the project mean of m
func (s *ProjectSummary) Mean(m model.Metric) float64 {
	return s.Series[m].Mean()
}

// DIClassRatio returns the share of classes with at least one injected
// dependency, or 0 for a project without classes.
func (s *ProjectSummary) DIClassRatio() float64 {
	if len(s.order) == 0 {
		return 0
	}
	return float64(s.DIClassCount) / float64(len(s.order))
}

// Finalize folds every class into the series, DI totals and outlier limits.
// Classes must already be DI-classified. Later calls are no-ops.
func (s *ProjectSummary) Finalize() {
	if s.finalized {
		return
	}
	s.finalized = true

	for _, rec := range s.Classes() {
		for _, m := range model.MetricSchema {
			if v, ok := rec.Metric(m); ok {
				s.Series[m].Add(v)
			}
		}
		if loc, ok := rec.Metric(model.MetricLOC); ok {
			s.TotalLOC += loc
		}
		// CBO counts every class this one depends on. A class that never
		// reported it stays out of the coupling totals.
		if _, ok := rec.Metric(model.MetricCBO); ok {
			s.DICouplings += rec.DIParamCount
			s.TotalCouplings += rec.CBO
			s.DIWCBO.Add(rec.DIWCBO)
		}
		if rec.UsesDI() {
			s.DIClassCount++
		}
	}

	s.DIProportion = s.DICouplings / s.TotalCouplings

	for _, m := range model.MetricSchema {
		s.Series[m].GenerateLimits()
	}
	s.DIWCBO.GenerateLimits()
}

// Finalized reports whether Finalize has run
func (s *ProjectSummary) Finalized() bool {
	return s.finalized
}
