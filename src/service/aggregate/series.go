package aggregate

import "math"

// OutlierFraction is the share of a series' range, at each end, that
// counts as the outlier tail.
const OutlierFraction = 0.15

// MetricSeries accumulates the values of one metric across a project's classes
type MetricSeries struct {
	Values    []float64
	Min       float64
	Max       float64
	Sum       float64
	Count     float64
	LowBound  float64
	HighBound float64

	limitsReady bool
}

// NewMetricSeries creates an empty series whose range starts inverted
func NewMetricSeries() *MetricSeries {
	return &MetricSeries{
		Min: math.MaxFloat64,
		Max: -math.MaxFloat64,
	}
}

// Add appends v and updates the running sum, count and range.
// NaN still counts towards Sum and Count but never moves the range.
func (s *MetricSeries) Add(v float64) {
	s.Values = append(s.Values, v)
	if v < s.Min {
		s.Min = v
	}
	if v > s.Max {
		s.Max = v
	}
	s.Sum += v
	s.Count++
}

// GenerateLimits derives the outlier bounds. Call it after the last Add.
// On an empty series the bounds come out infinite.
func (s *MetricSeries) GenerateLimits() {
	tail := (s.Max - s.Min) * OutlierFraction
	s.LowBound = s.Min + tail
	s.HighBound = s.Max - tail
	s.limitsReady = true
}

// HasLimits reports whether GenerateLimits has run
func (s *MetricSeries) HasLimits() bool {
	return s.limitsReady
}

// Mean returns Sum/Count, which is NaN for an empty series
func (s *MetricSeries) Mean() float64 {
	return s.Sum / s.Count
}

// Range returns Max-Min, or 0 for an empty series
func (s *MetricSeries) Range() float64 {
	if s.Count == 0 {
		return 0
	}
	return s.Max - s.Min
}
