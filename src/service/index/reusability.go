package index

import (
	"di-quality/src/model"
)

// Reusability regression coefficients, from
// https://www.scirp.org/pdf/JSEA_2015041418363656.pdf
const (
	ReusabilityIntercept = -37.111
	ReusabilityCBO       = 3.973
	ReusabilityMFA       = 32.500
	ReusabilityDAM       = 20.709
)

// ClassReusability scores a single class
func ClassReusability(cbo, mfa, dam float64) float64 {
	return ReusabilityIntercept + ReusabilityCBO*cbo + ReusabilityMFA*mfa + ReusabilityDAM*dam
}

// ReusabilitySum scores every class that reports CBO, MFA and DAM and
// returns the total with the number of classes scored.
func ReusabilitySum(classes []*model.ClassRecord) (sum float64, scored int) {
	for _, rec := range classes {
		cbo, okCBO := rec.Metric(model.MetricCBO)
		mfa, okMFA := rec.Metric(model.MetricMFA)
		dam, okDAM := rec.Metric(model.MetricDAM)
		if !okCBO || !okMFA || !okDAM {
			continue
		}
		sum += ClassReusability(cbo, mfa, dam)
		scored++
	}
	return sum, scored
}

// ProjectReusability is the mean class score; NaN when no class was scored.
// The divisor is the number of scored classes, not the project class count:
// classes missing CBO, MFA or DAM are left out of both sum and divisor.
func ProjectReusability(classes []*model.ClassRecord) float64 {
	sum, scored := ReusabilitySum(classes)
	return sum / float64(scored)
}
