package core

// Comparison relates the reference aggregate to the subject aggregate.
type Comparison struct {
	// IncomeRatio is reference average income over subject average income:
	// "a judge earned N times more". Undefined when either average is
	// undefined or the subject average is zero.
	IncomeRatio Value `json:"income_ratio"`

	// PaidRateDiffPoints is (reference - subject) effective paid rate in
	// percentage points.
	PaidRateDiffPoints Value `json:"paid_rate_diff_points"`
}

// Compare derives the relative metrics between two aggregates. Inputs are
// not mutated.
func Compare(subject, reference Aggregate) Comparison {
	return Comparison{
		IncomeRatio:        reference.AverageIncome.DivBy(subject.AverageIncome),
		PaidRateDiffPoints: reference.EffectivePaidRate.Sub(subject.EffectivePaidRate).Scale(100),
	}
}
