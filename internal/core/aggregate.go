package core

// Aggregate is the weighted summary of one subset. Totals are plain sums
// across rows; every ratio is recomputed as summed numerator over summed
// denominator, so a state-year bucket with more contributors dominates the
// result proportionally. Ratios are never averaged across rows.
type Aggregate struct {
	Contributors float64 `json:"contributors"`
	TotalIncome  float64 `json:"total_income"`
	ExemptIncome float64 `json:"exempt_income"`
	TaxPaid      float64 `json:"tax_paid"`
	TaxOwed      float64 `json:"tax_owed"`

	AverageIncome     Value `json:"average_income"`
	ExemptShare       Value `json:"exempt_share"`
	EffectivePaidRate Value `json:"effective_paid_rate"`
	EffectiveOwedRate Value `json:"effective_owed_rate"`
	AverageExempt     Value `json:"average_exempt"`
}

// Aggregate reduces the subset into one weighted Aggregate.
func (s Subset) Aggregate() Aggregate {
	var a Aggregate
	for _, r := range s {
		a.Contributors += r.Contributors
		a.TotalIncome += r.TotalIncome
		a.ExemptIncome += r.ExemptIncome
		a.TaxPaid += r.TaxPaid
		a.TaxOwed += r.TaxOwed
	}

	a.AverageIncome = SafeDiv(a.TotalIncome, a.Contributors)
	a.ExemptShare = SafeDiv(a.ExemptIncome, a.TotalIncome)
	a.EffectivePaidRate = SafeDiv(a.TaxPaid, a.TotalIncome)
	a.EffectiveOwedRate = SafeDiv(a.TaxOwed, a.TotalIncome)

	// Reconstructed as the product of the two weighted ratios, not as
	// sum(exempt)/sum(contributors). The two differ under floating-point
	// rounding and the published methodology uses the product.
	a.AverageExempt = a.AverageIncome.Mul(a.ExemptShare)

	return a
}
