package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func row(year int, region, occupation string, contributors, income float64) Row {
	r := Row{
		BaseYear:     year,
		Region:       region,
		Occupation:   occupation,
		Contributors: contributors,
		TotalIncome:  income,
		ExemptIncome: income * 0.2,
		TaxPaid:      income * 0.1,
		TaxOwed:      income * 0.12,
		ExemptShare:  Defined(0.2),
	}
	if contributors > 0 {
		r.IncomePerContributor = Defined(income / contributors)
	}
	r.EffectivePaidRate = Defined(0.1)
	return r
}

func TestAggregateIsVolumeWeighted(t *testing.T) {
	// Two buckets with very different contributor counts. The weighted
	// average must equal sum(income)/sum(contributors) and must differ
	// from the unweighted mean of the per-row ratios.
	s := Subset{
		row(2021, "São Paulo", "Economista", 100, 1_000_000),  // 10k per head
		row(2022, "São Paulo", "Economista", 10, 500_000),     // 50k per head
	}
	a := s.Aggregate()

	assert.Equal(t, 110.0, a.Contributors)
	assert.Equal(t, 1_500_000.0, a.TotalIncome)

	avg, ok := a.AverageIncome.Float64()
	require.True(t, ok)
	assert.InDelta(t, 1_500_000.0/110.0, avg, 1e-9)

	rowMean := (10_000.0 + 50_000.0) / 2
	assert.NotEqual(t, rowMean, avg)
}

func TestAggregateRatiosFromSums(t *testing.T) {
	s := Subset{
		{BaseYear: 2021, Contributors: 50, TotalIncome: 400, ExemptIncome: 100, TaxPaid: 40, TaxOwed: 60},
		{BaseYear: 2022, Contributors: 50, TotalIncome: 600, ExemptIncome: 200, TaxPaid: 90, TaxOwed: 100},
	}
	a := s.Aggregate()

	share, ok := a.ExemptShare.Float64()
	require.True(t, ok)
	assert.InDelta(t, 300.0/1000.0, share, 1e-9)

	paid, ok := a.EffectivePaidRate.Float64()
	require.True(t, ok)
	assert.InDelta(t, 130.0/1000.0, paid, 1e-9)

	owed, ok := a.EffectiveOwedRate.Float64()
	require.True(t, ok)
	assert.InDelta(t, 160.0/1000.0, owed, 1e-9)
}

func TestAggregateAverageExemptReconstruction(t *testing.T) {
	s := Subset{
		{BaseYear: 2021, Contributors: 30, TotalIncome: 900, ExemptIncome: 300},
	}
	a := s.Aggregate()

	avgIncome, _ := a.AverageIncome.Float64()
	share, _ := a.ExemptShare.Float64()
	got, ok := a.AverageExempt.Float64()
	require.True(t, ok)
	// Product of the two weighted ratios, not sum(exempt)/sum(contributors).
	assert.Equal(t, avgIncome*share, got)
}

func TestAggregateUndefinedPropagation(t *testing.T) {
	// Zero contributors: average income undefined; zero income: every
	// income-denominated ratio undefined. Nothing becomes zero.
	s := Subset{{BaseYear: 2021, Contributors: 0, TotalIncome: 0}}
	a := s.Aggregate()

	assert.False(t, a.AverageIncome.IsDefined())
	assert.False(t, a.ExemptShare.IsDefined())
	assert.False(t, a.EffectivePaidRate.IsDefined())
	assert.False(t, a.EffectiveOwedRate.IsDefined())
	assert.False(t, a.AverageExempt.IsDefined())

	c := Compare(a, a)
	assert.False(t, c.IncomeRatio.IsDefined())
	assert.False(t, c.PaidRateDiffPoints.IsDefined())
}

func TestCompare(t *testing.T) {
	subj := Subset{row(2021, "SP", "Economista", 100, 1_000_000)}.Aggregate()
	ref := Subset{row(2021, "SP", "Juiz", 10, 500_000)}.Aggregate()

	c := Compare(subj, ref)
	ratio, ok := c.IncomeRatio.Float64()
	assert.True(t, ok)
	assert.InDelta(t, 5.0, ratio, 1e-9)

	diff, ok := c.PaidRateDiffPoints.Float64()
	assert.True(t, ok)
	assert.InDelta(t, 0.0, diff, 1e-9)
}

func TestCompareUndefinedWhenSubjectAverageZero(t *testing.T) {
	subj := Subset{{BaseYear: 2021, Contributors: 100, TotalIncome: 0}}.Aggregate()
	ref := Subset{row(2021, "SP", "Juiz", 10, 500_000)}.Aggregate()

	c := Compare(subj, ref)
	assert.False(t, c.IncomeRatio.IsDefined())
}
