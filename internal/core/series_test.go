package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSeriesOrdering(t *testing.T) {
	subject := Subset{
		row(2022, "SP", "Economista", 100, 1_000_000),
		row(2021, "SP", "Economista", 100, 900_000),
	}
	reference := Subset{
		row(2021, "SP", refOcc, 10, 500_000),
		row(2022, "SP", refOcc, 10, 550_000),
	}

	s := BuildSeries(subject, reference, "Economista", "Judiciário")
	require.Len(t, s, 4)

	// Year ascending, then group label lexicographic within the year.
	assert.Equal(t, 2021, s[0].Year)
	assert.Equal(t, "Economista", s[0].Group)
	assert.Equal(t, 2021, s[1].Year)
	assert.Equal(t, "Judiciário", s[1].Group)
	assert.Equal(t, 2022, s[2].Year)
	assert.Equal(t, "Economista", s[2].Group)
	assert.Equal(t, 2022, s[3].Year)
	assert.Equal(t, "Judiciário", s[3].Group)

	// Entries carry the per-row ratios, not re-derived values.
	assert.Equal(t, Defined(9_000.0), s[0].AverageIncome)
	assert.Equal(t, Defined(50_000.0), s[1].AverageIncome)
}

func TestBuildRatioPivot(t *testing.T) {
	subject := Subset{
		row(2021, "SP", "Economista", 100, 1_000_000),
		row(2022, "SP", "Economista", 100, 1_000_000),
	}
	reference := Subset{
		row(2021, "SP", refOcc, 10, 500_000),
		row(2022, "SP", refOcc, 10, 400_000),
	}

	s := BuildSeries(subject, reference, "Economista", "Judiciário")
	pivot := BuildRatioPivot(s, "Economista", "Judiciário")
	require.Len(t, pivot, 2)

	r0, ok := pivot[0].Ratio.Float64()
	require.True(t, ok)
	assert.InDelta(t, 5.0, r0, 1e-9)

	r1, ok := pivot[1].Ratio.Float64()
	require.True(t, ok)
	assert.InDelta(t, 4.0, r1, 1e-9)
}

func TestBuildRatioPivotYearGap(t *testing.T) {
	// Subject covers 2021-2022, reference covers 2021-2023: 2023 must be
	// present with an undefined ratio, not dropped and not an error.
	subject := Subset{
		row(2021, "SP", "Economista", 100, 1_000_000),
		row(2022, "SP", "Economista", 100, 1_000_000),
	}
	reference := Subset{
		row(2021, "SP", refOcc, 10, 500_000),
		row(2022, "SP", refOcc, 10, 500_000),
		row(2023, "SP", refOcc, 10, 600_000),
	}

	s := BuildSeries(subject, reference, "Economista", "Judiciário")
	pivot := BuildRatioPivot(s, "Economista", "Judiciário")
	require.Len(t, pivot, 3)

	assert.Equal(t, 2021, pivot[0].Year)
	assert.True(t, pivot[0].Ratio.IsDefined())
	assert.Equal(t, 2022, pivot[1].Year)
	assert.True(t, pivot[1].Ratio.IsDefined())
	assert.Equal(t, 2023, pivot[2].Year)
	assert.False(t, pivot[2].Ratio.IsDefined())
}

func TestBuildRatioPivotZeroSubjectMean(t *testing.T) {
	subject := Subset{
		{BaseYear: 2021, Region: "SP", Occupation: "Economista", Contributors: 100, IncomePerContributor: Defined(0)},
	}
	reference := Subset{
		row(2021, "SP", refOcc, 10, 500_000),
	}

	s := BuildSeries(subject, reference, "Economista", "Judiciário")
	pivot := BuildRatioPivot(s, "Economista", "Judiciário")
	require.Len(t, pivot, 1)
	assert.False(t, pivot[0].Ratio.IsDefined())
}
