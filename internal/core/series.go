package core

import (
	"sort"
	"strings"
)

// SeriesEntry is one long-format point for charting: one entry per original
// row, carrying the per-row precomputed ratios and a group label.
type SeriesEntry struct {
	Year              int    `json:"year"`
	Group             string `json:"group"`
	AverageIncome     Value  `json:"average_income"`
	ExemptShare       Value  `json:"exempt_share"`
	EffectivePaidRate Value  `json:"effective_paid_rate"`
}

// RatioPoint is one year of the ratio pivot: reference income per
// contributor over subject income per contributor. Years where one group
// has no usable rows appear with an undefined ratio so charts can render a
// gap instead of silently dropping the year.
type RatioPoint struct {
	Year  int   `json:"year"`
	Ratio Value `json:"ratio"`
}

// BuildSeries reshapes the two subsets into a single long-format series
// ordered by year ascending, then by group label (lexicographic). The
// ordering is fully determined by the sort keys, so repeated runs produce
// identical output.
func BuildSeries(subject, reference Subset, subjectLabel, referenceLabel string) []SeriesEntry {
	out := make([]SeriesEntry, 0, len(subject)+len(reference))
	for _, r := range subject {
		out = append(out, seriesEntry(r, subjectLabel))
	}
	for _, r := range reference {
		out = append(out, seriesEntry(r, referenceLabel))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return strings.Compare(out[i].Group, out[j].Group) < 0
	})
	return out
}

func seriesEntry(r Row, group string) SeriesEntry {
	return SeriesEntry{
		Year:              r.BaseYear,
		Group:             group,
		AverageIncome:     r.IncomePerContributor,
		ExemptShare:       r.ExemptShare,
		EffectivePaidRate: r.EffectivePaidRate,
	}
}

// BuildRatioPivot computes, for every year present in the series, the ratio
// of the reference group's average income to the subject group's. The
// per-group yearly value is the mean of that group's defined entries for
// the year; undefined entries are skipped, and a group-year with no defined
// entry at all yields an undefined ratio for that year.
func BuildRatioPivot(series []SeriesEntry, subjectLabel, referenceLabel string) []RatioPoint {
	type cell struct {
		sum float64
		n   int
	}
	subj := map[int]*cell{}
	ref := map[int]*cell{}
	var years []int
	seen := map[int]struct{}{}

	for _, e := range series {
		if _, ok := seen[e.Year]; !ok {
			seen[e.Year] = struct{}{}
			years = append(years, e.Year)
		}
		var m map[int]*cell
		switch e.Group {
		case subjectLabel:
			m = subj
		case referenceLabel:
			m = ref
		default:
			continue
		}
		f, ok := e.AverageIncome.Float64()
		if !ok {
			continue
		}
		c := m[e.Year]
		if c == nil {
			c = &cell{}
			m[e.Year] = c
		}
		c.sum += f
		c.n++
	}
	sort.Ints(years)

	out := make([]RatioPoint, 0, len(years))
	for _, y := range years {
		p := RatioPoint{Year: y, Ratio: Undefined()}
		if s, r := subj[y], ref[y]; s != nil && r != nil {
			p.Ratio = SafeDiv(r.sum/float64(r.n), s.sum/float64(s.n))
		}
		out = append(out, p)
	}
	return out
}
