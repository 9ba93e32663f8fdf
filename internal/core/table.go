package core

import (
	"sort"
)

// Row is one record of the pre-aggregated IRPF table: totals for a single
// (base year, state, occupation) bucket plus the three per-row ratios the
// publisher precomputes. The loader guarantees the typing; the engine never
// parses text.
type Row struct {
	BaseYear     int     `json:"base_year"`
	Region       string  `json:"region"`
	Occupation   string  `json:"occupation"`
	Contributors float64 `json:"contributors"`
	TotalIncome  float64 `json:"total_income"`
	ExemptIncome float64 `json:"exempt_income"`
	TaxPaid      float64 `json:"tax_paid"`
	TaxOwed      float64 `json:"tax_owed"`

	// Per-row ratios as published, undefined where the source column is
	// empty or NaN (e.g. a zero-contributor bucket). Used only for the
	// year-by-year series; cross-row aggregation always recomputes from
	// the summed totals.
	IncomePerContributor Value `json:"income_per_contributor"`
	ExemptShare          Value `json:"exempt_share"`
	EffectivePaidRate    Value `json:"effective_paid_rate"`
}

// Table is an immutable handle over the loaded rows. It is safe to share
// across queries without synchronization; every accessor returns fresh
// slices.
type Table struct {
	rows []Row
}

// NewTable copies rows into a new immutable table.
func NewTable(rows []Row) *Table {
	t := &Table{rows: make([]Row, len(rows))}
	copy(t.rows, rows)
	return t
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Rows returns a copy of the underlying rows.
func (t *Table) Rows() []Row {
	out := make([]Row, len(t.rows))
	copy(out, t.rows)
	return out
}

// Regions returns the distinct state names, sorted.
func (t *Table) Regions() []string {
	seen := map[string]struct{}{}
	var out []string
	for _, r := range t.rows {
		if _, ok := seen[r.Region]; !ok {
			seen[r.Region] = struct{}{}
			out = append(out, r.Region)
		}
	}
	sort.Strings(out)
	return out
}

// Years returns the distinct base years, sorted ascending.
func (t *Table) Years() []int {
	seen := map[int]struct{}{}
	var out []int
	for _, r := range t.rows {
		if _, ok := seen[r.BaseYear]; !ok {
			seen[r.BaseYear] = struct{}{}
			out = append(out, r.BaseYear)
		}
	}
	sort.Ints(out)
	return out
}

// Occupations returns the distinct occupation labels present in region,
// sorted, with exclude removed. Callers pass the reference occupation as
// exclude so users cannot compare the reference group against itself.
func (t *Table) Occupations(region, exclude string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, r := range t.rows {
		if r.Region != region || r.Occupation == exclude {
			continue
		}
		if _, ok := seen[r.Occupation]; !ok {
			seen[r.Occupation] = struct{}{}
			out = append(out, r.Occupation)
		}
	}
	sort.Strings(out)
	return out
}
