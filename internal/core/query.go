package core

// Query is one user interaction: a region, a set of years and the chosen
// occupation to compare against the reference group.
type Query struct {
	Region     string `json:"region"`
	Years      []int  `json:"years"`
	Occupation string `json:"occupation"`
}

// Options carries the external constants of the engine. The reference
// occupation and its display label are configuration, never hardcoded, so
// the comparison target is adjustable without touching the arithmetic.
type Options struct {
	// ReferenceOccupation is the exact occupation label of the fixed
	// comparison group as it appears in the table.
	ReferenceOccupation string

	// ReferenceLabel is the short display name used in series and charts.
	// Defaults to ReferenceOccupation when empty.
	ReferenceLabel string
}

func (o Options) referenceLabel() string {
	if o.ReferenceLabel != "" {
		return o.ReferenceLabel
	}
	return o.ReferenceOccupation
}

// Result is the full output of one query. It either fully succeeds,
// possibly carrying undefined values, or Run fails with *EmptyResultError;
// there is no partial-failure mode.
type Result struct {
	Subject    Aggregate     `json:"subject"`
	Reference  Aggregate     `json:"reference"`
	Comparison Comparison    `json:"comparison"`
	Series     []SeriesEntry `json:"series"`
	Ratios     []RatioPoint  `json:"ratios"`
}

// Run executes one query against the loaded table: filter, aggregate both
// sides, compare, and build the charting series. Pure and deterministic;
// identical inputs produce identical results.
func Run(t *Table, q Query, opts Options) (*Result, error) {
	subject, reference, err := Split(t, q.Region, q.Years, q.Occupation, opts.ReferenceOccupation)
	if err != nil {
		return nil, err
	}

	subjAgg := subject.Aggregate()
	refAgg := reference.Aggregate()
	series := BuildSeries(subject, reference, q.Occupation, opts.referenceLabel())

	return &Result{
		Subject:    subjAgg,
		Reference:  refAgg,
		Comparison: Compare(subjAgg, refAgg),
		Series:     series,
		Ratios:     BuildRatioPivot(series, q.Occupation, opts.referenceLabel()),
	}, nil
}
