package core

import (
	"fmt"
	"sort"
)

// Side identifies which group of a comparison produced no rows.
type Side string

const (
	// SideSubject is the user-chosen occupation.
	SideSubject Side = "subject"
	// SideReference is the fixed comparison occupation.
	SideReference Side = "reference"
)

// EmptyResultError signals that a (region, years, occupation) combination
// matched zero rows for one of the two groups. It is not retryable: the
// caller must change the inputs.
type EmptyResultError struct {
	Side       Side
	Region     string
	Occupation string
	Years      []int
}

func (e *EmptyResultError) Error() string {
	return fmt.Sprintf("no data for %s occupation %q in region %q for years %v",
		e.Side, e.Occupation, e.Region, e.Years)
}

// Subset is an ordered collection of rows matching one region, one year set
// and one occupation.
type Subset []Row

// Split filters the table down to the rows matching region and years, then
// partitions them by occupation into the subject and reference subsets.
// Each subset is ordered by year ascending. It returns an *EmptyResultError
// identifying the empty side rather than letting callers aggregate over
// zero rows.
func Split(t *Table, region string, years []int, subject, reference string) (Subset, Subset, error) {
	wanted := make(map[int]struct{}, len(years))
	for _, y := range years {
		wanted[y] = struct{}{}
	}

	var subj, ref Subset
	for _, r := range t.rows {
		if r.Region != region {
			continue
		}
		if _, ok := wanted[r.BaseYear]; !ok {
			continue
		}
		switch r.Occupation {
		case subject:
			subj = append(subj, r)
		case reference:
			ref = append(ref, r)
		}
	}

	sortByYear(subj)
	sortByYear(ref)

	if len(subj) == 0 {
		return nil, nil, &EmptyResultError{Side: SideSubject, Region: region, Occupation: subject, Years: years}
	}
	if len(ref) == 0 {
		return nil, nil, &EmptyResultError{Side: SideReference, Region: region, Occupation: reference, Years: years}
	}
	return subj, ref, nil
}

func sortByYear(s Subset) {
	sort.SliceStable(s, func(i, j int) bool { return s[i].BaseYear < s[j].BaseYear })
}
