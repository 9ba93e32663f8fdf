package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const refOcc = "Membro do Poder Judiciário e de Tribunal de Contas"

func testTable() *Table {
	return NewTable([]Row{
		row(2022, "São Paulo", "Economista", 120, 1_200_000),
		row(2021, "São Paulo", "Economista", 100, 1_000_000),
		row(2021, "São Paulo", refOcc, 10, 500_000),
		row(2022, "São Paulo", refOcc, 12, 640_000),
		row(2021, "Bahia", "Economista", 80, 560_000),
		row(2021, "Bahia", refOcc, 5, 240_000),
		row(2021, "São Paulo", "Médico", 40, 900_000),
	})
}

func TestSplitMatchesPredicateExactly(t *testing.T) {
	subj, ref, err := Split(testTable(), "São Paulo", []int{2021, 2022}, "Economista", refOcc)
	require.NoError(t, err)

	require.Len(t, subj, 2)
	require.Len(t, ref, 2)
	for _, r := range subj {
		assert.Equal(t, "São Paulo", r.Region)
		assert.Equal(t, "Economista", r.Occupation)
		assert.Contains(t, []int{2021, 2022}, r.BaseYear)
	}
	for _, r := range ref {
		assert.Equal(t, refOcc, r.Occupation)
	}

	// Subsets come back ordered by year regardless of table order.
	assert.Equal(t, 2021, subj[0].BaseYear)
	assert.Equal(t, 2022, subj[1].BaseYear)
}

func TestSplitYearSubset(t *testing.T) {
	subj, ref, err := Split(testTable(), "São Paulo", []int{2022}, "Economista", refOcc)
	require.NoError(t, err)
	require.Len(t, subj, 1)
	require.Len(t, ref, 1)
	assert.Equal(t, 2022, subj[0].BaseYear)
}

func TestSplitEmptySubject(t *testing.T) {
	_, _, err := Split(testTable(), "Bahia", []int{2021}, "Médico", refOcc)
	var empty *EmptyResultError
	require.ErrorAs(t, err, &empty)
	assert.Equal(t, SideSubject, empty.Side)
	assert.Equal(t, "Médico", empty.Occupation)
}

func TestSplitEmptyReference(t *testing.T) {
	table := NewTable([]Row{
		row(2021, "Acre", "Economista", 10, 100_000),
	})
	_, _, err := Split(table, "Acre", []int{2021}, "Economista", refOcc)
	var empty *EmptyResultError
	require.ErrorAs(t, err, &empty)
	assert.Equal(t, SideReference, empty.Side)
	assert.NotEmpty(t, empty.Error())
	assert.True(t, errors.As(err, &empty))
}

func TestTableFilterOptions(t *testing.T) {
	tab := testTable()

	assert.Equal(t, []string{"Bahia", "São Paulo"}, tab.Regions())
	assert.Equal(t, []int{2021, 2022}, tab.Years())

	// The reference occupation never appears in the selectable list.
	occ := tab.Occupations("São Paulo", refOcc)
	assert.Equal(t, []string{"Economista", "Médico"}, occ)
	assert.NotContains(t, occ, refOcc)
}
