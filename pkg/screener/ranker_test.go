package screener

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rowsWithMF6M(values ...float64) []FlatRow {
	rows := make([]FlatRow, len(values))
	for i, v := range values {
		rows[i] = FlatRow{Ticker: fmt.Sprintf("T%d", i), MFHoldingChg6M: v}
	}
	return rows
}

func flags(rows []FlatRow) []bool {
	out := make([]bool, len(rows))
	for i, r := range rows {
		out[i] = r.TopAllColumns
	}
	return out
}

func TestTopSetValueSet(t *testing.T) {
	rows := rowsWithMF6M(10, 10, 9, 8)

	set := TopSet(rows, ColMFHoldingChg6M, 2)
	require.Len(t, set.Top, 2)
	// Both nominal top-2 rows hold the value 10, so the set has one value.
	assert.Equal(t, map[float64]struct{}{10: {}}, set.Values)

	set = TopSet(rows, ColMFHoldingChg6M, 3)
	assert.Equal(t, map[float64]struct{}{10: {}, 9: {}}, set.Values)
}

func TestAnnotateTopSetBoundaryTie(t *testing.T) {
	// B and C tie at the k=2 boundary: membership is decided per value,
	// so both are in even though only one made the nominal top two.
	rows := rowsWithMF6M(10, 9, 9, 8)

	sets := AnnotateTopSet(rows, []string{ColMFHoldingChg6M}, 2)

	require.Len(t, sets, 1)
	assert.Equal(t, map[float64]struct{}{10: {}, 9: {}}, sets[0].Values)
	assert.Equal(t, []bool{true, true, true, false}, flags(rows))
}

func TestAnnotateTopSetIntersection(t *testing.T) {
	rows := []FlatRow{
		{Ticker: "A", MFHoldingChg6M: 10, FIIHoldingChg6M: 1},
		{Ticker: "B", MFHoldingChg6M: 9, FIIHoldingChg6M: 10},
		{Ticker: "C", MFHoldingChg6M: 8, FIIHoldingChg6M: 9},
		{Ticker: "D", MFHoldingChg6M: 1, FIIHoldingChg6M: 8},
	}

	AnnotateTopSet(rows, []string{ColMFHoldingChg6M, ColFIIHoldingChg6M}, 2)

	// B is top-2 in both columns; A and C each miss one.
	assert.Equal(t, []bool{false, true, false, false}, flags(rows))
}

func TestAnnotateTopSetVacuousColumns(t *testing.T) {
	rows := rowsWithMF6M(3, 2, 1)

	sets := AnnotateTopSet(rows, nil, 20)

	assert.Empty(t, sets)
	assert.Equal(t, []bool{true, true, true}, flags(rows))
}

func TestAnnotateTopSetIdempotent(t *testing.T) {
	rows := rowsWithMF6M(5, 5, 4, 3, 2, 1)
	cols := []string{ColMFHoldingChg6M}

	AnnotateTopSet(rows, cols, 3)
	first := flags(rows)
	AnnotateTopSet(rows, cols, 3)

	assert.Equal(t, first, flags(rows))
}

func TestAnnotateTopSetKExceedsRows(t *testing.T) {
	rows := rowsWithMF6M(2, 1)

	AnnotateTopSet(rows, []string{ColMFHoldingChg6M}, 20)

	assert.Equal(t, []bool{true, true}, flags(rows))
}

func TestAnnotateTopSetDoesNotReorder(t *testing.T) {
	rows := rowsWithMF6M(1, 3, 2)

	AnnotateTopSet(rows, []string{ColMFHoldingChg6M}, 2)

	assert.Equal(t, []string{"T0", "T1", "T2"},
		[]string{rows[0].Ticker, rows[1].Ticker, rows[2].Ticker})
}

func TestAnnotateTopSetMonotonicUnderColumnRemoval(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	rows := make([]FlatRow, 200)
	for i := range rows {
		rows[i] = FlatRow{
			Ticker:          fmt.Sprintf("T%03d", i),
			MFHoldingChg6M:  rng.Float64() * 20,
			MFHoldingChg3M:  rng.Float64() * 10,
			FIIHoldingChg6M: rng.Float64() * 70,
			FIIHoldingChg3M: rng.Float64() * 70,
		}
	}

	AnnotateTopSet(rows, HoldingColumns, DefaultTopK)
	all := flags(rows)

	flaggedAll := 0
	for _, f := range all {
		if f {
			flaggedAll++
		}
	}
	assert.LessOrEqual(t, flaggedAll, len(rows))

	// Dropping a constraint can only grow (or keep) the flagged set.
	AnnotateTopSet(rows, HoldingColumns[:len(HoldingColumns)-1], DefaultTopK)
	for i, f := range flags(rows) {
		if all[i] {
			assert.True(t, f, rows[i].Ticker)
		}
	}
}
