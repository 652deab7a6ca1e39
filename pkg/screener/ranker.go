package screener

import "sort"

// Column names rows can be ranked and exported on.
const (
	ColMFHoldingChg6M  = "MF Holding Change (6M)"
	ColMFHoldingChg3M  = "MF Holding Change (3M)"
	ColFIIHoldingChg6M = "FII Holding Change (6M)"
	ColFIIHoldingChg3M = "FII Holding Change (3M)"
	ColPERatio         = "PE Ratio"
	ColLastPrice       = "Last Price"
	ColMarketCap       = "Market Cap (Cr)"
	ColEBITDA          = "EBITDA"
	ColReturnVsNifty1Y = "1Y Return vs Nifty (%)"
	ColFwdEBITDAGrowth = "1Y Forward EBITDA Growth (%)"
)

// HoldingColumns is the default ranking set: the four institutional
// holding-change columns.
var HoldingColumns = []string{
	ColMFHoldingChg6M,
	ColMFHoldingChg3M,
	ColFIIHoldingChg6M,
	ColFIIHoldingChg3M,
}

const DefaultTopK = 20

// Value returns the row's numeric value for a ranking column. The second
// return is false for column names that don't map to a numeric field.
func (r *FlatRow) Value(column string) (float64, bool) {
	switch column {
	case ColMFHoldingChg6M:
		return r.MFHoldingChg6M, true
	case ColMFHoldingChg3M:
		return r.MFHoldingChg3M, true
	case ColFIIHoldingChg6M:
		return r.FIIHoldingChg6M, true
	case ColFIIHoldingChg3M:
		return r.FIIHoldingChg3M, true
	case ColPERatio:
		return r.PERatio, true
	case ColLastPrice:
		return r.LastPrice, true
	case ColMarketCap:
		return r.MarketCap, true
	case ColEBITDA:
		return r.EBITDA, true
	case ColReturnVsNifty1Y:
		return r.ReturnVsNifty1Y, true
	case ColFwdEBITDAGrowth:
		return r.FwdEBITDAGrowth, true
	}
	return 0, false
}

// RankingResult is one column's top set: the nominal top-k rows in
// descending order plus the distinct values they hold. Membership in the
// top set is decided per value, not per rank, so a row tied with the kth
// value is in even when it didn't make the nominal k rows.
type RankingResult struct {
	Column string
	Top    []FlatRow
	Values map[float64]struct{}
}

// Contains reports whether a value is in the column's top set.
func (rr *RankingResult) Contains(v float64) bool {
	_, ok := rr.Values[v]
	return ok
}

// TopSet computes one column's top-k rows and their value set.
func TopSet(rows []FlatRow, column string, k int) RankingResult {
	idx := make([]int, len(rows))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		va, _ := rows[idx[a]].Value(column)
		vb, _ := rows[idx[b]].Value(column)
		return va > vb
	})

	if k < 0 {
		k = 0
	}
	if k > len(rows) {
		k = len(rows)
	}

	rr := RankingResult{
		Column: column,
		Top:    make([]FlatRow, 0, k),
		Values: make(map[float64]struct{}, k),
	}
	for i := 0; i < k; i++ {
		row := rows[idx[i]]
		rr.Top = append(rr.Top, row)
		v, _ := row.Value(column)
		rr.Values[v] = struct{}{}
	}

	return rr
}

// AnnotateTopSet flags every row that sits in the top-k value set of all
// the given columns, and returns the per-column top sets for reporting.
// Rows are neither reordered nor dropped; only TopAllColumns is written,
// so reapplying with the same arguments yields identical flags. An empty
// column list flags every row.
func AnnotateTopSet(rows []FlatRow, columns []string, k int) []RankingResult {
	sets := make([]RankingResult, 0, len(columns))
	for _, column := range columns {
		sets = append(sets, TopSet(rows, column, k))
	}

	for i := range rows {
		in := true
		for s := range sets {
			v, ok := rows[i].Value(sets[s].Column)
			if !ok || !sets[s].Contains(v) {
				in = false
				break
			}
		}
		rows[i].TopAllColumns = in
	}

	return sets
}
