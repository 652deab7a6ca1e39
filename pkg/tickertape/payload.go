package tickertape

// RangeFilter bounds one ratio in the screener match clause.
type RangeFilter struct {
	Greater float64 `json:"g"`
	Less    float64 `json:"l"`
}

// ScreenerPayload is the bulk screener query body. The core treats it as
// an opaque configuration artifact: the match filters, projected fields
// and pagination are whatever the caller wants to screen on.
type ScreenerPayload struct {
	Match   map[string]RangeFilter `json:"match"`
	Project []string               `json:"project"`
	Offset  int                    `json:"offset"`
	Count   int                    `json:"count"`
	SIDs    []string               `json:"sids"`
}

// DefaultScreenerPayload screens on positive institutional holding
// changes and projects the ratio set the flat rows are built from.
func DefaultScreenerPayload() *ScreenerPayload {
	return &ScreenerPayload{
		Match: map[string]RangeFilter{
			"chMutHldng6M":   {Greater: 0.1, Less: 18.25},
			"instown3":       {Greater: 0.1, Less: 9.17},
			"forInstHldng6M": {Greater: 0.1, Less: 70.39},
			"forInstHldng3M": {Greater: 0.1, Less: 70.39},
			"incEbi":         {Greater: 0.1, Less: 178677},
		},
		Project: []string{
			"subindustry", "mrktCapf", "lastPrice", "apef",
			"chMutHldng6M", "instown3",
			"forInstHldng6M", "forInstHldng3M", "incEbi", "12mpctN", "estAvg",
		},
		Offset: 20,
		Count:  200,
		SIDs:   []string{},
	}
}
