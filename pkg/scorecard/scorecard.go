package scorecard

import (
	"fmt"
	"io"
	"strconv"
)

// Unknown is the sentinel for a category the provider did not score.
const Unknown = "unknown"

// DefaultScoreMax is used when the provider omits a score maximum.
const DefaultScoreMax = 10.0

// Category names published by the Tickertape scorecard API.
const (
	CategoryPerformance   = "Performance"
	CategoryValuation     = "Valuation"
	CategoryGrowth        = "Growth"
	CategoryProfitability = "Profitability"
	CategoryEntryPoint    = "Entry point"
	CategoryRedFlags      = "Red flags"
)

// Document is one raw scorecard response.
type Document struct {
	Data []Category `json:"data"`
}

// Score carries a numeric value against a maximum. Value is a pointer
// because the API sends explicit nulls for unscored categories.
type Score struct {
	Value *float64 `json:"value"`
	Max   float64  `json:"max"`
}

// MaxOrDefault returns the score maximum, falling back to DefaultScoreMax
// when the API omits it.
func (s *Score) MaxOrDefault() float64 {
	if s == nil || s.Max == 0 {
		return DefaultScoreMax
	}
	return s.Max
}

type Category struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Tag         string       `json:"tag"`
	Score       *Score       `json:"score"`
	Elements    []SubElement `json:"elements"`
}

type SubElement struct {
	Title       string `json:"title"`
	Display     bool   `json:"display"`
	Description string `json:"description"`
	Score       *Score `json:"score"`
}

// Summary is the fixed six-key normalization of a scorecard document.
// Each field holds the category's numeric score, the category tag for
// Entry point / Red flags, or Unknown.
type Summary struct {
	Performance   string
	Valuation     string
	Growth        string
	Profitability string
	EntryPoint    string
	RedFlags      string
}

// UnknownSummary returns a summary with every category unscored.
func UnknownSummary() Summary {
	return Summary{
		Performance:   Unknown,
		Valuation:     Unknown,
		Growth:        Unknown,
		Profitability: Unknown,
		EntryPoint:    Unknown,
		RedFlags:      Unknown,
	}
}

func (s *Summary) field(category string) *string {
	switch category {
	case CategoryPerformance:
		return &s.Performance
	case CategoryValuation:
		return &s.Valuation
	case CategoryGrowth:
		return &s.Growth
	case CategoryProfitability:
		return &s.Profitability
	case CategoryEntryPoint:
		return &s.EntryPoint
	case CategoryRedFlags:
		return &s.RedFlags
	}
	return nil
}

// Normalize flattens one scorecard document into a Summary. A nil or empty
// document yields the all-unknown summary; unrecognized category names are
// skipped so new API categories don't break us. Normalize never fails.
func Normalize(doc *Document) Summary {
	summary := UnknownSummary()
	if doc == nil || len(doc.Data) == 0 {
		return summary
	}

	for _, cat := range doc.Data {
		field := summary.field(cat.Name)
		if field == nil {
			continue
		}

		switch {
		case cat.Score != nil && cat.Score.Value != nil:
			*field = formatScore(*cat.Score.Value)
		case cat.Tag != "" && (cat.Name == CategoryEntryPoint || cat.Name == CategoryRedFlags):
			// Entry point and Red flags often carry a verdict tag
			// ("Attractive", "Low") instead of a number.
			*field = cat.Tag
		}
	}

	return summary
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Detailed extracts the richer flat summary used for ad-hoc inspection:
// per-category scores and descriptions plus the displayable sub-element
// scores formatted as "value/max". Keys follow the "<Name>_Score" scheme.
func Detailed(doc *Document) map[string]string {
	out := map[string]string{}
	if doc == nil || len(doc.Data) == 0 {
		return out
	}

	for _, cat := range doc.Data {
		if summaryKey := detailKey(cat.Name); summaryKey != "" {
			if cat.Score != nil && cat.Score.Value != nil {
				out[summaryKey+"_Score"] = formatScore(*cat.Score.Value)
				if cat.Description != "" {
					out[summaryKey+"_Description"] = cat.Description
				}
			}
		}

		for _, el := range cat.Elements {
			if !el.Display || el.Score == nil || el.Score.Value == nil {
				continue
			}
			out[el.Title+"_Score"] = fmt.Sprintf("%s/%s",
				formatScore(*el.Score.Value), formatScore(el.Score.MaxOrDefault()))
		}
	}

	return out
}

func detailKey(category string) string {
	switch category {
	case CategoryPerformance:
		return "Performance"
	case CategoryValuation:
		return "Valuation"
	case CategoryGrowth:
		return "Growth"
	case CategoryProfitability:
		return "Profitability"
	case CategoryEntryPoint:
		return "Entry_Point"
	case CategoryRedFlags:
		return "Red_Flags"
	}
	return ""
}

// Fprint writes a human-readable rendering of a scorecard document,
// one category per line with its displayable sub-elements indented.
func Fprint(w io.Writer, doc *Document) {
	if doc == nil || len(doc.Data) == 0 {
		fmt.Fprintln(w, "No scorecard data available.")
		return
	}

	for _, cat := range doc.Data {
		tag := cat.Tag
		if tag == "" {
			tag = "N/A"
		}
		scoreStr := ""
		if cat.Score != nil && cat.Score.Value != nil {
			scoreStr = fmt.Sprintf(" (%s)", formatScore(*cat.Score.Value))
		}
		desc := cat.Description
		if desc == "" {
			desc = "No description"
		}
		fmt.Fprintf(w, "%s (%s)%s : %s\n", cat.Name, tag, scoreStr, desc)

		for _, el := range cat.Elements {
			if !el.Display {
				continue
			}
			detail := ""
			if el.Score != nil && el.Score.Value != nil {
				detail = fmt.Sprintf(" (%s/%s)",
					formatScore(*el.Score.Value), formatScore(el.Score.MaxOrDefault()))
			}
			descStr := ""
			if el.Description != "" {
				descStr = ": " + el.Description
			}
			fmt.Fprintf(w, "\t%s%s%s\n", el.Title, detail, descStr)
		}
	}
}
