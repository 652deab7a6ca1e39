package export

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"tickerscreen/pkg/screener"
)

const SheetName = "Stock Screener"

// ColumnOrder is the spreadsheet layout, identity first, then ratios,
// then scorecard values, then the ranking flag.
var ColumnOrder = []string{
	"Company Name", "Ticker", "Sector", "Sub-Sector",
	screener.ColPERatio, screener.ColLastPrice, screener.ColMarketCap,
	screener.ColMFHoldingChg6M, screener.ColMFHoldingChg3M,
	screener.ColFIIHoldingChg6M, screener.ColFIIHoldingChg3M,
	screener.ColEBITDA, screener.ColReturnVsNifty1Y, screener.ColFwdEBITDAGrowth,
	"Valuation Score", "Performance Score",
	"Profitability Score", "Growth Score",
	"Entry Point Score", "Red Flags Score",
	"Top 20 All Columns",
}

func cellValue(row screener.FlatRow, column string) interface{} {
	if v, ok := row.Value(column); ok {
		return round2(v)
	}

	switch column {
	case "Company Name":
		return row.CompanyName
	case "Ticker":
		return row.Ticker
	case "Sector":
		return row.Sector
	case "Sub-Sector":
		return row.SubSector
	case "Valuation Score":
		return row.Scores.Valuation
	case "Performance Score":
		return row.Scores.Performance
	case "Profitability Score":
		return row.Scores.Profitability
	case "Growth Score":
		return row.Scores.Growth
	case "Entry Point Score":
		return row.Scores.EntryPoint
	case "Red Flags Score":
		return row.Scores.RedFlags
	case "Top 20 All Columns":
		if row.TopAllColumns {
			return "Yes"
		}
		return "No"
	}
	return ""
}

func round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// FormatMarketCap renders a market cap (in crores) for display.
func FormatMarketCap(v float64) string {
	d := decimal.NewFromFloat(v)
	switch {
	case v >= 100000:
		return d.Div(decimal.NewFromInt(100000)).StringFixed(2) + " L Cr"
	case v >= 1000:
		return d.Div(decimal.NewFromInt(1000)).StringFixed(2) + " Cr"
	default:
		return d.StringFixed(2) + " Cr"
	}
}

// ToExcel writes the annotated rows to an .xlsx file: styled header row,
// two-decimal number format on numeric columns, content-sized column
// widths and an autofilter over the whole range.
func ToExcel(rows []screener.FlatRow, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"D7E4BC"}},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	numFmt := "0.00"
	numberStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return fmt.Errorf("number style: %w", err)
	}

	widths := make([]int, len(ColumnOrder))
	for c, column := range ColumnOrder {
		widths[c] = len(column)
		cell, _ := excelize.CoordinatesToCellName(c+1, 1)
		if err := f.SetCellValue(SheetName, cell, column); err != nil {
			return fmt.Errorf("write header %q: %w", column, err)
		}
		if err := f.SetCellStyle(SheetName, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("style header %q: %w", column, err)
		}
	}

	for r, row := range rows {
		for c, column := range ColumnOrder {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			value := cellValue(row, column)
			if err := f.SetCellValue(SheetName, cell, value); err != nil {
				return fmt.Errorf("write cell %s: %w", cell, err)
			}
			if _, numeric := row.Value(column); numeric {
				if err := f.SetCellStyle(SheetName, cell, cell, numberStyle); err != nil {
					return fmt.Errorf("style cell %s: %w", cell, err)
				}
			}
			if w := contentWidth(value); w > widths[c] {
				widths[c] = w
			}
		}
	}

	for c := range ColumnOrder {
		name, _ := excelize.ColumnNumberToName(c + 1)
		if err := f.SetColWidth(SheetName, name, name, columnWidth(widths[c])); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}

	last, _ := excelize.CoordinatesToCellName(len(ColumnOrder), len(rows)+1)
	if err := f.AutoFilter(SheetName, "A1:"+last, nil); err != nil {
		return fmt.Errorf("autofilter: %w", err)
	}

	return f.SaveAs(path)
}

func contentWidth(value interface{}) int {
	switch v := value.(type) {
	case string:
		return len(v)
	case float64:
		return len(strconv.FormatFloat(v, 'f', 2, 64))
	}
	return 0
}

// columnWidth converts a content length in characters to a sheet column
// width, padded and capped so one long cell can't blow up the layout.
func columnWidth(chars int) float64 {
	const maxWidth = 40
	w := chars + 2
	if w > maxWidth {
		w = maxWidth
	}
	return float64(w)
}
