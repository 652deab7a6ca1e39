package screener

import (
	"go.uber.org/zap"

	"tickerscreen/pkg/scorecard"
)

// Response is the bulk screener query result.
type Response struct {
	Data struct {
		Results []Result `json:"results"`
	} `json:"data"`
}

// Result is one screener hit: the stock id plus identity and ratios.
type Result struct {
	SID   string `json:"sid"`
	Stock Stock  `json:"stock"`
}

type Stock struct {
	Info           Info           `json:"info"`
	AdvancedRatios AdvancedRatios `json:"advancedRatios"`
}

type Info struct {
	Name   string `json:"name"`
	Ticker string `json:"ticker"`
	Sector string `json:"sector"`
}

// AdvancedRatios maps the provider's ratio keys onto named fields.
// Ratios the query did not project simply stay 0.
type AdvancedRatios struct {
	SubIndustry     string  `json:"subindustry"`
	PERatio         float64 `json:"apef"`
	LastPrice       float64 `json:"lastPrice"`
	MarketCap       float64 `json:"mrktCapf"`
	MFHoldingChg6M  float64 `json:"chMutHldng6M"`
	MFHoldingChg3M  float64 `json:"instown3"`
	FIIHoldingChg6M float64 `json:"forInstHldng6M"`
	FIIHoldingChg3M float64 `json:"forInstHldng3M"`
	EBITDA          float64 `json:"incEbi"`
	ReturnVsNifty1Y float64 `json:"12mpctN"`
	FwdEBITDAGrowth float64 `json:"estAvg"`
}

// FlatRow is the export-ready join of one screener result with its
// normalized scorecard summary. TopAllColumns is set by AnnotateTopSet.
type FlatRow struct {
	CompanyName string
	Ticker      string
	Sector      string
	SubSector   string

	PERatio         float64
	LastPrice       float64
	MarketCap       float64
	MFHoldingChg6M  float64
	MFHoldingChg3M  float64
	FIIHoldingChg6M float64
	FIIHoldingChg3M float64
	EBITDA          float64
	ReturnVsNifty1Y float64
	FwdEBITDAGrowth float64

	Scores scorecard.Summary

	TopAllColumns bool
}

// BuildRows joins screener results with fetched scorecard documents, one
// row per result in input order. A stock whose scorecard is missing gets
// the all-unknown summary; its ratios are kept as-is. Identity strings
// absent from the response default to "N/A", numeric ratios to 0.
func BuildRows(results []Result, docs map[string]*scorecard.Document, logger *zap.Logger) []FlatRow {
	rows := make([]FlatRow, 0, len(results))

	for _, res := range results {
		summary := scorecard.UnknownSummary()
		if doc := docs[res.SID]; doc != nil {
			summary = scorecard.Normalize(doc)
		} else {
			logger.Debug("no scorecard for stock",
				zap.String("sid", res.SID),
				zap.String("ticker", res.Stock.Info.Ticker))
		}

		sector := res.Stock.Info.Sector
		if sector == "" {
			sector = "N/A"
		}
		subSector := res.Stock.AdvancedRatios.SubIndustry
		if subSector == "" {
			subSector = "N/A"
		}

		ratios := res.Stock.AdvancedRatios
		rows = append(rows, FlatRow{
			CompanyName:     res.Stock.Info.Name,
			Ticker:          res.Stock.Info.Ticker,
			Sector:          sector,
			SubSector:       subSector,
			PERatio:         ratios.PERatio,
			LastPrice:       ratios.LastPrice,
			MarketCap:       ratios.MarketCap,
			MFHoldingChg6M:  ratios.MFHoldingChg6M,
			MFHoldingChg3M:  ratios.MFHoldingChg3M,
			FIIHoldingChg6M: ratios.FIIHoldingChg6M,
			FIIHoldingChg3M: ratios.FIIHoldingChg3M,
			EBITDA:          ratios.EBITDA,
			ReturnVsNifty1Y: ratios.ReturnVsNifty1Y,
			FwdEBITDAGrowth: ratios.FwdEBITDAGrowth,
			Scores:          summary,
		})
	}

	return rows
}
