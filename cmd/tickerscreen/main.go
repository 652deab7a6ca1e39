package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"tickerscreen/pkg/export"
	"tickerscreen/pkg/scorecard"
	"tickerscreen/pkg/screener"
	"tickerscreen/pkg/tickertape"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment as-is")
	}

	logger := zap.Must(zap.NewProduction())
	defer logger.Sync()

	runID := uuid.NewString()[:8]
	logger = logger.With(zap.String("run_id", runID))

	client := tickertape.NewClient(tickertape.ConfigFromEnv(), logger)

	// With a stock id argument, just fetch and print that one scorecard.
	if len(os.Args) > 1 {
		inspectScorecard(client, os.Args[1], logger)
		return
	}

	resp, err := client.QueryScreener(tickertape.DefaultScreenerPayload())
	if err != nil {
		logger.Fatal("screener query failed", zap.Error(err))
	}
	results := resp.Data.Results
	fmt.Printf("Fetched data for %d stocks\n", len(results))

	sids := make([]string, 0, len(results))
	for _, res := range results {
		sids = append(sids, res.SID)
	}

	docs, stats := scorecard.FetchAll(client, sids, logger)
	rows := screener.BuildRows(results, docs, logger)
	sets := screener.AnnotateTopSet(rows, screener.HoldingColumns, screener.DefaultTopK)

	printTopSets(sets)
	printFlagged(rows)

	filename := fmt.Sprintf("tickertape_screener_with_scores_%s_%s.xlsx",
		time.Now().Format("20060102_150405"), runID)
	if err := export.ToExcel(rows, filename); err != nil {
		logger.Fatal("export failed", zap.String("file", filename), zap.Error(err))
	}

	flagged := 0
	for _, row := range rows {
		if row.TopAllColumns {
			flagged++
		}
	}

	fmt.Printf("\nTotal stocks found: %d\n", len(rows))
	fmt.Printf("Scorecard fetch errors: %d\n", stats.Transport.Load())
	fmt.Printf("Scorecard parse errors: %d\n", stats.Parse.Load())
	fmt.Printf("Top %d in all columns: %d\n", screener.DefaultTopK, flagged)
	fmt.Printf("Exported data to %s\n", filename)
}

func inspectScorecard(client *tickertape.Client, sid string, logger *zap.Logger) {
	doc, err := client.GetScorecard(sid)
	if err != nil {
		logger.Fatal("scorecard fetch failed", zap.String("sid", sid), zap.Error(err))
	}
	scorecard.Fprint(os.Stdout, doc)
}

func printTopSets(sets []screener.RankingResult) {
	for _, set := range sets {
		fmt.Printf("\nTop %d by %s:\n", len(set.Top), set.Column)
		for _, row := range set.Top {
			v, _ := row.Value(set.Column)
			fmt.Printf("  %-40s %-12s %8.2f\n", row.CompanyName, row.Ticker, v)
		}
	}
}

func printFlagged(rows []screener.FlatRow) {
	fmt.Println("\nStocks in Top 20 for All Holding Change Columns:")
	for _, row := range rows {
		if row.TopAllColumns {
			fmt.Printf("%s (%s), Market Cap %s\n",
				row.CompanyName, row.Ticker, export.FormatMarketCap(row.MarketCap))
		}
	}
}
