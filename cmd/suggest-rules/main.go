package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/DLCheruiyot/smb-bi-etl-pipeline/internal/classify"
	"github.com/DLCheruiyot/smb-bi-etl-pipeline/internal/logger"
	"github.com/DLCheruiyot/smb-bi-etl-pipeline/internal/suggest"
	"github.com/DLCheruiyot/smb-bi-etl-pipeline/internal/warehouse"
)

// suggest-rules audits classification coverage: it classifies the current
// bronze bank feed, collects the descriptions that matched no revenue-type
// rule, and asks Gemini for candidate patterns. Output is advisory; the
// rule tables only change through code review.
func main() {
	log := logger.New()

	projectID := flag.String("project", "", "GCP project ID")
	bronzeDataset := flag.String("bronze-dataset", warehouse.DefaultBronzeDataset, "bronze BigQuery dataset")
	model := flag.String("model", suggest.DefaultModelName, "Gemini model name")
	flag.Parse()

	if *projectID == "" {
		log.Fatal().Msg("--project is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	client, err := warehouse.NewClient(ctx, *projectID, *bronzeDataset, "")
	if err != nil {
		log.Fatal().Err(err).Msg("opening warehouse")
	}
	defer client.Close()

	txs, err := client.ReadBankTransactions(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("reading bank transactions")
	}

	seen := make(map[string]bool)
	var gaps []string
	for _, tx := range txs {
		if tx.Amount == nil {
			continue
		}
		if c := classify.Classify(tx); c.IsGap() && !seen[tx.Description] {
			seen[tx.Description] = true
			gaps = append(gaps, tx.Description)
		}
	}

	if len(gaps) == 0 {
		log.Info().Msg("no classification gaps; rule table covers the feed")
		return
	}
	log.Info().Int("gap_descriptions", len(gaps)).Msg("requesting pattern suggestions")

	suggestions, err := suggest.Patterns(ctx, &suggest.GeminiModel{ModelName: *model}, gaps)
	if err != nil {
		log.Fatal().Err(err).Msg("requesting suggestions")
	}

	for _, s := range suggestions {
		fmt.Printf("%-10s %-8s %q\n    %s\n", s.RevenueType, s.Match, s.Pattern, s.Rationale)
	}
}
