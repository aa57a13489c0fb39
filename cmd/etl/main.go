package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/DLCheruiyot/smb-bi-etl-pipeline/internal/classify"
	"github.com/DLCheruiyot/smb-bi-etl-pipeline/internal/etl"
	"github.com/DLCheruiyot/smb-bi-etl-pipeline/internal/logger"
	"github.com/DLCheruiyot/smb-bi-etl-pipeline/internal/warehouse"
)

func main() {
	log := logger.New()

	projectID := flag.String("project", "", "GCP project ID")
	bronzeDataset := flag.String("bronze-dataset", warehouse.DefaultBronzeDataset, "bronze (raw) BigQuery dataset")
	silverDataset := flag.String("silver-dataset", warehouse.DefaultSilverDataset, "silver (cleaned) BigQuery dataset")
	seed := flag.Int64("mask-seed", time.Now().UnixNano(), "seed for the amount-masking RNG")
	noMask := flag.Bool("no-mask", false, "disable amount masking (amounts persist unchanged)")
	flag.Parse()

	if *projectID == "" {
		log.Fatal().Msg("--project is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	client, err := warehouse.NewClient(ctx, *projectID, *bronzeDataset, *silverDataset)
	if err != nil {
		log.Fatal().Err(err).Msg("opening warehouse")
	}
	defer client.Close()

	var masker classify.Masker = classify.NewUniformMasker(*seed)
	if *noMask {
		masker = classify.IdentityMasker{}
	}

	runner := etl.NewRunner(client, client, masker, log)
	report := runner.Run(ctx)

	for _, stage := range report.Stages {
		ev := log.Info()
		if !stage.Success {
			ev = log.Error().Str("code", stage.Err.Code).Str("error", stage.Err.Message)
		}
		ev.Str("stage", stage.Stage).Dur("duration", stage.Duration).Msg("stage result")
	}

	if !report.Succeeded {
		log.Error().Str("run_id", report.RunID).Msg("run finished with failed stages")
		os.Exit(1)
	}
	log.Info().Str("run_id", report.RunID).Int("classification_gaps", report.ClassificationGaps).Msg("run succeeded")
}
