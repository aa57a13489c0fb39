package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"path/filepath"
	"time"

	"github.com/DLCheruiyot/smb-bi-etl-pipeline/internal/feeds"
	"github.com/DLCheruiyot/smb-bi-etl-pipeline/internal/gcs"
	"github.com/DLCheruiyot/smb-bi-etl-pipeline/internal/logger"
	"github.com/DLCheruiyot/smb-bi-etl-pipeline/internal/warehouse"
)

// Feed kinds accepted by --feed. Social platforms load into the shared
// social table tagged with their platform name.
var socialPlatforms = map[string]bool{
	"facebook":  true,
	"instagram": true,
	"tiktok":    true,
}

func main() {
	log := logger.New()

	projectID := flag.String("project", "", "GCP project ID")
	bronzeDataset := flag.String("bronze-dataset", warehouse.DefaultBronzeDataset, "bronze BigQuery dataset")
	bucket := flag.String("bucket", "", "GCS feed drop bucket")
	feed := flag.String("feed", "", "feed kind: orders, bank, email, facebook, instagram, tiktok")
	file := flag.String("file", "", "local CSV file to upload and load")
	flag.Parse()

	if *projectID == "" || *bucket == "" || *feed == "" || *file == "" {
		log.Fatal().Msg("--project, --bucket, --feed and --file are required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	storage := gcs.NewClient()
	object := fmt.Sprintf("feeds/%s/%s/%s", *feed, time.Now().Format("2006/01/02"), filepath.Base(*file))
	if err := storage.Upload(ctx, *bucket, object, *file); err != nil {
		log.Fatal().Err(err).Msg("uploading feed file")
	}
	uri := fmt.Sprintf("gs://%s/%s", *bucket, object)
	log.Info().Str("gcs_uri", uri).Msg("feed file archived")

	data, err := storage.Fetch(ctx, uri)
	if err != nil {
		log.Fatal().Err(err).Msg("fetching archived feed file")
	}

	client, err := warehouse.NewClient(ctx, *projectID, *bronzeDataset, "")
	if err != nil {
		log.Fatal().Err(err).Msg("opening warehouse")
	}
	defer client.Close()

	loaded, skipped, err := load(ctx, client, *feed, data)
	if err != nil {
		log.Fatal().Err(err).Str("feed", *feed).Msg("loading feed into bronze")
	}
	log.Info().
		Str("feed", *feed).
		Int("rows", loaded).
		Int("skipped", skipped).
		Msg("feed loaded into bronze")
}

func load(ctx context.Context, loader warehouse.BronzeLoader, feed string, data []byte) (int, int, error) {
	r := bytes.NewReader(data)
	switch {
	case feed == "orders":
		res, err := feeds.DecodeOrderLines(r)
		if err != nil {
			return 0, 0, err
		}
		return len(res.Rows), res.Skipped, loader.LoadOrderLines(ctx, res.Rows)
	case feed == "bank":
		res, err := feeds.DecodeBankTransactions(r)
		if err != nil {
			return 0, 0, err
		}
		return len(res.Rows), res.Skipped, loader.LoadBankTransactions(ctx, res.Rows)
	case feed == "email":
		res, err := feeds.DecodeEmailCampaigns(r)
		if err != nil {
			return 0, 0, err
		}
		return len(res.Rows), res.Skipped, loader.LoadEmailCampaigns(ctx, res.Rows)
	case socialPlatforms[feed]:
		res, err := feeds.DecodeSocialDaily(feed, r)
		if err != nil {
			return 0, 0, err
		}
		return len(res.Rows), res.Skipped, loader.LoadSocialDaily(ctx, res.Rows)
	default:
		return 0, 0, fmt.Errorf("unknown feed kind %q", feed)
	}
}
