// Package warehouse is the pipeline's storage layer: bronze feed reads and
// silver dataset rebuilds. The BigQuery Client is the production
// implementation; MemoryStore backs tests and local dry runs.
package warehouse

import (
	"context"

	"github.com/DLCheruiyot/smb-bi-etl-pipeline/internal/models"
)

// Social platforms with a daily-metrics feed.
var SocialPlatforms = []string{"facebook", "instagram", "tiktok"}

// BronzeReader reads the raw feed snapshot. Reads happen once, at the start
// of a run; stages work from the in-memory snapshot afterwards.
type BronzeReader interface {
	ReadOrderLines(ctx context.Context) ([]models.OrderLine, error)
	ReadBankTransactions(ctx context.Context) ([]models.BankTransaction, error)
	ReadSocialDaily(ctx context.Context, platform string) ([]models.SocialDailyRaw, error)
	ReadEmailCampaigns(ctx context.Context) ([]models.EmailCampaignRaw, error)
}

// SilverStore rebuilds silver datasets. Every destination follows the same
// clear-then-write pattern; the pair is deliberately not atomic (a failure
// between the two leaves the destination empty until the next run, which is
// accepted because runs are full refreshes).
type SilverStore interface {
	ClearCustomers(ctx context.Context) error
	InsertCustomers(ctx context.Context, rows []models.Customer) error

	ClearProducts(ctx context.Context) error
	InsertProducts(ctx context.Context, rows []models.Product) error

	ClearRevenue(ctx context.Context) error
	InsertRevenue(ctx context.Context, rows []models.RevenueEntry) error

	ClearSocialDaily(ctx context.Context, platform string) error
	InsertSocialDaily(ctx context.Context, rows []models.SocialDaily) error

	ClearEmailCampaigns(ctx context.Context) error
	InsertEmailCampaigns(ctx context.Context, rows []models.EmailCampaign) error
}

// BronzeLoader appends decoded feed rows into the bronze tables. Used by
// the upload-feed tool, not by the silver rebuild.
type BronzeLoader interface {
	LoadOrderLines(ctx context.Context, rows []models.OrderLine) error
	LoadBankTransactions(ctx context.Context, rows []models.BankTransaction) error
	LoadSocialDaily(ctx context.Context, rows []models.SocialDailyRaw) error
	LoadEmailCampaigns(ctx context.Context, rows []models.EmailCampaignRaw) error
}
