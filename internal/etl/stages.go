package etl

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/DLCheruiyot/smb-bi-etl-pipeline/internal/classify"
	"github.com/DLCheruiyot/smb-bi-etl-pipeline/internal/marketing"
	"github.com/DLCheruiyot/smb-bi-etl-pipeline/internal/models"
	"github.com/DLCheruiyot/smb-bi-etl-pipeline/internal/resolve"
	"github.com/DLCheruiyot/smb-bi-etl-pipeline/internal/warehouse"
)

// Stage is one unit of the sequenced rebuild. Stages run strictly in
// order; a failing stage aborts itself only and later stages still run.
type Stage interface {
	Name() string
	Execute(ctx context.Context, state *RunState) error
}

// classifyConcurrency bounds the revenue-stage fan-out. Transactions are
// independent, so classification parallelizes freely within the stage.
const classifyConcurrency = 8

// SnapshotStage reads every bronze feed into the run state. It runs first;
// a read failure here fails the whole run since every later stage consumes
// the snapshot.
type SnapshotStage struct {
	Reader warehouse.BronzeReader
}

func (s *SnapshotStage) Name() string { return "snapshot" }

func (s *SnapshotStage) Execute(ctx context.Context, state *RunState) error {
	lines, err := s.Reader.ReadOrderLines(ctx)
	if err != nil {
		return &StageError{Stage: s.Name(), Code: CodeReadFailed, Err: fmt.Errorf("order lines: %w", err)}
	}
	txs, err := s.Reader.ReadBankTransactions(ctx)
	if err != nil {
		return &StageError{Stage: s.Name(), Code: CodeReadFailed, Err: fmt.Errorf("bank transactions: %w", err)}
	}
	social := make(map[string][]models.SocialDailyRaw, len(warehouse.SocialPlatforms))
	for _, platform := range warehouse.SocialPlatforms {
		rows, err := s.Reader.ReadSocialDaily(ctx, platform)
		if err != nil {
			return &StageError{Stage: s.Name(), Code: CodeReadFailed, Err: fmt.Errorf("social %s: %w", platform, err)}
		}
		social[platform] = rows
	}
	email, err := s.Reader.ReadEmailCampaigns(ctx)
	if err != nil {
		return &StageError{Stage: s.Name(), Code: CodeReadFailed, Err: fmt.Errorf("email campaigns: %w", err)}
	}

	state.OrderLines = lines
	state.BankTransactions = txs
	state.SocialRaw = social
	state.EmailRaw = email
	return nil
}

// CustomerStage rebuilds the silver customer dimension.
type CustomerStage struct {
	Store warehouse.SilverStore
}

func (s *CustomerStage) Name() string { return "customers" }

func (s *CustomerStage) Execute(ctx context.Context, state *RunState) error {
	if len(state.OrderLines) == 0 {
		return &StageError{Stage: s.Name(), Code: CodeEmptyInput}
	}
	customers := resolve.Customers(state.OrderLines)
	if err := s.Store.ClearCustomers(ctx); err != nil {
		return &StageError{Stage: s.Name(), Code: CodeWriteFailed, Err: err}
	}
	if err := s.Store.InsertCustomers(ctx, customers); err != nil {
		return &StageError{Stage: s.Name(), Code: CodeWriteFailed, Err: err}
	}
	return nil
}

// ProductStage rebuilds the silver product dimension. It reads the same
// order-line snapshot as CustomerStage and must not mutate it.
type ProductStage struct {
	Store warehouse.SilverStore
}

func (s *ProductStage) Name() string { return "products" }

func (s *ProductStage) Execute(ctx context.Context, state *RunState) error {
	if len(state.OrderLines) == 0 {
		return &StageError{Stage: s.Name(), Code: CodeEmptyInput}
	}
	products := resolve.Products(state.OrderLines)
	if err := s.Store.ClearProducts(ctx); err != nil {
		return &StageError{Stage: s.Name(), Code: CodeWriteFailed, Err: err}
	}
	if err := s.Store.InsertProducts(ctx, products); err != nil {
		return &StageError{Stage: s.Name(), Code: CodeWriteFailed, Err: err}
	}
	return nil
}

// RevenueStage classifies the bank feed and rebuilds the silver revenue
// dataset. Classification fans out across a bounded group; masking runs
// afterwards, in input order, so a seeded masker stays deterministic.
type RevenueStage struct {
	Store  warehouse.SilverStore
	Masker classify.Masker
}

func (s *RevenueStage) Name() string { return "revenue" }

func (s *RevenueStage) Execute(ctx context.Context, state *RunState) error {
	if len(state.BankTransactions) == 0 {
		return &StageError{Stage: s.Name(), Code: CodeEmptyInput}
	}

	// Null-amount rows are excluded upstream of classification entirely.
	eligible := make([]models.BankTransaction, 0, len(state.BankTransactions))
	for _, tx := range state.BankTransactions {
		if tx.Amount != nil {
			eligible = append(eligible, tx)
		}
	}

	results := make([]classify.Classification, len(eligible))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(classifyConcurrency)
	for i := range eligible {
		g.Go(func() error {
			results[i] = classify.Classify(eligible[i])
			return nil
		})
	}
	// Classify never fails; the group exists for the bounded fan-out.
	_ = g.Wait()

	entries := make([]models.RevenueEntry, 0, len(eligible))
	for i, tx := range eligible {
		c := results[i]
		if c.IsGap() {
			state.ClassificationGaps++
			state.GapDescriptions = append(state.GapDescriptions, tx.Description)
		}
		if c.TransactionType != models.TypeRevenue {
			continue
		}
		entries = append(entries, models.RevenueEntry{
			Date:            tx.Date,
			TransactionCode: tx.TransactionCode,
			Description:     tx.Description,
			Amount:          s.Masker.Mask(*tx.Amount),
			TransactionType: c.TransactionType,
			RevenueType:     c.RevenueType,
			RevenueSource:   c.RevenueSource,
		})
	}

	if err := s.Store.ClearRevenue(ctx); err != nil {
		return &StageError{Stage: s.Name(), Code: CodeWriteFailed, Err: err}
	}
	if err := s.Store.InsertRevenue(ctx, entries); err != nil {
		return &StageError{Stage: s.Name(), Code: CodeWriteFailed, Err: err}
	}
	return nil
}

// SocialStage rebuilds one platform's slice of the silver daily-metrics
// dataset.
type SocialStage struct {
	Store    warehouse.SilverStore
	Platform string
}

func (s *SocialStage) Name() string { return "social:" + s.Platform }

func (s *SocialStage) Execute(ctx context.Context, state *RunState) error {
	rows := state.SocialRaw[s.Platform]
	if len(rows) == 0 {
		return &StageError{Stage: s.Name(), Code: CodeEmptyInput}
	}
	normalized, err := marketing.SocialDaily(s.Platform, rows)
	if err != nil {
		return &StageError{Stage: s.Name(), Code: CodeDuplicateKey, Err: err}
	}
	if err := s.Store.ClearSocialDaily(ctx, s.Platform); err != nil {
		return &StageError{Stage: s.Name(), Code: CodeWriteFailed, Err: err}
	}
	if err := s.Store.InsertSocialDaily(ctx, normalized); err != nil {
		return &StageError{Stage: s.Name(), Code: CodeWriteFailed, Err: err}
	}
	return nil
}

// EmailStage rebuilds the silver email-campaign dataset.
type EmailStage struct {
	Store warehouse.SilverStore
}

func (s *EmailStage) Name() string { return "email" }

func (s *EmailStage) Execute(ctx context.Context, state *RunState) error {
	if len(state.EmailRaw) == 0 {
		return &StageError{Stage: s.Name(), Code: CodeEmptyInput}
	}
	normalized, skipped, err := marketing.EmailCampaigns(state.EmailRaw)
	if err != nil {
		return &StageError{Stage: s.Name(), Code: CodeDuplicateKey, Err: err}
	}
	state.SkippedRecords += skipped
	if err := s.Store.ClearEmailCampaigns(ctx); err != nil {
		return &StageError{Stage: s.Name(), Code: CodeWriteFailed, Err: err}
	}
	if err := s.Store.InsertEmailCampaigns(ctx, normalized); err != nil {
		return &StageError{Stage: s.Name(), Code: CodeWriteFailed, Err: err}
	}
	return nil
}
