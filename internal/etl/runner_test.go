package etl_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/DLCheruiyot/smb-bi-etl-pipeline/internal/classify"
	"github.com/DLCheruiyot/smb-bi-etl-pipeline/internal/etl"
	"github.com/DLCheruiyot/smb-bi-etl-pipeline/internal/models"
	"github.com/DLCheruiyot/smb-bi-etl-pipeline/internal/warehouse"
)

func day(y, m, d int) civil.Date {
	return civil.Date{Year: y, Month: time.Month(m), Day: d}
}

func sp(s string) *string { return &s }

func amount(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// seedStore fills a memory warehouse with a small but complete bronze
// snapshot: two customers across three order lines, a mixed bank feed,
// all three social platforms, and two email campaigns.
func seedStore(t *testing.T) *warehouse.MemoryStore {
	t.Helper()
	store := warehouse.NewMemoryStore()
	ctx := context.Background()

	price1 := decimal.RequireFromString("19.99")
	price2 := decimal.RequireFromString("24.99")
	lines := []models.OrderLine{
		{
			LineID: "l1", OrderNum: "O-1", OrderDate: day(2024, 1, 10),
			CustNum: "C001", SKU: "SKU-1", RetailPrice: &price1,
			CustFirstName: sp("Ann"), CustLastName: sp("Lee"),
			CustZip: sp("98101"),
		},
		{
			LineID: "l2", OrderNum: "O-2", OrderDate: day(2024, 3, 1),
			CustNum: "C001", SKU: "SKU-1", RetailPrice: &price2,
			CustFirstName: sp("Ann"), CustLastName: sp("Lee"),
			CustZip: sp("98101"), CustEmail: sp("ann@lee.com"),
		},
		{
			LineID: "l3", OrderNum: "O-3", OrderDate: day(2024, 2, 14),
			CustNum: "C002", SKU: "SKU-2", RetailPrice: &price1,
			CustFirstName: sp("Guest"),
		},
	}
	if err := store.LoadOrderLines(ctx, lines); err != nil {
		t.Fatal(err)
	}

	txs := []models.BankTransaction{
		{Date: day(2024, 3, 1), TransactionCode: "CREDIT", Description: "ELECTRONIC DEPOSIT BANKCARD #1234", Amount: amount("540.00")},
		{Date: day(2024, 3, 2), TransactionCode: "DEPOSIT", Description: "ELECTRONIC DEPOSIT AIRBNB PAYMENTS", Amount: amount("890.00")},
		{Date: day(2024, 3, 3), TransactionCode: "CREDIT", Description: "ZELLE INSTANT PMT FROM CUSTOMER JOHN", Amount: amount("100.00")},
		{Date: day(2024, 3, 4), TransactionCode: "CREDIT", Description: "ZELLE INSTANT PMT ABC CORP", Amount: amount("75.00")},
		{Date: day(2024, 3, 5), TransactionCode: "DEPOSIT", Description: "MISC ADJUSTMENT 42", Amount: amount("10.00")},
		{Date: day(2024, 3, 6), TransactionCode: "CREDIT", Description: "ELECTRONIC DEPOSIT BANKCARD #99", Amount: nil}, // excluded
	}
	if err := store.LoadBankTransactions(ctx, txs); err != nil {
		t.Fatal(err)
	}

	var social []models.SocialDailyRaw
	for _, platform := range warehouse.SocialPlatforms {
		social = append(social,
			models.SocialDailyRaw{Platform: platform, Date: day(2024, 3, 1), Interactions: 10},
			models.SocialDailyRaw{Platform: platform, Date: day(2024, 3, 2), Interactions: 20},
		)
	}
	if err := store.LoadSocialDaily(ctx, social); err != nil {
		t.Fatal(err)
	}

	email := []models.EmailCampaignRaw{
		{UniqueID: "c-1", CampaignName: "Spring", SendTS: "2024-03-01 09:00:00", EmailsSent: 500},
		{UniqueID: "c-2", CampaignName: "Easter", SendTS: "2024-03-20 10:00:00", EmailsSent: 800},
	}
	if err := store.LoadEmailCampaigns(ctx, email); err != nil {
		t.Fatal(err)
	}

	return store
}

func newRunner(store warehouse.SilverStore, reader warehouse.BronzeReader) *etl.Runner {
	return etl.NewRunner(reader, store, classify.IdentityMasker{}, zerolog.Nop())
}

func TestRunnerFullRun(t *testing.T) {
	store := seedStore(t)
	report := newRunner(store, store).Run(context.Background())

	if !report.Succeeded {
		t.Fatalf("run failed: %+v", report.Stages)
	}
	// snapshot + customers + products + revenue + 3 social + email
	if len(report.Stages) != 8 {
		t.Fatalf("got %d stage results, want 8", len(report.Stages))
	}
	for _, stage := range report.Stages {
		if !stage.Success {
			t.Errorf("stage %s failed: %+v", stage.Stage, stage.Err)
		}
		if stage.Duration < 0 {
			t.Errorf("stage %s has negative duration", stage.Stage)
		}
	}

	customers := store.Customers()
	if len(customers) != 2 {
		t.Fatalf("got %d customers, want 2", len(customers))
	}
	if customers[0].CustNum != "C001" || customers[0].TenureDays != 51 {
		t.Errorf("C001 = %+v, want tenure 51", customers[0])
	}
	if customers[1].Status != nil {
		t.Errorf("guest C002 status = %q, want blank", *customers[1].Status)
	}

	products := store.Products()
	if len(products) != 2 {
		t.Fatalf("got %d products, want 2", len(products))
	}
	if want := decimal.RequireFromString("24.99"); !products[0].RetailPrice.Equal(want) {
		t.Errorf("SKU-1 price = %s, want latest %s", products[0].RetailPrice, want)
	}

	revenue := store.Revenue()
	// Cash injection and null-amount rows dropped: 6 bronze rows -> 4 entries.
	if len(revenue) != 4 {
		t.Fatalf("got %d revenue entries, want 4", len(revenue))
	}
	for _, r := range revenue {
		if r.TransactionType != models.TypeRevenue {
			t.Errorf("persisted non-revenue row: %+v", r)
		}
		if r.RevenueType != nil && *r.RevenueType == models.RevenueHospitality && r.RevenueSource != nil {
			t.Errorf("hospitality row carries a source: %+v", r)
		}
		if r.RevenueType != nil && *r.RevenueType == models.RevenueRetail && r.RevenueSource == nil {
			t.Errorf("retail row missing a source: %+v", r)
		}
	}

	if report.ClassificationGaps != 1 {
		t.Errorf("ClassificationGaps = %d, want 1 (the MISC ADJUSTMENT row)", report.ClassificationGaps)
	}
	if len(report.GapDescriptions) != 1 || report.GapDescriptions[0] != "MISC ADJUSTMENT 42" {
		t.Errorf("GapDescriptions = %v", report.GapDescriptions)
	}

	if got := len(store.SocialDaily()); got != 6 {
		t.Errorf("got %d social rows, want 6", got)
	}
	if got := len(store.EmailCampaigns()); got != 2 {
		t.Errorf("got %d email rows, want 2", got)
	}
}

func TestRunnerIsIdempotent(t *testing.T) {
	store := seedStore(t)
	runner := newRunner(store, store)

	runner.Run(context.Background())
	first := silverSnapshot(store)
	runner.Run(context.Background())
	second := silverSnapshot(store)

	if !reflect.DeepEqual(first, second) {
		t.Error("re-running over an unchanged snapshot changed the silver layer")
	}
}

type silverState struct {
	Customers []models.Customer
	Products  []models.Product
	Revenue   []models.RevenueEntry
	Social    []models.SocialDaily
	Email     []models.EmailCampaign
}

func silverSnapshot(store *warehouse.MemoryStore) silverState {
	return silverState{
		Customers: store.Customers(),
		Products:  store.Products(),
		Revenue:   store.Revenue(),
		Social:    store.SocialDaily(),
		Email:     store.EmailCampaigns(),
	}
}

func TestRunnerEmptyBankFeedFailsOnlyRevenueStage(t *testing.T) {
	store := warehouse.NewMemoryStore()
	ctx := context.Background()
	price := decimal.RequireFromString("5.00")
	if err := store.LoadOrderLines(ctx, []models.OrderLine{
		{LineID: "l1", OrderNum: "O-1", OrderDate: day(2024, 1, 1), CustNum: "C001", SKU: "S1", RetailPrice: &price},
	}); err != nil {
		t.Fatal(err)
	}
	for _, platform := range warehouse.SocialPlatforms {
		if err := store.LoadSocialDaily(ctx, []models.SocialDailyRaw{{Platform: platform, Date: day(2024, 1, 1)}}); err != nil {
			t.Fatal(err)
		}
	}
	if err := store.LoadEmailCampaigns(ctx, []models.EmailCampaignRaw{{UniqueID: "c-1", SendTS: "2024-01-01 08:00:00"}}); err != nil {
		t.Fatal(err)
	}

	report := newRunner(store, store).Run(ctx)

	if report.Succeeded {
		t.Fatal("run should report failure when a stage fails")
	}
	for _, stage := range report.Stages {
		switch stage.Stage {
		case "revenue":
			if stage.Success {
				t.Error("revenue stage should fail on empty bank feed")
			} else if stage.Err.Code != etl.CodeEmptyInput {
				t.Errorf("revenue error code = %q, want %q", stage.Err.Code, etl.CodeEmptyInput)
			}
		default:
			if !stage.Success {
				t.Errorf("stage %s should be unaffected: %+v", stage.Stage, stage.Err)
			}
		}
	}

	if len(store.Customers()) != 1 {
		t.Error("customer rebuild should have committed despite the revenue failure")
	}
}

func TestRunnerDuplicateSocialDateSurfacesAsDuplicateKey(t *testing.T) {
	store := seedStore(t)
	ctx := context.Background()
	if err := store.LoadSocialDaily(ctx, []models.SocialDailyRaw{
		{Platform: "facebook", Date: day(2024, 3, 1)}, // already present
	}); err != nil {
		t.Fatal(err)
	}

	report := newRunner(store, store).Run(ctx)

	if report.Succeeded {
		t.Fatal("run should report failure")
	}
	var found bool
	for _, stage := range report.Stages {
		if stage.Stage == "social:facebook" {
			found = true
			if stage.Success {
				t.Fatal("facebook stage should fail on duplicate date")
			}
			if stage.Err.Code != etl.CodeDuplicateKey {
				t.Errorf("code = %q, want %q", stage.Err.Code, etl.CodeDuplicateKey)
			}
		}
		if stage.Stage == "email" && !stage.Success {
			t.Error("email stage should still run after the social failure")
		}
	}
	if !found {
		t.Fatal("no social:facebook stage result")
	}
}

// failingReader returns an error from every read.
type failingReader struct{}

func (failingReader) ReadOrderLines(ctx context.Context) ([]models.OrderLine, error) {
	return nil, errors.New("bronze unavailable")
}

func (failingReader) ReadBankTransactions(ctx context.Context) ([]models.BankTransaction, error) {
	return nil, errors.New("bronze unavailable")
}

func (failingReader) ReadSocialDaily(ctx context.Context, platform string) ([]models.SocialDailyRaw, error) {
	return nil, errors.New("bronze unavailable")
}

func (failingReader) ReadEmailCampaigns(ctx context.Context) ([]models.EmailCampaignRaw, error) {
	return nil, errors.New("bronze unavailable")
}

func TestRunnerAbortsWhenSnapshotFails(t *testing.T) {
	store := warehouse.NewMemoryStore()
	report := newRunner(store, failingReader{}).Run(context.Background())

	if report.Succeeded {
		t.Fatal("run should fail")
	}
	if len(report.Stages) != 1 {
		t.Fatalf("got %d stage results, want only the snapshot", len(report.Stages))
	}
	if report.Stages[0].Err.Code != etl.CodeReadFailed {
		t.Errorf("code = %q, want %q", report.Stages[0].Err.Code, etl.CodeReadFailed)
	}
}

// brokenProductStore fails product inserts after the clear, leaving the
// destination empty — the documented clear-then-write risk.
type brokenProductStore struct {
	*warehouse.MemoryStore
}

func (s *brokenProductStore) InsertProducts(ctx context.Context, rows []models.Product) error {
	return errors.New("insert rejected")
}

func TestRunnerWriteFailureIsolatedToStage(t *testing.T) {
	store := seedStore(t)
	broken := &brokenProductStore{MemoryStore: store}

	report := etl.NewRunner(store, broken, classify.IdentityMasker{}, zerolog.Nop()).Run(context.Background())

	if report.Succeeded {
		t.Fatal("run should report failure")
	}
	for _, stage := range report.Stages {
		switch stage.Stage {
		case "products":
			if stage.Success {
				t.Error("products stage should fail")
			} else if stage.Err.Code != etl.CodeWriteFailed {
				t.Errorf("code = %q, want %q", stage.Err.Code, etl.CodeWriteFailed)
			}
		default:
			if !stage.Success {
				t.Errorf("stage %s should be unaffected: %+v", stage.Stage, stage.Err)
			}
		}
	}

	// The failed stage cleared its destination before the write failed.
	if len(store.Products()) != 0 {
		t.Error("products dataset should be empty after clear-then-failed-write")
	}
	if len(store.Customers()) == 0 || len(store.Revenue()) == 0 {
		t.Error("other datasets must keep their committed rebuilds")
	}
}

func TestRunnerMaskingDoesNotAffectClassification(t *testing.T) {
	identity := seedStore(t)
	masked := seedStore(t)

	etl.NewRunner(identity, identity, classify.IdentityMasker{}, zerolog.Nop()).Run(context.Background())
	etl.NewRunner(masked, masked, classify.NewUniformMasker(99), zerolog.Nop()).Run(context.Background())

	a, b := identity.Revenue(), masked.Revenue()
	if len(a) != len(b) {
		t.Fatalf("row counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Description != b[i].Description {
			t.Fatalf("row order differs at %d", i)
		}
		if got, want := strOrNone(b[i].RevenueType), strOrNone(a[i].RevenueType); got != want {
			t.Errorf("row %d: masked run changed revenue type %q -> %q", i, want, got)
		}
		if b[i].Amount.LessThan(a[i].Amount) {
			t.Errorf("row %d: masked amount %s below original %s", i, b[i].Amount, a[i].Amount)
		}
	}
}

func strOrNone(p *string) string {
	if p == nil {
		return "<nil>"
	}
	return *p
}
