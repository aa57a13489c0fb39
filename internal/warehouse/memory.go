package warehouse

import (
	"context"
	"sync"

	"github.com/DLCheruiyot/smb-bi-etl-pipeline/internal/models"
)

// MemoryStore is an in-memory warehouse implementing BronzeReader,
// BronzeLoader and SilverStore. It is safe for concurrent use and backs
// pipeline tests and local dry runs; contents are lost on exit.
type MemoryStore struct {
	mu sync.RWMutex

	orderLines       []models.OrderLine
	bankTransactions []models.BankTransaction
	socialRaw        []models.SocialDailyRaw
	emailRaw         []models.EmailCampaignRaw

	customers []models.Customer
	products  []models.Product
	revenue   []models.RevenueEntry
	social    []models.SocialDaily
	email     []models.EmailCampaign
}

// NewMemoryStore creates an empty in-memory warehouse.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) ReadOrderLines(ctx context.Context) ([]models.OrderLine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.OrderLine(nil), s.orderLines...), nil
}

func (s *MemoryStore) ReadBankTransactions(ctx context.Context) ([]models.BankTransaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.BankTransaction(nil), s.bankTransactions...), nil
}

func (s *MemoryStore) ReadSocialDaily(ctx context.Context, platform string) ([]models.SocialDailyRaw, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.SocialDailyRaw
	for _, r := range s.socialRaw {
		if r.Platform == platform {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *MemoryStore) ReadEmailCampaigns(ctx context.Context) ([]models.EmailCampaignRaw, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.EmailCampaignRaw(nil), s.emailRaw...), nil
}

func (s *MemoryStore) LoadOrderLines(ctx context.Context, rows []models.OrderLine) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orderLines = append(s.orderLines, rows...)
	return nil
}

func (s *MemoryStore) LoadBankTransactions(ctx context.Context, rows []models.BankTransaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bankTransactions = append(s.bankTransactions, rows...)
	return nil
}

func (s *MemoryStore) LoadSocialDaily(ctx context.Context, rows []models.SocialDailyRaw) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.socialRaw = append(s.socialRaw, rows...)
	return nil
}

func (s *MemoryStore) LoadEmailCampaigns(ctx context.Context, rows []models.EmailCampaignRaw) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emailRaw = append(s.emailRaw, rows...)
	return nil
}

func (s *MemoryStore) ClearCustomers(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers = nil
	return nil
}

func (s *MemoryStore) InsertCustomers(ctx context.Context, rows []models.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers = append(s.customers, rows...)
	return nil
}

func (s *MemoryStore) ClearProducts(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = nil
	return nil
}

func (s *MemoryStore) InsertProducts(ctx context.Context, rows []models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = append(s.products, rows...)
	return nil
}

func (s *MemoryStore) ClearRevenue(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revenue = nil
	return nil
}

func (s *MemoryStore) InsertRevenue(ctx context.Context, rows []models.RevenueEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revenue = append(s.revenue, rows...)
	return nil
}

func (s *MemoryStore) ClearSocialDaily(ctx context.Context, platform string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.social[:0]
	for _, r := range s.social {
		if r.Platform != platform {
			kept = append(kept, r)
		}
	}
	s.social = kept
	return nil
}

func (s *MemoryStore) InsertSocialDaily(ctx context.Context, rows []models.SocialDaily) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.social = append(s.social, rows...)
	return nil
}

func (s *MemoryStore) ClearEmailCampaigns(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.email = nil
	return nil
}

func (s *MemoryStore) InsertEmailCampaigns(ctx context.Context, rows []models.EmailCampaign) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.email = append(s.email, rows...)
	return nil
}

//
// Snapshot accessors for tests and the dry-run report. Copies are returned
// so callers cannot mutate store state.
//

func (s *MemoryStore) Customers() []models.Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Customer(nil), s.customers...)
}

func (s *MemoryStore) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Product(nil), s.products...)
}

func (s *MemoryStore) Revenue() []models.RevenueEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.RevenueEntry(nil), s.revenue...)
}

func (s *MemoryStore) SocialDaily() []models.SocialDaily {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.SocialDaily(nil), s.social...)
}

func (s *MemoryStore) EmailCampaigns() []models.EmailCampaign {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.EmailCampaign(nil), s.email...)
}
