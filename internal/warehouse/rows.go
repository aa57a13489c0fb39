package warehouse

import (
	"math/big"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/DLCheruiyot/smb-bi-etl-pipeline/internal/models"
)

// Table names, bronze and silver datasets.
const (
	tableOrderLines        = "pos_order_lines"
	tableBankTransactions  = "bank_transactions"
	tableSocialDailyRaw    = "social_daily"
	tableEmailCampaignsRaw = "email_campaigns"

	tableCustomers      = "dim_customers"
	tableProducts       = "dim_products"
	tableRevenue        = "fact_revenue"
	tableSocialDaily    = "fact_social_daily"
	tableEmailCampaigns = "fact_email_campaigns"
)

// OrderLineRow is one bronze pos_order_lines row.
type OrderLineRow struct {
	LineID    string     `bigquery:"line_id"` // REQUIRED
	OrderNum  string     `bigquery:"order_num"`
	OrderDate civil.Date `bigquery:"order_date"` // REQUIRED

	CustNum bigquery.NullString `bigquery:"cust_num"` // NULLABLE
	ProdSKU bigquery.NullString `bigquery:"prod_sku"` // NULLABLE

	Quantity     int64    `bigquery:"quantity"`
	SalesPrice   *big.Rat `bigquery:"prod_sales_price"`   // NUMERIC
	ItemDiscount *big.Rat `bigquery:"prod_item_discount"` // NUMERIC
	Subtotal     *big.Rat `bigquery:"order_subtotal"`     // NUMERIC
	Taxes        *big.Rat `bigquery:"order_taxes"`        // NUMERIC
	Total        *big.Rat `bigquery:"order_total"`        // NUMERIC

	CustStatus    bigquery.NullString `bigquery:"cust_status"`     // NULLABLE
	CustFirstName bigquery.NullString `bigquery:"cust_first_name"` // NULLABLE
	CustLastName  bigquery.NullString `bigquery:"cust_last_name"`  // NULLABLE
	CustBirthDate bigquery.NullDate   `bigquery:"cust_birth_date"` // NULLABLE
	CustEmail     bigquery.NullString `bigquery:"cust_email"`      // NULLABLE
	CustCity      bigquery.NullString `bigquery:"cust_city"`       // NULLABLE
	CustState     bigquery.NullString `bigquery:"cust_state"`      // NULLABLE
	CustZip       bigquery.NullString `bigquery:"cust_zip"`        // NULLABLE

	RetailPrice *big.Rat `bigquery:"prod_retail_price"` // NULLABLE NUMERIC
}

// BankTransactionRow is one bronze bank_transactions row. Amount is
// nullable; null-amount rows never reach classification.
type BankTransactionRow struct {
	Date            civil.Date `bigquery:"date"`
	TransactionCode string     `bigquery:"transaction_code"`
	Description     string     `bigquery:"description"`
	Amount          *big.Rat   `bigquery:"amount"` // NULLABLE NUMERIC
}

// SocialDailyRawRow is one bronze social_daily row; one table holds all
// platforms, discriminated by the platform column.
type SocialDailyRawRow struct {
	Platform     string             `bigquery:"platform"`
	Date         civil.Date         `bigquery:"date"`
	Follows      bigquery.NullInt64 `bigquery:"follows"` // NULLABLE
	Interactions int64              `bigquery:"interactions"`
	LinkClicks   int64              `bigquery:"link_clicks"`
	Reach        int64              `bigquery:"reach"`
	Visits       int64              `bigquery:"visits"`
}

// EmailCampaignRawRow is one bronze email_campaigns row.
type EmailCampaignRawRow struct {
	UniqueID     string `bigquery:"unique_id"`
	CampaignName string `bigquery:"campaign_name"`
	SendTS       string `bigquery:"send_ts"`
	EmailsSent   int64  `bigquery:"emails_sent"`
	Opens        int64  `bigquery:"opens"`
	Clicks       int64  `bigquery:"clicks"`
	Unsubscribes int64  `bigquery:"unsubscribes"`
	Bounces      int64  `bigquery:"bounces"`
}

// CustomerRow is one silver dim_customers row, unique per cust_num.
type CustomerRow struct {
	CustNum       string              `bigquery:"cust_num"` // REQUIRED
	Status        bigquery.NullString `bigquery:"status"`
	FullName      string              `bigquery:"full_name"`
	BirthDate     bigquery.NullDate   `bigquery:"birth_date"`
	ActiveSince   civil.Date          `bigquery:"active_since"`
	Email         bigquery.NullString `bigquery:"email"`
	City          bigquery.NullString `bigquery:"city"`
	State         bigquery.NullString `bigquery:"state"`
	Zip           bigquery.NullString `bigquery:"zip"`
	LastOrderDate civil.Date          `bigquery:"last_order_date"`
	TenureDays    int64               `bigquery:"tenure_days"`
	QualityFlag   string              `bigquery:"quality_flag"`
}

// ProductRow is one silver dim_products row, unique per prod_sku.
type ProductRow struct {
	SKU         string   `bigquery:"prod_sku"`
	RetailPrice *big.Rat `bigquery:"retail_price"` // NUMERIC, always > 0
}

// RevenueRow is one silver fact_revenue row.
type RevenueRow struct {
	Date            civil.Date          `bigquery:"date"`
	TransactionCode string              `bigquery:"transaction_code"`
	Description     string              `bigquery:"description"`
	Amount          *big.Rat            `bigquery:"amount"` // NUMERIC
	TransactionType string              `bigquery:"transaction_type"`
	RevenueType     bigquery.NullString `bigquery:"revenue_type"`
	RevenueSource   bigquery.NullString `bigquery:"revenue_source"`
}

// SocialDailyRow is one silver fact_social_daily row, unique per
// (platform, date).
type SocialDailyRow struct {
	Platform     string     `bigquery:"platform"`
	Date         civil.Date `bigquery:"date"`
	Follows      int64      `bigquery:"follows"`
	Interactions int64      `bigquery:"interactions"`
	LinkClicks   int64      `bigquery:"link_clicks"`
	Reach        int64      `bigquery:"reach"`
	Visits       int64      `bigquery:"visits"`
}

// EmailCampaignRow is one silver fact_email_campaigns row, unique per
// unique_id.
type EmailCampaignRow struct {
	UniqueID     string     `bigquery:"unique_id"`
	CampaignName string     `bigquery:"campaign_name"`
	SendDate     civil.Date `bigquery:"send_date"`
	SendTime     string     `bigquery:"send_time"`
	EmailsSent   int64      `bigquery:"emails_sent"`
	Opens        int64      `bigquery:"opens"`
	Clicks       int64      `bigquery:"clicks"`
	Unsubscribes int64      `bigquery:"unsubscribes"`
	Bounces      int64      `bigquery:"bounces"`
}

//
// Conversions between domain structs (decimal / pointers) and BigQuery rows
// (big.Rat / NullX).
//

func nullString(s *string) bigquery.NullString {
	if s == nil {
		return bigquery.NullString{}
	}
	return bigquery.NullString{StringVal: *s, Valid: true}
}

func stringPtr(n bigquery.NullString) *string {
	if !n.Valid {
		return nil
	}
	s := n.StringVal
	return &s
}

func nullDate(d *civil.Date) bigquery.NullDate {
	if d == nil {
		return bigquery.NullDate{}
	}
	return bigquery.NullDate{Date: *d, Valid: true}
}

func datePtr(n bigquery.NullDate) *civil.Date {
	if !n.Valid {
		return nil
	}
	d := n.Date
	return &d
}

func rat(d decimal.Decimal) *big.Rat {
	return d.Rat()
}

func ratPtr(d *decimal.Decimal) *big.Rat {
	if d == nil {
		return nil
	}
	return d.Rat()
}

func dec(r *big.Rat) decimal.Decimal {
	if r == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigRat(r, 2)
}

func decPtr(r *big.Rat) *decimal.Decimal {
	if r == nil {
		return nil
	}
	d := decimal.NewFromBigRat(r, 2)
	return &d
}

func orderLineFromRow(r *OrderLineRow) models.OrderLine {
	return models.OrderLine{
		LineID:        r.LineID,
		OrderNum:      r.OrderNum,
		OrderDate:     r.OrderDate,
		CustNum:       r.CustNum.StringVal,
		SKU:           r.ProdSKU.StringVal,
		Quantity:      r.Quantity,
		SalesPrice:    dec(r.SalesPrice),
		ItemDiscount:  dec(r.ItemDiscount),
		Subtotal:      dec(r.Subtotal),
		Taxes:         dec(r.Taxes),
		Total:         dec(r.Total),
		CustStatus:    stringPtr(r.CustStatus),
		CustFirstName: stringPtr(r.CustFirstName),
		CustLastName:  stringPtr(r.CustLastName),
		CustBirthDate: datePtr(r.CustBirthDate),
		CustEmail:     stringPtr(r.CustEmail),
		CustCity:      stringPtr(r.CustCity),
		CustState:     stringPtr(r.CustState),
		CustZip:       stringPtr(r.CustZip),
		RetailPrice:   decPtr(r.RetailPrice),
	}
}

func orderLineToRow(l models.OrderLine) *OrderLineRow {
	row := &OrderLineRow{
		LineID:        l.LineID,
		OrderNum:      l.OrderNum,
		OrderDate:     l.OrderDate,
		Quantity:      l.Quantity,
		SalesPrice:    rat(l.SalesPrice),
		ItemDiscount:  rat(l.ItemDiscount),
		Subtotal:      rat(l.Subtotal),
		Taxes:         rat(l.Taxes),
		Total:         rat(l.Total),
		CustStatus:    nullString(l.CustStatus),
		CustFirstName: nullString(l.CustFirstName),
		CustLastName:  nullString(l.CustLastName),
		CustBirthDate: nullDate(l.CustBirthDate),
		CustEmail:     nullString(l.CustEmail),
		CustCity:      nullString(l.CustCity),
		CustState:     nullString(l.CustState),
		CustZip:       nullString(l.CustZip),
		RetailPrice:   ratPtr(l.RetailPrice),
	}
	if l.CustNum != "" {
		row.CustNum = bigquery.NullString{StringVal: l.CustNum, Valid: true}
	}
	if l.SKU != "" {
		row.ProdSKU = bigquery.NullString{StringVal: l.SKU, Valid: true}
	}
	return row
}

func bankTransactionFromRow(r *BankTransactionRow) models.BankTransaction {
	return models.BankTransaction{
		Date:            r.Date,
		TransactionCode: r.TransactionCode,
		Description:     r.Description,
		Amount:          decPtr(r.Amount),
	}
}

func bankTransactionToRow(t models.BankTransaction) *BankTransactionRow {
	return &BankTransactionRow{
		Date:            t.Date,
		TransactionCode: t.TransactionCode,
		Description:     t.Description,
		Amount:          ratPtr(t.Amount),
	}
}

func socialRawFromRow(r *SocialDailyRawRow) models.SocialDailyRaw {
	raw := models.SocialDailyRaw{
		Platform:     r.Platform,
		Date:         r.Date,
		Interactions: r.Interactions,
		LinkClicks:   r.LinkClicks,
		Reach:        r.Reach,
		Visits:       r.Visits,
	}
	if r.Follows.Valid {
		f := r.Follows.Int64
		raw.Follows = &f
	}
	return raw
}

func socialRawToRow(s models.SocialDailyRaw) *SocialDailyRawRow {
	row := &SocialDailyRawRow{
		Platform:     s.Platform,
		Date:         s.Date,
		Interactions: s.Interactions,
		LinkClicks:   s.LinkClicks,
		Reach:        s.Reach,
		Visits:       s.Visits,
	}
	if s.Follows != nil {
		row.Follows = bigquery.NullInt64{Int64: *s.Follows, Valid: true}
	}
	return row
}

func emailRawFromRow(r *EmailCampaignRawRow) models.EmailCampaignRaw {
	return models.EmailCampaignRaw{
		UniqueID:     r.UniqueID,
		CampaignName: r.CampaignName,
		SendTS:       r.SendTS,
		EmailsSent:   r.EmailsSent,
		Opens:        r.Opens,
		Clicks:       r.Clicks,
		Unsubscribes: r.Unsubscribes,
		Bounces:      r.Bounces,
	}
}

func emailRawToRow(e models.EmailCampaignRaw) *EmailCampaignRawRow {
	return &EmailCampaignRawRow{
		UniqueID:     e.UniqueID,
		CampaignName: e.CampaignName,
		SendTS:       e.SendTS,
		EmailsSent:   e.EmailsSent,
		Opens:        e.Opens,
		Clicks:       e.Clicks,
		Unsubscribes: e.Unsubscribes,
		Bounces:      e.Bounces,
	}
}

func customerToRow(c models.Customer) *CustomerRow {
	return &CustomerRow{
		CustNum:       c.CustNum,
		Status:        nullString(c.Status),
		FullName:      c.FullName,
		BirthDate:     nullDate(c.BirthDate),
		ActiveSince:   c.ActiveSince,
		Email:         nullString(c.Email),
		City:          nullString(c.City),
		State:         nullString(c.State),
		Zip:           nullString(c.Zip),
		LastOrderDate: c.LastOrderDate,
		TenureDays:    int64(c.TenureDays),
		QualityFlag:   c.QualityFlag,
	}
}

func productToRow(p models.Product) *ProductRow {
	return &ProductRow{SKU: p.SKU, RetailPrice: rat(p.RetailPrice)}
}

func revenueToRow(r models.RevenueEntry) *RevenueRow {
	return &RevenueRow{
		Date:            r.Date,
		TransactionCode: r.TransactionCode,
		Description:     r.Description,
		Amount:          rat(r.Amount),
		TransactionType: r.TransactionType,
		RevenueType:     nullString(r.RevenueType),
		RevenueSource:   nullString(r.RevenueSource),
	}
}

func socialToRow(s models.SocialDaily) *SocialDailyRow {
	return &SocialDailyRow{
		Platform:     s.Platform,
		Date:         s.Date,
		Follows:      s.Follows,
		Interactions: s.Interactions,
		LinkClicks:   s.LinkClicks,
		Reach:        s.Reach,
		Visits:       s.Visits,
	}
}

func emailToRow(e models.EmailCampaign) *EmailCampaignRow {
	return &EmailCampaignRow{
		UniqueID:     e.UniqueID,
		CampaignName: e.CampaignName,
		SendDate:     e.SendDate,
		SendTime:     e.SendTime,
		EmailsSent:   e.EmailsSent,
		Opens:        e.Opens,
		Clicks:       e.Clicks,
		Unsubscribes: e.Unsubscribes,
		Bounces:      e.Bounces,
	}
}
