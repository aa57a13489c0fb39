package feeds

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/DLCheruiyot/smb-bi-etl-pipeline/internal/models"
)

const dateLayout = "2006-01-02"

// DecodeResult reports a decode alongside the count of malformed rows that
// were skipped.
type DecodeResult[T any] struct {
	Rows    []T
	Skipped int
}

func parseDate(s string) (civil.Date, bool) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return civil.Date{}, false
	}
	return civil.DateOf(t), true
}

func parseDatePtr(s string) *civil.Date {
	if d, ok := parseDate(s); ok {
		return &d
	}
	return nil
}

func parseDecimal(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func parseDecimalPtr(s string) *decimal.Decimal {
	if d, ok := parseDecimal(s); ok {
		return &d
	}
	return nil
}

func parseInt(s string) (int64, bool) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// DecodeOrderLines decodes a POS orders export. Each decoded line gets a
// freshly assigned LineID; required fields are order_num and order_date,
// everything else is nullable in the bronze schema.
func DecodeOrderLines(r io.Reader) (*DecodeResult[models.OrderLine], error) {
	records, skipped, err := readRecords(r, []string{"order_num", "order_date"})
	if err != nil {
		return nil, fmt.Errorf("orders feed: %w", err)
	}

	result := &DecodeResult[models.OrderLine]{Skipped: skipped}
	for _, rec := range records {
		date, ok := parseDate(rec["order_date"])
		if !ok || rec["order_num"] == "" {
			result.Skipped++
			continue
		}
		line := models.OrderLine{
			LineID:        uuid.NewString(),
			OrderNum:      rec["order_num"],
			OrderDate:     date,
			CustNum:       rec["cust_num"],
			SKU:           rec["prod_sku"],
			CustStatus:    strPtr(rec["cust_status"]),
			CustFirstName: strPtr(rec["cust_first_name"]),
			CustLastName:  strPtr(rec["cust_last_name"]),
			CustBirthDate: parseDatePtr(rec["cust_birth_date"]),
			CustEmail:     strPtr(rec["cust_email"]),
			CustCity:      strPtr(rec["cust_city"]),
			CustState:     strPtr(rec["cust_state"]),
			CustZip:       strPtr(rec["cust_zip"]),
			RetailPrice:   parseDecimalPtr(rec["prod_retail_price"]),
		}
		line.Quantity, _ = parseInt(rec["quantity"])
		line.SalesPrice, _ = parseDecimal(rec["prod_sales_price"])
		line.ItemDiscount, _ = parseDecimal(rec["prod_item_discount"])
		line.Subtotal, _ = parseDecimal(rec["order_subtotal"])
		line.Taxes, _ = parseDecimal(rec["order_taxes"])
		line.Total, _ = parseDecimal(rec["order_total"])
		result.Rows = append(result.Rows, line)
	}
	return result, nil
}

// DecodeBankTransactions decodes a bank-feed export. A blank amount stays
// nil (the revenue stage excludes such rows before classification); a
// present-but-unparseable amount is a malformed row and is skipped.
func DecodeBankTransactions(r io.Reader) (*DecodeResult[models.BankTransaction], error) {
	records, skipped, err := readRecords(r, []string{"date", "transaction_code", "description"})
	if err != nil {
		return nil, fmt.Errorf("bank feed: %w", err)
	}

	result := &DecodeResult[models.BankTransaction]{Skipped: skipped}
	for _, rec := range records {
		date, ok := parseDate(rec["date"])
		if !ok {
			result.Skipped++
			continue
		}
		tx := models.BankTransaction{
			Date:            date,
			TransactionCode: rec["transaction_code"],
			Description:     rec["description"],
		}
		if raw := rec["amount"]; raw != "" {
			amt, ok := parseDecimal(raw)
			if !ok {
				result.Skipped++
				continue
			}
			tx.Amount = &amt
		}
		result.Rows = append(result.Rows, tx)
	}
	return result, nil
}

// DecodeSocialDaily decodes one platform's daily export. A blank follows
// column stays nil for the normalizer to coalesce.
func DecodeSocialDaily(platform string, r io.Reader) (*DecodeResult[models.SocialDailyRaw], error) {
	records, skipped, err := readRecords(r, []string{"date"})
	if err != nil {
		return nil, fmt.Errorf("%s feed: %w", platform, err)
	}

	result := &DecodeResult[models.SocialDailyRaw]{Skipped: skipped}
	for _, rec := range records {
		date, ok := parseDate(rec["date"])
		if !ok {
			result.Skipped++
			continue
		}
		row := models.SocialDailyRaw{Platform: platform, Date: date}
		if raw := rec["follows"]; raw != "" {
			if n, ok := parseInt(raw); ok {
				row.Follows = &n
			}
		}
		row.Interactions, _ = parseInt(rec["interactions"])
		row.LinkClicks, _ = parseInt(rec["link_clicks"])
		row.Reach, _ = parseInt(rec["reach"])
		row.Visits, _ = parseInt(rec["visits"])
		result.Rows = append(result.Rows, row)
	}
	return result, nil
}

// DecodeEmailCampaigns decodes the email-marketing export. The combined
// send timestamp is carried through raw; the normalizer splits it.
func DecodeEmailCampaigns(r io.Reader) (*DecodeResult[models.EmailCampaignRaw], error) {
	records, skipped, err := readRecords(r, []string{"unique_id", "send_ts"})
	if err != nil {
		return nil, fmt.Errorf("email feed: %w", err)
	}

	result := &DecodeResult[models.EmailCampaignRaw]{Skipped: skipped}
	for _, rec := range records {
		if rec["unique_id"] == "" {
			result.Skipped++
			continue
		}
		row := models.EmailCampaignRaw{
			UniqueID:     rec["unique_id"],
			CampaignName: rec["campaign_name"],
			SendTS:       rec["send_ts"],
		}
		row.EmailsSent, _ = parseInt(rec["emails_sent"])
		row.Opens, _ = parseInt(rec["opens"])
		row.Clicks, _ = parseInt(rec["clicks"])
		row.Unsubscribes, _ = parseInt(rec["unsubscribes"])
		row.Bounces, _ = parseInt(rec["bounces"])
		result.Rows = append(result.Rows, row)
	}
	return result, nil
}
