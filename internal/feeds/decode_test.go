package feeds

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestDecodeOrderLines(t *testing.T) {
	input := strings.NewReader(
		"order_num,order_date,cust_num,prod_sku,quantity,prod_retail_price,cust_first_name,cust_email\n" +
			"O-1,2024-01-10,C001,SKU-1,2,19.99,Ann,ann@lee.com\n" +
			"O-2,2024-02-01,C002,SKU-2,1,,,\n" + // blank optionals stay nil
			",2024-02-02,C003,SKU-3,1,5.00,,\n" + // missing order_num
			"O-4,02/03/2024,C004,SKU-4,1,5.00,,\n") // bad date format

	result, err := DecodeOrderLines(input)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(result.Rows))
	}
	if result.Skipped != 2 {
		t.Errorf("Skipped = %d, want 2", result.Skipped)
	}

	first := result.Rows[0]
	if first.LineID == "" {
		t.Error("decoded line has no assigned line id")
	}
	if first.LineID == result.Rows[1].LineID {
		t.Error("line ids must be unique per decoded line")
	}
	if first.OrderNum != "O-1" || first.CustNum != "C001" || first.SKU != "SKU-1" {
		t.Errorf("unexpected first row: %+v", first)
	}
	if first.RetailPrice == nil || !first.RetailPrice.Equal(decimal.RequireFromString("19.99")) {
		t.Errorf("retail price = %v", first.RetailPrice)
	}
	if first.CustEmail == nil || *first.CustEmail != "ann@lee.com" {
		t.Errorf("email = %v", first.CustEmail)
	}

	second := result.Rows[1]
	if second.RetailPrice != nil {
		t.Error("blank retail price should decode to nil")
	}
	if second.CustFirstName != nil || second.CustEmail != nil {
		t.Errorf("blank customer fields should decode to nil: %+v", second)
	}
}

func TestDecodeOrderLinesMissingRequiredColumn(t *testing.T) {
	input := strings.NewReader("order_num,cust_num\nO-1,C001\n")
	if _, err := DecodeOrderLines(input); err == nil {
		t.Fatal("missing order_date column should be a structural error")
	}
}

func TestDecodeBankTransactions(t *testing.T) {
	input := strings.NewReader(
		"date,transaction_code,description,amount\n" +
			"2024-03-01,CREDIT,ELECTRONIC DEPOSIT BANKCARD,540.00\n" +
			"2024-03-02,CREDIT,ZELLE INSTANT PMT,\n" + // blank amount kept as nil
			"2024-03-03,CREDIT,SQUARE INC,not-a-number\n") // malformed amount skipped

	result, err := DecodeBankTransactions(input)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(result.Rows))
	}
	if result.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", result.Skipped)
	}
	if result.Rows[0].Amount == nil || !result.Rows[0].Amount.Equal(decimal.RequireFromString("540.00")) {
		t.Errorf("amount = %v", result.Rows[0].Amount)
	}
	if result.Rows[1].Amount != nil {
		t.Error("blank amount should stay nil, not be skipped")
	}
}

func TestDecodeSocialDaily(t *testing.T) {
	input := strings.NewReader(
		"date,follows,interactions,link_clicks,reach,visits\n" +
			"2024-03-01,5,10,2,100,7\n" +
			"2024-03-02,,20,3,150,9\n")

	result, err := DecodeSocialDaily("instagram", input)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(result.Rows))
	}
	for _, row := range result.Rows {
		if row.Platform != "instagram" {
			t.Errorf("platform = %q", row.Platform)
		}
	}
	if result.Rows[0].Follows == nil || *result.Rows[0].Follows != 5 {
		t.Errorf("follows = %v", result.Rows[0].Follows)
	}
	if result.Rows[1].Follows != nil {
		t.Error("blank follows should stay nil for the normalizer to coalesce")
	}
	if result.Rows[1].Interactions != 20 || result.Rows[1].Reach != 150 {
		t.Errorf("unexpected second row: %+v", result.Rows[1])
	}
}

func TestDecodeEmailCampaigns(t *testing.T) {
	input := strings.NewReader(
		"unique_id,campaign_name,send_ts,emails_sent,opens\n" +
			"c-1,Spring,2024-03-01 09:00:00,500,120\n" +
			",Orphan,2024-03-02 10:00:00,100,10\n") // missing id skipped

	result, err := DecodeEmailCampaigns(input)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(result.Rows))
	}
	if result.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", result.Skipped)
	}
	row := result.Rows[0]
	if row.UniqueID != "c-1" || row.CampaignName != "Spring" || row.SendTS != "2024-03-01 09:00:00" {
		t.Errorf("unexpected row: %+v", row)
	}
	if row.EmailsSent != 500 || row.Opens != 120 {
		t.Errorf("unexpected counts: %+v", row)
	}
}

func TestReadRecordsRaggedRows(t *testing.T) {
	input := strings.NewReader(
		"date,transaction_code,description,amount\n" +
			"2024-03-01,CREDIT,OK ROW,1.00\n" +
			"2024-03-02,CREDIT\n") // short row skipped

	result, err := DecodeBankTransactions(input)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Rows) != 1 || result.Skipped != 1 {
		t.Errorf("rows = %d skipped = %d, want 1 and 1", len(result.Rows), result.Skipped)
	}
}

func TestReadRecordsEmptyFile(t *testing.T) {
	if _, err := DecodeBankTransactions(strings.NewReader("")); err == nil {
		t.Fatal("empty file should be a structural error")
	}
}
