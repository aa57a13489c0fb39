package warehouse

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"

	"github.com/DLCheruiyot/smb-bi-etl-pipeline/internal/models"
)

// ReadOrderLines reads the full bronze order-line snapshot. Ordering is by
// the stable line ID so repeated reads of an unchanged table return rows in
// the same sequence.
func (c *Client) ReadOrderLines(ctx context.Context) ([]models.OrderLine, error) {
	q := c.bq.Query(fmt.Sprintf(`
		SELECT
			line_id, order_num, order_date, cust_num, prod_sku,
			quantity, prod_sales_price, prod_item_discount,
			order_subtotal, order_taxes, order_total,
			cust_status, cust_first_name, cust_last_name, cust_birth_date,
			cust_email, cust_city, cust_state, cust_zip,
			prod_retail_price
		FROM %s.%s
		ORDER BY line_id
	`, c.bronze, tableOrderLines))

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("ReadOrderLines: query read: %w", err)
	}

	var out []models.OrderLine
	for {
		var r OrderLineRow
		err := it.Next(&r)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ReadOrderLines: iter next: %w", err)
		}
		out = append(out, orderLineFromRow(&r))
	}
	return out, nil
}

// ReadBankTransactions reads the full bronze bank-feed snapshot.
func (c *Client) ReadBankTransactions(ctx context.Context) ([]models.BankTransaction, error) {
	q := c.bq.Query(fmt.Sprintf(`
		SELECT date, transaction_code, description, amount
		FROM %s.%s
		ORDER BY date, description, amount
	`, c.bronze, tableBankTransactions))

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("ReadBankTransactions: query read: %w", err)
	}

	var out []models.BankTransaction
	for {
		var r BankTransactionRow
		err := it.Next(&r)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ReadBankTransactions: iter next: %w", err)
		}
		out = append(out, bankTransactionFromRow(&r))
	}
	return out, nil
}

// ReadSocialDaily reads one platform's rows from the shared bronze
// social_daily table.
func (c *Client) ReadSocialDaily(ctx context.Context, platform string) ([]models.SocialDailyRaw, error) {
	q := c.bq.Query(fmt.Sprintf(`
		SELECT platform, date, follows, interactions, link_clicks, reach, visits
		FROM %s.%s
		WHERE platform = @platform
		ORDER BY date
	`, c.bronze, tableSocialDailyRaw))
	q.Parameters = []bigquery.QueryParameter{
		{Name: "platform", Value: platform},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("ReadSocialDaily(%s): query read: %w", platform, err)
	}

	var out []models.SocialDailyRaw
	for {
		var r SocialDailyRawRow
		err := it.Next(&r)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ReadSocialDaily(%s): iter next: %w", platform, err)
		}
		out = append(out, socialRawFromRow(&r))
	}
	return out, nil
}

// ReadEmailCampaigns reads the full bronze email-export snapshot.
func (c *Client) ReadEmailCampaigns(ctx context.Context) ([]models.EmailCampaignRaw, error) {
	q := c.bq.Query(fmt.Sprintf(`
		SELECT unique_id, campaign_name, send_ts,
			emails_sent, opens, clicks, unsubscribes, bounces
		FROM %s.%s
		ORDER BY unique_id
	`, c.bronze, tableEmailCampaignsRaw))

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("ReadEmailCampaigns: query read: %w", err)
	}

	var out []models.EmailCampaignRaw
	for {
		var r EmailCampaignRawRow
		err := it.Next(&r)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ReadEmailCampaigns: iter next: %w", err)
		}
		out = append(out, emailRawFromRow(&r))
	}
	return out, nil
}

//
// BronzeLoader: append decoded feed rows, used by cmd/upload-feed.
//

func (c *Client) LoadOrderLines(ctx context.Context, rows []models.OrderLine) error {
	if len(rows) == 0 {
		return nil
	}
	converted := make([]*OrderLineRow, 0, len(rows))
	for _, l := range rows {
		converted = append(converted, orderLineToRow(l))
	}
	return c.insert(ctx, c.bronze, tableOrderLines, converted)
}

func (c *Client) LoadBankTransactions(ctx context.Context, rows []models.BankTransaction) error {
	if len(rows) == 0 {
		return nil
	}
	converted := make([]*BankTransactionRow, 0, len(rows))
	for _, t := range rows {
		converted = append(converted, bankTransactionToRow(t))
	}
	return c.insert(ctx, c.bronze, tableBankTransactions, converted)
}

func (c *Client) LoadSocialDaily(ctx context.Context, rows []models.SocialDailyRaw) error {
	if len(rows) == 0 {
		return nil
	}
	converted := make([]*SocialDailyRawRow, 0, len(rows))
	for _, s := range rows {
		converted = append(converted, socialRawToRow(s))
	}
	return c.insert(ctx, c.bronze, tableSocialDailyRaw, converted)
}

func (c *Client) LoadEmailCampaigns(ctx context.Context, rows []models.EmailCampaignRaw) error {
	if len(rows) == 0 {
		return nil
	}
	converted := make([]*EmailCampaignRawRow, 0, len(rows))
	for _, e := range rows {
		converted = append(converted, emailRawToRow(e))
	}
	return c.insert(ctx, c.bronze, tableEmailCampaignsRaw, converted)
}
