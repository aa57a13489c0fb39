package warehouse

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"

	"github.com/DLCheruiyot/smb-bi-etl-pipeline/internal/models"
)

func (c *Client) ClearCustomers(ctx context.Context) error {
	return c.clearTable(ctx, tableCustomers)
}

func (c *Client) InsertCustomers(ctx context.Context, rows []models.Customer) error {
	if len(rows) == 0 {
		return nil
	}
	converted := make([]*CustomerRow, 0, len(rows))
	for _, r := range rows {
		converted = append(converted, customerToRow(r))
	}
	return c.insert(ctx, c.silver, tableCustomers, converted)
}

func (c *Client) ClearProducts(ctx context.Context) error {
	return c.clearTable(ctx, tableProducts)
}

func (c *Client) InsertProducts(ctx context.Context, rows []models.Product) error {
	if len(rows) == 0 {
		return nil
	}
	converted := make([]*ProductRow, 0, len(rows))
	for _, r := range rows {
		converted = append(converted, productToRow(r))
	}
	return c.insert(ctx, c.silver, tableProducts, converted)
}

func (c *Client) ClearRevenue(ctx context.Context) error {
	return c.clearTable(ctx, tableRevenue)
}

func (c *Client) InsertRevenue(ctx context.Context, rows []models.RevenueEntry) error {
	if len(rows) == 0 {
		return nil
	}
	converted := make([]*RevenueRow, 0, len(rows))
	for _, r := range rows {
		converted = append(converted, revenueToRow(r))
	}
	return c.insert(ctx, c.silver, tableRevenue, converted)
}

// ClearSocialDaily clears a single platform's slice of the shared silver
// table, so one platform's rebuild never wipes another's rows.
func (c *Client) ClearSocialDaily(ctx context.Context, platform string) error {
	stmt := fmt.Sprintf("DELETE FROM `%s.%s` WHERE platform = @platform", c.silver, tableSocialDaily)
	params := []bigquery.QueryParameter{{Name: "platform", Value: platform}}
	if err := c.runDML(ctx, stmt, params); err != nil {
		return fmt.Errorf("clearing %s for %s: %w", tableSocialDaily, platform, err)
	}
	return nil
}

func (c *Client) InsertSocialDaily(ctx context.Context, rows []models.SocialDaily) error {
	if len(rows) == 0 {
		return nil
	}
	converted := make([]*SocialDailyRow, 0, len(rows))
	for _, r := range rows {
		converted = append(converted, socialToRow(r))
	}
	return c.insert(ctx, c.silver, tableSocialDaily, converted)
}

func (c *Client) ClearEmailCampaigns(ctx context.Context) error {
	return c.clearTable(ctx, tableEmailCampaigns)
}

func (c *Client) InsertEmailCampaigns(ctx context.Context, rows []models.EmailCampaign) error {
	if len(rows) == 0 {
		return nil
	}
	converted := make([]*EmailCampaignRow, 0, len(rows))
	for _, r := range rows {
		converted = append(converted, emailToRow(r))
	}
	return c.insert(ctx, c.silver, tableEmailCampaigns, converted)
}
