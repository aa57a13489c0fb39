package models

import (
	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// OrderLine is one raw point-of-sale order line as ingested into the bronze
// layer. Customer and product attributes are denormalized onto every line;
// the silver resolvers collapse that duplication.
//
// LineID is assigned at ingest time and never changes. It exists so that
// "latest line wins" conflict resolution has a stable secondary sort key
// instead of relying on incidental collection ordering.
type OrderLine struct {
	LineID   string
	OrderNum string

	OrderDate civil.Date

	CustNum string
	SKU     string

	Quantity     int64
	SalesPrice   decimal.Decimal
	ItemDiscount decimal.Decimal
	Subtotal     decimal.Decimal
	Taxes        decimal.Decimal
	Total        decimal.Decimal

	CustStatus    *string
	CustFirstName *string
	CustLastName  *string
	CustBirthDate *civil.Date
	CustEmail     *string
	CustCity      *string
	CustState     *string
	CustZip       *string

	RetailPrice *decimal.Decimal
}

// BankTransaction is one raw bank-feed entry. There is no uniqueness key
// beyond (date, description, amount). A nil Amount means the feed delivered
// a blank figure; such rows are excluded before classification.
type BankTransaction struct {
	Date            civil.Date
	TransactionCode string
	Description     string
	Amount          *decimal.Decimal
}

// SocialDailyRaw is one raw daily export row from a social platform feed.
// Follows is nullable in the raw export (platforms omit it on days with no
// follower change); the normalizer coalesces it to zero.
type SocialDailyRaw struct {
	Platform     string
	Date         civil.Date
	Follows      *int64
	Interactions int64
	LinkClicks   int64
	Reach        int64
	Visits       int64
}

// EmailCampaignRaw is one raw email-marketing export row. SendTS is the
// combined campaign send timestamp as exported ("2006-01-02 15:04:05");
// the normalizer splits it into separate date and time fields.
type EmailCampaignRaw struct {
	UniqueID     string
	CampaignName string
	SendTS       string
	EmailsSent   int64
	Opens        int64
	Clicks       int64
	Unsubscribes int64
	Bounces      int64
}
