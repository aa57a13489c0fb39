package models

import (
	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// Quality flags for resolved customer records.
const (
	QualityComplete   = "Complete"
	QualityIncomplete = "Incomplete"
)

// StatusFirstTime is assigned to customers whose raw status is blank and
// whose first name is not the guest-checkout placeholder.
const StatusFirstTime = "1stTimeCustomer"

// Customer is the silver-layer customer dimension record: exactly one per
// distinct non-empty cust_num in the bronze order-line snapshot.
type Customer struct {
	CustNum       string
	Status        *string
	FullName      string
	BirthDate     *civil.Date
	ActiveSince   civil.Date
	Email         *string
	City          *string
	State         *string
	Zip           *string
	LastOrderDate civil.Date
	TenureDays    int
	QualityFlag   string
}

// Product is the silver-layer product dimension record. RetailPrice is
// always strictly positive; SKUs with no positively-priced line are never
// emitted.
type Product struct {
	SKU         string
	RetailPrice decimal.Decimal
}

// Transaction types assigned by the classifier.
const (
	TypeRevenue       = "Revenue"
	TypeCashInjection = "CashInjection"
)

// Revenue types for Revenue transactions.
const (
	RevenueHospitality = "Hospitality"
	RevenueEvents      = "Events"
	RevenueRetail      = "Retail"
)

// Canonical revenue-source labels.
const (
	SourceWD     = "WD"
	SourceSquare = "Square"
	SourceZelle  = "Zelle"
)

// RevenueEntry is one classified bank-feed row in the silver revenue
// dataset. Only rows classified TransactionType = Revenue are persisted;
// cash injections are financing transfers, not sales, and are dropped.
//
// Invariants: RevenueSource is always nil for Hospitality and always
// non-nil for Retail; RevenueType, when non-nil, is Hospitality, Events,
// or Retail.
type RevenueEntry struct {
	Date            civil.Date
	TransactionCode string
	Description     string
	Amount          decimal.Decimal
	TransactionType string
	RevenueType     *string
	RevenueSource   *string
}

// SocialDaily is one normalized daily social-platform metric row, keyed by
// (platform, date). All counts are non-null after normalization.
type SocialDaily struct {
	Platform     string
	Date         civil.Date
	Follows      int64
	Interactions int64
	LinkClicks   int64
	Reach        int64
	Visits       int64
}

// EmailCampaign is one normalized email-campaign row keyed by UniqueID.
type EmailCampaign struct {
	UniqueID     string
	CampaignName string
	SendDate     civil.Date
	SendTime     string
	EmailsSent   int64
	Opens        int64
	Clicks       int64
	Unsubscribes int64
	Bounces      int64
}
