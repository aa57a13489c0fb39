// Package classify implements the bank-feed transaction classifier: an
// ordered rule evaluator that assigns each raw bank transaction a
// transaction type, revenue type, and revenue source. Classification is a
// pure function of the input row; it never fails and never touches
// randomness (amount masking lives in masking.go and is applied by the
// load stage, after classification).
package classify

import (
	"strings"

	"github.com/DLCheruiyot/smb-bi-etl-pipeline/internal/models"
)

// Re-exported result labels so rule tables read without package noise.
const (
	RevenueTypeHospitality = models.RevenueHospitality
	RevenueTypeEvents      = models.RevenueEvents
	RevenueTypeRetail      = models.RevenueRetail
)

// Classification is the triple produced for one bank transaction.
// RevenueType and RevenueSource are nil when no rule applies.
type Classification struct {
	TransactionType string
	RevenueType     *string
	RevenueSource   *string
}

// IsGap reports whether this is a Revenue row that matched no revenue-type
// rule. Gaps are not errors, but they are counted per run so rule coverage
// can be audited.
func (c Classification) IsGap() bool {
	return c.TransactionType == models.TypeRevenue && c.RevenueType == nil
}

// Classify evaluates the rule tables against one raw bank transaction.
// Matching is case-insensitive; within each table the first matching rule
// wins and later rules are never consulted.
func Classify(tx models.BankTransaction) Classification {
	upper := strings.ToUpper(tx.Description)

	for _, r := range cashInjectionRules {
		if r.matches(tx.TransactionCode, upper) {
			return Classification{TransactionType: models.TypeCashInjection}
		}
	}

	out := Classification{TransactionType: models.TypeRevenue}

	for _, r := range revenueTypeRules {
		if r.matches(tx.TransactionCode, upper) {
			rt := r.revenueType
			out.RevenueType = &rt
			break
		}
	}

	// Hospitality settles through a single processor; a source label would
	// be redundant, so sources are only attributed to the other units.
	if out.RevenueType != nil && *out.RevenueType == RevenueTypeHospitality {
		return out
	}

	for _, r := range revenueSourceRules {
		if r.matches(tx.TransactionCode, upper) {
			src := r.revenueSource
			out.RevenueSource = &src
			break
		}
	}

	return out
}
