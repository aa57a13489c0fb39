package classify

import "strings"

// Bank-feed transaction codes as delivered by the feed.
const CodeCredit = "CREDIT"

// matchKind selects how a rule pattern is compared against the upper-cased
// description.
type matchKind int

const (
	matchContains matchKind = iota
	matchPrefix
	matchExact
)

// rule is one (predicate, result) pair in an ordered rule table. Rules are
// evaluated in slice order and the first match wins; precedence is
// load-bearing, so the tables below must never be reordered into maps.
type rule struct {
	kind       matchKind
	pattern    string
	creditOnly bool

	// result fields; meaning depends on which table the rule lives in.
	revenueType   string
	revenueSource string
}

func (r rule) matches(code, upperDesc string) bool {
	if r.creditOnly && code != CodeCredit {
		return false
	}
	switch r.kind {
	case matchPrefix:
		return strings.HasPrefix(upperDesc, r.pattern)
	case matchExact:
		return upperDesc == r.pattern
	default:
		return strings.Contains(upperDesc, r.pattern)
	}
}

// cashInjectionRules identify CREDIT deposits that are financing transfers
// rather than sales: check deposits, owner peer-payments, transfers between
// own accounts, loan disbursements, and card reward redemptions.
//
// The "ZELLE INSTANT PMT FROM" prefix is deliberately narrower than the
// plain "ZELLE INSTANT PMT" retail rule below: the FROM variant is the
// account holder moving money in, the bare variant is a customer payment.
var cashInjectionRules = []rule{
	{kind: matchContains, pattern: "MOBILE CHECK DEPOSIT", creditOnly: true},
	{kind: matchPrefix, pattern: "ZELLE INSTANT PMT FROM", creditOnly: true},
	{kind: matchContains, pattern: "ONLINE TRANSFER FROM", creditOnly: true},
	{kind: matchContains, pattern: "LOAN DISBURSEMENT", creditOnly: true},
	{kind: matchContains, pattern: "SBA LOAN", creditOnly: true},
	{kind: matchContains, pattern: "REWARDS REDEMPTION", creditOnly: true},
}

// revenueTypeRules classify Revenue rows into a business unit. Hospitality
// and Events are matched on processor descriptions regardless of code;
// the card-processor Retail rule requires a CREDIT code.
var revenueTypeRules = []rule{
	{kind: matchExact, pattern: "ELECTRONIC DEPOSIT AIRBNB PAYMENTS", revenueType: RevenueTypeHospitality},
	{kind: matchContains, pattern: "EVENTBRITE", revenueType: RevenueTypeEvents},
	{kind: matchExact, pattern: "ELECTRONIC DEPOSIT PEERSPACE", revenueType: RevenueTypeEvents},
	{kind: matchContains, pattern: "BANKCARD", creditOnly: true, revenueType: RevenueTypeRetail},
	{kind: matchContains, pattern: "SQUARE INC", revenueType: RevenueTypeRetail},
	{kind: matchPrefix, pattern: "ZELLE INSTANT PMT", revenueType: RevenueTypeRetail},
}

// revenueSourceRules map processor descriptions to canonical source labels.
// Applied only to Revenue rows whose type is not Hospitality.
var revenueSourceRules = []rule{
	{kind: matchContains, pattern: "BANKCARD", creditOnly: true, revenueSource: "WD"},
	{kind: matchContains, pattern: "SQUARE INC", revenueSource: "Square"},
	{kind: matchPrefix, pattern: "ZELLE INSTANT PMT", revenueSource: "Zelle"},
}
