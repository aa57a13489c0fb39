package resolve

import (
	"sort"
	"strings"

	"github.com/DLCheruiyot/smb-bi-etl-pipeline/internal/models"
)

// validEmailSuffixes is the top-level-domain allowlist for customer emails.
// Anything else in the feed has proven to be typos or placeholder values.
var validEmailSuffixes = []string{".com", ".net", ".org", ".edu"}

// guestFirstName is the placeholder first name the POS writes for guest
// checkouts; guests keep a blank status instead of being promoted to
// first-time customers.
const guestFirstName = "Guest"

// Customers folds the raw order-line snapshot into one Customer per
// distinct non-empty cust_num. Lines with no cust_num are discarded. A
// customer is always emitted once seen; malformed fields are nulled and
// reflected in the quality flag, never grounds for dropping the record.
//
// Output is sorted by cust_num so repeated runs over the same snapshot
// produce byte-identical datasets.
func Customers(lines []models.OrderLine) []models.Customer {
	byCust := make(map[string][]models.OrderLine)
	for _, l := range lines {
		if l.CustNum == "" {
			continue
		}
		byCust[l.CustNum] = append(byCust[l.CustNum], l)
	}

	out := make([]models.Customer, 0, len(byCust))
	for custNum, group := range byCust {
		out = append(out, resolveCustomer(custNum, group))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CustNum < out[j].CustNum })
	return out
}

func resolveCustomer(custNum string, group []models.OrderLine) models.Customer {
	first := group[0].OrderDate
	auth := group[0]
	for _, l := range group[1:] {
		if l.OrderDate.Before(first) {
			first = l.OrderDate
		}
		if newerLine(l, auth) {
			auth = l
		}
	}

	c := models.Customer{
		CustNum:       custNum,
		Status:        cleanStatus(auth),
		FullName:      fullName(auth.CustFirstName, auth.CustLastName),
		BirthDate:     auth.CustBirthDate,
		ActiveSince:   first,
		Email:         cleanEmail(auth.CustEmail),
		City:          auth.CustCity,
		State:         auth.CustState,
		Zip:           cleanZip(auth.CustZip),
		LastOrderDate: auth.OrderDate,
	}
	c.TenureDays = auth.OrderDate.DaysSince(first)
	c.QualityFlag = qualityFlag(auth, c.Zip)
	return c
}

// cleanStatus applies the first-time-customer default: a blank status is
// promoted to 1stTimeCustomer unless the line is a guest checkout.
func cleanStatus(l models.OrderLine) *string {
	if l.CustStatus != nil && strings.TrimSpace(*l.CustStatus) != "" {
		return l.CustStatus
	}
	if l.CustFirstName != nil && *l.CustFirstName == guestFirstName {
		return nil
	}
	s := models.StatusFirstTime
	return &s
}

func fullName(first, last *string) string {
	var parts []string
	if first != nil && *first != "" {
		parts = append(parts, *first)
	}
	if last != nil && *last != "" {
		parts = append(parts, *last)
	}
	return strings.Join(parts, " ")
}

// cleanEmail keeps an email only when its domain suffix is on the TLD
// allowlist; everything else is nulled rather than guessed at.
func cleanEmail(email *string) *string {
	if email == nil {
		return nil
	}
	lower := strings.ToLower(strings.TrimSpace(*email))
	for _, suffix := range validEmailSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return email
		}
	}
	return nil
}

// cleanZip keeps only exact 5-character zips.
func cleanZip(zip *string) *string {
	if zip == nil || len(*zip) != 5 {
		return nil
	}
	return zip
}

// qualityFlag is Complete iff the resolved record has a name (first or
// last), a birth date, and a surviving zip.
func qualityFlag(auth models.OrderLine, cleanedZip *string) string {
	hasName := (auth.CustFirstName != nil && *auth.CustFirstName != "") ||
		(auth.CustLastName != nil && *auth.CustLastName != "")
	if hasName && auth.CustBirthDate != nil && cleanedZip != nil {
		return models.QualityComplete
	}
	return models.QualityIncomplete
}
