package resolve

import (
	"sort"

	"github.com/DLCheruiyot/smb-bi-etl-pipeline/internal/models"
)

// Products picks the current retail price per SKU from the raw order-line
// snapshot: the price on the latest qualifying line wins. A line qualifies
// when it names a SKU and carries a strictly positive retail price; SKUs
// with no qualifying line are omitted entirely rather than emitted with a
// null price.
//
// Output is sorted by SKU for run-to-run determinism.
func Products(lines []models.OrderLine) []models.Product {
	latest := make(map[string]models.OrderLine)
	for _, l := range lines {
		if l.SKU == "" || l.RetailPrice == nil || !l.RetailPrice.IsPositive() {
			continue
		}
		if best, ok := latest[l.SKU]; !ok || newerLine(l, best) {
			latest[l.SKU] = l
		}
	}

	out := make([]models.Product, 0, len(latest))
	for sku, l := range latest {
		out = append(out, models.Product{SKU: sku, RetailPrice: *l.RetailPrice})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out
}
