// Package resolve builds the silver customer and product dimensions from
// the raw order-line snapshot. Both resolvers share the same last-writer-
// wins discipline: the authoritative line for an entity is the one with the
// greatest order date, with the stable ingest-assigned line ID breaking
// date ties so resolution never depends on input ordering.
package resolve

import "github.com/DLCheruiyot/smb-bi-etl-pipeline/internal/models"

// newerLine reports whether a should supersede b as the authoritative line.
// Primary key: order date. Secondary key: line ID, compared as a plain
// string; line IDs are fixed at ingest, so the comparison is deterministic
// across runs over the same bronze snapshot.
func newerLine(a, b models.OrderLine) bool {
	if a.OrderDate != b.OrderDate {
		return a.OrderDate.After(b.OrderDate)
	}
	return a.LineID > b.LineID
}
