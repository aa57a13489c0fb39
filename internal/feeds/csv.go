// Package feeds decodes raw feed CSV exports into bronze-layer records.
// Decoding follows the per-record input-error policy: a row missing or
// mangling a required field is skipped and counted, never fatal; a missing
// header column is a structural error and fails the decode.
package feeds

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// readRecords parses CSV from r into header-keyed maps. Headers are
// trimmed; rows with a mismatched column count are skipped and counted.
func readRecords(r io.Reader, required []string) ([]map[string]string, int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, 0, fmt.Errorf("empty file: no header row")
		}
		return nil, 0, fmt.Errorf("reading header row: %w", err)
	}
	for i, h := range headers {
		headers[i] = strings.TrimSpace(h)
	}

	have := make(map[string]bool, len(headers))
	for _, h := range headers {
		have[h] = true
	}
	for _, col := range required {
		if !have[col] {
			return nil, 0, fmt.Errorf("missing required column %q", col)
		}
	}

	var records []map[string]string
	skipped := 0
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil || len(row) != len(headers) {
			skipped++
			continue
		}
		rec := make(map[string]string, len(headers))
		for i, h := range headers {
			rec[h] = strings.TrimSpace(row[i])
		}
		records = append(records, rec)
	}
	return records, skipped, nil
}
