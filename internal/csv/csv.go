// Package csv wraps the delimited-text parsing collaborator: it tokenizes a
// file into a header row plus data rows and normalizes header names for
// case- and whitespace-insensitive matching.
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Parse reads delimited text and returns the header row and the data rows.
// Rows may be ragged; short rows are tolerated and zipped against however
// many headers they cover.
func Parse(r io.Reader) (header []string, rows [][]string, err error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("invalid csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, nil
	}

	return records[0], records[1:], nil
}

// NormalizeHeader lower-cases a header name and strips all whitespace, so
// "Artist Code", "artistcode", and " ARTIST CODE " all match.
func NormalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff") // BOM on the first header of some exports
	var b strings.Builder
	for _, r := range strings.ToLower(h) {
		switch r {
		case ' ', '\t', '\r', '\n':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Rows zips the header against each data row into field-name/value maps,
// skipping rows that are entirely blank.
func Rows(header []string, records [][]string) []map[string]string {
	keys := make([]string, len(header))
	for i, h := range header {
		keys[i] = NormalizeHeader(h)
	}

	var out []map[string]string
	for _, record := range records {
		row := make(map[string]string, len(keys))
		empty := true
		for i, v := range record {
			if i >= len(keys) || keys[i] == "" {
				continue
			}
			if strings.TrimSpace(v) != "" {
				empty = false
			}
			row[keys[i]] = v
		}
		if empty {
			continue
		}
		out = append(out, row)
	}
	return out
}
