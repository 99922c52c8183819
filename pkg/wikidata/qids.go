package wikidata

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// ReadQIDFile reads entity identifiers from a CSV file. The first column
// of each row is taken; header rows and rows whose first column is not a
// QID are skipped. Duplicates are preserved in order so callers decide
// their own dedup policy.
func ReadQIDFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open qid file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse qid file %s: %w", path, err)
	}

	var qids []string
	for _, record := range records {
		if len(record) == 0 {
			continue
		}
		candidate := strings.TrimSpace(record[0])
		if IsQID(candidate) {
			qids = append(qids, candidate)
		}
	}
	return qids, nil
}

// IsQID reports whether s looks like a Wikidata item identifier: a "Q"
// followed by at least one digit.
func IsQID(s string) bool {
	if len(s) < 2 || s[0] != 'Q' {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
