package card

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// Skip records why a single row was left out of a run.
type Skip struct {
	Row    int
	Name   string // card name if one was readable, otherwise ""
	Reason string
}

// LoadRecords reads card rows from a CSV file with header-named,
// order-independent columns (name, cost, type, subtype, color, art_file,
// strength, description). Invalid rows do not abort the load: they are
// returned as skips so the caller can report them and continue with the
// valid siblings.
func LoadRecords(path string) ([]CardRecord, []Skip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("error opening card data: %v", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("error reading card data: %v", err)
	}
	if len(rows) < 1 {
		return nil, nil, fmt.Errorf("card data %s has no header row", path)
	}

	cols := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := cols["name"]; !ok {
		return nil, nil, fmt.Errorf("card data %s is missing a name column", path)
	}

	var records []CardRecord
	var skips []Skip
	for i, raw := range rows[1:] {
		rowIndex := i + 1 // header is row 0

		row := make(Row, len(cols))
		for name, idx := range cols {
			if idx < len(raw) {
				row[name] = raw[idx]
			}
		}

		rec, err := ParseRecord(row, rowIndex)
		if err != nil {
			skips = append(skips, Skip{Row: rowIndex, Name: row.get("name"), Reason: err.Error()})
			continue
		}
		records = append(records, rec)
	}

	return records, skips, nil
}
