package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// FilterExtract parses r as a CSV extract with a header row and returns the
// rows whose sale_date equals date (YYYY-MM-DD form), collapsing exact
// duplicates (all columns equal) to their first occurrence.
//
// An extract with no rows for the date yields an empty slice, not an error.
// A missing header, missing required columns, or a malformed row is an
// error; callers treat it as fatal for the run.
func FilterExtract(r io.Reader, date string) ([]SaleRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty extract: no header row")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var rows []SaleRecord
	seen := make(map[string]struct{})
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row at line %d: %w", line, err)
		}
		rec, err := recordFromRow(idx, row)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if rec.SaleDate != date {
			continue
		}
		if _, dup := seen[rec.key()]; dup {
			continue
		}
		seen[rec.key()] = struct{}{}
		rows = append(rows, rec)
	}

	return rows, nil
}
