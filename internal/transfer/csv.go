package transfer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"tally/internal/model"
)

// Canonical CSV column order, also the export header.
var csvHeader = []string{"date", "type", "amount", "description", "categoryId"}

// ParseCSV reads comma-delimited text into candidate records. Quoted fields
// follow RFC 4180: they may contain the delimiter or newlines, and a doubled
// quote is a literal quote. When the first row names known columns it is
// treated as a header mapping the remaining fields; otherwise rows are read
// positionally in canonical order.
func ParseCSV(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	colIndex := headerIndex(rows[0])
	if colIndex != nil {
		rows = rows[1:]
	} else {
		colIndex = make(map[string]int, len(csvHeader))
		for i, name := range csvHeader {
			colIndex[strings.ToLower(name)] = i
		}
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, Record{
			Date:        safeGet(row, colIndex, "date"),
			Type:        safeGet(row, colIndex, "type"),
			Amount:      safeGet(row, colIndex, "amount"),
			Description: safeGet(row, colIndex, "description"),
			CategoryID:  safeGet(row, colIndex, "categoryid"),
		})
	}
	return records, nil
}

// headerIndex maps lowercased column names to positions when the row looks
// like a header, or returns nil when it looks like data. At least two known
// column names must match: a single match can be a data row whose description
// happens to equal a column name.
func headerIndex(row []string) map[string]int {
	known := map[string]bool{"date": true, "type": true, "amount": true, "description": true, "categoryid": true}
	index := make(map[string]int, len(row))
	matched := 0
	for i, col := range row {
		name := strings.ToLower(strings.TrimSpace(col))
		index[name] = i
		if known[name] {
			matched++
		}
	}
	if matched < 2 {
		return nil
	}
	return index
}

// safeGet retrieves the named column from row, empty when absent.
func safeGet(row []string, colIndex map[string]int, name string) string {
	i, ok := colIndex[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// WriteCSV writes transactions as comma-delimited text with the canonical
// header. Dates are emitted as RFC 3339 so an export re-imports losslessly.
func WriteCSV(w io.Writer, transactions []model.Transaction) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, txn := range transactions {
		row := []string{
			txn.Date.Format("2006-01-02T15:04:05Z07:00"),
			string(txn.Type),
			strconv.FormatFloat(txn.Amount, 'f', -1, 64),
			txn.Description,
			txn.CategoryID,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}
