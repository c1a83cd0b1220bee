// Package transfer moves transactions across the file boundary: parsing
// delimited text and JSON backups into candidate records, normalizing
// candidates into well-formed transactions, and writing exports. Format
// concerns live here; the ledger only ever sees validated entities.
package transfer

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"tally/internal/model"
)

// ErrNoValidRows is returned when every candidate record fails normalization.
var ErrNoValidRows = errors.New("no valid rows in import")

// Record is one loosely-typed candidate row, all fields as text. CategoryID is
// passed through normalization unchanged, empty included.
type Record struct {
	Date        string
	Type        string
	Amount      string
	Description string
	CategoryID  string
}

// RowError describes why one candidate row was dropped. Row is 1-based over
// the candidate list.
type RowError struct {
	Reason string
	Row    int
}

func (e RowError) String() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Reason)
}

// Date layouts accepted on import, tried in order.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// Normalize validates and coerces candidate records into transactions. Rows
// that fail are dropped and reported in the returned error list; rows that
// pass become transactions without ids (the ledger assigns ids on import).
// When every row fails the whole operation fails with an aggregate error
// listing each row's reason. Partial success returns both halves.
func Normalize(records []Record) ([]model.Transaction, []RowError, error) {
	var (
		valid  []model.Transaction
		failed []RowError
	)

	for i, rec := range records {
		row := i + 1

		date, err := parseDate(rec.Date)
		if err != nil {
			failed = append(failed, RowError{Row: row, Reason: err.Error()})
			continue
		}

		// ParseFloat accepts "NaN" and "Inf", neither of which is a usable
		// amount; NaN also slips past the <= 0 check.
		amount, err := strconv.ParseFloat(strings.TrimSpace(rec.Amount), 64)
		if err != nil || amount <= 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
			failed = append(failed, RowError{Row: row, Reason: fmt.Sprintf("invalid amount %q", rec.Amount)})
			continue
		}

		txnType := model.TransactionType(strings.ToLower(strings.TrimSpace(rec.Type)))
		if !txnType.Valid() {
			failed = append(failed, RowError{Row: row, Reason: fmt.Sprintf("invalid type %q", rec.Type)})
			continue
		}

		// Unlike direct entry, an empty description is tolerated on import.
		valid = append(valid, model.Transaction{
			Date:        date,
			Type:        txnType,
			Amount:      amount,
			Description: strings.TrimSpace(rec.Description),
			CategoryID:  rec.CategoryID,
		})
	}

	if len(valid) == 0 && len(failed) > 0 {
		reasons := make([]string, len(failed))
		for i, rowErr := range failed {
			reasons[i] = rowErr.String()
		}
		return nil, failed, fmt.Errorf("%w: %s", ErrNoValidRows, strings.Join(reasons, "; "))
	}

	return valid, failed, nil
}
