// Package query derives filtered, sorted views of the transaction collection.
// Filters are conjunctive and never mutate their input; callers recompute a
// view from current data whenever it is needed.
package query

import (
	"sort"
	"strings"
	"time"

	"tally/internal/model"
)

// Filter is a predicate set over transactions. Zero-valued fields do not
// filter: an empty Search matches everything, a zero From or To leaves that
// side of the date range open.
type Filter struct {
	From       time.Time
	To         time.Time
	Search     string
	CategoryID string
	Type       model.TransactionType
}

// matches reports whether a transaction satisfies every set predicate.
func (f Filter) matches(txn model.Transaction) bool {
	if f.Search != "" &&
		!strings.Contains(strings.ToLower(txn.Description), strings.ToLower(f.Search)) {
		return false
	}
	if f.CategoryID != "" && txn.CategoryID != f.CategoryID {
		return false
	}
	if f.Type != "" && txn.Type != f.Type {
		return false
	}
	if !f.From.IsZero() && txn.Date.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && txn.Date.After(f.To) {
		return false
	}
	return true
}

// Apply returns the matching transactions as a new slice sorted by date
// descending (newest first).
func Apply(transactions []model.Transaction, f Filter) []model.Transaction {
	out := make([]model.Transaction, 0, len(transactions))
	for _, txn := range transactions {
		if f.matches(txn) {
			out = append(out, txn)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}
