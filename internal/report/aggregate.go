// Package report computes derived numbers from the ledger collections:
// totals, category breakdowns, budget progress, and trend series. Everything
// here is a pure function over the inputs; nothing mutates the ledger.
package report

import (
	"math"
	"sort"
	"time"

	"tally/internal/model"
)

// inWindow reports whether date falls inside [start, end]. A zero bound is
// open on that side.
func inWindow(date, start, end time.Time) bool {
	if !start.IsZero() && date.Before(start) {
		return false
	}
	if !end.IsZero() && date.After(end) {
		return false
	}
	return true
}

// TotalIncome sums income amounts within the window.
func TotalIncome(transactions []model.Transaction, start, end time.Time) float64 {
	var total float64
	for _, txn := range transactions {
		if txn.Type == model.TypeIncome && inWindow(txn.Date, start, end) {
			total += txn.Amount
		}
	}
	return total
}

// TotalExpenses sums expense amounts within the window.
func TotalExpenses(transactions []model.Transaction, start, end time.Time) float64 {
	var total float64
	for _, txn := range transactions {
		if txn.Type == model.TypeExpense && inWindow(txn.Date, start, end) {
			total += txn.Amount
		}
	}
	return total
}

// Balance is income minus expenses over the same window.
func Balance(transactions []model.Transaction, start, end time.Time) float64 {
	return TotalIncome(transactions, start, end) - TotalExpenses(transactions, start, end)
}

// CategorySpending sums expense amounts for one category within the window.
func CategorySpending(transactions []model.Transaction, categoryID string, start, end time.Time) float64 {
	var total float64
	for _, txn := range transactions {
		if txn.Type == model.TypeExpense && txn.CategoryID == categoryID && inWindow(txn.Date, start, end) {
			total += txn.Amount
		}
	}
	return total
}

// BudgetProgress returns spent as a rounded percentage of the budget amount.
// A zero or negative budget yields 0. Over-budget values exceed 100; clamping
// is a display concern.
func BudgetProgress(spent, budgetAmount float64) int {
	if budgetAmount <= 0 {
		return 0
	}
	return int(math.Round(spent / budgetAmount * 100))
}

// CategoryShare is one category's slice of window spending.
type CategoryShare struct {
	CategoryID    string
	CategoryName  string
	CategoryColor string
	Amount        float64
	Percentage    int
}

// CategoryBreakdown groups window expenses by category and computes each
// group's share of the window total, sorted descending by amount. Ids that no
// longer resolve are reported as "Unknown" in neutral gray. Returns an empty
// list when the window has no expenses.
func CategoryBreakdown(transactions []model.Transaction, categories []model.Category, start, end time.Time) []CategoryShare {
	byCategory := make(map[string]float64)
	var total float64
	for _, txn := range transactions {
		if txn.Type != model.TypeExpense || !inWindow(txn.Date, start, end) {
			continue
		}
		byCategory[txn.CategoryID] += txn.Amount
		total += txn.Amount
	}
	if total == 0 {
		return nil
	}

	lookup := make(map[string]model.Category, len(categories))
	for _, cat := range categories {
		lookup[cat.ID] = cat
	}

	shares := make([]CategoryShare, 0, len(byCategory))
	for id, amount := range byCategory {
		share := CategoryShare{
			CategoryID:    id,
			CategoryName:  model.UnknownCategoryName,
			CategoryColor: model.UnknownCategoryColor,
			Amount:        amount,
			Percentage:    int(math.Round(amount / total * 100)),
		}
		if cat, ok := lookup[id]; ok {
			share.CategoryName = cat.Name
			share.CategoryColor = cat.Color
		}
		shares = append(shares, share)
	}

	sort.SliceStable(shares, func(i, j int) bool {
		if shares[i].Amount != shares[j].Amount {
			return shares[i].Amount > shares[j].Amount
		}
		return shares[i].CategoryName < shares[j].CategoryName
	})
	return shares
}
