package report

import (
	"sort"
	"time"

	"tally/internal/model"
)

// BudgetStatus joins one budget with its spending in the current period.
type BudgetStatus struct {
	BudgetID      string
	CategoryID    string
	CategoryName  string
	CategoryColor string
	Period        model.BudgetPeriod
	Limit         float64
	Spent         float64
	Percent       int
	Over          bool
}

// periodStart returns the start of the budget period containing now.
func periodStart(period model.BudgetPeriod, now time.Time) time.Time {
	if period == model.PeriodWeekly {
		return startOfWeek(now)
	}
	return startOfMonth(now)
}

// BudgetStatuses computes per-budget spending for the period containing now,
// sorted by category name then period. Unresolved category ids render as
// "Unknown".
func BudgetStatuses(budgets []model.Budget, transactions []model.Transaction, categories []model.Category, now time.Time) []BudgetStatus {
	lookup := make(map[string]model.Category, len(categories))
	for _, cat := range categories {
		lookup[cat.ID] = cat
	}

	statuses := make([]BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		spent := CategorySpending(transactions, b.CategoryID, periodStart(b.Period, now), time.Time{})
		status := BudgetStatus{
			BudgetID:      b.ID,
			CategoryID:    b.CategoryID,
			CategoryName:  model.UnknownCategoryName,
			CategoryColor: model.UnknownCategoryColor,
			Period:        b.Period,
			Limit:         b.Amount,
			Spent:         spent,
			Percent:       BudgetProgress(spent, b.Amount),
			Over:          spent > b.Amount,
		}
		if cat, ok := lookup[b.CategoryID]; ok {
			status.CategoryName = cat.Name
			status.CategoryColor = cat.Color
		}
		statuses = append(statuses, status)
	}

	sort.SliceStable(statuses, func(i, j int) bool {
		if statuses[i].CategoryName != statuses[j].CategoryName {
			return statuses[i].CategoryName < statuses[j].CategoryName
		}
		return statuses[i].Period < statuses[j].Period
	})
	return statuses
}
