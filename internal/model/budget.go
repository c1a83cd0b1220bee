package model

// BudgetPeriod is the recurrence granularity of a budget.
type BudgetPeriod string

const (
	// PeriodMonthly resets the budget window each calendar month.
	PeriodMonthly BudgetPeriod = "monthly"
	// PeriodWeekly resets the budget window each ISO week (Monday start).
	PeriodWeekly BudgetPeriod = "weekly"
)

// Valid reports whether the period is one of the two known values.
func (p BudgetPeriod) Valid() bool {
	return p == PeriodMonthly || p == PeriodWeekly
}

// Budget is a spending limit for one category over one recurring period. The
// store keeps at most one budget per (CategoryID, Period) pair.
type Budget struct {
	ID         string       `json:"id"`
	CategoryID string       `json:"categoryId"`
	Period     BudgetPeriod `json:"period"`
	Amount     float64      `json:"amount"`
}
