// Package model defines the entities the tracker records: transactions,
// categories, and budgets. Entities reference each other by id only; resolving
// an id is always a read-time lookup, never a stored pointer.
package model

import "time"

// TransactionType indicates whether a transaction is money in or money out.
type TransactionType string

const (
	// TypeIncome represents money received.
	TypeIncome TransactionType = "income"
	// TypeExpense represents money spent.
	TypeExpense TransactionType = "expense"
)

// Valid reports whether the type is one of the two known values.
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Transaction is a single recorded money movement. Amount carries no sign;
// direction is implied by Type. CategoryID is set only for expenses and is
// empty for income.
type Transaction struct {
	Date        time.Time       `json:"date"`
	ID          string          `json:"id"`
	Description string          `json:"description"`
	CategoryID  string          `json:"categoryId"`
	Type        TransactionType `json:"type"`
	Amount      float64         `json:"amount"`
}
