package ledger

import (
	"context"
	"errors"
	"fmt"
)

// Lifecycle and validation errors. Validation failures leave the ledger
// unchanged and are meant to surface directly to the user.
var (
	ErrNilContext       = errors.New("context cannot be nil")
	ErrNotHydrated      = errors.New("ledger has not been hydrated")
	ErrInvalidAmount    = errors.New("amount must be a positive finite number")
	ErrEmptyDescription = errors.New("description cannot be empty")
	ErrInvalidType      = errors.New("transaction type must be income or expense")
	ErrMissingCategory  = errors.New("expense transactions require a category")
	ErrCategoryOnIncome = errors.New("income transactions cannot have a category")
	ErrUnknownCategory  = errors.New("category does not exist")
	ErrEmptyName        = errors.New("category name cannot be empty")
	ErrInvalidPeriod    = errors.New("budget period must be monthly or weekly")
)

// CategoryInUseError is returned when deleting a category that transactions
// still reference. Transactions are historical record and block the deletion;
// budgets are forward-looking configuration and are cascaded instead.
type CategoryInUseError struct {
	CategoryID   string
	Transactions int
}

func (e *CategoryInUseError) Error() string {
	return fmt.Sprintf("category %s is referenced by %d transaction(s)", e.CategoryID, e.Transactions)
}

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}
