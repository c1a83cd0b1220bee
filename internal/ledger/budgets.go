package ledger

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"tally/internal/model"
)

// BudgetInput holds the fields for setting a budget. SetBudget upserts by
// (CategoryID, Period), so there is no separate update operation.
type BudgetInput struct {
	CategoryID string
	Period     model.BudgetPeriod
	Amount     float64
}

// SetBudget creates or updates the budget for (CategoryID, Period). When a
// budget for the pair already exists its amount is replaced in place and the
// original id is preserved; otherwise a new budget is created. Returns the id
// of the budget that now holds the limit.
func (l *Ledger) SetBudget(ctx context.Context, in BudgetInput) (string, error) {
	if err := validateContext(ctx); err != nil {
		return "", err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.checkReady(); err != nil {
		return "", err
	}

	if !in.Period.Valid() {
		return "", ErrInvalidPeriod
	}
	if !validAmount(in.Amount) {
		return "", ErrInvalidAmount
	}
	if _, ok := l.findCategory(in.CategoryID); !ok {
		return "", ErrUnknownCategory
	}

	for i, b := range l.budgets {
		if b.CategoryID == in.CategoryID && b.Period == in.Period {
			l.budgets[i].Amount = in.Amount
			l.persist(ctx, keyBudgets, l.budgets)
			slog.Debug("updated budget", "id", b.ID, "category", in.CategoryID, "period", in.Period)
			return b.ID, nil
		}
	}

	budget := model.Budget{
		ID:         uuid.NewString(),
		CategoryID: in.CategoryID,
		Period:     in.Period,
		Amount:     in.Amount,
	}
	l.budgets = append(l.budgets, budget)
	l.persist(ctx, keyBudgets, l.budgets)

	slog.Debug("created budget", "id", budget.ID, "category", in.CategoryID, "period", in.Period)
	return budget.ID, nil
}

// DeleteBudget removes the budget unconditionally. An unknown id is a silent
// no-op.
func (l *Ledger) DeleteBudget(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.checkReady(); err != nil {
		return err
	}

	for i, b := range l.budgets {
		if b.ID == id {
			l.budgets = append(l.budgets[:i], l.budgets[i+1:]...)
			l.persist(ctx, keyBudgets, l.budgets)
			slog.Debug("deleted budget", "id", id)
			return nil
		}
	}

	return nil
}
