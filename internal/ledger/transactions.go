package ledger

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"tally/internal/model"
)

// TransactionInput holds the caller-supplied fields for a new transaction. A
// zero Date defaults to the creation time.
type TransactionInput struct {
	Date        time.Time
	Description string
	CategoryID  string
	Type        model.TransactionType
	Amount      float64
}

// TransactionPatch is a partial update; nil fields are left unchanged.
type TransactionPatch struct {
	Date        *time.Time
	Description *string
	CategoryID  *string
	Type        *model.TransactionType
	Amount      *float64
}

// AddTransaction validates the input, assigns an id, and appends the
// transaction. It returns the generated id.
func (l *Ledger) AddTransaction(ctx context.Context, in TransactionInput) (string, error) {
	if err := validateContext(ctx); err != nil {
		return "", err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.checkReady(); err != nil {
		return "", err
	}

	txn := model.Transaction{
		ID:          uuid.NewString(),
		Date:        in.Date,
		Description: strings.TrimSpace(in.Description),
		CategoryID:  in.CategoryID,
		Type:        in.Type,
		Amount:      in.Amount,
	}
	if txn.Date.IsZero() {
		txn.Date = time.Now()
	}

	if err := l.validateTransaction(txn); err != nil {
		return "", err
	}

	l.transactions = append(l.transactions, txn)
	l.persist(ctx, keyTransactions, l.transactions)

	slog.Debug("added transaction", "id", txn.ID, "type", txn.Type, "amount", txn.Amount)
	return txn.ID, nil
}

// UpdateTransaction merges the patch into the matching transaction. An unknown
// id is a silent no-op. The merged result must still satisfy the transaction
// invariants.
func (l *Ledger) UpdateTransaction(ctx context.Context, id string, patch TransactionPatch) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.checkReady(); err != nil {
		return err
	}

	for i, txn := range l.transactions {
		if txn.ID != id {
			continue
		}

		merged := txn
		if patch.Date != nil {
			merged.Date = *patch.Date
		}
		if patch.Description != nil {
			merged.Description = strings.TrimSpace(*patch.Description)
		}
		if patch.CategoryID != nil {
			merged.CategoryID = *patch.CategoryID
		}
		if patch.Type != nil {
			merged.Type = *patch.Type
		}
		if patch.Amount != nil {
			merged.Amount = *patch.Amount
		}

		if err := l.validateTransaction(merged); err != nil {
			return err
		}

		l.transactions[i] = merged
		l.persist(ctx, keyTransactions, l.transactions)
		return nil
	}

	return nil
}

// DeleteTransaction removes the matching transaction. Deletion is immediate
// and permanent; an unknown id is a silent no-op.
func (l *Ledger) DeleteTransaction(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.checkReady(); err != nil {
		return err
	}

	for i, txn := range l.transactions {
		if txn.ID == id {
			l.transactions = append(l.transactions[:i], l.transactions[i+1:]...)
			l.persist(ctx, keyTransactions, l.transactions)
			slog.Debug("deleted transaction", "id", id)
			return nil
		}
	}

	return nil
}

// ImportTransactions appends normalized transactions in bulk, assigning ids,
// and persists once. Import rows keep the looser contract of the import path:
// descriptions may be empty and category ids are taken as given, with
// unresolved ids rendering as "Unknown" downstream.
func (l *Ledger) ImportTransactions(ctx context.Context, txns []model.Transaction) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.checkReady(); err != nil {
		return 0, err
	}
	if len(txns) == 0 {
		return 0, nil
	}

	for _, txn := range txns {
		if txn.ID == "" {
			txn.ID = uuid.NewString()
		}
		if txn.Date.IsZero() {
			txn.Date = time.Now()
		}
		l.transactions = append(l.transactions, txn)
	}
	l.persist(ctx, keyTransactions, l.transactions)

	slog.Info("imported transactions", "count", len(txns))
	return len(txns), nil
}

// validAmount reports whether a is a positive finite number. The > 0 test
// alone lets NaN through (every NaN comparison is false) and +Inf past it.
func validAmount(a float64) bool {
	return a > 0 && !math.IsInf(a, 0)
}

// validateTransaction enforces the transaction invariants: positive finite
// amount, non-empty description, a known type, and a category that exists for
// expenses but is absent for income. Callers must hold a lock.
func (l *Ledger) validateTransaction(txn model.Transaction) error {
	if !txn.Type.Valid() {
		return ErrInvalidType
	}
	if !validAmount(txn.Amount) {
		return ErrInvalidAmount
	}
	if txn.Description == "" {
		return ErrEmptyDescription
	}
	switch txn.Type {
	case model.TypeExpense:
		if txn.CategoryID == "" {
			return ErrMissingCategory
		}
		if _, ok := l.findCategory(txn.CategoryID); !ok {
			return ErrUnknownCategory
		}
	case model.TypeIncome:
		if txn.CategoryID != "" {
			return ErrCategoryOnIncome
		}
	}
	return nil
}
