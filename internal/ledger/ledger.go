// Package ledger owns the in-memory collections of transactions, categories,
// and budgets. It is the only writer: mutations run through it, invariants are
// enforced here, and every successful mutation is mirrored to the persistence
// store write-through (the whole affected collection, not a delta).
package ledger

import (
	"context"
	"log/slog"
	"sync"

	"tally/internal/model"
	"tally/internal/storage"
)

// Record keys in the persistence store.
const (
	keyTransactions = "finance_transactions"
	keyCategories   = "finance_categories"
	keyBudgets      = "finance_budgets"
)

// Ledger is the authoritative owner of the three entity collections. Construct
// with New, then call Hydrate before mutating; mutations on an unhydrated
// ledger are rejected with ErrNotHydrated.
type Ledger struct {
	store        *storage.Store
	transactions []model.Transaction
	categories   []model.Category
	budgets      []model.Budget
	mu           sync.RWMutex
	hydrated     bool
}

// New creates a Ledger backed by the given store. The ledger starts empty and
// unhydrated.
func New(store *storage.Store) *Ledger {
	return &Ledger{store: store}
}

// Hydrate loads the three collections from the store. A missing or corrupt
// record hydrates as an empty collection. When no categories are found, the
// default category set is seeded and persisted immediately. Hydrating twice is
// a no-op.
func (l *Ledger) Hydrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.hydrated {
		return nil
	}

	l.store.ReadJSON(ctx, keyTransactions, &l.transactions)
	l.store.ReadJSON(ctx, keyCategories, &l.categories)
	l.store.ReadJSON(ctx, keyBudgets, &l.budgets)

	if len(l.categories) == 0 {
		l.categories = model.DefaultCategories()
		l.persist(ctx, keyCategories, l.categories)
		slog.Info("seeded default categories", "count", len(l.categories))
	}

	l.hydrated = true
	slog.Debug("ledger hydrated",
		"transactions", len(l.transactions),
		"categories", len(l.categories),
		"budgets", len(l.budgets))
	return nil
}

// persist mirrors one collection to the store. A failed write leaves the
// in-memory state authoritative; the divergence is logged and accepted, not
// retried. Callers must hold the write lock.
func (l *Ledger) persist(ctx context.Context, key string, collection any) {
	if !l.store.WriteJSON(ctx, key, collection) {
		slog.Warn("persisted mirror is stale after failed write", "key", key)
	}
}

// checkReady verifies the ledger has been hydrated. Callers must hold a lock.
func (l *Ledger) checkReady() error {
	if !l.hydrated {
		return ErrNotHydrated
	}
	return nil
}

// Transactions returns a copy of the transaction collection.
func (l *Ledger) Transactions() []model.Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]model.Transaction, len(l.transactions))
	copy(out, l.transactions)
	return out
}

// Categories returns a copy of the category collection.
func (l *Ledger) Categories() []model.Category {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]model.Category, len(l.categories))
	copy(out, l.categories)
	return out
}

// Budgets returns a copy of the budget collection.
func (l *Ledger) Budgets() []model.Budget {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]model.Budget, len(l.budgets))
	copy(out, l.budgets)
	return out
}

// CategoryByID resolves a category id. The second return is false when the id
// does not resolve; consumers render such ids as "Unknown".
func (l *Ledger) CategoryByID(id string) (model.Category, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.findCategory(id)
}

// findCategory looks up a category by id. Callers must hold a lock.
func (l *Ledger) findCategory(id string) (model.Category, bool) {
	for _, cat := range l.categories {
		if cat.ID == id {
			return cat, true
		}
	}
	return model.Category{}, false
}

// Restore replaces all three collections with the given backup content and
// persists each. Entities are taken as-is; a backup round-trips byte-faithful.
func (l *Ledger) Restore(ctx context.Context, transactions []model.Transaction, categories []model.Category, budgets []model.Budget) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.checkReady(); err != nil {
		return err
	}

	l.transactions = make([]model.Transaction, len(transactions))
	copy(l.transactions, transactions)
	l.categories = make([]model.Category, len(categories))
	copy(l.categories, categories)
	l.budgets = make([]model.Budget, len(budgets))
	copy(l.budgets, budgets)

	l.persist(ctx, keyTransactions, l.transactions)
	l.persist(ctx, keyCategories, l.categories)
	l.persist(ctx, keyBudgets, l.budgets)

	slog.Info("restored backup",
		"transactions", len(l.transactions),
		"categories", len(l.categories),
		"budgets", len(l.budgets))
	return nil
}
