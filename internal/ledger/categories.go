package ledger

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"tally/internal/model"
)

// CategoryInput holds the caller-supplied fields for a new category. Color and
// Icon fall back to the model defaults when empty.
type CategoryInput struct {
	Name  string
	Color string
	Icon  string
}

// CategoryPatch is a partial update; nil fields are left unchanged.
type CategoryPatch struct {
	Name  *string
	Color *string
	Icon  *string
}

// AddCategory creates a category and returns its generated id. Duplicate
// names are permitted; categories are identified by id.
func (l *Ledger) AddCategory(ctx context.Context, in CategoryInput) (string, error) {
	if err := validateContext(ctx); err != nil {
		return "", err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.checkReady(); err != nil {
		return "", err
	}

	cat := model.Category{
		ID:    uuid.NewString(),
		Name:  strings.TrimSpace(in.Name),
		Color: in.Color,
		Icon:  in.Icon,
	}
	if cat.Name == "" {
		return "", ErrEmptyName
	}
	if cat.Color == "" {
		cat.Color = model.DefaultCategoryColor
	}
	if cat.Icon == "" {
		cat.Icon = model.DefaultCategoryIcon
	}

	l.categories = append(l.categories, cat)
	l.persist(ctx, keyCategories, l.categories)

	slog.Debug("added category", "id", cat.ID, "name", cat.Name)
	return cat.ID, nil
}

// UpdateCategory merges the patch into the matching category. An unknown id is
// a silent no-op.
func (l *Ledger) UpdateCategory(ctx context.Context, id string, patch CategoryPatch) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.checkReady(); err != nil {
		return err
	}

	for i, cat := range l.categories {
		if cat.ID != id {
			continue
		}

		merged := cat
		if patch.Name != nil {
			merged.Name = strings.TrimSpace(*patch.Name)
		}
		if patch.Color != nil {
			merged.Color = *patch.Color
		}
		if patch.Icon != nil {
			merged.Icon = *patch.Icon
		}

		if merged.Name == "" {
			return ErrEmptyName
		}

		l.categories[i] = merged
		l.persist(ctx, keyCategories, l.categories)
		return nil
	}

	return nil
}

// DeleteCategory removes the category. It fails with CategoryInUseError while
// any transaction references the id; budgets referencing the id are cascaded
// away on success. Transactions are historical record, budgets are
// forward-looking config, hence the asymmetry.
func (l *Ledger) DeleteCategory(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.checkReady(); err != nil {
		return err
	}

	idx := -1
	for i, cat := range l.categories {
		if cat.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	dependents := 0
	for _, txn := range l.transactions {
		if txn.CategoryID == id {
			dependents++
		}
	}
	if dependents > 0 {
		return &CategoryInUseError{CategoryID: id, Transactions: dependents}
	}

	l.categories = append(l.categories[:idx], l.categories[idx+1:]...)
	l.persist(ctx, keyCategories, l.categories)

	remaining := l.budgets[:0]
	removed := 0
	for _, b := range l.budgets {
		if b.CategoryID == id {
			removed++
			continue
		}
		remaining = append(remaining, b)
	}
	if removed > 0 {
		l.budgets = remaining
		l.persist(ctx, keyBudgets, l.budgets)
	}

	slog.Debug("deleted category", "id", id, "cascaded_budgets", removed)
	return nil
}
