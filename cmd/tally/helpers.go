package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"tally/internal/ledger"
	"tally/internal/storage"
)

// openLedger opens the store at the configured path and returns a hydrated
// ledger. The caller must Close the returned store.
func openLedger(ctx context.Context) (*ledger.Ledger, *storage.Store, error) {
	dbPath := viper.GetString("db.path")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".local", "share", "tally", "tally.db")
	}

	store, err := storage.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open store: %w", err)
	}

	l := ledger.New(store)
	if err := l.Hydrate(ctx); err != nil {
		_ = store.Close()
		return nil, nil, fmt.Errorf("failed to hydrate ledger: %w", err)
	}

	return l, store, nil
}

// formatAmount renders a currency amount with two decimals.
func formatAmount(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

// parseDateFlag parses a --from/--to style flag value; empty means unset.
func parseDateFlag(value, name string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s date %q (want YYYY-MM-DD)", name, value)
	}
	return t, nil
}
