package main

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tally/internal/ledger"
)

func TestParseDateFlag(t *testing.T) {
	t.Run("empty means unset", func(t *testing.T) {
		got, err := parseDateFlag("", "from")
		require.NoError(t, err)
		assert.True(t, got.IsZero())
	})

	t.Run("valid date", func(t *testing.T) {
		got, err := parseDateFlag("2024-06-15", "from")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("invalid date names the flag", func(t *testing.T) {
		_, err := parseDateFlag("15/06/2024", "to")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "to")
		assert.Contains(t, err.Error(), "YYYY-MM-DD")
	})
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "25.50", formatAmount(25.5))
	assert.Equal(t, "0.00", formatAmount(0))
	assert.Equal(t, "-12.34", formatAmount(-12.34))
}

func TestMonthWindow(t *testing.T) {
	now := time.Date(2024, 6, 15, 13, 45, 0, 0, time.UTC)
	start, end := monthWindow(now)

	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), start)
	assert.True(t, end.After(time.Date(2024, 6, 30, 23, 59, 59, 0, time.UTC)))
	assert.True(t, end.Before(time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)))
}

func TestUserFacingError(t *testing.T) {
	t.Run("rewrites category in use", func(t *testing.T) {
		err := userFacingError(&ledger.CategoryInUseError{CategoryID: "cat-food", Transactions: 3})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "3 transaction(s)")
	})

	t.Run("passes other errors through", func(t *testing.T) {
		sentinel := errors.New("boom")
		assert.Equal(t, sentinel, userFacingError(sentinel))
	})
}
