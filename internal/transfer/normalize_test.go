package transfer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tally/internal/model"
)

func TestNormalize_ValidRecords(t *testing.T) {
	records := []Record{
		{Date: "2024-01-01", Type: "expense", Amount: "25.50", Description: "Lunch", CategoryID: "cat-food"},
		{Date: "2024-02-15T09:30:00Z", Type: "INCOME", Amount: "1000", Description: "  Salary  "},
	}

	txns, rowErrs, err := Normalize(records)
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, txns, 2)

	assert.Equal(t, model.TypeExpense, txns[0].Type)
	assert.Equal(t, 25.50, txns[0].Amount)
	assert.Equal(t, "Lunch", txns[0].Description)
	assert.Equal(t, "cat-food", txns[0].CategoryID)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), txns[0].Date)

	// Type is case-normalized, description trimmed.
	assert.Equal(t, model.TypeIncome, txns[1].Type)
	assert.Equal(t, "Salary", txns[1].Description)
}

func TestNormalize_DropsBadRows(t *testing.T) {
	records := []Record{
		{Date: "not-a-date", Type: "expense", Amount: "10", CategoryID: "cat-food"},
		{Date: "2024-01-01", Type: "expense", Amount: "abc", CategoryID: "cat-food"},
		{Date: "2024-01-01", Type: "expense", Amount: "-5", CategoryID: "cat-food"},
		{Date: "2024-01-01", Type: "transfer", Amount: "10"},
		{Date: "2024-01-01", Type: "expense", Amount: "10", Description: "Keep", CategoryID: "cat-food"},
	}

	txns, rowErrs, err := Normalize(records)
	require.NoError(t, err, "partial success must not be an error")
	require.Len(t, txns, 1)
	assert.Equal(t, "Keep", txns[0].Description)

	require.Len(t, rowErrs, 4)
	assert.Equal(t, 1, rowErrs[0].Row)
	assert.Contains(t, rowErrs[0].Reason, "date")
	assert.Equal(t, 2, rowErrs[1].Row)
	assert.Contains(t, rowErrs[1].Reason, "amount")
	assert.Equal(t, 3, rowErrs[2].Row)
	assert.Equal(t, 4, rowErrs[3].Row)
	assert.Contains(t, rowErrs[3].Reason, "type")
}

func TestNormalize_RejectsNonFiniteAmounts(t *testing.T) {
	// ParseFloat accepts these spellings, but no transaction may carry them.
	records := []Record{
		{Date: "2024-01-01", Type: "expense", Amount: "NaN", CategoryID: "cat-food"},
		{Date: "2024-01-01", Type: "income", Amount: "Inf"},
		{Date: "2024-01-01", Type: "income", Amount: "-Inf"},
	}

	txns, rowErrs, err := Normalize(records)
	require.ErrorIs(t, err, ErrNoValidRows)
	assert.Empty(t, txns)
	require.Len(t, rowErrs, 3)
	for _, rowErr := range rowErrs {
		assert.Contains(t, rowErr.Reason, "amount")
	}
}

func TestNormalize_EmptyDescriptionTolerated(t *testing.T) {
	txns, rowErrs, err := Normalize([]Record{
		{Date: "2024-01-01", Type: "income", Amount: "5"},
	})
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, txns, 1)
	assert.Empty(t, txns[0].Description)
}

func TestNormalize_AllRowsFail(t *testing.T) {
	records := []Record{
		{Date: "bad", Type: "expense", Amount: "1"},
		{Date: "2024-01-01", Type: "expense", Amount: "zero"},
	}

	txns, rowErrs, err := Normalize(records)
	require.ErrorIs(t, err, ErrNoValidRows)
	assert.Empty(t, txns)
	require.Len(t, rowErrs, 2)

	// The aggregate error lists every row's reason.
	assert.Contains(t, err.Error(), "row 1:")
	assert.Contains(t, err.Error(), "row 2:")
}

func TestNormalize_EmptyInput(t *testing.T) {
	txns, rowErrs, err := Normalize(nil)
	require.NoError(t, err)
	assert.Empty(t, txns)
	assert.Empty(t, rowErrs)
}
