package transfer

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tally/internal/model"
)

func TestParseJSON_BareArray(t *testing.T) {
	data := []byte(`[
		{"date": "2024-01-01", "type": "expense", "amount": 25.5, "description": "Lunch", "categoryId": "cat-food"},
		{"date": "2024-01-02", "type": "income", "amount": 1000, "description": "Salary"}
	]`)

	backup, records, err := ParseJSON(data)
	require.NoError(t, err)
	assert.Nil(t, backup)
	require.Len(t, records, 2)
	assert.Equal(t, "25.5", records[0].Amount)
	assert.Equal(t, "cat-food", records[0].CategoryID)

	txns, rowErrs, err := Normalize(records)
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	assert.Len(t, txns, 2)
}

func TestParseJSON_BackupObject(t *testing.T) {
	data := []byte(`{
		"exportedAt": "2024-06-01T00:00:00Z",
		"transactions": [{"id": "t1", "date": "2024-01-01T00:00:00Z", "type": "expense", "amount": 9.5, "description": "Snack", "categoryId": "c1"}],
		"categories": [{"id": "c1", "name": "Food", "color": "#ef4444", "icon": "utensils"}],
		"budgets": [{"id": "b1", "categoryId": "c1", "period": "monthly", "amount": 100}]
	}`)

	backup, records, err := ParseJSON(data)
	require.NoError(t, err)
	assert.Nil(t, records)
	require.NotNil(t, backup)
	require.Len(t, backup.Transactions, 1)
	assert.Equal(t, "t1", backup.Transactions[0].ID)
	require.Len(t, backup.Categories, 1)
	require.Len(t, backup.Budgets, 1)
	assert.Equal(t, model.PeriodMonthly, backup.Budgets[0].Period)
}

func TestParseJSON_Invalid(t *testing.T) {
	_, _, err := ParseJSON([]byte(`"just a string"`))
	assert.Error(t, err)

	_, _, err = ParseJSON([]byte(`{broken`))
	assert.Error(t, err)

	_, _, err = ParseJSON(nil)
	assert.Error(t, err)
}

func TestWriteJSON_RoundTrip(t *testing.T) {
	original := Backup{
		ExportedAt: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Transactions: []model.Transaction{{
			ID: "t1", Type: model.TypeExpense, Amount: 40,
			Description: "Groceries", CategoryID: "c1",
			Date: time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC),
		}},
		Categories: []model.Category{{ID: "c1", Name: "Food", Color: "#ef4444", Icon: "utensils"}},
		Budgets:    []model.Budget{{ID: "b1", CategoryID: "c1", Period: model.PeriodWeekly, Amount: 60}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, original))

	backup, records, err := ParseJSON(buf.Bytes())
	require.NoError(t, err)
	assert.Nil(t, records)
	require.NotNil(t, backup)
	assert.Equal(t, original.Transactions, backup.Transactions)
	assert.Equal(t, original.Categories, backup.Categories)
	assert.Equal(t, original.Budgets, backup.Budgets)
	assert.True(t, original.ExportedAt.Equal(backup.ExportedAt))
}

func TestWriteJSON_StampsExportedAt(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, Backup{}))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	stamp, ok := decoded["exportedAt"].(string)
	require.True(t, ok)

	parsed, err := time.Parse(time.RFC3339, stamp)
	require.NoError(t, err)
	assert.False(t, parsed.IsZero())
}
