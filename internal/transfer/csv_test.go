package transfer

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tally/internal/model"
)

func TestParseCSV_HeaderAndQuoting(t *testing.T) {
	input := "date,type,amount,description,categoryId\n" +
		"2024-01-01,expense,25.50,Lunch,cat-food\n" +
		"2024-01-02,expense,9.99,\"Coffee, \"\"large\"\"\nwith a newline\",cat-food\n"

	records, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, Record{
		Date: "2024-01-01", Type: "expense", Amount: "25.50",
		Description: "Lunch", CategoryID: "cat-food",
	}, records[0])

	// Quoted field keeps the embedded delimiter, literal quotes, and newline.
	assert.Equal(t, "Coffee, \"large\"\nwith a newline", records[1].Description)
}

func TestParseCSV_ReorderedHeader(t *testing.T) {
	input := "amount,date,type\n12.00,2024-03-05,income\n"

	records, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "12.00", records[0].Amount)
	assert.Equal(t, "2024-03-05", records[0].Date)
	assert.Equal(t, "income", records[0].Type)
	assert.Empty(t, records[0].Description)
}

func TestParseCSV_NoHeaderFallsBackToPositional(t *testing.T) {
	input := "2024-01-01,expense,5,Snack,cat-food\n"

	records, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Snack", records[0].Description)
	assert.Equal(t, "cat-food", records[0].CategoryID)
}

func TestParseCSV_DataRowNamedLikeAColumnIsNotAHeader(t *testing.T) {
	// A headerless file whose description cell equals a column name must not
	// be mistaken for a header and dropped.
	input := "2024-01-01,expense,12,amount,cat-food\n"

	records, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "2024-01-01", records[0].Date)
	assert.Equal(t, "amount", records[0].Description)
}

func TestParseCSV_Empty(t *testing.T) {
	records, err := ParseCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestCSVScenario_OneGoodRowOneBadRow(t *testing.T) {
	input := "date,type,amount,description,categoryId\n" +
		"2024-01-01,expense,25.50,Lunch,cat-food\n" +
		"bad,expense,abc,,\n"

	records, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 2)

	txns, rowErrs, err := Normalize(records)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, "Lunch", txns[0].Description)
	assert.Equal(t, 25.50, txns[0].Amount)

	require.Len(t, rowErrs, 1)
	assert.Equal(t, 2, rowErrs[0].Row)
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	txns := []model.Transaction{
		{
			ID: "t1", Type: model.TypeExpense, Amount: 25.5,
			Description: "Lunch, \"fancy\"", CategoryID: "cat-food",
			Date: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			ID: "t2", Type: model.TypeIncome, Amount: 1000,
			Description: "Salary",
			Date:        time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, txns))

	header := strings.SplitN(buf.String(), "\n", 2)[0]
	assert.Equal(t, "date,type,amount,description,categoryId", header)

	records, err := ParseCSV(&buf)
	require.NoError(t, err)
	parsed, rowErrs, err := Normalize(records)
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, parsed, 2)

	assert.Equal(t, txns[0].Description, parsed[0].Description)
	assert.Equal(t, txns[0].Amount, parsed[0].Amount)
	assert.True(t, txns[0].Date.Equal(parsed[0].Date))
	assert.Equal(t, txns[1].Type, parsed[1].Type)
}
