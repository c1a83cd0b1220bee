package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tally/internal/model"
)

func day(d int) time.Time {
	return time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC)
}

var testTxns = []model.Transaction{
	{ID: "t1", Type: model.TypeExpense, Amount: 12, Description: "Lunch at cafe", CategoryID: "cat-food", Date: day(1)},
	{ID: "t2", Type: model.TypeExpense, Amount: 30, Description: "Gas station", CategoryID: "cat-transport", Date: day(5)},
	{ID: "t3", Type: model.TypeIncome, Amount: 500, Description: "Salary", Date: day(3)},
	{ID: "t4", Type: model.TypeExpense, Amount: 8, Description: "Coffee and CAKE", CategoryID: "cat-food", Date: day(7)},
}

func ids(txns []model.Transaction) []string {
	out := make([]string, len(txns))
	for i, txn := range txns {
		out[i] = txn.ID
	}
	return out
}

func TestApply_NoFilterSortsDateDescending(t *testing.T) {
	got := Apply(testTxns, Filter{})
	assert.Equal(t, []string{"t4", "t2", "t3", "t1"}, ids(got))
}

func TestApply_SearchCaseInsensitive(t *testing.T) {
	got := Apply(testTxns, Filter{Search: "cake"})
	assert.Equal(t, []string{"t4"}, ids(got))

	got = Apply(testTxns, Filter{Search: "LUNCH"})
	assert.Equal(t, []string{"t1"}, ids(got))
}

func TestApply_CategoryAndType(t *testing.T) {
	got := Apply(testTxns, Filter{CategoryID: "cat-food"})
	assert.Equal(t, []string{"t4", "t1"}, ids(got))

	got = Apply(testTxns, Filter{Type: model.TypeIncome})
	assert.Equal(t, []string{"t3"}, ids(got))
}

func TestApply_DateRange(t *testing.T) {
	// Both bounds, inclusive.
	got := Apply(testTxns, Filter{From: day(3), To: day(5)})
	assert.Equal(t, []string{"t2", "t3"}, ids(got))

	// One-sided bounds.
	got = Apply(testTxns, Filter{From: day(5)})
	assert.Equal(t, []string{"t4", "t2"}, ids(got))

	got = Apply(testTxns, Filter{To: day(3)})
	assert.Equal(t, []string{"t3", "t1"}, ids(got))
}

func TestApply_Conjunctive(t *testing.T) {
	got := Apply(testTxns, Filter{
		Search:     "c",
		CategoryID: "cat-food",
		Type:       model.TypeExpense,
		From:       day(2),
	})
	assert.Equal(t, []string{"t4"}, ids(got))
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	original := make([]model.Transaction, len(testTxns))
	copy(original, testTxns)

	_ = Apply(testTxns, Filter{Search: "a"})
	require.Equal(t, original, testTxns)
}

func TestApply_NilInput(t *testing.T) {
	assert.Empty(t, Apply(nil, Filter{}))
}
