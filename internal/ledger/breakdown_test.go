package ledger

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/takaflow/taka/internal/model"
)

func addTx(t *testing.T, store *Store, txType model.TransactionType, category string, amount int64, accountID string) {
	t.Helper()

	_, err := store.AddTransaction(context.Background(), TransactionInput{
		Type:      txType,
		Amount:    decimal.NewFromInt(amount),
		Date:      "2026-08-15",
		AccountID: accountID,
		Category:  category,
	})
	require.NoError(t, err)
}

func TestCategoryBreakdown(t *testing.T) {
	store := newTestStore(t)
	id := fundedAccount(t, store, "Checking", 1000)

	addTx(t, store, model.TypeExpense, "Food", 60, id)
	addTx(t, store, model.TypeExpense, "Food", 40, id)
	addTx(t, store, model.TypeIncome, "Salary", 500, id)

	shares, err := store.CategoryBreakdown()
	require.NoError(t, err)

	// Income is excluded from both numerator and denominator.
	require.Len(t, shares, 1)
	assert.Equal(t, "Food", shares[0].Category)
	assert.True(t, shares[0].Amount.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, 100, shares[0].Percent)
}

func TestCategoryBreakdownSortsByAmount(t *testing.T) {
	store := newTestStore(t)
	id := fundedAccount(t, store, "Checking", 1000)

	addTx(t, store, model.TypeExpense, "Transport", 25, id)
	addTx(t, store, model.TypeExpense, "Food", 60, id)
	addTx(t, store, model.TypeExpense, "Health & Wellness", 15, id)

	shares, err := store.CategoryBreakdown()
	require.NoError(t, err)

	require.Len(t, shares, 3)
	assert.Equal(t, "Food", shares[0].Category)
	assert.Equal(t, 60, shares[0].Percent)
	assert.Equal(t, "Transport", shares[1].Category)
	assert.Equal(t, 25, shares[1].Percent)
	assert.Equal(t, "Health & Wellness", shares[2].Category)
	assert.Equal(t, 15, shares[2].Percent)
}

func TestCategoryBreakdownExcludesTransfers(t *testing.T) {
	store := newTestStore(t)
	from := fundedAccount(t, store, "Checking", 1000)
	to := fundedAccount(t, store, "Savings", 0)

	addTx(t, store, model.TypeExpense, "Food", 50, from)
	_, err := store.AddTransaction(context.Background(), TransactionInput{
		Type: model.TypeTransfer, Amount: decimal.NewFromInt(200),
		Date: "2026-08-15", AccountID: from, ToAccountID: to,
	})
	require.NoError(t, err)

	shares, err := store.CategoryBreakdown()
	require.NoError(t, err)

	require.Len(t, shares, 1)
	assert.Equal(t, "Food", shares[0].Category)
	assert.Equal(t, 100, shares[0].Percent)
}

func TestCategoryBreakdownEmptyWithoutExpenses(t *testing.T) {
	store := newTestStore(t)
	id := fundedAccount(t, store, "Checking", 0)

	// Only income: no division by zero, just an empty breakdown.
	addTx(t, store, model.TypeIncome, "Salary", 500, id)

	shares, err := store.CategoryBreakdown()
	require.NoError(t, err)
	assert.Empty(t, shares)
}

func TestDashboardSummary(t *testing.T) {
	store := newTestStore(t)
	id := fundedAccount(t, store, "Checking", 100)

	for i := 0; i < RecentLimit+5; i++ {
		addTx(t, store, model.TypeIncome, "Salary", 10, id)
	}

	summary, err := store.DashboardSummary()
	require.NoError(t, err)

	assert.Len(t, summary.Recent, RecentLimit)
	assert.Len(t, summary.Accounts, 3) // two seeds plus Checking
	expected := decimal.NewFromInt(100 + 10*(RecentLimit+5))
	assert.True(t, summary.TotalBalance.Equal(expected),
		"expected total %s, got %s", expected, summary.TotalBalance)
}
