package ledger

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/takaflow/taka/internal/common"
	"github.com/takaflow/taka/internal/model"
)

func TestExportImportRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	id := fundedAccount(t, store, "Checking", 300)
	addTx(t, store, model.TypeExpense, "Food", 45, id)
	addTx(t, store, model.TypeIncome, "Salary", 120, id)
	require.NoError(t, store.SetPIN(ctx, "1234"))

	var buf bytes.Buffer
	require.NoError(t, store.Export(&buf))

	before, err := store.Snapshot()
	require.NoError(t, err)

	// Import into a completely fresh store.
	other := newTestStore(t)
	require.NoError(t, other.Import(ctx, bytes.NewReader(buf.Bytes())))

	after, err := other.Snapshot()
	require.NoError(t, err)

	require.Len(t, after.Accounts, len(before.Accounts))
	for i := range before.Accounts {
		assert.Equal(t, before.Accounts[i].ID, after.Accounts[i].ID)
		assert.Equal(t, before.Accounts[i].Name, after.Accounts[i].Name)
		assert.True(t, before.Accounts[i].Balance.Equal(after.Accounts[i].Balance))
	}

	require.Len(t, after.Transactions, len(before.Transactions))
	for i := range before.Transactions {
		assert.Equal(t, before.Transactions[i].ID, after.Transactions[i].ID)
		assert.Equal(t, before.Transactions[i].Type, after.Transactions[i].Type)
		assert.True(t, before.Transactions[i].Amount.Equal(after.Transactions[i].Amount))
	}

	assert.Equal(t, before.Preferences.PinHash, after.Preferences.PinHash)

	// The imported PIN still verifies.
	ok, err := other.VerifyPIN("1234")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestImportRejectsMalformedDocuments(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "not json", doc: "definitely not json"},
		{name: "missing transactions", doc: `{"accounts": []}`},
		{name: "missing accounts", doc: `{"transactions": []}`},
		{name: "empty object", doc: `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(t)
			id := fundedAccount(t, store, "Checking", 300)

			err := store.Import(context.Background(), strings.NewReader(tt.doc))

			var userErr *common.UserError
			assert.ErrorAs(t, err, &userErr)

			// Existing state must be untouched after a rejected import.
			account, accErr := store.Account(id)
			require.NoError(t, accErr)
			assert.True(t, account.Balance.Equal(decimal.NewFromInt(300)))
		})
	}
}

func TestImportReplacesWholesale(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	fundedAccount(t, store, "Doomed", 999)

	doc := `{
		"accounts": [{"id": "x1", "name": "Imported", "type": "Bank", "balance": "42"}],
		"transactions": [],
		"preferences": {"currency": "BDT"}
	}`
	require.NoError(t, store.Import(ctx, strings.NewReader(doc)))

	accounts, err := store.Accounts()
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "Imported", accounts[0].Name)
	assert.True(t, accounts[0].Balance.Equal(decimal.NewFromInt(42)))
}

func TestExportFilenameEmbedsDate(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "taka-export-2026-08-30.json", ExportFilename(now))
}

func TestReportProjection(t *testing.T) {
	store := newTestStore(t)
	id := fundedAccount(t, store, "Checking", 500)
	addTx(t, store, model.TypeExpense, "Food", 60, id)
	addTx(t, store, model.TypeIncome, "Salary", 200, id)

	rows, err := store.Report()
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, "INCOME", rows[0].Type)
	assert.Equal(t, "Checking", rows[0].Account)
	assert.True(t, rows[0].Amount.Equal(decimal.NewFromInt(200)), "income is positive")
	assert.Equal(t, "EXPENSE", rows[1].Type)
	assert.True(t, rows[1].Amount.Equal(decimal.NewFromInt(-60)), "expense is negative")
}
