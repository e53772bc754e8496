package ledger

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/takaflow/taka/internal/common"
	"github.com/takaflow/taka/internal/ledger/ledgertest"
	"github.com/takaflow/taka/internal/model"
	"github.com/takaflow/taka/internal/storage"
)

// newTestStore creates an initialized store backed by a throwaway SQLite
// database.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	snapshots, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = snapshots.Close() })

	store := New(snapshots)
	require.NoError(t, store.Initialize(context.Background()))
	return store
}

// fundedAccount adds an account with the given balance and returns its id.
func fundedAccount(t *testing.T, store *Store, name string, balance int64) string {
	t.Helper()

	account, err := store.AddAccount(context.Background(), name, "Bank", decimal.NewFromInt(balance))
	require.NoError(t, err)
	return account.ID
}

func TestInitializeSeedsDefaults(t *testing.T) {
	store := newTestStore(t)

	accounts, err := store.Accounts()
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "Cash Wallet", accounts[0].Name)
	assert.Equal(t, "Cash", accounts[0].Type)
	assert.Equal(t, "bKash", accounts[1].Name)
	assert.Equal(t, "Mobile", accounts[1].Type)
	for _, account := range accounts {
		assert.True(t, account.Balance.IsZero(), "seed account %s should start at zero", account.Name)
	}

	transactions, err := store.Transactions()
	require.NoError(t, err)
	assert.Empty(t, transactions)
}

func TestInitializeReloadsPersistedState(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	snapshots, err := storage.NewSQLiteStore(dbPath)
	require.NoError(t, err)

	ctx := context.Background()
	store := New(snapshots)
	require.NoError(t, store.Initialize(ctx))

	accounts, err := store.Accounts()
	require.NoError(t, err)
	_, err = store.AddTransaction(ctx, TransactionInput{
		Type:      model.TypeIncome,
		Amount:    decimal.NewFromInt(500),
		Date:      "2026-08-01",
		AccountID: accounts[0].ID,
		Category:  "Salary",
	})
	require.NoError(t, err)
	require.NoError(t, snapshots.Close())

	// A fresh store over the same database must reload, not reseed.
	snapshots, err = storage.NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer func() { _ = snapshots.Close() }()

	reloaded := New(snapshots)
	require.NoError(t, reloaded.Initialize(ctx))

	account, err := reloaded.Account(accounts[0].ID)
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(decimal.NewFromInt(500)),
		"expected reloaded balance 500, got %s", account.Balance)

	transactions, err := reloaded.Transactions()
	require.NoError(t, err)
	assert.Len(t, transactions, 1)
}

func TestInitializeHealsCorruptSnapshot(t *testing.T) {
	snapshots := ledgertest.NewMemoryStore()
	snapshots.Corrupt()

	store := New(snapshots)
	require.NoError(t, store.Initialize(context.Background()))

	accounts, err := store.Accounts()
	require.NoError(t, err)
	assert.Len(t, accounts, 2, "corrupt snapshot should be replaced by seed defaults")
}

func TestOperationsRequireInitialize(t *testing.T) {
	store := New(ledgertest.NewMemoryStore())
	ctx := context.Background()

	_, err := store.Accounts()
	assert.ErrorIs(t, err, common.ErrNotInitialized)

	_, err = store.AddTransaction(ctx, TransactionInput{})
	assert.ErrorIs(t, err, common.ErrNotInitialized)

	err = store.DeleteTransaction(ctx, "nope")
	assert.ErrorIs(t, err, common.ErrNotInitialized)

	_, err = store.CategoryBreakdown()
	assert.ErrorIs(t, err, common.ErrNotInitialized)
}

func TestAddTransaction(t *testing.T) {
	tests := []struct {
		name        string
		setup       func(t *testing.T, store *Store) TransactionInput
		wantErr     error
		wantBalance int64 // source account balance after the call
	}{
		{
			name: "expense debits the account",
			setup: func(t *testing.T, store *Store) TransactionInput {
				id := fundedAccount(t, store, "Checking", 200)
				return TransactionInput{
					Type: model.TypeExpense, Amount: decimal.NewFromInt(50),
					Date: "2026-08-10", AccountID: id, Category: "Food",
				}
			},
			wantBalance: 150,
		},
		{
			name: "income credits the account",
			setup: func(t *testing.T, store *Store) TransactionInput {
				id := fundedAccount(t, store, "Checking", 200)
				return TransactionInput{
					Type: model.TypeIncome, Amount: decimal.NewFromInt(75),
					Date: "2026-08-10", AccountID: id, Category: "Salary",
				}
			},
			wantBalance: 275,
		},
		{
			name: "expense exceeding balance is rejected",
			setup: func(t *testing.T, store *Store) TransactionInput {
				id := fundedAccount(t, store, "Checking", 50)
				return TransactionInput{
					Type: model.TypeExpense, Amount: decimal.NewFromInt(100),
					Date: "2026-08-10", AccountID: id, Category: "Food",
				}
			},
			wantErr:     common.ErrInsufficientFunds,
			wantBalance: 50,
		},
		{
			name: "zero amount is rejected",
			setup: func(t *testing.T, store *Store) TransactionInput {
				id := fundedAccount(t, store, "Checking", 50)
				return TransactionInput{
					Type: model.TypeExpense, Amount: decimal.Zero,
					Date: "2026-08-10", AccountID: id, Category: "Food",
				}
			},
			wantErr:     common.ErrInvalidAmount,
			wantBalance: 50,
		},
		{
			name: "unknown account is rejected",
			setup: func(t *testing.T, store *Store) TransactionInput {
				return TransactionInput{
					Type: model.TypeExpense, Amount: decimal.NewFromInt(10),
					Date: "2026-08-10", AccountID: "missing", Category: "Food",
				}
			},
			wantErr: common.ErrAccountNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(t)
			input := tt.setup(t, store)

			tx, err := store.AddTransaction(context.Background(), input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, tx.ID)
				assert.Equal(t, input.Type, tx.Type)
			}

			if input.AccountID != "" && input.AccountID != "missing" {
				account, accErr := store.Account(input.AccountID)
				require.NoError(t, accErr)
				assert.True(t, account.Balance.Equal(decimal.NewFromInt(tt.wantBalance)),
					"expected balance %d, got %s", tt.wantBalance, account.Balance)
			}
		})
	}
}

func TestAddTransactionInsertsAtHead(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	id := fundedAccount(t, store, "Checking", 0)

	for _, category := range []string{"first", "second", "third"} {
		_, err := store.AddTransaction(ctx, TransactionInput{
			Type: model.TypeIncome, Amount: decimal.NewFromInt(10),
			Date: "2026-08-10", AccountID: id, Category: category,
		})
		require.NoError(t, err)
	}

	transactions, err := store.Transactions()
	require.NoError(t, err)
	require.Len(t, transactions, 3)
	assert.Equal(t, "third", transactions[0].Category, "most recent transaction should come first")
	assert.Equal(t, "first", transactions[2].Category)
}

func TestTransfer(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	from := fundedAccount(t, store, "Checking", 100)
	to := fundedAccount(t, store, "Savings", 10)

	tx, err := store.AddTransaction(ctx, TransactionInput{
		Type: model.TypeTransfer, Amount: decimal.NewFromInt(30),
		Date: "2026-08-10", AccountID: from, ToAccountID: to,
	})
	require.NoError(t, err)

	assert.Equal(t, model.TransferCategory, tx.Category)
	assert.Equal(t, "To: Savings", tx.Subcategory)

	source, err := store.Account(from)
	require.NoError(t, err)
	dest, err := store.Account(to)
	require.NoError(t, err)
	assert.True(t, source.Balance.Equal(decimal.NewFromInt(70)))
	assert.True(t, dest.Balance.Equal(decimal.NewFromInt(40)))
}

func TestTransferToSameAccountRejected(t *testing.T) {
	store := newTestStore(t)
	id := fundedAccount(t, store, "Checking", 100)

	_, err := store.AddTransaction(context.Background(), TransactionInput{
		Type: model.TypeTransfer, Amount: decimal.NewFromInt(30),
		Date: "2026-08-10", AccountID: id, ToAccountID: id,
	})
	assert.ErrorIs(t, err, common.ErrInvalidTransfer)

	account, accErr := store.Account(id)
	require.NoError(t, accErr)
	assert.True(t, account.Balance.Equal(decimal.NewFromInt(100)), "balance must be untouched")
}

func TestTransferInsufficientFundsLeavesBothLegsUntouched(t *testing.T) {
	store := newTestStore(t)
	from := fundedAccount(t, store, "Checking", 20)
	to := fundedAccount(t, store, "Savings", 5)

	_, err := store.AddTransaction(context.Background(), TransactionInput{
		Type: model.TypeTransfer, Amount: decimal.NewFromInt(30),
		Date: "2026-08-10", AccountID: from, ToAccountID: to,
	})
	assert.ErrorIs(t, err, common.ErrInsufficientFunds)

	source, _ := store.Account(from)
	dest, _ := store.Account(to)
	assert.True(t, source.Balance.Equal(decimal.NewFromInt(20)))
	assert.True(t, dest.Balance.Equal(decimal.NewFromInt(5)))
}

func TestDeleteTransactionRestoresBalances(t *testing.T) {
	tests := []struct {
		name  string
		input func(from, to string) TransactionInput
	}{
		{
			name: "expense",
			input: func(from, _ string) TransactionInput {
				return TransactionInput{
					Type: model.TypeExpense, Amount: decimal.NewFromInt(40),
					Date: "2026-08-10", AccountID: from, Category: "Food",
				}
			},
		},
		{
			name: "income",
			input: func(from, _ string) TransactionInput {
				return TransactionInput{
					Type: model.TypeIncome, Amount: decimal.NewFromInt(40),
					Date: "2026-08-10", AccountID: from, Category: "Salary",
				}
			},
		},
		{
			name: "transfer",
			input: func(from, to string) TransactionInput {
				return TransactionInput{
					Type: model.TypeTransfer, Amount: decimal.NewFromInt(40),
					Date: "2026-08-10", AccountID: from, ToAccountID: to,
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(t)
			ctx := context.Background()
			from := fundedAccount(t, store, "Checking", 100)
			to := fundedAccount(t, store, "Savings", 100)

			tx, err := store.AddTransaction(ctx, tt.input(from, to))
			require.NoError(t, err)

			require.NoError(t, store.DeleteTransaction(ctx, tx.ID))

			// Add then delete must be a perfect round trip.
			source, _ := store.Account(from)
			dest, _ := store.Account(to)
			assert.True(t, source.Balance.Equal(decimal.NewFromInt(100)),
				"source balance not restored: %s", source.Balance)
			assert.True(t, dest.Balance.Equal(decimal.NewFromInt(100)),
				"destination balance not restored: %s", dest.Balance)

			transactions, _ := store.Transactions()
			assert.Empty(t, transactions)
		})
	}
}

func TestDeleteTransactionNotFound(t *testing.T) {
	store := newTestStore(t)
	err := store.DeleteTransaction(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, common.ErrTransactionNotFound)
}

func TestBalancesMatchTransactionLog(t *testing.T) {
	// After an arbitrary sequence of adds and deletes, the sum of balances
	// must equal the net signed effect of the surviving transactions plus
	// opening balances.
	store := newTestStore(t)
	ctx := context.Background()
	a := fundedAccount(t, store, "A", 1000)
	b := fundedAccount(t, store, "B", 1000)

	var ids []string
	inputs := []TransactionInput{
		{Type: model.TypeExpense, Amount: decimal.NewFromInt(120), Date: "2026-08-01", AccountID: a, Category: "Food"},
		{Type: model.TypeIncome, Amount: decimal.NewFromInt(300), Date: "2026-08-02", AccountID: b, Category: "Salary"},
		{Type: model.TypeTransfer, Amount: decimal.NewFromInt(80), Date: "2026-08-03", AccountID: a, ToAccountID: b},
		{Type: model.TypeExpense, Amount: decimal.NewFromInt(45), Date: "2026-08-04", AccountID: b, Category: "Transport"},
	}
	for _, input := range inputs {
		tx, err := store.AddTransaction(ctx, input)
		require.NoError(t, err)
		ids = append(ids, tx.ID)
	}

	require.NoError(t, store.DeleteTransaction(ctx, ids[0]))
	require.NoError(t, store.DeleteTransaction(ctx, ids[2]))

	transactions, err := store.Transactions()
	require.NoError(t, err)

	// Replay the surviving log from the opening balances.
	net := decimal.Zero
	for i := range transactions {
		tx := &transactions[i]
		if tx.Type == model.TypeTransfer {
			continue // transfers are internal, net zero
		}
		net = net.Add(tx.SignedAmount())
	}

	total, err := store.TotalBalance()
	require.NoError(t, err)
	opening := decimal.NewFromInt(2000)
	assert.True(t, total.Equal(opening.Add(net)),
		"total %s != opening %s + net %s", total, opening, net)
}

func TestMutationsSurvivePersistFailure(t *testing.T) {
	// A failed snapshot write is logged, not surfaced: the in-memory
	// mutation stands and the next successful write catches up.
	snapshots := ledgertest.NewMemoryStore()
	ctx := context.Background()

	store := New(snapshots)
	require.NoError(t, store.Initialize(ctx))

	snapshots.SetSaveError(assert.AnError)
	account, err := store.AddAccount(ctx, "Checking", "Bank", decimal.NewFromInt(100))
	require.NoError(t, err)

	snapshots.SetSaveError(nil)
	_, err = store.AddTransaction(ctx, TransactionInput{
		Type: model.TypeIncome, Amount: decimal.NewFromInt(50),
		Date: "2026-08-10", AccountID: account.ID, Category: "Salary",
	})
	require.NoError(t, err)

	stored := snapshots.Stored()
	require.NotNil(t, stored)
	assert.Len(t, stored.Accounts, 3, "the catch-up write carries the earlier mutation too")
	assert.Len(t, stored.Transactions, 1)
}

func TestPINLifecycle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	hasPIN, err := store.HasPIN()
	require.NoError(t, err)
	assert.False(t, hasPIN)

	ok, err := store.VerifyPIN("1234")
	require.NoError(t, err)
	assert.False(t, ok, "verification must fail with no PIN set")

	require.NoError(t, store.SetPIN(ctx, "1234"))

	hasPIN, err = store.HasPIN()
	require.NoError(t, err)
	assert.True(t, hasPIN)

	ok, err = store.VerifyPIN("1234")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.VerifyPIN("4321")
	require.NoError(t, err)
	assert.False(t, ok)

	// The plain text must never be persisted.
	snapshot, err := store.Snapshot()
	require.NoError(t, err)
	assert.NotContains(t, snapshot.Preferences.PinHash, "1234")
}

func TestResetReturnsToUninitialized(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	snapshots, err := storage.NewSQLiteStore(dbPath)
	require.NoError(t, err)
	defer func() { _ = snapshots.Close() }()

	ctx := context.Background()
	store := New(snapshots)
	require.NoError(t, store.Initialize(ctx))
	fundedAccount(t, store, "Extra", 500)

	require.NoError(t, store.Reset(ctx))

	_, err = store.Accounts()
	assert.ErrorIs(t, err, common.ErrNotInitialized)

	// Reinitializing reseeds defaults, the extra account is gone.
	require.NoError(t, store.Initialize(ctx))
	accounts, err := store.Accounts()
	require.NoError(t, err)
	assert.Len(t, accounts, 2)
}

func TestSnapshotIsACopy(t *testing.T) {
	store := newTestStore(t)

	snapshot, err := store.Snapshot()
	require.NoError(t, err)
	snapshot.Accounts[0].Balance = decimal.NewFromInt(999999)
	snapshot.Accounts[0].Name = "mutated"

	accounts, err := store.Accounts()
	require.NoError(t, err)
	assert.Equal(t, "Cash Wallet", accounts[0].Name)
	assert.True(t, accounts[0].Balance.IsZero())
}
