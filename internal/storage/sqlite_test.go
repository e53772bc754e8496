package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/takaflow/taka/internal/common"
	"github.com/takaflow/taka/internal/model"
)

// Helper function to create a test store.
func createTestStore(t *testing.T) (*SQLiteStore, func()) {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	return store, func() { _ = store.Close() }
}

func testSnapshot() *model.Snapshot {
	return &model.Snapshot{
		Accounts: []model.Account{
			{ID: "a1", Name: "Cash Wallet", Type: "Cash", Balance: decimal.NewFromInt(150)},
			{ID: "a2", Name: "bKash", Type: "Mobile", Balance: decimal.NewFromInt(-20)},
		},
		Transactions: []model.Transaction{
			{ID: "t2", Type: model.TypeIncome, Amount: decimal.NewFromInt(200), Date: "2026-08-02", AccountID: "a1", Category: "Salary"},
			{ID: "t1", Type: model.TypeExpense, Amount: decimal.NewFromInt(50), Date: "2026-08-01", AccountID: "a1", Category: "Food", Subcategory: "Snacks", Note: "tea"},
		},
		Preferences: model.Preferences{Currency: "BDT", PinHash: "sha256$abcd"},
	}
}

func TestSQLiteStore_LoadEmpty(t *testing.T) {
	store, cleanup := createTestStore(t)
	defer cleanup()

	snapshot, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if snapshot != nil {
		t.Fatalf("expected nil snapshot on empty store, got %+v", snapshot)
	}
}

func TestSQLiteStore_SaveLoadRoundTrip(t *testing.T) {
	store, cleanup := createTestStore(t)
	defer cleanup()

	ctx := context.Background()
	want := testSnapshot()
	if err := store.Save(ctx, want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected snapshot, got nil")
	}

	if len(got.Accounts) != len(want.Accounts) {
		t.Fatalf("expected %d accounts, got %d", len(want.Accounts), len(got.Accounts))
	}
	for i := range want.Accounts {
		if got.Accounts[i].ID != want.Accounts[i].ID {
			t.Errorf("account %d: expected id %s, got %s", i, want.Accounts[i].ID, got.Accounts[i].ID)
		}
		if !got.Accounts[i].Balance.Equal(want.Accounts[i].Balance) {
			t.Errorf("account %d: expected balance %s, got %s", i, want.Accounts[i].Balance, got.Accounts[i].Balance)
		}
	}

	if len(got.Transactions) != len(want.Transactions) {
		t.Fatalf("expected %d transactions, got %d", len(want.Transactions), len(got.Transactions))
	}
	// Insertion order must survive the round trip.
	if got.Transactions[0].ID != "t2" || got.Transactions[1].ID != "t1" {
		t.Errorf("transaction order not preserved: %s, %s", got.Transactions[0].ID, got.Transactions[1].ID)
	}
	if got.Transactions[1].Note != "tea" {
		t.Errorf("expected note 'tea', got %q", got.Transactions[1].Note)
	}

	if got.Preferences.PinHash != want.Preferences.PinHash {
		t.Errorf("expected pin hash %q, got %q", want.Preferences.PinHash, got.Preferences.PinHash)
	}
}

func TestSQLiteStore_SaveOverwrites(t *testing.T) {
	store, cleanup := createTestStore(t)
	defer cleanup()

	ctx := context.Background()
	first := testSnapshot()
	if err := store.Save(ctx, first); err != nil {
		t.Fatalf("first Save failed: %v", err)
	}

	second := testSnapshot()
	second.Accounts = second.Accounts[:1]
	second.Transactions = nil
	if err := store.Save(ctx, second); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(got.Accounts) != 1 {
		t.Errorf("expected 1 account after overwrite, got %d", len(got.Accounts))
	}
	if len(got.Transactions) != 0 {
		t.Errorf("expected 0 transactions after overwrite, got %d", len(got.Transactions))
	}
}

func TestSQLiteStore_LoadCorruptRecord(t *testing.T) {
	store, cleanup := createTestStore(t)
	defer cleanup()

	ctx := context.Background()
	if _, err := store.db.ExecContext(ctx,
		"INSERT INTO snapshots (key, data) VALUES (?, ?)", snapshotKey, "{not valid json"); err != nil {
		t.Fatalf("failed to plant corrupt record: %v", err)
	}

	_, err := store.Load(ctx)
	if !errors.Is(err, common.ErrCorruptSnapshot) {
		t.Fatalf("expected ErrCorruptSnapshot, got %v", err)
	}
}

func TestSQLiteStore_Delete(t *testing.T) {
	store, cleanup := createTestStore(t)
	defer cleanup()

	ctx := context.Background()
	if err := store.Save(ctx, testSnapshot()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Delete(ctx); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	snapshot, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if snapshot != nil {
		t.Fatal("expected nil snapshot after delete")
	}
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")
	ctx := context.Background()

	store, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	if err := store.Save(ctx, testSnapshot()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("Failed to reopen store: %v", err)
	}
	defer func() { _ = reopened.Close() }()

	got, err := reopened.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got == nil || len(got.Accounts) != 2 {
		t.Fatalf("expected persisted snapshot with 2 accounts, got %+v", got)
	}
}

func TestNewSQLiteStore_Validation(t *testing.T) {
	if _, err := NewSQLiteStore(""); err == nil {
		t.Fatal("expected error for empty path")
	}
	if _, err := NewSQLiteStore("   "); err == nil {
		t.Fatal("expected error for blank path")
	}
}

func TestSQLiteStore_CreatesDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "dirs", "test.db")

	store, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("expected directory to be created, got: %v", err)
	}
	_ = store.Close()
}
