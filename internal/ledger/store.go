// Package ledger implements the wallet's single source of truth: the
// in-memory snapshot of accounts and transactions, the mutation rules that
// keep balances consistent with the transaction log, and the derived views
// built on top of it. Every mutation is mirrored to the snapshot store.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"

	"github.com/takaflow/taka/internal/common"
	"github.com/takaflow/taka/internal/model"
	"github.com/takaflow/taka/internal/secret"
	"github.com/takaflow/taka/internal/service"
)

// RecentLimit is how many transactions the dashboard summary includes.
const RecentLimit = 10

// Store owns the wallet snapshot. It is either Uninitialized (snapshot nil)
// or Ready; Initialize is the only way in and Reset the only way out. The
// execution model is single-user and synchronous, so no locking is needed.
type Store struct {
	persistence service.SnapshotStore
	digester    secret.Digester
	snapshot    *model.Snapshot
	currency    string
	newID       func() string
}

// Option configures a Store.
type Option func(*Store)

// WithDigester selects the PIN digest scheme. Defaults to SHA-256.
func WithDigester(d secret.Digester) Option {
	return func(s *Store) { s.digester = d }
}

// WithCurrency sets the ledger currency code for fresh snapshots.
func WithCurrency(code string) Option {
	return func(s *Store) { s.currency = code }
}

// WithIDGenerator overrides transaction/account id generation. Used in tests.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// New creates an uninitialized Store backed by the given persistence layer.
func New(persistence service.SnapshotStore, opts ...Option) *Store {
	s := &Store{
		persistence: persistence,
		digester:    secret.SHA256Digester{},
		currency:    model.DefaultCurrency,
		newID:       func() string { return ulid.Make().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize loads the persisted snapshot, seeding defaults when none exists.
// A corrupt snapshot is discarded and replaced by the defaults rather than
// surfaced as an error.
func (s *Store) Initialize(ctx context.Context) error {
	snapshot, err := s.persistence.Load(ctx)
	switch {
	case errors.Is(err, common.ErrCorruptSnapshot):
		slog.Warn("persisted snapshot is corrupt, reseeding defaults", "error", err)
		snapshot = nil
	case err != nil:
		return fmt.Errorf("failed to load snapshot: %w", err)
	}

	if snapshot == nil {
		snapshot = s.defaultSnapshot()
		if err := s.persistence.Save(ctx, snapshot); err != nil {
			return fmt.Errorf("failed to persist seed snapshot: %w", err)
		}
		slog.Info("seeded new wallet", "accounts", len(snapshot.Accounts))
	}

	if snapshot.Preferences.Currency == "" {
		snapshot.Preferences.Currency = s.currency
	}

	s.snapshot = snapshot
	return nil
}

// defaultSnapshot seeds the two starter accounts every fresh wallet gets.
func (s *Store) defaultSnapshot() *model.Snapshot {
	return &model.Snapshot{
		Accounts: []model.Account{
			{ID: s.newID(), Name: "Cash Wallet", Type: "Cash", Balance: decimal.Zero},
			{ID: s.newID(), Name: "bKash", Type: "Mobile", Balance: decimal.Zero},
		},
		Transactions: []model.Transaction{},
		Preferences:  model.Preferences{Currency: s.currency},
	}
}

func (s *Store) ready() error {
	if s.snapshot == nil {
		return common.ErrNotInitialized
	}
	return nil
}

// persist mirrors the in-memory snapshot to durable storage. The mutation
// has already happened; a failed write is logged, not propagated, matching
// the blind-overwrite persistence model.
func (s *Store) persist(ctx context.Context) {
	if err := s.persistence.Save(ctx, s.snapshot); err != nil {
		common.LogError(err, "failed to persist snapshot", common.Fields{
			"accounts":     len(s.snapshot.Accounts),
			"transactions": len(s.snapshot.Transactions),
		})
	}
}

// AddAccount appends a new account with a fresh id and the given opening
// balance, and persists.
func (s *Store) AddAccount(ctx context.Context, name, accType string, openingBalance decimal.Decimal) (*model.Account, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, common.NewUserError("account name cannot be empty", common.ErrInvalidConfig)
	}
	if accType == "" {
		accType = "Bank"
	}

	account := model.Account{
		ID:      s.newID(),
		Name:    name,
		Type:    accType,
		Balance: openingBalance,
	}
	s.snapshot.Accounts = append(s.snapshot.Accounts, account)
	s.persist(ctx)

	slog.Info("account added", "id", account.ID, "name", account.Name)
	return &account, nil
}

// TransactionInput carries the user-supplied fields of a new transaction.
type TransactionInput struct {
	Type        model.TransactionType
	Amount      decimal.Decimal
	Date        string
	AccountID   string
	ToAccountID string
	Category    string
	Subcategory string
	Note        string
}

// AddTransaction validates the input, applies its balance effect, inserts
// the transaction at the head of the log and persists. Validation happens
// before any balance changes, so a rejected transaction never leaves a
// partially applied state behind.
func (s *Store) AddTransaction(ctx context.Context, input TransactionInput) (*model.Transaction, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if !input.Type.Valid() {
		return nil, fmt.Errorf("unknown transaction type %q", input.Type)
	}
	if !input.Amount.IsPositive() {
		return nil, common.ErrInvalidAmount
	}

	source := s.snapshot.Account(input.AccountID)
	if source == nil {
		return nil, fmt.Errorf("%w: %s", common.ErrAccountNotFound, input.AccountID)
	}

	tx := model.Transaction{
		ID:          s.newID(),
		Type:        input.Type,
		Amount:      input.Amount,
		Date:        input.Date,
		AccountID:   input.AccountID,
		Category:    input.Category,
		Subcategory: input.Subcategory,
		Note:        input.Note,
	}

	switch input.Type {
	case model.TypeExpense:
		if !source.CanDebit(input.Amount) {
			return nil, common.ErrInsufficientFunds
		}
		source.Debit(input.Amount)

	case model.TypeIncome:
		source.Credit(input.Amount)

	case model.TypeTransfer:
		if input.ToAccountID == "" || input.ToAccountID == input.AccountID {
			return nil, common.ErrInvalidTransfer
		}
		dest := s.snapshot.Account(input.ToAccountID)
		if dest == nil {
			return nil, fmt.Errorf("%w: %s", common.ErrAccountNotFound, input.ToAccountID)
		}
		if !source.CanDebit(input.Amount) {
			return nil, common.ErrInsufficientFunds
		}
		source.Debit(input.Amount)
		dest.Credit(input.Amount)

		tx.ToAccountID = input.ToAccountID
		tx.Category = model.TransferCategory
		tx.Subcategory = "To: " + dest.Name
	}

	// Most recent first
	s.snapshot.Transactions = append([]model.Transaction{tx}, s.snapshot.Transactions...)
	s.persist(ctx)

	slog.Info("transaction added", "id", tx.ID, "type", tx.Type, "amount", tx.Amount)
	return &tx, nil
}

// DeleteTransaction reverses the transaction's balance effect and removes it
// from the log. Transfers are fully reversed: the source leg is refunded and
// the destination leg withdrawn. Transfers recorded without a destination
// (imported from older data) cannot be reversed safely and are rejected.
func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	if err := s.ready(); err != nil {
		return err
	}

	idx := -1
	for i := range s.snapshot.Transactions {
		if s.snapshot.Transactions[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %s", common.ErrTransactionNotFound, id)
	}

	tx := s.snapshot.Transactions[idx]
	switch tx.Type {
	case model.TypeExpense:
		if account := s.snapshot.Account(tx.AccountID); account != nil {
			account.Credit(tx.Amount)
		}
	case model.TypeIncome:
		if account := s.snapshot.Account(tx.AccountID); account != nil {
			account.Debit(tx.Amount)
		}
	case model.TypeTransfer:
		if tx.ToAccountID == "" {
			return common.NewUserError("this transfer has no recorded destination and cannot be reversed", common.ErrInvalidTransfer)
		}
		if source := s.snapshot.Account(tx.AccountID); source != nil {
			source.Credit(tx.Amount)
		}
		if dest := s.snapshot.Account(tx.ToAccountID); dest != nil {
			dest.Debit(tx.Amount)
		}
	}

	s.snapshot.Transactions = append(s.snapshot.Transactions[:idx], s.snapshot.Transactions[idx+1:]...)
	s.persist(ctx)

	slog.Info("transaction deleted", "id", id, "type", tx.Type)
	return nil
}

// Accounts returns a copy of all accounts in creation order.
func (s *Store) Accounts() ([]model.Account, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	accounts := make([]model.Account, len(s.snapshot.Accounts))
	copy(accounts, s.snapshot.Accounts)
	return accounts, nil
}

// Account returns a copy of the account with the given id.
func (s *Store) Account(id string) (*model.Account, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	account := s.snapshot.Account(id)
	if account == nil {
		return nil, fmt.Errorf("%w: %s", common.ErrAccountNotFound, id)
	}
	out := *account
	return &out, nil
}

// AccountName resolves an account id to its display name for rendering,
// falling back to "Unknown" for dangling references.
func (s *Store) AccountName(id string) string {
	if s.snapshot == nil {
		return "Unknown"
	}
	return s.snapshot.AccountName(id)
}

// Transactions returns a copy of the transaction log, most recent first.
func (s *Store) Transactions() ([]model.Transaction, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	transactions := make([]model.Transaction, len(s.snapshot.Transactions))
	copy(transactions, s.snapshot.Transactions)
	return transactions, nil
}

// TotalBalance sums all account balances.
func (s *Store) TotalBalance() (decimal.Decimal, error) {
	if err := s.ready(); err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for i := range s.snapshot.Accounts {
		total = total.Add(s.snapshot.Accounts[i].Balance)
	}
	return total, nil
}

// Currency returns the configured ledger currency code.
func (s *Store) Currency() string {
	if s.snapshot != nil && s.snapshot.Preferences.Currency != "" {
		return s.snapshot.Preferences.Currency
	}
	return s.currency
}

// HasPIN reports whether a PIN has been set.
func (s *Store) HasPIN() (bool, error) {
	if err := s.ready(); err != nil {
		return false, err
	}
	return s.snapshot.Preferences.PinHash != "", nil
}

// SetPIN stores a one-way digest of the PIN and persists. The plain text is
// never stored.
func (s *Store) SetPIN(ctx context.Context, plain string) error {
	if err := s.ready(); err != nil {
		return err
	}
	if strings.TrimSpace(plain) == "" {
		return common.NewUserError("PIN cannot be empty", common.ErrInvalidConfig)
	}

	s.snapshot.Preferences.PinHash = secret.Encode(s.digester, plain)
	s.persist(ctx)
	return nil
}

// VerifyPIN compares the input against the stored digest. A mismatch is a
// normal false outcome, not an error. With no PIN set, verification fails.
func (s *Store) VerifyPIN(plain string) (bool, error) {
	if err := s.ready(); err != nil {
		return false, err
	}
	return secret.Verify(plain, s.snapshot.Preferences.PinHash), nil
}

// Snapshot returns a deep copy of the full state, for sync and export
// collaborators.
func (s *Store) Snapshot() (*model.Snapshot, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.snapshot.Clone(), nil
}

// Reset discards the persisted snapshot and returns the store to its
// uninitialized state. The next Initialize reseeds defaults.
func (s *Store) Reset(ctx context.Context) error {
	if err := s.ready(); err != nil {
		return err
	}
	if err := s.persistence.Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	s.snapshot = nil
	return nil
}
