package model

// Preferences holds per-wallet settings persisted alongside the ledger.
// PinHash stores only a one-way digest of the PIN, never the plain text,
// in "scheme$digest" form.
type Preferences struct {
	Currency string `json:"currency"`
	PinHash  string `json:"pinHash,omitempty"`
}

// Snapshot is the complete persisted state of the wallet: every account,
// every transaction (most recent first), and user preferences. The sum of
// account balances always equals the net signed effect of the transactions
// present, so balances can be rebuilt by replaying the log in any order.
type Snapshot struct {
	Accounts     []Account     `json:"accounts"`
	Transactions []Transaction `json:"transactions"`
	Preferences  Preferences   `json:"preferences"`
}

// Clone returns a deep copy of the snapshot. Collaborators such as the
// sheets sync writer receive clones so they can never mutate ledger state.
func (s *Snapshot) Clone() *Snapshot {
	out := &Snapshot{
		Accounts:     make([]Account, len(s.Accounts)),
		Transactions: make([]Transaction, len(s.Transactions)),
		Preferences:  s.Preferences,
	}
	copy(out.Accounts, s.Accounts)
	copy(out.Transactions, s.Transactions)
	return out
}

// Account returns the account with the given id, or nil.
func (s *Snapshot) Account(id string) *Account {
	for i := range s.Accounts {
		if s.Accounts[i].ID == id {
			return &s.Accounts[i]
		}
	}
	return nil
}

// AccountName resolves an account id to its display name, falling back to
// "Unknown" for dangling references in imported data.
func (s *Snapshot) AccountName(id string) string {
	if a := s.Account(id); a != nil {
		return a.Name
	}
	return "Unknown"
}
