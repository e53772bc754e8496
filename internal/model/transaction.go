package model

import "github.com/shopspring/decimal"

// TransactionType describes the direction of a transaction.
type TransactionType string

const (
	// TypeExpense represents money leaving an account.
	TypeExpense TransactionType = "expense"
	// TypeIncome represents money entering an account.
	TypeIncome TransactionType = "income"
	// TypeTransfer represents money moving between two accounts.
	TypeTransfer TransactionType = "transfer"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	switch t {
	case TypeExpense, TypeIncome, TypeTransfer:
		return true
	}
	return false
}

// Transaction is a single immutable ledger entry. Amount is always positive;
// the sign of its effect on balances is implied by Type. For transfers
// AccountID is the source and ToAccountID the destination.
type Transaction struct {
	ID          string          `json:"id"`
	Type        TransactionType `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	AccountID   string          `json:"accountId"`
	ToAccountID string          `json:"toAccountId,omitempty"`
	Category    string          `json:"category"`
	Subcategory string          `json:"subcategory,omitempty"`
	Note        string          `json:"note,omitempty"`
}

// SignedAmount returns the amount with the sign of its effect on the source
// account: negative for expenses and transfers, positive for income.
func (t *Transaction) SignedAmount() decimal.Decimal {
	if t.Type == TypeIncome {
		return t.Amount
	}
	return t.Amount.Neg()
}
