// Package model defines the core domain types for the wallet ledger.
package model

import "github.com/shopspring/decimal"

// Account represents a place money lives: a cash wallet, a mobile money
// account, a bank account. Its balance is mutated only by applying or
// reversing transactions.
type Account struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Type    string          `json:"type"`
	Balance decimal.Decimal `json:"balance"`
}

// CanDebit reports whether the account holds at least amount.
func (a *Account) CanDebit(amount decimal.Decimal) bool {
	return a.Balance.GreaterThanOrEqual(amount)
}

// Debit subtracts amount from the balance.
func (a *Account) Debit(amount decimal.Decimal) {
	a.Balance = a.Balance.Sub(amount)
}

// Credit adds amount to the balance.
func (a *Account) Credit(amount decimal.Decimal) {
	a.Balance = a.Balance.Add(amount)
}
