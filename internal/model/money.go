package model

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the ledger currency used when none is configured.
const DefaultCurrency = "BDT"

// FormatAmount renders a decimal amount with the currency's symbol and
// grouping, e.g. "৳1,250.00". Unknown currency codes fall back to the
// default currency.
func FormatAmount(amount decimal.Decimal, currencyCode string) string {
	cur := money.GetCurrency(currencyCode)
	if cur == nil {
		cur = money.GetCurrency(DefaultCurrency)
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, cur.Code).Display()
}
