package ledger

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ReportRow is one line of the printable transaction report.
type ReportRow struct {
	Date     string
	Type     string
	Category string
	Account  string
	Amount   decimal.Decimal
}

// Report projects the full transaction log into printable rows, most recent
// first. Amounts carry the sign of their effect on the source account. The
// projection never mutates the store.
func (s *Store) Report() ([]ReportRow, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	rows := make([]ReportRow, 0, len(s.snapshot.Transactions))
	for i := range s.snapshot.Transactions {
		tx := &s.snapshot.Transactions[i]
		rows = append(rows, ReportRow{
			Date:     tx.Date,
			Type:     strings.ToUpper(string(tx.Type)),
			Category: tx.Category,
			Account:  s.snapshot.AccountName(tx.AccountID),
			Amount:   tx.SignedAmount(),
		})
	}
	return rows, nil
}
