package ledger

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/takaflow/taka/internal/model"
)

// CategoryShare is one row of the expense breakdown: a category's total
// spend and its share of all expenses.
type CategoryShare struct {
	Category string
	Amount   decimal.Decimal
	Percent  int
}

// CategoryBreakdown groups expense transactions by category and computes
// each category's share of total spend, sorted by amount descending.
// Income and transfers are excluded entirely; with no expenses the
// breakdown is empty.
func (s *Store) CategoryBreakdown() ([]CategoryShare, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	sums := make(map[string]decimal.Decimal)
	total := decimal.Zero
	for i := range s.snapshot.Transactions {
		tx := &s.snapshot.Transactions[i]
		if tx.Type != model.TypeExpense {
			continue
		}
		sums[tx.Category] = sums[tx.Category].Add(tx.Amount)
		total = total.Add(tx.Amount)
	}

	if total.IsZero() {
		return []CategoryShare{}, nil
	}

	hundred := decimal.NewFromInt(100)
	shares := make([]CategoryShare, 0, len(sums))
	for category, amount := range sums {
		pct := int(amount.Mul(hundred).Div(total).Round(0).IntPart())
		shares = append(shares, CategoryShare{
			Category: category,
			Amount:   amount,
			Percent:  pct,
		})
	}

	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Amount.Equal(shares[j].Amount) {
			return shares[i].Category < shares[j].Category
		}
		return shares[i].Amount.GreaterThan(shares[j].Amount)
	})

	return shares, nil
}

// Summary is the dashboard projection: the total balance across accounts,
// the accounts themselves and the most recent transactions.
type Summary struct {
	TotalBalance decimal.Decimal
	Accounts     []model.Account
	Recent       []model.Transaction
}

// DashboardSummary builds the dashboard view of the current state.
func (s *Store) DashboardSummary() (*Summary, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	total, err := s.TotalBalance()
	if err != nil {
		return nil, err
	}
	accounts, err := s.Accounts()
	if err != nil {
		return nil, err
	}

	limit := RecentLimit
	if len(s.snapshot.Transactions) < limit {
		limit = len(s.snapshot.Transactions)
	}
	recent := make([]model.Transaction, limit)
	copy(recent, s.snapshot.Transactions[:limit])

	return &Summary{
		TotalBalance: total,
		Accounts:     accounts,
		Recent:       recent,
	}, nil
}
