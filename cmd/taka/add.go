package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/takaflow/taka/internal/cli"
	"github.com/takaflow/taka/internal/common"
	"github.com/takaflow/taka/internal/ledger"
	"github.com/takaflow/taka/internal/model"
)

func addCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new transaction",
		Long: `Record an expense, income or transfer.

Expenses and income need --from, --category and --subcategory; transfers
need --from and --to and are categorized automatically. Amounts are in the
wallet currency and must be positive.`,
		RunE: runAdd,
	}

	cmd.Flags().String("type", "expense", "transaction type (expense, income, transfer)")
	cmd.Flags().String("amount", "", "amount (required)")
	cmd.Flags().String("date", "", "transaction date, YYYY-MM-DD (default: today)")
	cmd.Flags().String("from", "", "account id the money moves from (or into, for income)")
	cmd.Flags().String("to", "", "destination account id (transfers only)")
	cmd.Flags().String("category", "", "category")
	cmd.Flags().String("subcategory", "", "subcategory")
	cmd.Flags().String("note", "", "free-form note")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("from")

	return cmd
}

func runAdd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	txType, _ := cmd.Flags().GetString("type")
	amountStr, _ := cmd.Flags().GetString("amount")
	date, _ := cmd.Flags().GetString("date")
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	category, _ := cmd.Flags().GetString("category")
	subcategory, _ := cmd.Flags().GetString("subcategory")
	note, _ := cmd.Flags().GetString("note")

	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", amountStr, err)
	}

	if date == "" {
		date = time.Now().Format("2006-01-02")
	} else if _, parseErr := time.Parse("2006-01-02", date); parseErr != nil {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
	}

	store, cleanup, err := openUnlockedLedger(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	tx, err := store.AddTransaction(ctx, ledger.TransactionInput{
		Type:        model.TransactionType(txType),
		Amount:      amount,
		Date:        date,
		AccountID:   from,
		ToAccountID: to,
		Category:    category,
		Subcategory: subcategory,
		Note:        note,
	})
	if err != nil {
		switch {
		case errors.Is(err, common.ErrInsufficientFunds):
			fmt.Println(cli.FormatError("Insufficient funds")) //nolint:forbidigo // User-facing output
			return nil
		case errors.Is(err, common.ErrInvalidTransfer):
			fmt.Println(cli.FormatError("Cannot transfer to the same account")) //nolint:forbidigo // User-facing output
			return nil
		}
		return fmt.Errorf("failed to add transaction: %w", err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Recorded %s of %s (%s)", //nolint:forbidigo // User-facing output
		tx.Type, formatAmount(store, tx.Amount), tx.ID)))
	return nil
}
