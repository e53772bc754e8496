package main

import (
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/takaflow/taka/internal/cli"
)

func transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"tx"},
		Short:   "List transactions, most recent first",
		RunE:    runTransactions,
	}

	cmd.Flags().Int("limit", 0, "show at most this many transactions (0 = all)")

	return cmd
}

func runTransactions(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	limit, _ := cmd.Flags().GetInt("limit")

	store, cleanup, err := openUnlockedLedger(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	transactions, err := store.Transactions()
	if err != nil {
		return fmt.Errorf("failed to list transactions: %w", err)
	}
	if limit > 0 && len(transactions) > limit {
		transactions = transactions[:limit]
	}

	if len(transactions) == 0 {
		fmt.Println(cli.InfoStyle.Render("No transactions yet. Use 'taka add' to record one.")) //nolint:forbidigo // User-facing output
		return nil
	}

	fmt.Println(cli.FormatTitle("Transactions")) //nolint:forbidigo // User-facing output
	fmt.Println()                                //nolint:forbidigo // User-facing output

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer func() {
		if flushErr := w.Flush(); flushErr != nil {
			slog.Error("failed to flush table writer", "error", flushErr)
		}
	}()

	if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
		cli.HeaderStyle.Render("ID"),
		cli.HeaderStyle.Render("Date"),
		cli.HeaderStyle.Render("Category"),
		cli.HeaderStyle.Render("Account"),
		cli.HeaderStyle.Render("Note"),
		cli.HeaderStyle.Render("Amount")); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i := range transactions {
		tx := &transactions[i]
		category := tx.Category
		if tx.Subcategory != "" {
			category += " / " + tx.Subcategory
		}
		note := tx.Note
		if note == "" {
			note = "-"
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			cli.SubtleStyle.Render(tx.ID),
			tx.Date,
			category,
			store.AccountName(tx.AccountID),
			cli.SubtleStyle.Render(truncate(note, 30)),
			styledAmount(store, tx.Amount, tx.Type)); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	return nil
}
