package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/takaflow/taka/internal/cli"
)

func dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show total balance, accounts and recent transactions",
		RunE:  runDashboard,
	}
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, cleanup, err := openUnlockedLedger(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	summary, err := store.DashboardSummary()
	if err != nil {
		return fmt.Errorf("failed to build dashboard: %w", err)
	}

	fmt.Println(cli.FormatTitle("Dashboard"))                                                            //nolint:forbidigo // User-facing output
	fmt.Println(cli.RenderBox("Total Balance", cli.BoldStyle.Render(formatAmount(store, summary.TotalBalance)))) //nolint:forbidigo // User-facing output
	fmt.Println()                                                                                        //nolint:forbidigo // User-facing output

	fmt.Println(cli.BoldStyle.Render("My Accounts")) //nolint:forbidigo // User-facing output
	for i := range summary.Accounts {
		account := &summary.Accounts[i]
		fmt.Printf("  %s %s  %s\n", //nolint:forbidigo // User-facing output
			cli.BoldStyle.Render(account.Name),
			cli.SubtleStyle.Render("("+account.Type+")"),
			formatAmount(store, account.Balance))
	}
	fmt.Println() //nolint:forbidigo // User-facing output

	fmt.Println(cli.BoldStyle.Render("Recent Transactions")) //nolint:forbidigo // User-facing output
	if len(summary.Recent) == 0 {
		fmt.Println(cli.SubtleStyle.Render("  No recent transactions")) //nolint:forbidigo // User-facing output
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer func() {
		if flushErr := w.Flush(); flushErr != nil {
			slog.Error("failed to flush table writer", "error", flushErr)
		}
	}()

	if _, err := fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%s\n",
		cli.HeaderStyle.Render("Date"),
		cli.HeaderStyle.Render("Category"),
		cli.HeaderStyle.Render("Account"),
		cli.HeaderStyle.Render("Note"),
		cli.HeaderStyle.Render("Amount")); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i := range summary.Recent {
		tx := &summary.Recent[i]
		note := tx.Note
		if note == "" {
			note = "-"
		}
		category := tx.Category
		if tx.Subcategory != "" {
			category += " / " + tx.Subcategory
		}
		if _, err := fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%s\n",
			cli.SubtleStyle.Render(tx.Date),
			category,
			store.AccountName(tx.AccountID),
			cli.SubtleStyle.Render(truncate(note, 30)),
			styledAmount(store, tx.Amount, tx.Type)); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	return nil
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return strings.TrimSpace(s[:limit-1]) + "…"
}
