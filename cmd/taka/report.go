package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/takaflow/taka/internal/cli"
)

func reportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Render a printable transaction report",
		Long: `Render the full transaction log as a plain table suitable for printing
or piping to a file: date, type, category, account and signed amount.`,
		RunE: runReport,
	}
}

func runReport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, cleanup, err := openUnlockedLedger(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	rows, err := store.Report()
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}

	fmt.Printf("Wallet Report\nGenerated: %s\n\n", time.Now().Format("Mon Jan 2 2006")) //nolint:forbidigo // User-facing output

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer func() {
		if flushErr := w.Flush(); flushErr != nil {
			slog.Error("failed to flush table writer", "error", flushErr)
		}
	}()

	if _, err := fmt.Fprintf(w, "Date\tType\tCategory\tAccount\tAmount\n%s\t%s\t%s\t%s\t%s\n",
		strings.Repeat("─", 10),
		strings.Repeat("─", 8),
		strings.Repeat("─", 20),
		strings.Repeat("─", 15),
		strings.Repeat("─", 12)); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, row := range rows {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			row.Date,
			row.Type,
			row.Category,
			row.Account,
			formatAmount(store, row.Amount)); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	if len(rows) == 0 {
		fmt.Println(cli.SubtleStyle.Render("No transactions to report.")) //nolint:forbidigo // User-facing output
	}

	return nil
}
