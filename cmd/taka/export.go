package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/takaflow/taka/internal/cli"
	"github.com/takaflow/taka/internal/ledger"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the full wallet to a JSON file",
		RunE:  runExport,
	}

	cmd.Flags().StringP("output", "o", "", "output file (default: taka-export-<date>.json)")

	return cmd
}

func runExport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = ledger.ExportFilename(time.Now())
	}

	store, cleanup, err := openUnlockedLedger(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	f, err := os.Create(output) // #nosec G304
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("failed to close export file", "error", closeErr)
		}
	}()

	if err := store.Export(f); err != nil {
		return fmt.Errorf("failed to export wallet: %w", err)
	}

	fmt.Println(cli.FormatSuccess("Wallet exported to " + output)) //nolint:forbidigo // User-facing output
	return nil
}
