package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/takaflow/taka/internal/cli"
	"github.com/takaflow/taka/internal/sheets"
)

func syncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Push the wallet to a Google Sheet",
		Long: `Append every transaction and account to a Google Sheets spreadsheet.

The spreadsheet needs tabs named Transactions, Accounts and Metadata. Rows
are appended, never cleared, so each sync adds a dated batch. Sync is
one-way: nothing in the sheet ever flows back into the wallet.`,
		RunE: runSync,
	}

	cmd.Flags().String("spreadsheet-id", "", "spreadsheet id (overrides config)")

	return cmd
}

func runSync(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, cleanup, err := openUnlockedLedger(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	snapshot, err := store.Snapshot()
	if err != nil {
		return err
	}

	config := sheets.DefaultConfig()
	config.ClientID = viper.GetString("sheets.client_id")
	config.ClientSecret = viper.GetString("sheets.client_secret")
	config.RefreshToken = viper.GetString("sheets.refresh_token")
	config.ServiceAccountPath = viper.GetString("sheets.service_account_path")
	config.SpreadsheetID = viper.GetString("sheets.spreadsheet_id")
	if flagID, _ := cmd.Flags().GetString("spreadsheet-id"); flagID != "" {
		config.SpreadsheetID = flagID
	}

	// Environment variables as fallback
	if config.ClientID == "" && config.ServiceAccountPath == "" {
		if envErr := config.LoadFromEnv(); envErr != nil {
			return fmt.Errorf("google Sheets is not configured: %w", envErr)
		}
		if config.SpreadsheetID == "" {
			config.SpreadsheetID = os.Getenv("GOOGLE_SHEETS_SPREADSHEET_ID")
		}
	}

	// A token saved by 'taka auth' covers the missing refresh token.
	if config.RefreshToken == "" && config.ServiceAccountPath == "" {
		token, tokenErr := sheets.GetOrCreateToken(ctx, sheets.OAuth2Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			TokenFile:    authTokenFile(),
		})
		if tokenErr != nil {
			return fmt.Errorf("google Sheets authentication failed: %w", tokenErr)
		}
		config.RefreshToken = token.RefreshToken
	}

	writer, err := sheets.NewWriter(ctx, config, slog.Default())
	if err != nil {
		return fmt.Errorf("failed to create sheets writer: %w", err)
	}

	totalRows := len(snapshot.Transactions) + len(snapshot.Accounts) + 2
	bar := progressbar.NewOptions(totalRows,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Syncing to Google Sheets..."),
	)
	writer.OnProgress(func(rows int) {
		_ = bar.Add(rows)
	})

	if err := writer.Write(ctx, snapshot); err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}
	_ = bar.Finish()
	fmt.Println() //nolint:forbidigo // User-facing output

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Synced %d transactions and %d accounts", //nolint:forbidigo // User-facing output
		len(snapshot.Transactions), len(snapshot.Accounts))))
	return nil
}
