package main

import (
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/takaflow/taka/internal/cli"
)

func accountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Manage wallet accounts",
	}

	cmd.AddCommand(accountsListCmd())
	cmd.AddCommand(accountsAddCmd())

	return cmd
}

func accountsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all accounts with balances",
		RunE:  runAccountsList,
	}
}

func runAccountsList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, cleanup, err := openUnlockedLedger(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	accounts, err := store.Accounts()
	if err != nil {
		return fmt.Errorf("failed to list accounts: %w", err)
	}

	fmt.Println(cli.FormatTitle("Accounts")) //nolint:forbidigo // User-facing output
	fmt.Println()                            //nolint:forbidigo // User-facing output

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer func() {
		if flushErr := w.Flush(); flushErr != nil {
			slog.Error("failed to flush table writer", "error", flushErr)
		}
	}()

	if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		cli.HeaderStyle.Render("ID"),
		cli.HeaderStyle.Render("Name"),
		cli.HeaderStyle.Render("Type"),
		cli.HeaderStyle.Render("Balance")); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i := range accounts {
		account := &accounts[i]
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			cli.SubtleStyle.Render(account.ID),
			cli.BoldStyle.Render(account.Name),
			account.Type,
			formatAmount(store, account.Balance)); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	return nil
}

func accountsAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new account",
		Args:  cobra.ExactArgs(1),
		RunE:  runAccountsAdd,
	}

	cmd.Flags().String("type", "Bank", "account type (Cash, Mobile, Bank, ...)")
	cmd.Flags().String("balance", "0", "opening balance")

	return cmd
}

func runAccountsAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	name := args[0]
	accType, _ := cmd.Flags().GetString("type")
	balanceStr, _ := cmd.Flags().GetString("balance")

	balance, err := decimal.NewFromString(balanceStr)
	if err != nil {
		return fmt.Errorf("invalid opening balance %q: %w", balanceStr, err)
	}

	store, cleanup, err := openUnlockedLedger(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	account, err := store.AddAccount(ctx, name, accType, balance)
	if err != nil {
		return fmt.Errorf("failed to add account: %w", err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added account %s (%s) with balance %s", //nolint:forbidigo // User-facing output
		account.Name, account.ID, formatAmount(store, account.Balance))))
	return nil
}
