package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/takaflow/taka/internal/cli"
)

func resetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete ALL wallet data",
		Long: `Reset deletes the persisted wallet entirely: every account, every
transaction and the PIN. The next command reseeds the default accounts.

This is destructive and cannot be undone.`,
		RunE: runReset,
	}

	cmd.Flags().BoolP("force", "f", false, "skip confirmation prompt")

	return cmd
}

func runReset(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	force, _ := cmd.Flags().GetBool("force")

	store, cleanup, err := openUnlockedLedger(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if !force {
		transactions, txErr := store.Transactions()
		if txErr != nil {
			return txErr
		}
		fmt.Printf("This will delete %d transactions and all accounts.\n", len(transactions)) //nolint:forbidigo // User-facing output

		ok, confirmErr := confirm(ctx, "DANGER: delete all wallet data?")
		if confirmErr != nil {
			return confirmErr
		}
		if !ok {
			fmt.Println("Reset canceled.") //nolint:forbidigo // User-facing output
			return nil
		}
	}

	if err := store.Reset(ctx); err != nil {
		return fmt.Errorf("failed to reset wallet: %w", err)
	}

	fmt.Println(cli.FormatSuccess("Wallet reset. Defaults will be reseeded on next run.")) //nolint:forbidigo // User-facing output
	return nil
}
