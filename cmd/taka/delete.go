package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/takaflow/taka/internal/cli"
	"github.com/takaflow/taka/internal/common"
)

func deleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <transaction-id>",
		Short: "Delete a transaction and reverse its balance effect",
		Args:  cobra.ExactArgs(1),
		RunE:  runDelete,
	}

	cmd.Flags().BoolP("force", "f", false, "skip confirmation prompt")

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	id := args[0]
	force, _ := cmd.Flags().GetBool("force")

	store, cleanup, err := openUnlockedLedger(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if !force {
		ok, confirmErr := confirm(ctx, "Delete this transaction?")
		if confirmErr != nil {
			return confirmErr
		}
		if !ok {
			fmt.Println("Delete canceled.") //nolint:forbidigo // User-facing output
			return nil
		}
	}

	if err := store.DeleteTransaction(ctx, id); err != nil {
		var userErr *common.UserError
		switch {
		case errors.Is(err, common.ErrTransactionNotFound):
			fmt.Println(cli.FormatError("No transaction with id " + id)) //nolint:forbidigo // User-facing output
			return nil
		case errors.As(err, &userErr):
			fmt.Println(cli.FormatError(userErr.UserMessage)) //nolint:forbidigo // User-facing output
			return nil
		}
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	fmt.Println(cli.FormatSuccess("Transaction deleted, balances restored")) //nolint:forbidigo // User-facing output
	return nil
}
