package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/takaflow/taka/internal/cli"
	"github.com/takaflow/taka/internal/common"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the wallet with a previously exported JSON file",
		Long: `Import a wallet export, replacing ALL current accounts and transactions.

The file must be a document produced by 'taka export' (or matching its
shape). This is destructive and asks for confirmation unless --force.`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}

	cmd.Flags().BoolP("force", "f", false, "skip confirmation prompt")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	path := args[0]
	force, _ := cmd.Flags().GetBool("force")

	store, cleanup, err := openUnlockedLedger(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if !force {
		ok, confirmErr := confirm(ctx, "Replace ALL wallet data with "+path+"?")
		if confirmErr != nil {
			return confirmErr
		}
		if !ok {
			fmt.Println("Import canceled.") //nolint:forbidigo // User-facing output
			return nil
		}
	}

	f, err := os.Open(path) // #nosec G304
	if err != nil {
		return fmt.Errorf("failed to open import file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("failed to close import file", "error", closeErr)
		}
	}()

	if err := store.Import(ctx, f); err != nil {
		var userErr *common.UserError
		if errors.As(err, &userErr) {
			fmt.Println(cli.FormatError(userErr.UserMessage)) //nolint:forbidigo // User-facing output
			return nil
		}
		return fmt.Errorf("failed to import wallet: %w", err)
	}

	fmt.Println(cli.FormatSuccess("Wallet imported from " + path)) //nolint:forbidigo // User-facing output
	return nil
}
