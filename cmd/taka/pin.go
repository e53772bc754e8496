package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/takaflow/taka/internal/cli"
)

func pinCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pin",
		Short: "Manage the wallet PIN",
	}

	cmd.AddCommand(pinSetCmd())
	cmd.AddCommand(pinVerifyCmd())

	return cmd
}

func pinSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set",
		Short: "Set or change the wallet PIN",
		Long: `Set the PIN that gates access to the wallet.

Only a one-way digest of the PIN is stored. Changing the PIN requires
entering the current one first.`,
		RunE: runPinSet,
	}
}

func runPinSet(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	// Changing an existing PIN requires passing the gate first
	store, cleanup, err := openUnlockedLedger(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	reader := cli.NewReader(os.Stdin)

	fmt.Print(cli.FormatPrompt("New PIN")) //nolint:forbidigo // User-facing output
	first, err := reader.ReadSecret(ctx)
	fmt.Println() //nolint:forbidigo // User-facing output
	if err != nil {
		return err
	}

	fmt.Print(cli.FormatPrompt("Repeat PIN")) //nolint:forbidigo // User-facing output
	second, err := reader.ReadSecret(ctx)
	fmt.Println() //nolint:forbidigo // User-facing output
	if err != nil {
		return err
	}

	if first != second {
		fmt.Println(cli.FormatError("PINs do not match")) //nolint:forbidigo // User-facing output
		return nil
	}

	if err := store.SetPIN(ctx, first); err != nil {
		return fmt.Errorf("failed to set PIN: %w", err)
	}

	fmt.Println(cli.FormatSuccess("PIN updated")) //nolint:forbidigo // User-facing output
	return nil
}

func pinVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check a PIN against the stored digest",
		RunE:  runPinVerify,
	}
}

func runPinVerify(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, cleanup, err := openLedger(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	hasPIN, err := store.HasPIN()
	if err != nil {
		return err
	}
	if !hasPIN {
		fmt.Println(cli.FormatWarning("No PIN is set. Use 'taka pin set' to create one.")) //nolint:forbidigo // User-facing output
		return nil
	}

	reader := cli.NewReader(os.Stdin)
	fmt.Print(cli.FormatPrompt(cli.LockIcon + " Enter PIN")) //nolint:forbidigo // User-facing output
	plain, err := reader.ReadSecret(ctx)
	fmt.Println() //nolint:forbidigo // User-facing output
	if err != nil {
		return err
	}

	ok, err := store.VerifyPIN(plain)
	if err != nil {
		return err
	}
	if ok {
		fmt.Println(cli.FormatSuccess("PIN verified")) //nolint:forbidigo // User-facing output
	} else {
		fmt.Println(cli.FormatError("Incorrect PIN")) //nolint:forbidigo // User-facing output
	}

	return nil
}
