package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/takaflow/taka/internal/cli"
	"github.com/takaflow/taka/internal/config"
	"github.com/takaflow/taka/internal/ledger"
	"github.com/takaflow/taka/internal/model"
	"github.com/takaflow/taka/internal/secret"
	"github.com/takaflow/taka/internal/storage"
)

// pinAttempts is how many PIN entries a command allows before giving up.
const pinAttempts = 3

// openLedger opens the snapshot store and initializes the ledger from it.
// The returned cleanup closes the underlying database.
func openLedger(ctx context.Context) (*ledger.Store, func(), error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/taka/taka.db"
	}
	dbPath = config.ExpandPath(dbPath)

	snapshots, err := storage.NewSQLiteStore(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open wallet database: %w", err)
	}
	cleanup := func() {
		if closeErr := snapshots.Close(); closeErr != nil {
			slog.Error("failed to close wallet database", "error", closeErr)
		}
	}

	digester, err := secret.ForScheme(viper.GetString("security.digest"))
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	opts := []ledger.Option{ledger.WithDigester(digester)}
	if currency := viper.GetString("currency"); currency != "" {
		opts = append(opts, ledger.WithCurrency(currency))
	}

	store := ledger.New(snapshots, opts...)
	if err := store.Initialize(ctx); err != nil {
		cleanup()
		return nil, nil, err
	}

	return store, cleanup, nil
}

// unlockLedger prompts for the PIN when one is set. Verification failure is
// a normal outcome with a short retry delay, not an error; exhausting all
// attempts aborts the command.
func unlockLedger(ctx context.Context, store *ledger.Store) error {
	hasPIN, err := store.HasPIN()
	if err != nil {
		return err
	}
	if !hasPIN {
		return nil
	}

	reader := cli.NewReader(os.Stdin)
	for attempt := 1; attempt <= pinAttempts; attempt++ {
		fmt.Print(cli.FormatPrompt(cli.LockIcon + " Enter PIN")) //nolint:forbidigo // User-facing output
		plain, readErr := reader.ReadSecret(ctx)
		fmt.Println() //nolint:forbidigo // User-facing output
		if readErr != nil {
			return readErr
		}

		ok, verifyErr := store.VerifyPIN(plain)
		if verifyErr != nil {
			return verifyErr
		}
		if ok {
			return nil
		}

		fmt.Println(cli.FormatError("Incorrect PIN")) //nolint:forbidigo // User-facing output
		time.Sleep(time.Second)
	}

	return fmt.Errorf("too many incorrect PIN attempts")
}

// openUnlockedLedger opens the ledger and runs the PIN gate.
func openUnlockedLedger(ctx context.Context) (*ledger.Store, func(), error) {
	store, cleanup, err := openLedger(ctx)
	if err != nil {
		return nil, nil, err
	}
	if err := unlockLedger(ctx, store); err != nil {
		cleanup()
		return nil, nil, err
	}
	return store, cleanup, nil
}

// formatAmount renders an amount in the ledger currency.
func formatAmount(store *ledger.Store, amount decimal.Decimal) string {
	return model.FormatAmount(amount, store.Currency())
}

// styledAmount renders an amount with an explicit sign and color.
func styledAmount(store *ledger.Store, amount decimal.Decimal, txType model.TransactionType) string {
	rendered := formatAmount(store, amount)
	if txType == model.TypeIncome {
		return cli.AmountIncomeStyle.Render("+" + rendered)
	}
	return cli.AmountExpenseStyle.Render("-" + rendered)
}

// authTokenFile is where 'taka auth' saves the Google OAuth2 token. An empty
// result means no usable config directory; callers then skip token storage.
func authTokenFile() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "taka", "sheets-token.json")
}

// confirm prints the prompt and reads a yes/no answer from stdin.
func confirm(ctx context.Context, prompt string) (bool, error) {
	fmt.Print(cli.FormatPrompt(prompt + " [y/N]")) //nolint:forbidigo // User-facing output
	return cli.NewReader(os.Stdin).Confirm(ctx)
}
