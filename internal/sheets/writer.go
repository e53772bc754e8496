package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/takaflow/taka/internal/common"
	"github.com/takaflow/taka/internal/model"
	"github.com/takaflow/taka/internal/service"
)

// Ranges the wallet appends to. The spreadsheet is expected to have a tab
// per range; appends accumulate, they never clear previous rows.
const (
	transactionsRange = "Transactions"
	accountsRange     = "Accounts"
	metadataRange     = "Metadata"
)

// Writer pushes wallet snapshots to a Google Sheets spreadsheet. It
// implements service.SyncWriter.
type Writer struct {
	service  *sheets.Service
	logger   *slog.Logger
	config   Config
	progress func(rows int)
	now      func() time.Time
}

// NewWriter creates a new Google Sheets sync writer.
func NewWriter(ctx context.Context, config Config, logger *slog.Logger) (*Writer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	service, err := createSheetsService(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Writer{
		config:  config,
		service: service,
		logger:  logger,
		now:     time.Now,
	}, nil
}

// OnProgress registers a callback invoked after each appended batch with the
// number of rows written.
func (w *Writer) OnProgress(fn func(rows int)) {
	w.progress = fn
}

// Write implements the service.SyncWriter interface: it appends every
// transaction, every account and a metadata trailer to the spreadsheet.
func (w *Writer) Write(ctx context.Context, snapshot *model.Snapshot) error {
	w.logger.Info("starting sheets sync",
		"spreadsheet_id", w.config.SpreadsheetID,
		"transactions", len(snapshot.Transactions),
		"accounts", len(snapshot.Accounts))

	syncedAt := w.now().UTC().Format(time.RFC3339)

	if len(snapshot.Transactions) > 0 {
		if err := w.appendBatched(ctx, transactionsRange, transactionRows(snapshot, syncedAt)); err != nil {
			return fmt.Errorf("failed to sync transactions: %w", err)
		}
	}

	if err := w.appendBatched(ctx, accountsRange, accountRows(snapshot, syncedAt)); err != nil {
		return fmt.Errorf("failed to sync accounts: %w", err)
	}

	metadata := [][]any{
		{"Last Sync", syncedAt},
		{"Total Transactions", len(snapshot.Transactions)},
	}
	if err := w.appendBatched(ctx, metadataRange, metadata); err != nil {
		return fmt.Errorf("failed to sync metadata: %w", err)
	}

	w.logger.Info("sheets sync completed", "spreadsheet_id", w.config.SpreadsheetID)
	return nil
}

// transactionRows flattens the transaction log into spreadsheet rows.
func transactionRows(snapshot *model.Snapshot, syncedAt string) [][]any {
	rows := make([][]any, 0, len(snapshot.Transactions))
	for i := range snapshot.Transactions {
		tx := &snapshot.Transactions[i]
		rows = append(rows, []any{
			tx.Date,
			tx.Category,
			tx.Subcategory,
			tx.Amount.String(),
			snapshot.AccountName(tx.AccountID),
			string(tx.Type),
			syncedAt,
		})
	}
	return rows
}

// accountRows flattens the accounts into spreadsheet rows.
func accountRows(snapshot *model.Snapshot, syncedAt string) [][]any {
	rows := make([][]any, 0, len(snapshot.Accounts))
	for i := range snapshot.Accounts {
		account := &snapshot.Accounts[i]
		rows = append(rows, []any{
			account.Name,
			account.Balance.String(),
			syncedAt,
		})
	}
	return rows
}

// appendBatched appends rows to the given range in batches with retry.
func (w *Writer) appendBatched(ctx context.Context, rangeName string, rows [][]any) error {
	retryOpts := service.RetryOptions{
		MaxAttempts:  w.config.RetryAttempts,
		InitialDelay: w.config.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}

	for i := 0; i < len(rows); i += w.config.BatchSize {
		end := i + w.config.BatchSize
		if end > len(rows) {
			end = len(rows)
		}
		batch := rows[i:end]

		err := common.WithRetry(ctx, func() error {
			_, appendErr := w.service.Spreadsheets.Values.
				Append(w.config.SpreadsheetID, rangeName, &sheets.ValueRange{Values: batch}).
				ValueInputOption("USER_ENTERED").
				Context(ctx).
				Do()
			return appendErr
		}, retryOpts)
		if err != nil {
			return fmt.Errorf("failed to append batch starting at row %d: %w", i+1, err)
		}

		if w.progress != nil {
			w.progress(len(batch))
		}
		w.logger.Debug("appended batch", "range", rangeName, "start_row", i+1, "rows", len(batch))
	}

	return nil
}

// createSheetsService creates a Google Sheets API service.
func createSheetsService(ctx context.Context, config Config) (*sheets.Service, error) {
	var tokenSource oauth2.TokenSource

	if config.ServiceAccountPath != "" {
		// Use service account authentication
		jsonKey, err := os.ReadFile(config.ServiceAccountPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read service account key file: %w", err)
		}

		jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account key: %w", err)
		}

		tokenSource = jwtConfig.TokenSource(ctx)
	} else {
		// Use OAuth2 authentication
		oauthConfig := &oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{sheets.SpreadsheetsScope},
		}

		token := &oauth2.Token{
			RefreshToken: config.RefreshToken,
			TokenType:    "Bearer",
		}

		tokenSource = oauthConfig.TokenSource(ctx, token)
	}

	httpClient := oauth2.NewClient(ctx, tokenSource)
	srv, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}

	return srv, nil
}
