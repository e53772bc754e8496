package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/takaflow/taka/internal/common"
	"github.com/takaflow/taka/internal/model"
)

// Export writes the full snapshot to w as an indented JSON document. The
// document round-trips losslessly through Import.
func (s *Store) Export(w io.Writer) error {
	if err := s.ready(); err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s.snapshot); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return nil
}

// ExportFilename returns the default export file name, embedding the date.
func ExportFilename(now time.Time) string {
	return "taka-export-" + now.Format("2006-01-02") + ".json"
}

// importDocument mirrors model.Snapshot with pointer slices so a document
// missing the accounts or transactions keys can be told apart from one with
// empty lists.
type importDocument struct {
	Accounts     *[]model.Account     `json:"accounts"`
	Transactions *[]model.Transaction `json:"transactions"`
	Preferences  model.Preferences    `json:"preferences"`
}

// Import replaces the wallet state wholesale with the document read from r.
// The document must carry both accounts and transactions; anything else is
// rejected before any state is touched.
func (s *Store) Import(ctx context.Context, r io.Reader) error {
	if err := s.ready(); err != nil {
		return err
	}

	var doc importDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return common.NewUserError("file is not a valid wallet export", err)
	}
	if doc.Accounts == nil || doc.Transactions == nil {
		return common.NewUserError("file is missing accounts or transactions", common.ErrCorruptSnapshot)
	}

	snapshot := &model.Snapshot{
		Accounts:     *doc.Accounts,
		Transactions: *doc.Transactions,
		Preferences:  doc.Preferences,
	}
	if snapshot.Preferences.Currency == "" {
		snapshot.Preferences.Currency = s.currency
	}

	if err := s.persistence.Save(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to persist imported snapshot: %w", err)
	}
	s.snapshot = snapshot
	return nil
}
