// Package storage persists the wallet snapshot to a local SQLite database.
// The ledger is stored as a single named record in a key-value table,
// serialized as JSON, and blindly overwritten on every save.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/takaflow/taka/internal/common"
	"github.com/takaflow/taka/internal/model"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// snapshotKey names the record holding the ledger snapshot.
const snapshotKey = "wallet_v1"

// SQLiteStore implements service.SnapshotStore using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStore creates a new SQLite snapshot store, creating the database
// file and schema as needed.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &SQLiteStore{
		db:     db,
		dbPath: dbPath,
	}

	if err := store.createSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) createSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS snapshots (
			key TEXT PRIMARY KEY,
			data TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Load returns the persisted snapshot, or (nil, nil) when no record exists.
// A record that fails to parse is reported as common.ErrCorruptSnapshot so
// the caller can reseed defaults.
func (s *SQLiteStore) Load(ctx context.Context) (*model.Snapshot, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var data string
	err := s.db.QueryRowContext(ctx,
		"SELECT data FROM snapshots WHERE key = ?", snapshotKey).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	var snapshot model.Snapshot
	if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrCorruptSnapshot, err)
	}

	return &snapshot, nil
}

// Save overwrites the persisted snapshot wholesale.
func (s *SQLiteStore) Save(ctx context.Context, snapshot *model.Snapshot) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if snapshot == nil {
		return fmt.Errorf("snapshot cannot be nil")
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to serialize snapshot: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO snapshots (key, data, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
	`, snapshotKey, string(data))
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	return nil
}

// Delete removes the persisted snapshot entirely.
func (s *SQLiteStore) Delete(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx,
		"DELETE FROM snapshots WHERE key = ?", snapshotKey)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
