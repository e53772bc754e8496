// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/takaflow/taka/internal/model"
)

// SnapshotStore defines the contract for snapshot persistence. The ledger
// owns exactly one snapshot; the store holds it as a single named record.
type SnapshotStore interface {
	// Load returns the persisted snapshot, or (nil, nil) when none exists.
	// A record that fails to parse returns common.ErrCorruptSnapshot.
	Load(ctx context.Context) (*model.Snapshot, error)
	// Save overwrites the persisted snapshot wholesale.
	Save(ctx context.Context, snapshot *model.Snapshot) error
	// Delete removes the persisted snapshot entirely.
	Delete(ctx context.Context) error
	Close() error
}

// SyncWriter pushes a full snapshot to a remote destination. The ledger has
// no knowledge of sync success or failure.
type SyncWriter interface {
	Write(ctx context.Context, snapshot *model.Snapshot) error
}

// RetryOptions configures retry behavior for remote operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
