// Package ledgertest provides in-memory test doubles for ledger persistence.
package ledgertest

import (
	"context"
	"fmt"

	"github.com/takaflow/taka/internal/common"
	"github.com/takaflow/taka/internal/model"
)

// MemoryStore is an in-memory service.SnapshotStore for tests.
type MemoryStore struct {
	snapshot  *model.Snapshot
	saveErr   error
	corrupt   bool
	SaveCount int
}

// NewMemoryStore creates an empty in-memory snapshot store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Corrupt makes the next Load report an unparseable snapshot.
func (m *MemoryStore) Corrupt() {
	m.corrupt = true
}

// SetSaveError makes every Save fail with err.
func (m *MemoryStore) SetSaveError(err error) {
	m.saveErr = err
}

// Load implements service.SnapshotStore.
func (m *MemoryStore) Load(_ context.Context) (*model.Snapshot, error) {
	if m.corrupt {
		m.corrupt = false
		return nil, fmt.Errorf("%w: unexpected end of JSON input", common.ErrCorruptSnapshot)
	}
	if m.snapshot == nil {
		return nil, nil
	}
	return m.snapshot.Clone(), nil
}

// Save implements service.SnapshotStore.
func (m *MemoryStore) Save(_ context.Context, snapshot *model.Snapshot) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.SaveCount++
	m.snapshot = snapshot.Clone()
	return nil
}

// Delete implements service.SnapshotStore.
func (m *MemoryStore) Delete(_ context.Context) error {
	m.snapshot = nil
	return nil
}

// Close implements service.SnapshotStore.
func (m *MemoryStore) Close() error {
	return nil
}

// Stored returns the last saved snapshot, or nil.
func (m *MemoryStore) Stored() *model.Snapshot {
	return m.snapshot
}
