package sheets

import (
	"context"
	"sync"

	"github.com/takaflow/taka/internal/model"
)

// MockWriter is a mock implementation of SyncWriter for testing.
type MockWriter struct {
	WriteFunc      func(ctx context.Context, snapshot *model.Snapshot) error
	LastSnapshot   *model.Snapshot
	WriteCallCount int
	mu             sync.Mutex
}

// NewMockWriter creates a new mock writer.
func NewMockWriter() *MockWriter {
	return &MockWriter{}
}

// Write implements the service.SyncWriter interface.
func (m *MockWriter) Write(ctx context.Context, snapshot *model.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteCallCount++
	m.LastSnapshot = snapshot

	if m.WriteFunc != nil {
		return m.WriteFunc(ctx, snapshot)
	}
	return nil
}

// Reset clears all recorded calls.
func (m *MockWriter) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteCallCount = 0
	m.LastSnapshot = nil
}

// SetWriteError configures the mock to return an error on Write.
func (m *MockWriter) SetWriteError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteFunc = func(_ context.Context, _ *model.Snapshot) error {
		return err
	}
}
