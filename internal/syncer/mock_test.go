package syncer

import (
	"context"
	"sync"

	"github.com/finsheet/finsheet/internal/common"
	"github.com/finsheet/finsheet/internal/model"
)

// mockBackend records every call it receives.
type mockBackend struct {
	mu          sync.Mutex
	creates     []model.Record
	updates     map[string]model.Record
	updateCalls int
	deletes     []string
	createID    string
	failCreates bool
	failUpdates bool
	failDeletes bool
}

func newMockBackend() *mockBackend {
	return &mockBackend{updates: make(map[string]model.Record), createID: "srv-1"}
}

func (m *mockBackend) FetchAll(_ context.Context, _ model.Kind) ([]model.Record, error) {
	return nil, nil
}

func (m *mockBackend) CreateItem(_ context.Context, _ model.Kind, rec model.Record) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failCreates {
		return "", common.ErrBackendStatus
	}
	m.creates = append(m.creates, rec.Clone())
	return m.createID, nil
}

func (m *mockBackend) UpdateItem(_ context.Context, _ model.Kind, id string, rec model.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failUpdates {
		return common.ErrBackendStatus
	}
	m.updates[id] = rec.Clone()
	m.updateCalls++
	return nil
}

func (m *mockBackend) DeleteItem(_ context.Context, _ model.Kind, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failDeletes {
		return common.ErrBackendStatus
	}
	m.deletes = append(m.deletes, id)
	return nil
}

func (m *mockBackend) BulkReplace(_ context.Context, _ model.Kind, _ []model.Record) error {
	return nil
}

func (m *mockBackend) createCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.creates)
}

func (m *mockBackend) deleteCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.deletes)
}

func (m *mockBackend) update(id string) (model.Record, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.updates[id]
	return rec, ok
}

func (m *mockBackend) updateCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.updateCalls
}

// mockProbe reports a fixed availability.
type mockProbe struct {
	available bool
}

func (m *mockProbe) Available(_ context.Context, _ model.Kind) bool {
	return m.available
}

// mockReconciler records id rewrites.
type mockReconciler struct {
	mu    sync.Mutex
	calls [][2]string
}

func (m *mockReconciler) ReconcileID(tempID, canonicalID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, [2]string{tempID, canonicalID})
	return true
}
