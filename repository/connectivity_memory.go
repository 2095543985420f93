package repository

import (
	"context"
	"sync"

	domainLiveness "github.com/photoframe/photoframe/domains/liveness"
)

// MemoryConnectivityStore keeps records and schedule state in process memory.
type MemoryConnectivityStore struct {
	mu       sync.RWMutex
	store    map[string]domainLiveness.ConnectivityRecord
	disabled map[string]bool
}

func NewMemoryConnectivityStore() *MemoryConnectivityStore {
	return &MemoryConnectivityStore{
		store:    make(map[string]domainLiveness.ConnectivityRecord),
		disabled: make(map[string]bool),
	}
}

func (m *MemoryConnectivityStore) Save(ctx context.Context, record domainLiveness.ConnectivityRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store[record.DeviceName] = record
	return nil
}

func (m *MemoryConnectivityStore) Get(ctx context.Context, deviceName string) (*domainLiveness.ConnectivityRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.store[deviceName]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (m *MemoryConnectivityStore) TriggerEnabled(ctx context.Context, name string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return !m.disabled[name], nil
}

func (m *MemoryConnectivityStore) SetTriggerEnabled(ctx context.Context, name string, enabled bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.disabled[name] = !enabled
	return nil
}
