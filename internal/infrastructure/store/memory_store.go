package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/doeshing/easy-proton/internal/ports"
)

// MemoryStore keeps values in process memory. Values are JSON-encoded on Set
// so Get behaves like the file-backed stores. SetErr and FlushErr let tests
// simulate a failing disk.
type MemoryStore struct {
	mu       sync.Mutex
	values   map[string]json.RawMessage
	flushed  map[string]json.RawMessage
	flushes  int
	SetErr   error
	FlushErr error
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values:  make(map[string]json.RawMessage),
		flushed: make(map[string]json.RawMessage),
	}
}

// Get implements ports.KeyValueStore.
func (m *MemoryStore) Get(_ context.Context, key string, dst any) (bool, error) {
	m.mu.Lock()
	raw, ok := m.values[key]
	m.mu.Unlock()
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

// Set implements ports.KeyValueStore.
func (m *MemoryStore) Set(_ context.Context, key string, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.values[key] = raw
	return nil
}

// Flush implements ports.KeyValueStore.
func (m *MemoryStore) Flush(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FlushErr != nil {
		return m.FlushErr
	}
	m.flushes++
	for k, v := range m.values {
		m.flushed[k] = v
	}
	return nil
}

// Close implements ports.KeyValueStore.
func (m *MemoryStore) Close() error { return nil }

// Flushes reports how many times Flush succeeded.
func (m *MemoryStore) Flushes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.flushes
}

// Flushed decodes the last flushed value for key into dst.
func (m *MemoryStore) Flushed(key string, dst any) (bool, error) {
	m.mu.Lock()
	raw, ok := m.flushed[key]
	m.mu.Unlock()
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

var _ ports.KeyValueStore = (*MemoryStore)(nil)
