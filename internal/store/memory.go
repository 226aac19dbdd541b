package store

import (
	"context"
	"sort"
	"sync"
)

// Memory is an in-process key-value store with the same semantics as Store.
type Memory struct {
	mu    sync.Mutex
	data  map[string][]byte
	quota int64
	// Fail, when set, is returned by every operation.
	Fail error
}

// NewMemory returns an empty in-memory store. A positive quota limits the
// total size of keys plus values in bytes.
func NewMemory(quota int64) *Memory {
	return &Memory{data: map[string][]byte{}, quota: quota}
}

// Get returns the raw value stored under key.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return nil, false, m.Fail
	}
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

// Set stores value under key.
func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return m.Fail
	}
	if m.quota > 0 {
		used := m.sizeLocked()
		if old, ok := m.data[key]; ok {
			used -= int64(len(key) + len(old))
		}
		if used+int64(len(key)+len(value)) > m.quota {
			return ErrQuotaExceeded
		}
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	m.data[key] = stored
	return nil
}

// Remove deletes key.
func (m *Memory) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return m.Fail
	}
	delete(m.data, key)
	return nil
}

// Keys lists every stored key in ascending order.
func (m *Memory) Keys(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return nil, m.Fail
	}
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Size returns the number of bytes used by keys and values.
func (m *Memory) Size(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sizeLocked(), nil
}

func (m *Memory) sizeLocked() int64 {
	var used int64
	for k, v := range m.data {
		used += int64(len(k) + len(v))
	}
	return used
}
