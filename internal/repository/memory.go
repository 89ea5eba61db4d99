package repository

import (
	"context"
	"sync"
)

type memoryStore struct {
	mu       sync.Mutex
	capacity int
	items    []Activity // newest first
}

// NewMemoryStore returns an in-memory Store holding at most capacity activities.
func NewMemoryStore(capacity int) Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &memoryStore{capacity: capacity, items: make([]Activity, 0, capacity)}
}

func (m *memoryStore) Add(ctx context.Context, a Activity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.items) < m.capacity {
		m.items = append(m.items, Activity{})
	}
	copy(m.items[1:], m.items)
	m.items[0] = a
	return nil
}

func (m *memoryStore) Recent(ctx context.Context, n int) ([]Activity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n > len(m.items) || n < 0 {
		n = len(m.items)
	}
	out := make([]Activity, n)
	copy(out, m.items[:n])
	return out, nil
}
