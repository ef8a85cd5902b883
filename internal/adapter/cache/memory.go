package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryStore is an in-process cache with per-key expiry.
// Used when redis is not configured.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.live(key)
	if !ok {
		return nil, ErrMiss
	}
	return e.value, nil
}

func (m *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = memoryEntry{value: value, expiresAt: m.expiry(ttl)}
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, key)
	return nil
}

func (m *MemoryStore) MarkOnce(_ context.Context, key string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.live(key); ok {
		return false, nil
	}
	m.entries[key] = memoryEntry{expiresAt: m.expiry(ttl)}
	return true, nil
}

func (m *MemoryStore) Ping(context.Context) error { return nil }

// Sweep drops expired entries
func (m *MemoryStore) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	removed := 0
	for k, e := range m.entries {
		if !e.expiresAt.IsZero() && !now.Before(e.expiresAt) {
			delete(m.entries, k)
			removed++
		}
	}
	return removed
}

// live returns the entry for key if it has not expired. Caller holds mu.
func (m *MemoryStore) live(key string) (memoryEntry, bool) {
	e, ok := m.entries[key]
	if !ok {
		return memoryEntry{}, false
	}
	if !e.expiresAt.IsZero() && !m.now().Before(e.expiresAt) {
		delete(m.entries, key)
		return memoryEntry{}, false
	}
	return e, true
}

func (m *MemoryStore) expiry(ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return m.now().Add(ttl)
}
