package cache

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// memoryEntry is a stored payload with its expiry deadline.
type memoryEntry struct {
	data    []byte
	expires time.Time
}

// MemoryStore is an in-memory TTL cache. Entries expire lazily: an
// expired entry is removed on the next read of its key, there is no
// background sweep. The store is unbounded; identifier cardinality is
// small enough in practice that TTL expiry keeps growth in check.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	prefix  string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(config CacheConfig) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		prefix:  config.KeyPrefix,
	}
}

// Get retrieves a value by key. An entry whose TTL has passed counts
// as absent and is evicted as a side effect of the read.
func (m *MemoryStore) Get(key string, dest interface{}) (bool, error) {
	fullKey := m.prefix + key

	m.mu.RLock()
	entry, ok := m.entries[fullKey]
	m.mu.RUnlock()

	if !ok {
		return false, nil
	}

	if time.Now().After(entry.expires) {
		m.mu.Lock()
		// Re-check under the write lock: a concurrent Set may have
		// replaced the entry since the read above.
		if current, still := m.entries[fullKey]; still && time.Now().After(current.expires) {
			delete(m.entries, fullKey)
		}
		m.mu.Unlock()
		return false, nil
	}

	if err := json.Unmarshal(entry.data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cached value: %w", err)
	}

	return true, nil
}

// Set stores a value with the given TTL, overwriting any existing
// entry (last write wins).
func (m *MemoryStore) Set(key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value for cache: %w", err)
	}

	m.mu.Lock()
	m.entries[m.prefix+key] = memoryEntry{
		data:    data,
		expires: time.Now().Add(ttl),
	}
	m.mu.Unlock()

	return nil
}

// Delete removes a key.
func (m *MemoryStore) Delete(key string) error {
	m.mu.Lock()
	delete(m.entries, m.prefix+key)
	m.mu.Unlock()
	return nil
}

// Clear removes all entries.
func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	m.entries = make(map[string]memoryEntry)
	m.mu.Unlock()
	return nil
}

// Close is a no-op for the in-memory store.
func (m *MemoryStore) Close() error {
	return nil
}

// Len returns the number of entries currently held, including entries
// that have expired but not yet been evicted.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
