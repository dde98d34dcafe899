package cache

import (
	"strings"
	"sync"
	"time"
)

type memEntry struct {
	expires time.Time
	bytes   []byte
}

// MemCache is an in-memory CacheProvider. The zero value is not usable,
// create one with NewMemCache.
type MemCache struct {
	mu      sync.RWMutex
	entries map[string]memEntry
	now     func() time.Time
}

func NewMemCache() *MemCache {
	return &MemCache{
		entries: make(map[string]memEntry),
		now:     time.Now,
	}
}

func (m *MemCache) Keys(prefix string, cb func(string)) error {
	m.mu.RLock()
	keys := make([]string, 0, len(m.entries))
	for key := range m.entries {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	m.mu.RUnlock()
	// callback outside of the lock, it may purge
	for _, key := range keys {
		cb(key)
	}
	return nil
}

func (m *MemCache) Get(key string) ([]byte, bool, error) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if m.now().After(e.expires) {
		m.purgeExpired(key)
		return nil, false, nil
	}
	return e.bytes, true, nil
}

// purgeExpired deletes the entry under key if it is still expired.
// A Put may have replaced it since it was read.
func (m *MemCache) purgeExpired(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.entries[key]; ok && m.now().After(e.expires) {
		delete(m.entries, key)
	}
}

func (m *MemCache) Put(key string, expires time.Time, bytes []byte) error {
	b := make([]byte, len(bytes))
	copy(b, bytes)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memEntry{expires: expires, bytes: b}
	return nil
}

func (m *MemCache) Purge(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

func (m *MemCache) Has(key string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[key]
	return ok && !m.now().After(e.expires), nil
}

func (m *MemCache) PurgeExpired(now time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	purged := 0
	for key, e := range m.entries {
		if now.After(e.expires) {
			delete(m.entries, key)
			purged++
		}
	}
	return purged, nil
}
