// Package tokencache stores short-lived bearer tokens keyed by integration
// name. It is injected into gateway clients so tests can swap in a fake with
// a controllable clock.
package tokencache

import (
	"sync"
	"time"
)

type Cache interface {
	// Get returns the cached token for name, or false when no entry exists
	// or the entry has expired. Eviction is lazy; the only guarantee is
	// that an expired token is never returned.
	Get(name string) (string, bool)

	// Put stores token under name for ttl. Any existing entry is
	// overwritten unconditionally. A non-positive ttl stores an entry that
	// is already expired, forcing re-acquisition on the next Get.
	Put(name string, token string, ttl time.Duration)
}

type entry struct {
	token     string
	expiresAt time.Time
}

// Memory is the process-wide in-memory implementation. A single mutex is
// enough at this request volume.
type Memory struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

func (m *Memory) Get(name string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[name]
	if !ok {
		return "", false
	}
	if !m.now().Before(e.expiresAt) {
		delete(m.entries, name)
		return "", false
	}
	return e.token, true
}

func (m *Memory) Put(name string, token string, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[name] = entry{
		token:     token,
		expiresAt: m.now().Add(ttl),
	}
}
