package repos

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps values in process memory. It backs the per-session
// scope. With an idle limit, a key not read or written for that long is
// dropped.
type MemoryStore struct {
	mu        sync.Mutex
	data      map[string]memEntry
	idle      time.Duration
	now       func() time.Time
	lastSweep time.Time
}

type memEntry struct {
	value []byte
	seen  time.Time
}

// NewMemoryStore keeps values for the life of the process.
func NewMemoryStore() *MemoryStore { return NewExpiringMemoryStore(0) }

// NewExpiringMemoryStore drops keys idle for longer than idle; idle <= 0
// never expires.
func NewExpiringMemoryStore(idle time.Duration) *MemoryStore {
	return &MemoryStore{data: map[string]memEntry{}, idle: idle, now: time.Now}
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	m.maybeSweep(now)
	e, ok := m.data[key]
	if !ok || m.expired(e, now) {
		delete(m.data, key)
		return nil, ErrNotFound
	}
	e.seen = now
	m.data[key] = e
	out := make([]byte, len(e.value))
	copy(out, e.value)
	return out, nil
}

func (m *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	v := make([]byte, len(value))
	copy(v, value)
	m.mu.Lock()
	now := m.now()
	m.data[key] = memEntry{value: v, seen: now}
	m.maybeSweep(now)
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.data, key)
	m.mu.Unlock()
	return nil
}

// Len is the number of stored keys, expired ones included until swept.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}

func (m *MemoryStore) expired(e memEntry, now time.Time) bool {
	return m.idle > 0 && now.Sub(e.seen) > m.idle
}

// maybeSweep must be called with mu held.
func (m *MemoryStore) maybeSweep(now time.Time) {
	if m.idle <= 0 || now.Sub(m.lastSweep) < m.idle/4 {
		return
	}
	m.lastSweep = now
	for k, e := range m.data {
		if m.expired(e, now) {
			delete(m.data, k)
		}
	}
}
