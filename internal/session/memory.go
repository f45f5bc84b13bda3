package session

import (
	"context"
	"sync"
	"time"

	"github.com/juju/errors"
)

// pruneThreshold bounds how many entries accumulate before expired ones are
// swept on Save.
const pruneThreshold = 10000

type memoryEntry struct {
	session Session
	expires time.Time
}

// MemoryStore keeps sessions in process memory with a TTL.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (m *MemoryStore) Load(_ context.Context, id string) (*Session, error) {
	m.mu.RLock()
	entry, ok := m.entries[id]
	m.mu.RUnlock()

	if !ok {
		return nil, errors.NotFoundf("session")
	}
	if m.now().After(entry.expires) {
		m.mu.Lock()
		delete(m.entries, id)
		m.mu.Unlock()
		return nil, errors.NotFoundf("session")
	}
	s := entry.session
	s.ID = id
	return &s, nil
}

func (m *MemoryStore) Save(_ context.Context, s *Session, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.entries) >= pruneThreshold {
		m.cleanExpiredLocked()
	}
	m.entries[s.ID] = memoryEntry{session: *s, expires: m.now().Add(ttl)}
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
	return nil
}

// CleanExpired removes expired sessions.
func (m *MemoryStore) CleanExpired() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cleanExpiredLocked()
}

func (m *MemoryStore) cleanExpiredLocked() {
	now := m.now()
	for id, entry := range m.entries {
		if now.After(entry.expires) {
			delete(m.entries, id)
		}
	}
}

// Len reports the number of stored sessions, expired or not.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
