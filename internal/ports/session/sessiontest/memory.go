// Package sessiontest provides an in-process SessionStore for tests.
package sessiontest

import (
	"context"
	"sync"
	"time"

	sessionPort "blogcap/internal/ports/session"
)

type entry struct {
	session   sessionPort.Session
	expiresAt time.Time
}

// MemoryStore is a SessionStore backed by a map.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]entry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]entry)}
}

func (m *MemoryStore) Save(ctx context.Context, id string, s sessionPort.Session, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[id] = entry{session: s, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (m *MemoryStore) Get(ctx context.Context, id string) (*sessionPort.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok || time.Now().After(e.expiresAt) {
		delete(m.entries, id)
		return nil, sessionPort.ErrSessionNotFound
	}
	s := e.session
	return &s, nil
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
	return nil
}

// Len reports how many records are stored.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
