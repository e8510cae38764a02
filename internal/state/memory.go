package state

import (
	"context"
	"sync"
)

type MemoryStore struct {
	mu      sync.RWMutex
	clients map[string]map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{clients: make(map[string]map[string][]byte)}
}

func (m *MemoryStore) Get(_ context.Context, clientID, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.clients[clientID][key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *MemoryStore) Set(_ context.Context, clientID, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	keys, ok := m.clients[clientID]
	if !ok {
		keys = make(map[string][]byte)
		m.clients[clientID] = keys
	}
	keys[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, clientID, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.clients[clientID], key)
	if len(m.clients[clientID]) == 0 {
		delete(m.clients, clientID)
	}
	return nil
}
