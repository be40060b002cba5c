package credstore

import (
	"context"
	"sync"
)

// MemoryStore is a volatile Store for tests and ephemeral sessions. It does
// not survive a restart, which makes it a deliberate "always fresh session"
// choice when used outside tests.
type MemoryStore struct {
	mu   sync.Mutex
	pair TokenPair
	set  bool
}

// NewMemoryStore creates an empty in-memory Store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Save(_ context.Context, pair TokenPair) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pair = pair
	m.set = true
	return nil
}

func (m *MemoryStore) Load(_ context.Context) (TokenPair, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.set {
		return TokenPair{}, nil
	}
	return m.pair, nil
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pair = TokenPair{}
	m.set = false
	return nil
}
