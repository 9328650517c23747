package apiclient

import "sync"

// TokenStore holds the current access and refresh tokens.
type TokenStore interface {
	Tokens() (access, refresh string)
	Set(access, refresh string)
	Clear()
}

// MemoryStore keeps tokens in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	access  string
	refresh string
}

func (m *MemoryStore) Tokens() (string, string) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.access, m.refresh
}

func (m *MemoryStore) Set(access, refresh string) {
	m.mu.Lock()
	m.access, m.refresh = access, refresh
	m.mu.Unlock()
}

func (m *MemoryStore) Clear() { m.Set("", "") }
