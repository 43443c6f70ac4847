package storage

import (
	"fmt"
	"sync"
)

// MemoryStore is an in-memory implementation of Store.
type MemoryStore struct {
	entries map[string]string
	mu      sync.RWMutex
}

// NewMemoryStore creates a new instance of MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]string),
	}
}

func entryKey(clientID string, scope Scope, key string) string {
	return clientID + "/" + string(scope) + "/" + key
}

// Get returns the value stored under the key.
func (s *MemoryStore) Get(clientID string, scope Scope, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.entries[entryKey(clientID, scope, key)]
	if !ok {
		return "", fmt.Errorf("%s/%s for client %s: %w", scope, key, clientID, ErrNotFound)
	}
	return value, nil
}

// Set upserts the value stored under the key.
func (s *MemoryStore) Set(clientID string, scope Scope, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[entryKey(clientID, scope, key)] = value
	return nil
}

// Delete removes a single entry. Deleting an absent entry is not an error.
func (s *MemoryStore) Delete(clientID string, scope Scope, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, entryKey(clientID, scope, key))
	return nil
}

// ClearScope removes every entry the client holds in the scope.
func (s *MemoryStore) ClearScope(clientID string, scope Scope) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefix := clientID + "/" + string(scope) + "/"
	for k := range s.entries {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			delete(s.entries, k)
		}
	}
	return nil
}
