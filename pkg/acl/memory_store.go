package acl

import (
	"context"
	"sync"
)

// MemoryStore is a Store backed by a map.
// It is safe for concurrent use.
type MemoryStore struct {
	mu    sync.RWMutex
	roles map[string]Role
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		roles: make(map[string]Role),
	}
}

// AddRole implements Store.
func (s *MemoryStore) AddRole(_ context.Context, name, inherits string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.roles[name]; !exists {
		s.roles[name] = NewRole(name, inherits)
	}
	return true, nil
}

// GetRole implements Store.
func (s *MemoryStore) GetRole(_ context.Context, name string) (Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.roles) == 0 {
		return Role{}, NotFoundError(name, true)
	}
	role, exists := s.roles[name]
	if !exists {
		return Role{}, NotFoundError(name, false)
	}
	return role.Clone(), nil
}

// Exists implements Store.
func (s *MemoryStore) Exists(_ context.Context, name string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.roles[name]
	return exists, nil
}

// UpdatePermissions implements Store.
// The stored record is replaced, never mutated, so snapshots handed out
// earlier keep their contents.
func (s *MemoryStore) UpdatePermissions(_ context.Context, name, action, resource string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	role, exists := s.roles[name]
	if !exists {
		return false, NotFoundError(name, len(s.roles) == 0)
	}
	s.roles[name] = role.withPermission(Permission{Action: action, Resource: resource})
	return true, nil
}

// Len returns the number of stored roles.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.roles)
}
