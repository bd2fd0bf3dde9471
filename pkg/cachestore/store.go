package cachestore

import (
	"context"
	"sync"
	"time"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/dmitrymomot/acl/pkg/acl"
)

// DefaultTTL is used when Config.TTL is zero.
const DefaultTTL = time.Minute

// Config tunes the cache.
//
// MaxRoles bounds the number of cached snapshots. TTL is how long a snapshot
// is served before the backend is asked again; zero means DefaultTTL and a
// negative value keeps entries until they are evicted or invalidated.
type Config struct {
	MaxRoles int64         `env:"ACL_CACHE_MAX_ROLES" envDefault:"10000"`
	TTL      time.Duration `env:"ACL_CACHE_TTL" envDefault:"1m"`
}

// Store is a caching acl.Store decorator.
type Store struct {
	next  acl.Store
	cache *ristretto.Cache[string, acl.Role]
	ttl   time.Duration

	// mu orders cache fills against invalidations. gens counts writes per role.
	mu   sync.Mutex
	gens map[string]uint64
}

// New wraps next with a cache.
func New(next acl.Store, cfg Config) (*Store, error) {
	maxRoles := cfg.MaxRoles
	if maxRoles <= 0 {
		maxRoles = 10000
	}

	ttl := cfg.TTL
	switch {
	case ttl == 0:
		ttl = DefaultTTL
	case ttl < 0:
		ttl = 0 // ristretto: no expiry
	}

	cache, err := ristretto.NewCache(&ristretto.Config[string, acl.Role]{
		NumCounters:        maxRoles * 10,
		MaxCost:            maxRoles,
		BufferItems:        64,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, err
	}

	return &Store{
		next:  next,
		cache: cache,
		ttl:   ttl,
		gens:  make(map[string]uint64),
	}, nil
}

// AddRole implements acl.Store.
func (s *Store) AddRole(ctx context.Context, name, inherits string) (bool, error) {
	ok, err := s.next.AddRole(ctx, name, inherits)
	if err != nil {
		return ok, err
	}
	s.invalidate(name)
	return ok, nil
}

// GetRole implements acl.Store.
// Misses, including not-found results, are never cached. A snapshot is only
// cached when no write to the role finished while it was being fetched.
func (s *Store) GetRole(ctx context.Context, name string) (acl.Role, error) {
	if role, ok := s.cache.Get(name); ok {
		return role.Clone(), nil
	}

	gen := s.generation(name)
	role, err := s.next.GetRole(ctx, name)
	if err != nil {
		return acl.Role{}, err
	}

	s.mu.Lock()
	if s.gens[name] == gen {
		s.cache.SetWithTTL(name, role.Clone(), 1, s.ttl)
	}
	s.mu.Unlock()

	return role, nil
}

// Exists implements acl.Store.
func (s *Store) Exists(ctx context.Context, name string) (bool, error) {
	if _, ok := s.cache.Get(name); ok {
		return true, nil
	}
	return s.next.Exists(ctx, name)
}

// UpdatePermissions implements acl.Store.
func (s *Store) UpdatePermissions(ctx context.Context, name, action, resource string) (bool, error) {
	ok, err := s.next.UpdatePermissions(ctx, name, action, resource)
	s.invalidate(name)
	return ok, err
}

// Wait blocks until pending cache writes are applied.
func (s *Store) Wait() {
	s.cache.Wait()
}

// Close releases the cache. The wrapped store is not closed.
func (s *Store) Close() {
	s.cache.Close()
}

func (s *Store) generation(name string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gens[name]
}

// invalidate must run after the backend write has completed.
func (s *Store) invalidate(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gens[name]++
	s.cache.Del(name)
}
