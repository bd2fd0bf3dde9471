// Package cachestore wraps an acl.Store with an in-process cache of role
// snapshots backed by ristretto.
//
// A permission check fetches one role per hop of the inheritance chain, so
// putting the cache in front of a networked backend removes most round trips:
//
//	backend := redisstore.New(client)
//	cached, err := cachestore.New(backend, cachestore.Config{TTL: time.Minute})
//	if err != nil {
//	    return err
//	}
//	defer cached.Close()
//	a := acl.New(cached)
//
// Writes go to the backend first and then drop the cached entry. A read that
// was already in flight when a write finished does not put its snapshot back
// into the cache. Writes made by other processes become visible once the
// entry expires, so pick the TTL to match how stale a grant may be. A zero
// TTL means DefaultTTL; only a negative TTL disables expiry.
package cachestore
