// Package acl provides a small role-based access-control evaluator.
//
// Roles are stored by name. Each role may name a single parent role and holds
// a list of granted (action, resource) permissions. A permission check walks
// the inheritance chain: the role's own grants first, then its parent's, and
// so on until a role without a parent is reached.
//
// Key concepts:
//
//   - Permission: an exact (action, resource) pair. No wildcards.
//   - Role: a named permission list with an optional parent name.
//   - Store: the storage capability set; NewMemoryStore is the in-process
//     implementation, other backends live in sibling packages.
//   - ACL: the public API on top of a Store.
//
// Basic usage:
//
//	a := acl.New(acl.NewMemoryStore())
//
//	_ = a.AddRole(ctx, "guest", "")
//	_ = a.AddRole(ctx, "user", "guest")
//
//	_ = a.Allow(ctx, []string{"guest"}, "comment", "news")
//	_ = a.Allow(ctx, []string{"user"}, "comment", "foobar")
//
//	a.Available(ctx, "user", "comment", "news")    // true, inherited from guest
//	a.Available(ctx, "user", "comment", "foobar2") // false
//
// Referencing a role that was never registered in Allow, Available or Check
// is a programming error and panics with *PreconditionError. The same holds
// for a parent reached while walking the chain, so register parents before
// checking their children. Use HasRole to probe names that come from
// untrusted input.
package acl
