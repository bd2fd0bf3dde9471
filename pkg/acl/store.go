package acl

import "context"

// Store defines the storage capability set an ACL is built on.
// Implementations must return independent copies from GetRole so callers can
// never alter stored state through a snapshot.
type Store interface {
	// AddRole inserts a role with no permissions unless a role with that name
	// already exists, in which case the stored role is left untouched.
	// It reports true in both cases.
	AddRole(ctx context.Context, name, inherits string) (bool, error)

	// GetRole returns a snapshot of the named role.
	// The error matches ErrRoleNotFound when the role does not exist, and
	// additionally ErrNoRoles when the store is empty.
	GetRole(ctx context.Context, name string) (Role, error)

	// Exists reports whether the named role is stored.
	Exists(ctx context.Context, name string) (bool, error)

	// UpdatePermissions appends the (action, resource) grant to the named role.
	// The error matches ErrRoleNotFound when the role does not exist.
	UpdatePermissions(ctx context.Context, name, action, resource string) (bool, error)
}
