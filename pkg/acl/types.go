package acl

import "slices"

// Permission is a granted (action, resource) pair.
// Two permissions are equal when both fields are equal.
type Permission struct {
	Action   string `json:"action"`
	Resource string `json:"resource"`
}

// Role is a snapshot of a stored role.
// Parent holds the name of the parent role, or an empty string when the role
// has no parent. The name is resolved against the store at evaluation time.
type Role struct {
	Name        string
	Parent      string
	Permissions []Permission
}

// NewRole returns a role without permissions.
func NewRole(name, parent string) Role {
	return Role{Name: name, Parent: parent, Permissions: []Permission{}}
}

// HasParent reports whether the role inherits from another role.
func (r Role) HasParent() bool {
	return r.Parent != ""
}

// Can checks if the role has the permission directly.
// This does not check inherited permissions.
func (r Role) Can(action, resource string) bool {
	return slices.Contains(r.Permissions, Permission{Action: action, Resource: resource})
}

// Clone returns a copy that shares no memory with r.
func (r Role) Clone() Role {
	perms := make([]Permission, len(r.Permissions))
	copy(perms, r.Permissions)
	r.Permissions = perms
	return r
}

// withPermission returns a copy of r with p appended.
func (r Role) withPermission(p Permission) Role {
	perms := make([]Permission, len(r.Permissions), len(r.Permissions)+1)
	copy(perms, r.Permissions)
	r.Permissions = append(perms, p)
	return r
}
