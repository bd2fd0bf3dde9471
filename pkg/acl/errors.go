package acl

import (
	"errors"
	"fmt"
)

// Domain errors for ACL operations.
var (
	// ErrEmptyName is returned when a role is registered without a name.
	ErrEmptyName = errors.New("acl.empty_name")

	// ErrRoleNotFound is returned by stores when a role does not exist.
	ErrRoleNotFound = errors.New("acl.role_not_found")

	// ErrNoRoles is joined with ErrRoleNotFound when the store holds no roles at all.
	ErrNoRoles = errors.New("acl.no_roles")

	// ErrUnknownRole is wrapped by PreconditionError.
	ErrUnknownRole = errors.New("acl.unknown_role")

	// ErrPermissionDenied is returned by Check when no role in the chain grants the permission.
	ErrPermissionDenied = errors.New("acl.permission_denied")

	// ErrCircularInheritance is returned when a role's parent chain loops back on itself.
	ErrCircularInheritance = errors.New("acl.circular_inheritance")

	// ErrInheritanceTooDeep is returned when the parent chain is longer than the configured limit.
	ErrInheritanceTooDeep = errors.New("acl.inheritance_too_deep")
)

// PreconditionError is the panic value raised when Allow, Available or Check
// is called with a role that is not registered. It signals a bug in the
// caller, not a runtime condition, and is not meant to be recovered from.
type PreconditionError struct {
	Op   string
	Role string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: %s: role %q is not registered", ErrUnknownRole, e.Op, e.Role)
}

func (e *PreconditionError) Unwrap() error {
	return ErrUnknownRole
}

// IsNotFound reports whether err means the requested role is missing from the store.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrRoleNotFound)
}

// NotFoundError builds the error a Store returns for a missing role.
// Pass empty=true when the store holds no roles at all.
func NotFoundError(name string, empty bool) error {
	if empty {
		return errors.Join(ErrRoleNotFound, ErrNoRoles)
	}
	return errors.Join(ErrRoleNotFound, fmt.Errorf("role %q", name))
}
