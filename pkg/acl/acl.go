package acl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// ACL registers roles, grants permissions and evaluates permission
// availability over a Store. It holds no mutable state of its own, so it is
// safe for concurrent use whenever the Store is.
type ACL struct {
	store    Store
	logger   *slog.Logger
	maxDepth int
}

// New creates an ACL over the given store.
func New(store Store, opts ...Option) *ACL {
	a := &ACL{
		store:  store,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AddRole registers a role that inherits from inherits (empty for none).
// The parent does not have to exist yet. Registering an existing name is a
// no-op and keeps the original parent.
func (a *ACL) AddRole(ctx context.Context, name, inherits string) error {
	if name == "" {
		return ErrEmptyName
	}
	if _, err := a.store.AddRole(ctx, name, inherits); err != nil {
		return fmt.Errorf("add role %q: %w", name, err)
	}
	return nil
}

// HasRole reports whether a role is registered. Unlike Allow and Available it
// never panics, so it is the way to validate names from untrusted input.
func (a *ACL) HasRole(ctx context.Context, name string) (bool, error) {
	return a.store.Exists(ctx, name)
}

// Allow grants (action, resource) to every listed role.
// All roles must be registered; an unknown role panics with
// *PreconditionError before anything is granted. Store failures are returned.
func (a *ACL) Allow(ctx context.Context, roles []string, action, resource string) error {
	for _, role := range roles {
		if err := a.mustExist(ctx, "allow", role); err != nil {
			return err
		}
	}

	for _, role := range roles {
		if _, err := a.store.UpdatePermissions(ctx, role, action, resource); err != nil {
			return fmt.Errorf("allow %s on %s for %q: %w", action, resource, role, err)
		}
	}
	return nil
}

// Available reports whether role may perform action on resource, either
// through its own grants or through its inheritance chain.
// The role must be registered; an unknown role panics with *PreconditionError.
// Lookup failures never surface: they count as "not available".
func (a *ACL) Available(ctx context.Context, role, action, resource string) bool {
	if err := a.mustExist(ctx, "available", role); err != nil {
		a.logger.WarnContext(ctx, "acl: role lookup failed",
			slog.String("role", role),
			slog.String("error", err.Error()),
		)
		return false
	}

	err := a.resolve(ctx, "available", role, action, resource)
	switch {
	case err == nil:
		return true
	case errors.Is(err, ErrPermissionDenied):
	default:
		a.logger.WarnContext(ctx, "acl: permission check failed",
			slog.String("role", role),
			slog.String("action", action),
			slog.String("resource", resource),
			slog.String("error", err.Error()),
		)
	}
	return false
}

// Check works like Available but reports why a permission is not available.
// It returns nil when granted, ErrPermissionDenied when the chain ends without
// a match, ErrCircularInheritance or ErrInheritanceTooDeep for broken chains,
// and context or store errors as they occur.
func (a *ACL) Check(ctx context.Context, role, action, resource string) error {
	if err := a.mustExist(ctx, "check", role); err != nil {
		return err
	}
	return a.resolve(ctx, "check", role, action, resource)
}

// AvailableFromContext checks the role stored in ctx by WithRole.
// It returns false when ctx carries no role or the role is not registered.
// A registered role whose chain reaches an unregistered parent still panics.
func (a *ACL) AvailableFromContext(ctx context.Context, action, resource string) bool {
	role, ok := RoleFromContext(ctx)
	if !ok {
		return false
	}
	exists, err := a.store.Exists(ctx, role)
	if err != nil || !exists {
		return false
	}
	return a.Available(ctx, role, action, resource)
}

// mustExist panics with *PreconditionError when the role is not registered.
// Store failures are returned instead.
func (a *ACL) mustExist(ctx context.Context, op, role string) error {
	exists, err := a.store.Exists(ctx, role)
	if err != nil {
		return fmt.Errorf("%s: lookup %q: %w", op, role, err)
	}
	if !exists {
		a.logger.ErrorContext(ctx, "acl: unregistered role", slog.String("op", op), slog.String("role", role))
		panic(&PreconditionError{Op: op, Role: role})
	}
	return nil
}

// resolve walks the parent chain starting at name. Every role on the chain
// must be registered: a parent that was never added panics the same way an
// unknown starting role does.
func (a *ACL) resolve(ctx context.Context, op, name, action, resource string) error {
	visited := make(map[string]struct{})
	for depth := 0; ; depth++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, seen := visited[name]; seen {
			return errors.Join(ErrCircularInheritance, fmt.Errorf("role %q reached twice", name))
		}
		if a.maxDepth > 0 && depth > a.maxDepth {
			return errors.Join(ErrInheritanceTooDeep,
				fmt.Errorf("more than %d parent hops", a.maxDepth))
		}
		visited[name] = struct{}{}

		role, err := a.store.GetRole(ctx, name)
		if err != nil {
			if IsNotFound(err) {
				a.logger.ErrorContext(ctx, "acl: unregistered role in chain",
					slog.String("op", op),
					slog.String("role", name),
				)
				panic(&PreconditionError{Op: op, Role: name})
			}
			return err
		}

		if role.Can(action, resource) {
			return nil
		}
		if !role.HasParent() {
			return ErrPermissionDenied
		}
		name = role.Parent
	}
}
