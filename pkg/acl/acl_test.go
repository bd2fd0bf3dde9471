package acl_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/acl/pkg/acl"
)

func newACL(t *testing.T, opts ...acl.Option) *acl.ACL {
	t.Helper()
	return acl.New(acl.NewMemoryStore(), opts...)
}

func TestACL_GuestUserScenario(t *testing.T) {
	ctx := context.Background()
	a := newACL(t)

	require.NoError(t, a.AddRole(ctx, "guest", ""))
	require.NoError(t, a.AddRole(ctx, "user", "guest"))
	require.NoError(t, a.Allow(ctx, []string{"user"}, "comment", "foobar"))
	require.NoError(t, a.Allow(ctx, []string{"guest"}, "comment", "news"))

	assert.True(t, a.Available(ctx, "user", "comment", "foobar"))
	assert.True(t, a.Available(ctx, "user", "comment", "news"))
	assert.False(t, a.Available(ctx, "user", "comment", "foobar2"))
	assert.False(t, a.Available(ctx, "guest", "comment", "foobar"))
}

func TestACL_Available(t *testing.T) {
	ctx := context.Background()
	a := newACL(t)

	require.NoError(t, a.AddRole(ctx, "grandparent", ""))
	require.NoError(t, a.AddRole(ctx, "parent", "grandparent"))
	require.NoError(t, a.AddRole(ctx, "child", "parent"))
	require.NoError(t, a.AddRole(ctx, "a", ""))
	require.NoError(t, a.AddRole(ctx, "b", ""))
	require.NoError(t, a.AddRole(ctx, "r", ""))

	require.NoError(t, a.Allow(ctx, []string{"r"}, "read", "x"))
	require.NoError(t, a.Allow(ctx, []string{"grandparent"}, "audit", "logs"))
	require.NoError(t, a.Allow(ctx, []string{"parent"}, "write", "docs"))
	require.NoError(t, a.Allow(ctx, []string{"a"}, "delete", "users"))

	tests := []struct {
		name     string
		role     string
		action   string
		resource string
		want     bool
	}{
		{name: "direct grant", role: "r", action: "read", resource: "x", want: true},
		{name: "direct grant other resource", role: "r", action: "read", resource: "y", want: false},
		{name: "direct grant other action", role: "r", action: "write", resource: "x", want: false},
		{name: "inherited from parent", role: "child", action: "write", resource: "docs", want: true},
		{name: "inherited from grandparent", role: "child", action: "audit", resource: "logs", want: true},
		{name: "parent sees grandparent grant", role: "parent", action: "audit", resource: "logs", want: true},
		{name: "no downward inheritance", role: "grandparent", action: "write", resource: "docs", want: false},
		{name: "no leak across unrelated roles", role: "b", action: "delete", resource: "users", want: false},
		{name: "owner keeps its grant", role: "a", action: "delete", resource: "users", want: true},
		{name: "chain exhausted", role: "child", action: "read", resource: "x", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.Available(ctx, tt.role, tt.action, tt.resource))
		})
	}
}

func TestACL_AddRole(t *testing.T) {
	ctx := context.Background()

	t.Run("empty name rejected", func(t *testing.T) {
		store := acl.NewMemoryStore()
		a := acl.New(store)

		err := a.AddRole(ctx, "", "x")
		assert.ErrorIs(t, err, acl.ErrEmptyName)
		assert.Equal(t, 0, store.Len())

		ok, err := a.HasRole(ctx, "")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("second add keeps original parent", func(t *testing.T) {
		store := acl.NewMemoryStore()
		a := acl.New(store)

		require.NoError(t, a.AddRole(ctx, "r", "p1"))
		require.NoError(t, a.AddRole(ctx, "r", "p2"))

		role, err := store.GetRole(ctx, "r")
		require.NoError(t, err)
		assert.Equal(t, "p1", role.Parent)
		assert.Equal(t, 1, store.Len())
	})

	t.Run("parent need not exist", func(t *testing.T) {
		a := newACL(t)
		require.NoError(t, a.AddRole(ctx, "orphan", "missing"))

		ok, err := a.HasRole(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("store failure is returned", func(t *testing.T) {
		boom := errors.New("boom")
		a := acl.New(&failingStore{MemoryStore: acl.NewMemoryStore(), addErr: boom})

		err := a.AddRole(ctx, "r", "")
		assert.ErrorIs(t, err, boom)
	})
}

func TestACL_Allow(t *testing.T) {
	ctx := context.Background()

	t.Run("grants every listed role", func(t *testing.T) {
		a := newACL(t)
		require.NoError(t, a.AddRole(ctx, "one", ""))
		require.NoError(t, a.AddRole(ctx, "two", ""))

		require.NoError(t, a.Allow(ctx, []string{"one", "two"}, "read", "reports"))

		assert.True(t, a.Available(ctx, "one", "read", "reports"))
		assert.True(t, a.Available(ctx, "two", "read", "reports"))
	})

	t.Run("empty role list is a no-op", func(t *testing.T) {
		a := newACL(t)
		assert.NoError(t, a.Allow(ctx, nil, "read", "reports"))
	})

	t.Run("duplicate grants are kept", func(t *testing.T) {
		store := acl.NewMemoryStore()
		a := acl.New(store)
		require.NoError(t, a.AddRole(ctx, "r", ""))

		require.NoError(t, a.Allow(ctx, []string{"r"}, "read", "x"))
		require.NoError(t, a.Allow(ctx, []string{"r"}, "read", "x"))

		role, err := store.GetRole(ctx, "r")
		require.NoError(t, err)
		assert.Len(t, role.Permissions, 2)
	})

	t.Run("unknown role panics before granting", func(t *testing.T) {
		store := acl.NewMemoryStore()
		a := acl.New(store)
		require.NoError(t, a.AddRole(ctx, "known", ""))

		assert.PanicsWithError(t, `acl.unknown_role: allow: role "ghost" is not registered`, func() {
			_ = a.Allow(ctx, []string{"known", "ghost"}, "read", "x")
		})

		role, err := store.GetRole(ctx, "known")
		require.NoError(t, err)
		assert.Empty(t, role.Permissions)
	})

	t.Run("store failure is returned", func(t *testing.T) {
		boom := errors.New("boom")
		store := &failingStore{MemoryStore: acl.NewMemoryStore(), updateErr: boom}
		a := acl.New(store)
		require.NoError(t, a.AddRole(ctx, "r", ""))

		err := a.Allow(ctx, []string{"r"}, "read", "x")
		assert.ErrorIs(t, err, boom)
	})
}

func TestACL_Precondition(t *testing.T) {
	ctx := context.Background()
	a := newACL(t)
	require.NoError(t, a.AddRole(ctx, "known", ""))

	t.Run("available", func(t *testing.T) {
		assert.PanicsWithError(t, `acl.unknown_role: available: role "ghost" is not registered`, func() {
			a.Available(ctx, "ghost", "read", "x")
		})
	})

	t.Run("check", func(t *testing.T) {
		assert.PanicsWithError(t, `acl.unknown_role: check: role "ghost" is not registered`, func() {
			_ = a.Check(ctx, "ghost", "read", "x")
		})
	})

	t.Run("panic value unwraps to ErrUnknownRole", func(t *testing.T) {
		defer func() {
			r := recover()
			require.NotNil(t, r)

			err, ok := r.(error)
			require.True(t, ok)

			var perr *acl.PreconditionError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, "available", perr.Op)
			assert.Equal(t, "ghost", perr.Role)
			assert.ErrorIs(t, err, acl.ErrUnknownRole)
		}()
		a.Available(ctx, "ghost", "read", "x")
	})
}

func TestACL_Check(t *testing.T) {
	ctx := context.Background()

	t.Run("granted", func(t *testing.T) {
		a := newACL(t)
		require.NoError(t, a.AddRole(ctx, "base", ""))
		require.NoError(t, a.AddRole(ctx, "derived", "base"))
		require.NoError(t, a.Allow(ctx, []string{"base"}, "read", "x"))

		assert.NoError(t, a.Check(ctx, "derived", "read", "x"))
	})

	t.Run("denied", func(t *testing.T) {
		a := newACL(t)
		require.NoError(t, a.AddRole(ctx, "base", ""))

		assert.ErrorIs(t, a.Check(ctx, "base", "read", "x"), acl.ErrPermissionDenied)
	})

	t.Run("unregistered parent panics", func(t *testing.T) {
		a := newACL(t)
		require.NoError(t, a.AddRole(ctx, "orphan", "never-registered"))

		assert.PanicsWithError(t, `acl.unknown_role: check: role "never-registered" is not registered`, func() {
			_ = a.Check(ctx, "orphan", "read", "x")
		})
		assert.PanicsWithError(t, `acl.unknown_role: available: role "never-registered" is not registered`, func() {
			a.Available(ctx, "orphan", "read", "x")
		})
	})

	t.Run("unregistered grandparent panics", func(t *testing.T) {
		a := newACL(t)
		require.NoError(t, a.AddRole(ctx, "child", "parent"))
		require.NoError(t, a.AddRole(ctx, "parent", "never-registered"))

		defer func() {
			var perr *acl.PreconditionError
			require.ErrorAs(t, recover().(error), &perr)
			assert.Equal(t, "available", perr.Op)
			assert.Equal(t, "never-registered", perr.Role)
		}()
		a.Available(ctx, "child", "read", "x")
	})

	t.Run("parent registered later is followed", func(t *testing.T) {
		a := newACL(t)
		require.NoError(t, a.AddRole(ctx, "child", "late"))
		require.NoError(t, a.AddRole(ctx, "late", ""))
		require.NoError(t, a.Allow(ctx, []string{"late"}, "read", "x"))

		assert.True(t, a.Available(ctx, "child", "read", "x"))
	})

	t.Run("dangling parent does not hide own grants", func(t *testing.T) {
		a := newACL(t)
		require.NoError(t, a.AddRole(ctx, "orphan", "never-registered"))
		require.NoError(t, a.Allow(ctx, []string{"orphan"}, "read", "x"))

		assert.True(t, a.Available(ctx, "orphan", "read", "x"))
	})

	t.Run("cycle is detected", func(t *testing.T) {
		a := newACL(t)
		require.NoError(t, a.AddRole(ctx, "a", "b"))
		require.NoError(t, a.AddRole(ctx, "b", "c"))
		require.NoError(t, a.AddRole(ctx, "c", "a"))

		assert.ErrorIs(t, a.Check(ctx, "a", "read", "x"), acl.ErrCircularInheritance)
		assert.False(t, a.Available(ctx, "a", "read", "x"))
	})

	t.Run("grant found before the cycle closes", func(t *testing.T) {
		a := newACL(t)
		require.NoError(t, a.AddRole(ctx, "a", "b"))
		require.NoError(t, a.AddRole(ctx, "b", "a"))
		require.NoError(t, a.Allow(ctx, []string{"b"}, "read", "x"))

		assert.True(t, a.Available(ctx, "a", "read", "x"))
	})

	t.Run("self parent", func(t *testing.T) {
		a := newACL(t)
		require.NoError(t, a.AddRole(ctx, "self", "self"))

		assert.ErrorIs(t, a.Check(ctx, "self", "read", "x"), acl.ErrCircularInheritance)
	})

	t.Run("max depth", func(t *testing.T) {
		a := newACL(t, acl.WithMaxDepth(1))
		require.NoError(t, a.AddRole(ctx, "top", ""))
		require.NoError(t, a.AddRole(ctx, "mid", "top"))
		require.NoError(t, a.AddRole(ctx, "leaf", "mid"))
		require.NoError(t, a.Allow(ctx, []string{"top"}, "read", "x"))

		assert.NoError(t, a.Check(ctx, "mid", "read", "x"))
		assert.ErrorIs(t, a.Check(ctx, "leaf", "read", "x"), acl.ErrInheritanceTooDeep)
		assert.False(t, a.Available(ctx, "leaf", "read", "x"))
	})

	t.Run("cancelled context", func(t *testing.T) {
		a := newACL(t)
		require.NoError(t, a.AddRole(ctx, "r", ""))
		require.NoError(t, a.Allow(ctx, []string{"r"}, "read", "x"))

		cctx, cancel := context.WithCancel(ctx)
		cancel()

		assert.ErrorIs(t, a.Check(cctx, "r", "read", "x"), context.Canceled)
		assert.False(t, a.Available(cctx, "r", "read", "x"))
	})

	t.Run("store failure is reported", func(t *testing.T) {
		boom := errors.New("boom")
		store := &failingStore{MemoryStore: acl.NewMemoryStore(), getErr: boom}
		a := acl.New(store)
		require.NoError(t, a.AddRole(ctx, "r", ""))

		assert.ErrorIs(t, a.Check(ctx, "r", "read", "x"), boom)
		assert.False(t, a.Available(ctx, "r", "read", "x"))
	})
}

func TestACL_AvailableFromContext(t *testing.T) {
	ctx := context.Background()
	a := newACL(t)
	require.NoError(t, a.AddRole(ctx, "editor", ""))
	require.NoError(t, a.Allow(ctx, []string{"editor"}, "edit", "page"))

	assert.True(t, a.AvailableFromContext(acl.WithRole(ctx, "editor"), "edit", "page"))
	assert.False(t, a.AvailableFromContext(acl.WithRole(ctx, "editor"), "delete", "page"))
	assert.False(t, a.AvailableFromContext(ctx, "edit", "page"))
	assert.NotPanics(t, func() {
		assert.False(t, a.AvailableFromContext(acl.WithRole(ctx, "ghost"), "edit", "page"))
	})
}

// failingStore injects errors into a MemoryStore.
type failingStore struct {
	*acl.MemoryStore
	addErr    error
	getErr    error
	updateErr error
}

func (s *failingStore) AddRole(ctx context.Context, name, inherits string) (bool, error) {
	if s.addErr != nil {
		return false, s.addErr
	}
	return s.MemoryStore.AddRole(ctx, name, inherits)
}

func (s *failingStore) GetRole(ctx context.Context, name string) (acl.Role, error) {
	if s.getErr != nil {
		return acl.Role{}, s.getErr
	}
	return s.MemoryStore.GetRole(ctx, name)
}

func (s *failingStore) UpdatePermissions(ctx context.Context, name, action, resource string) (bool, error) {
	if s.updateErr != nil {
		return false, s.updateErr
	}
	return s.MemoryStore.UpdatePermissions(ctx, name, action, resource)
}
