// Package acltest holds a conformance suite that every acl.Store
// implementation is expected to pass.
package acltest

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/acl/pkg/acl"
)

// StoreFactory returns an empty store. It is called once per subtest.
type StoreFactory func(t *testing.T) acl.Store

// RunStoreTests exercises the acl.Store contract against stores built by newStore.
func RunStoreTests(t *testing.T, newStore StoreFactory) {
	t.Helper()
	ctx := context.Background()

	t.Run("get from empty store", func(t *testing.T) {
		s := newStore(t)

		_, err := s.GetRole(ctx, "guest")
		assert.ErrorIs(t, err, acl.ErrRoleNotFound)
		assert.ErrorIs(t, err, acl.ErrNoRoles)
	})

	t.Run("get absent role", func(t *testing.T) {
		s := newStore(t)
		mustAdd(t, s, "guest", "")

		_, err := s.GetRole(ctx, "admin")
		assert.ErrorIs(t, err, acl.ErrRoleNotFound)
		assert.NotErrorIs(t, err, acl.ErrNoRoles)
	})

	t.Run("add and get", func(t *testing.T) {
		s := newStore(t)
		mustAdd(t, s, "user", "guest")

		role, err := s.GetRole(ctx, "user")
		require.NoError(t, err)
		assert.Equal(t, "user", role.Name)
		assert.Equal(t, "guest", role.Parent)
		assert.Empty(t, role.Permissions)
	})

	t.Run("first write wins", func(t *testing.T) {
		s := newStore(t)
		mustAdd(t, s, "r", "p1")
		mustGrant(t, s, "r", "read", "x")
		mustAdd(t, s, "r", "p2")

		role, err := s.GetRole(ctx, "r")
		require.NoError(t, err)
		assert.Equal(t, "p1", role.Parent)
		assert.Equal(t, []acl.Permission{{Action: "read", Resource: "x"}}, role.Permissions)
	})

	t.Run("exists", func(t *testing.T) {
		s := newStore(t)

		ok, err := s.Exists(ctx, "r")
		require.NoError(t, err)
		assert.False(t, ok)

		mustAdd(t, s, "r", "")

		ok, err = s.Exists(ctx, "r")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("update missing role", func(t *testing.T) {
		s := newStore(t)
		mustAdd(t, s, "other", "")

		ok, err := s.UpdatePermissions(ctx, "ghost", "read", "x")
		assert.False(t, ok)
		assert.ErrorIs(t, err, acl.ErrRoleNotFound)

		ok, err = s.Exists(ctx, "ghost")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("permissions keep order and duplicates", func(t *testing.T) {
		s := newStore(t)
		mustAdd(t, s, "r", "")
		mustGrant(t, s, "r", "read", "x")
		mustGrant(t, s, "r", "write", "y")
		mustGrant(t, s, "r", "read", "x")

		role, err := s.GetRole(ctx, "r")
		require.NoError(t, err)
		assert.Equal(t, []acl.Permission{
			{Action: "read", Resource: "x"},
			{Action: "write", Resource: "y"},
			{Action: "read", Resource: "x"},
		}, role.Permissions)
	})

	t.Run("snapshot isolation", func(t *testing.T) {
		s := newStore(t)
		mustAdd(t, s, "r", "")
		mustGrant(t, s, "r", "read", "x")

		snap, err := s.GetRole(ctx, "r")
		require.NoError(t, err)
		snap.Permissions[0].Action = "tampered"
		snap.Parent = "tampered"

		mustGrant(t, s, "r", "write", "x")
		assert.Len(t, snap.Permissions, 1)

		fresh, err := s.GetRole(ctx, "r")
		require.NoError(t, err)
		assert.Equal(t, "", fresh.Parent)
		assert.Equal(t, []acl.Permission{
			{Action: "read", Resource: "x"},
			{Action: "write", Resource: "x"},
		}, fresh.Permissions)
	})

	t.Run("grants are isolated per role", func(t *testing.T) {
		s := newStore(t)
		mustAdd(t, s, "a", "")
		mustAdd(t, s, "b", "")
		mustGrant(t, s, "a", "delete", "users")

		role, err := s.GetRole(ctx, "b")
		require.NoError(t, err)
		assert.Empty(t, role.Permissions)
	})

	t.Run("concurrent grants are all kept", func(t *testing.T) {
		s := newStore(t)
		mustAdd(t, s, "r", "")

		const workers = 8
		const grants = 10

		var wg sync.WaitGroup
		wg.Add(workers)
		for w := range workers {
			go func(id int) {
				defer wg.Done()
				for g := range grants {
					_, err := s.UpdatePermissions(ctx, "r", "read", fmt.Sprintf("doc-%d-%d", id, g))
					assert.NoError(t, err)
				}
			}(w)
		}
		wg.Wait()

		role, err := s.GetRole(ctx, "r")
		require.NoError(t, err)
		assert.Len(t, role.Permissions, workers*grants)
	})

	t.Run("acl scenario", func(t *testing.T) {
		a := acl.New(newStore(t))
		require.NoError(t, a.AddRole(ctx, "guest", ""))
		require.NoError(t, a.AddRole(ctx, "user", "guest"))
		require.NoError(t, a.Allow(ctx, []string{"user"}, "comment", "foobar"))
		require.NoError(t, a.Allow(ctx, []string{"guest"}, "comment", "news"))

		assert.True(t, a.Available(ctx, "user", "comment", "foobar"))
		assert.True(t, a.Available(ctx, "user", "comment", "news"))
		assert.False(t, a.Available(ctx, "user", "comment", "foobar2"))
		assert.False(t, a.Available(ctx, "guest", "comment", "foobar"))
	})
}

func mustAdd(t *testing.T, s acl.Store, name, parent string) {
	t.Helper()
	ok, err := s.AddRole(context.Background(), name, parent)
	require.NoError(t, err)
	require.True(t, ok)
}

func mustGrant(t *testing.T, s acl.Store, name, action, resource string) {
	t.Helper()
	ok, err := s.UpdatePermissions(context.Background(), name, action, resource)
	require.NoError(t, err)
	require.True(t, ok)
}
