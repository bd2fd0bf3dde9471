package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/acl/pkg/acl"
)

// appendPermission pushes ARGV[2] onto KEYS[2] if ARGV[1] is a field of KEYS[1].
var appendPermission = redis.NewScript(`
if redis.call("HEXISTS", KEYS[1], ARGV[1]) == 0 then
	return 0
end
redis.call("RPUSH", KEYS[2], ARGV[2])
return 1
`)

// Store implements acl.Store using Redis.
type Store struct {
	client redis.UniversalClient
	prefix string
}

// Option configures a Store.
type Option func(*Store)

// WithKeyPrefix namespaces all keys. Empty prefixes are ignored.
func WithKeyPrefix(prefix string) Option {
	return func(s *Store) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// New creates a Store over an existing client.
func New(client redis.UniversalClient, opts ...Option) *Store {
	s := &Store{client: client, prefix: "acl"}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) rolesKey() string {
	return fmt.Sprintf("{%s}:roles", s.prefix)
}

func (s *Store) permsKey(name string) string {
	return fmt.Sprintf("{%s}:perms:%s", s.prefix, name)
}

// AddRole implements acl.Store.
func (s *Store) AddRole(ctx context.Context, name, inherits string) (bool, error) {
	if err := s.client.HSetNX(ctx, s.rolesKey(), name, inherits).Err(); err != nil {
		return false, fmt.Errorf("redisstore: add role %q: %w", name, err)
	}
	return true, nil
}

// GetRole implements acl.Store.
func (s *Store) GetRole(ctx context.Context, name string) (acl.Role, error) {
	var (
		parentCmd *redis.StringCmd
		permsCmd  *redis.StringSliceCmd
	)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		parentCmd = pipe.HGet(ctx, s.rolesKey(), name)
		permsCmd = pipe.LRange(ctx, s.permsKey(name), 0, -1)
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return acl.Role{}, fmt.Errorf("redisstore: get role %q: %w", name, err)
	}

	parent, err := parentCmd.Result()
	if errors.Is(err, redis.Nil) {
		return acl.Role{}, s.notFound(ctx, name)
	}
	if err != nil {
		return acl.Role{}, fmt.Errorf("redisstore: get role %q: %w", name, err)
	}

	raw, err := permsCmd.Result()
	if err != nil {
		return acl.Role{}, fmt.Errorf("redisstore: get permissions of %q: %w", name, err)
	}

	role := acl.NewRole(name, parent)
	for _, item := range raw {
		var p acl.Permission
		if err := json.Unmarshal([]byte(item), &p); err != nil {
			return acl.Role{}, errors.Join(ErrCorruptPermission, err)
		}
		role.Permissions = append(role.Permissions, p)
	}
	return role, nil
}

// Exists implements acl.Store.
func (s *Store) Exists(ctx context.Context, name string) (bool, error) {
	ok, err := s.client.HExists(ctx, s.rolesKey(), name).Result()
	if err != nil {
		return false, fmt.Errorf("redisstore: exists %q: %w", name, err)
	}
	return ok, nil
}

// UpdatePermissions implements acl.Store.
func (s *Store) UpdatePermissions(ctx context.Context, name, action, resource string) (bool, error) {
	payload, err := json.Marshal(acl.Permission{Action: action, Resource: resource})
	if err != nil {
		return false, err
	}

	keys := []string{s.rolesKey(), s.permsKey(name)}
	appended, err := appendPermission.Run(ctx, s.client, keys, name, string(payload)).Int()
	if err != nil {
		return false, fmt.Errorf("redisstore: update permissions of %q: %w", name, err)
	}
	if appended == 0 {
		return false, s.notFound(ctx, name)
	}
	return true, nil
}

func (s *Store) notFound(ctx context.Context, name string) error {
	n, err := s.client.HLen(ctx, s.rolesKey()).Result()
	if err != nil {
		return errors.Join(acl.NotFoundError(name, false), err)
	}
	return acl.NotFoundError(name, n == 0)
}
