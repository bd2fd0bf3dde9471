package pgstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/acl/pkg/acl"
)

// Store implements acl.Store on PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store. The schema must already be migrated (see Migrate).
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// AddRole implements acl.Store.
func (s *Store) AddRole(ctx context.Context, name, inherits string) (bool, error) {
	const q = `INSERT INTO acl_roles (name, parent) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`
	if _, err := s.pool.Exec(ctx, q, name, inherits); err != nil {
		return false, fmt.Errorf("pgstore: add role %q: %w", name, err)
	}
	return true, nil
}

// GetRole implements acl.Store.
// The role row and its grants are read in one repeatable-read transaction so
// the snapshot never mixes states.
func (s *Store) GetRole(ctx context.Context, name string) (acl.Role, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return acl.Role{}, fmt.Errorf("pgstore: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var parent string
	err = tx.QueryRow(ctx, `SELECT parent FROM acl_roles WHERE name = $1`, name).Scan(&parent)
	if errors.Is(err, pgx.ErrNoRows) {
		return acl.Role{}, notFound(ctx, tx, name)
	}
	if err != nil {
		return acl.Role{}, fmt.Errorf("pgstore: get role %q: %w", name, err)
	}

	rows, err := tx.Query(ctx,
		`SELECT action, resource FROM acl_permissions WHERE role_name = $1 ORDER BY id`, name)
	if err != nil {
		return acl.Role{}, fmt.Errorf("pgstore: get permissions of %q: %w", name, err)
	}
	perms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (acl.Permission, error) {
		var p acl.Permission
		err := row.Scan(&p.Action, &p.Resource)
		return p, err
	})
	if err != nil {
		return acl.Role{}, fmt.Errorf("pgstore: scan permissions of %q: %w", name, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return acl.Role{}, fmt.Errorf("pgstore: commit: %w", err)
	}

	role := acl.NewRole(name, parent)
	role.Permissions = append(role.Permissions, perms...)
	return role, nil
}

// Exists implements acl.Store.
func (s *Store) Exists(ctx context.Context, name string) (bool, error) {
	var ok bool
	err := s.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM acl_roles WHERE name = $1)`, name).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("pgstore: exists %q: %w", name, err)
	}
	return ok, nil
}

// UpdatePermissions implements acl.Store.
// A grant for a missing role violates the foreign key and maps to acl.ErrRoleNotFound.
func (s *Store) UpdatePermissions(ctx context.Context, name, action, resource string) (bool, error) {
	const q = `INSERT INTO acl_permissions (role_name, action, resource) VALUES ($1, $2, $3)`
	_, err := s.pool.Exec(ctx, q, name, action, resource)
	if isForeignKeyViolation(err) {
		return false, notFound(ctx, s.pool, name)
	}
	if err != nil {
		return false, fmt.Errorf("pgstore: update permissions of %q: %w", name, err)
	}
	return true, nil
}

type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// notFound builds the missing-role error, telling an empty store apart.
func notFound(ctx context.Context, q rowQuerier, name string) error {
	var hasRoles bool
	if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM acl_roles)`).Scan(&hasRoles); err != nil {
		return errors.Join(acl.NotFoundError(name, false), err)
	}
	return acl.NotFoundError(name, !hasRoles)
}
