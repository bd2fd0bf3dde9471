// Package pgstore implements acl.Store on PostgreSQL using pgx.
//
// The schema is shipped as embedded goose migrations; call Migrate once at
// startup before using the store:
//
//	pool, err := pgstore.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	if err := pgstore.Migrate(ctx, pool, cfg, slog.Default()); err != nil {
//	    return err
//	}
//	a := acl.New(pgstore.New(pool))
//
// Roles live in acl_roles and grants in acl_permissions, ordered by a
// BIGSERIAL id so snapshots return permissions in grant order.
package pgstore
