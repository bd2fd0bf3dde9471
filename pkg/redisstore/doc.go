// Package redisstore implements acl.Store on top of Redis.
//
// Layout (the prefix defaults to "acl" and is wrapped in a hash tag so all
// keys land in one cluster slot):
//
//	{acl}:roles          hash  role name -> parent name
//	{acl}:perms:<role>   list  JSON-encoded permissions in grant order
//
// Roles are created with HSETNX, so the first registration wins. Grants run
// as a Lua script that checks the role and appends in one step, and reads
// fetch the parent and the permission list inside a single MULTI block.
//
// Usage:
//
//	var cfg redisstore.Config
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//	client, err := redisstore.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	a := acl.New(redisstore.New(client, redisstore.WithKeyPrefix(cfg.KeyPrefix)))
package redisstore
