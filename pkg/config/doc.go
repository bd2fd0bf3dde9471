// Package config loads configuration structs from environment variables.
//
// It wraps `github.com/joho/godotenv` for optional `.env` files and
// `github.com/caarlos0/env/v11` for parsing struct tags:
//
//	var cfg redisstore.Config
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//
// Every storage backend in this module exposes a Config struct tagged for
// this loader. Pass file paths to LoadEnv to read them before parsing;
// variables already set in the process environment take precedence.
package config
