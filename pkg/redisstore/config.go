package redisstore

import "time"

// Config holds the settings used by Connect. KeyPrefix is applied with
// WithKeyPrefix when building the Store.
//
// ConnectionURL uses the go-redis URL form, e.g. "redis://:password@host:6379/0".
// ConnectTimeout bounds the whole connection procedure, across all attempts.
// KeyPrefix namespaces every key the store writes, so several ACLs can share
// one database.
type Config struct {
	ConnectionURL  string        `env:"REDIS_URL,required" envDefault:"redis://localhost:6379/0"`
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
	KeyPrefix      string        `env:"ACL_REDIS_KEY_PREFIX" envDefault:"acl"`
}
