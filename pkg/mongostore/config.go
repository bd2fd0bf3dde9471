package mongostore

import "time"

// Config holds the connection settings for the store.
//
// Database and Collection name where role documents live, one document per
// role. The pool fields are passed to the driver unchanged; ConnectTimeout
// bounds each dial. RetryAttempts and RetryInterval drive Connect.
type Config struct {
	ConnectionURL string `env:"MONGODB_URL,required"`
	Database      string `env:"ACL_MONGODB_DATABASE" envDefault:"acl"`
	Collection    string `env:"ACL_MONGODB_COLLECTION" envDefault:"roles"`

	ConnectTimeout  time.Duration `env:"MONGODB_CONNECT_TIMEOUT" envDefault:"10s"`
	MaxPoolSize     uint64        `env:"MONGODB_MAX_POOL_SIZE" envDefault:"100"`
	MinPoolSize     uint64        `env:"MONGODB_MIN_POOL_SIZE" envDefault:"1"`
	MaxConnIdleTime time.Duration `env:"MONGODB_MAX_CONN_IDLE_TIME" envDefault:"300s"`

	RetryAttempts int           `env:"MONGODB_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval time.Duration `env:"MONGODB_RETRY_INTERVAL" envDefault:"5s"`
}
