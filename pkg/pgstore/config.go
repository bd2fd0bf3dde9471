package pgstore

import "time"

// Config holds the pool and retry settings used by Connect, plus the name of
// the goose version table used by Migrate.
//
// Pool sizing maps onto pgxpool: MaxOpenConns becomes MaxConns and
// MaxIdleConns becomes MinConns, the number of connections the pool keeps
// warm. Zero durations keep pgxpool's own defaults. RetryAttempts and
// RetryInterval drive the linear backoff in Connect.
type Config struct {
	ConnectionString  string        `env:"PG_CONN_URL,required"`
	MaxOpenConns      int32         `env:"PG_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns      int32         `env:"PG_MAX_IDLE_CONNS" envDefault:"5"`
	HealthCheckPeriod time.Duration `env:"PG_HEALTHCHECK_PERIOD" envDefault:"1m"`
	MaxConnIdleTime   time.Duration `env:"PG_MAX_CONN_IDLE_TIME" envDefault:"10m"`
	MaxConnLifetime   time.Duration `env:"PG_MAX_CONN_LIFETIME" envDefault:"30m"`

	RetryAttempts int           `env:"PG_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval time.Duration `env:"PG_RETRY_INTERVAL" envDefault:"5s"`

	MigrationsTable string `env:"ACL_PG_MIGRATIONS_TABLE" envDefault:"acl_schema_migrations"`
}
