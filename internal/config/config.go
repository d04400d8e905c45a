package config

import "time"

type Postgres struct {
	DSN             string        `env:"PG_DSN"`
	MaxOpenConns    int           `env:"PG_MAX_OPEN_CONNS" envDefault:"20"`
	MaxIdleConns    int           `env:"PG_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxIdleTime time.Duration `env:"PG_CONN_MAX_IDLE_TIME" envDefault:"5m"`
	ConnMaxLifetime time.Duration `env:"PG_CONN_MAX_LIFETIME" envDefault:"30m"`
}

// Redis configures the optional match read cache. An empty Addr
// disables caching entirely.
type Redis struct {
	Addr     string        `env:"REDIS_ADDR" envDefault:""`
	Password string        `env:"REDIS_PASSWORD" envDefault:""`
	DB       int           `env:"REDIS_DB" envDefault:"0"`
	MatchTTL time.Duration `env:"REDIS_MATCH_TTL" envDefault:"5s"`
}

// Kafka configures the optional wager event stream. Empty Brokers
// disables publishing.
type Kafka struct {
	Brokers string `env:"KAFKA_BROKERS" envDefault:""`
	Topic   string `env:"KAFKA_WAGER_TOPIC" envDefault:"wager.events"`
}
