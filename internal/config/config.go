package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Snapshot store backends.
const (
	SnapshotStoreRedis  = "redis"
	SnapshotStoreSQLite = "sqlite"
	SnapshotStoreMemory = "memory"
)

// Dashboard primary sources.
const (
	PrimarySourcePostgres = "postgres"
	PrimarySourceRemote   = "remote"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App       AppConfig
	Postgres  PostgresConfig
	Redis     RedisConfig
	Logger    LoggerConfig
	Dashboard DashboardConfig
	Export    ExportConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string `env:"APP_NAME" envDefault:"empsync-service"`
	Env                   string `env:"APP_ENV" envDefault:"development"`
	Host                  string `env:"APP_HOST" envDefault:"0.0.0.0"`
	Port                  string `env:"APP_PORT" envDefault:"8080"`
	Version               string `env:"APP_VERSION" envDefault:"dev"`
	RequestTimeoutSeconds int    `env:"HTTP_REQUEST_TIMEOUT_SECONDS" envDefault:"30"`
	CORSAllowOrigins      string `env:"CORS_ALLOW_ORIGINS" envDefault:"*"`
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string `env:"POSTGRES_DSN"`
	MaxConns       int32  `env:"POSTGRES_MAX_CONNS" envDefault:"10"`
	MinConns       int32  `env:"POSTGRES_MIN_CONNS" envDefault:"2"`
	RunMigrations  bool   `env:"POSTGRES_RUN_MIGRATIONS" envDefault:"true"`
	ConnMaxIdleSec int32  `env:"POSTGRES_CONN_MAX_IDLE_SECONDS" envDefault:"30"`
	ConnMaxLifeSec int32  `env:"POSTGRES_CONN_MAX_LIFE_SECONDS" envDefault:"300"`
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr      string `env:"REDIS_ADDR" envDefault:"127.0.0.1:6379"`
	Password  string `env:"REDIS_PASSWORD"`
	DB        int    `env:"REDIS_DB" envDefault:"0"`
	KeyPrefix string `env:"REDIS_KEY_PREFIX" envDefault:"empsync:"`
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level    string `env:"LOG_LEVEL" envDefault:"info"`
	Encoding string `env:"LOG_ENCODING" envDefault:"json"`
}

// DashboardConfig drives the resilient dashboard loader.
type DashboardConfig struct {
	LoadTimeoutMillis int    `env:"DASHBOARD_LOAD_TIMEOUT_MS" envDefault:"1000"`
	PrimarySource     string `env:"DASHBOARD_PRIMARY_SOURCE" envDefault:"postgres"`
	BackendURL        string `env:"DASHBOARD_BACKEND_URL" envDefault:"http://localhost:5000/api"`
	SnapshotStore     string `env:"DASHBOARD_SNAPSHOT_STORE" envDefault:"redis"`
	SnapshotKey       string `env:"DASHBOARD_SNAPSHOT_KEY" envDefault:"employees"`
	SQLitePath        string `env:"DASHBOARD_SQLITE_PATH" envDefault:"empsync-cache.db"`
	RefreshSeconds    int    `env:"DASHBOARD_REFRESH_SECONDS" envDefault:"0"`
}

// ExportConfig tunes spreadsheet exports.
type ExportConfig struct {
	SheetName string `env:"EXPORT_SHEET_NAME" envDefault:"Employees"`
}

// Load reads configuration from the environment (and an optional .env file),
// applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	switch c.Dashboard.SnapshotStore {
	case SnapshotStoreRedis, SnapshotStoreSQLite, SnapshotStoreMemory:
	default:
		return fmt.Errorf("invalid DASHBOARD_SNAPSHOT_STORE %q", c.Dashboard.SnapshotStore)
	}
	switch c.Dashboard.PrimarySource {
	case PrimarySourcePostgres, PrimarySourceRemote:
	default:
		return fmt.Errorf("invalid DASHBOARD_PRIMARY_SOURCE %q", c.Dashboard.PrimarySource)
	}
	if c.Dashboard.SnapshotKey == "" {
		return fmt.Errorf("DASHBOARD_SNAPSHOT_KEY must not be empty")
	}
	return nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// LoadTimeout returns the primary-fetch race timeout, defaulting to one second.
func (d DashboardConfig) LoadTimeout() time.Duration {
	if d.LoadTimeoutMillis <= 0 {
		return time.Second
	}
	return time.Duration(d.LoadTimeoutMillis) * time.Millisecond
}

// RefreshInterval returns the background reload period; zero disables it.
func (d DashboardConfig) RefreshInterval() time.Duration {
	if d.RefreshSeconds <= 0 {
		return 0
	}
	return time.Duration(d.RefreshSeconds) * time.Second
}
