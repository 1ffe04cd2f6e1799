package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`

	AllowedOrigins []string `toml:"allowed_origins"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// postgres
	PostgresHost     string `toml:"postgres_host"`
	PostgresPort     string `toml:"postgres_port"`
	PostgresDBName   string `toml:"postgres_db_name"`
	PostgresUser     string `toml:"postgres_user"`
	PostgresMaxConns int32  `toml:"postgres_max_conns"`

	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`

	// metrics
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`

	// domain
	Timezone                  string        `toml:"timezone"`
	AuthCodeTTL               time.Duration `toml:"auth_code_ttl"`
	SessionTTL                time.Duration `toml:"session_ttl"`
	AuthScanInterval          time.Duration `toml:"auth_scan_interval"`
	AuthCodeRateLimitPerMin   int           `toml:"auth_code_rate_limit_per_min"`
	CodeWebhookURL            string        `toml:"code_webhook_url"`
	CatalogCacheSizeMB        int           `toml:"catalog_cache_size_mb"`
	CatalogCacheTTL           time.Duration `toml:"catalog_cache_ttl"`
	CountersReconcileInterval time.Duration `toml:"counters_reconcile_interval"`
	FeedMaxPageSize           int           `toml:"feed_max_page_size"`
}

type Toml struct {
	Development *Config
	Production  *Config
	DockerDev   *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	case "ddev", "dockerdev":
		cfg = t.DockerDev
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("env [%s] not present in config", env)
	}
	return cfg, nil
}

// Load reads the TOML file at path and returns the config for env,
// with defaults applied to the unset keys.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid [%s] config: %w", env, err)
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Timezone == "" {
		c.Timezone = "UTC"
	}
	if c.AuthCodeTTL == 0 {
		c.AuthCodeTTL = 10 * time.Minute
	}
	if c.SessionTTL == 0 {
		c.SessionTTL = 30 * 24 * time.Hour
	}
	if c.AuthScanInterval == 0 {
		c.AuthScanInterval = time.Hour
	}
	if c.AuthCodeRateLimitPerMin == 0 {
		c.AuthCodeRateLimitPerMin = 3
	}
	if c.CatalogCacheSizeMB == 0 {
		c.CatalogCacheSizeMB = 16
	}
	if c.CatalogCacheTTL == 0 {
		c.CatalogCacheTTL = 10 * time.Minute
	}
	if c.CountersReconcileInterval == 0 {
		c.CountersReconcileInterval = 15 * time.Minute
	}
	if c.FeedMaxPageSize == 0 {
		c.FeedMaxPageSize = 50
	}
	if c.PostgresMaxConns == 0 {
		c.PostgresMaxConns = 10
	}
}

func (c *Config) validate() error {
	if c.Port <= 0 {
		return fmt.Errorf("port must be positive, got %d", c.Port)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("timezone: %w", err)
	}
	if c.FeedMaxPageSize < 1 {
		return fmt.Errorf("feed_max_page_size must be positive, got %d", c.FeedMaxPageSize)
	}
	return nil
}
