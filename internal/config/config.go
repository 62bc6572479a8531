package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Prefix namespaces every environment variable.
const Prefix = "VITRINE_"

// Config is the process configuration read from the environment.
// Command-line flags override it.
type Config struct {
	Addr        string `env:"ADDR" envDefault:":8080"`
	MetricsAddr string `env:"METRICS_ADDR"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"text"`

	// Content
	SiteFile    string `env:"SITE_FILE"`
	CatalogFile string `env:"CATALOG_FILE"`

	// RedisURL enables the shared catalog cache (redis://host:port/db).
	RedisURL        string        `env:"REDIS_URL"`
	CatalogCacheTTL time.Duration `env:"CATALOG_CACHE_TTL" envDefault:"1m"`

	// Layout
	AnalyticsID string `env:"ANALYTICS_ID"`
	FormURL     string `env:"FORM_URL"`
	BaseURL     string `env:"BASE_URL"`

	// Live widget instances
	SessionIdle time.Duration `env:"SESSION_IDLE" envDefault:"30m"`
	MaxSessions int           `env:"MAX_SESSIONS" envDefault:"10000"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load parses the process environment.
func Load() (*Config, error) {
	return parse(env.Options{Prefix: Prefix})
}

// LoadFrom parses an explicit environment map, for tests and embedding.
func LoadFrom(environ map[string]string) (*Config, error) {
	return parse(env.Options{Prefix: Prefix, Environment: environ})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
