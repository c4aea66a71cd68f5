package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration
type Config struct {
	Env      string `envconfig:"APP_ENV" default:"development"`
	Port     int    `envconfig:"APP_PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	DB       DBConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Fetch    FetchConfig
	Cache    CacheConfig
	CORS     CORSConfig
}

// database configuration
type DBConfig struct {
	DSN             string        `envconfig:"DATABASE_URL" required:"true"`
	MaxConns        int32         `envconfig:"DB_MAX_CONNS" default:"20"`
	MaxConnLifetime time.Duration `envconfig:"DB_MAX_CONN_LIFETIME" default:"1h"`
	AutoMigrate     bool          `envconfig:"DB_AUTO_MIGRATE" default:"true"`
}

// redis configuration; with Enabled=false lookups are never cached
type RedisConfig struct {
	Enabled  bool   `envconfig:"REDIS_ENABLED" default:"true"`
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// JWT configuration. Tokens are issued elsewhere; this service only verifies.
type JWTConfig struct {
	Secret string `envconfig:"JWT_SECRET" required:"true"`
	Issuer string `envconfig:"JWT_ISSUER" default:"coderstat"`
}

// outbound platform fetch configuration
type FetchConfig struct {
	Timeout      time.Duration `envconfig:"FETCH_TIMEOUT" default:"10s"`
	UserAgent    string        `envconfig:"FETCH_USER_AGENT"`
	Retries      int           `envconfig:"FETCH_RETRIES" default:"1"`
	Backoff      time.Duration `envconfig:"FETCH_BACKOFF" default:"500ms"`
	MaxBodyBytes int64         `envconfig:"FETCH_MAX_BODY_BYTES" default:"4194304"`
	Concurrency  int           `envconfig:"FETCH_CONCURRENCY" default:"4"`
}

type CacheConfig struct {
	StatsTTL    time.Duration `envconfig:"CACHE_STATS_TTL" default:"10m"`
	ContestsTTL time.Duration `envconfig:"CACHE_CONTESTS_TTL" default:"1h"`
}

// CORS configuration
type CORSConfig struct {
	TrustedOrigins []string `envconfig:"CORS_TRUSTED_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

func (c *Config) Validate() error {
	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
		"test":        true,
	}
	if !validEnvs[c.Env] {
		return fmt.Errorf("invalid environment: %s (must be one of: development, staging, production, test)", c.Env)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d (must be between 1 and 65535)", c.Port)
	}
	if c.DB.MaxConns < 1 {
		return fmt.Errorf("DB_MAX_CONNS must be at least 1")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters")
	}
	if c.Fetch.Timeout <= 0 {
		return fmt.Errorf("FETCH_TIMEOUT must be positive")
	}
	if c.Fetch.Retries < 0 || c.Fetch.Retries > 5 {
		return fmt.Errorf("FETCH_RETRIES must be between 0 and 5 (got %d)", c.Fetch.Retries)
	}
	if c.Fetch.Concurrency < 1 {
		return fmt.Errorf("FETCH_CONCURRENCY must be at least 1")
	}
	if c.Cache.StatsTTL < 0 || c.Cache.ContestsTTL < 0 {
		return fmt.Errorf("cache TTLs must be non-negative")
	}
	if len(c.GetCORSOrigins()) == 0 {
		return fmt.Errorf("at least one trusted origin must be specified")
	}

	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// GetCORSOrigins returns the list of trusted CORS origins
func (c *Config) GetCORSOrigins() []string {
	origins := make([]string, 0, len(c.CORS.TrustedOrigins))
	for _, origin := range c.CORS.TrustedOrigins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

func (c *Config) String() string {
	return fmt.Sprintf("Config{Env=%s, Port=%d, DB.MaxConns=%d, Redis.Enabled=%t, Redis.Addr=%s, "+
		"Fetch.Timeout=%s, Fetch.Retries=%d, Fetch.Concurrency=%d, Cache.StatsTTL=%s, "+
		"Cache.ContestsTTL=%s, CORS.Origins=%d}",
		c.Env, c.Port, c.DB.MaxConns, c.Redis.Enabled, c.Redis.Addr,
		c.Fetch.Timeout, c.Fetch.Retries, c.Fetch.Concurrency, c.Cache.StatsTTL,
		c.Cache.ContestsTTL, len(c.CORS.TrustedOrigins))
}
