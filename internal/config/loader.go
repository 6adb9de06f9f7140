package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the path checked for YAML configuration.
const DefaultConfigFile = "vendra.yaml"

// Load returns a Config using the hierarchy: defaults < YAML < ENV.
// YAML file is optional; missing file is not an error.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigFile)
}

// LoadFrom returns a Config loaded from the given YAML path using the
// hierarchy: defaults < YAML < ENV. The YAML file is optional.
func LoadFrom(yamlPath string) (*Config, error) {
	cfg := Defaults()

	if err := loadYAML(&cfg, yamlPath); err != nil {
		return nil, fmt.Errorf("config yaml: %w", err)
	}

	loadEnv(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validate: %w", err)
	}

	return &cfg, nil
}

// loadYAML reads the YAML file and unmarshals it over cfg.
// Returns nil if the file does not exist.
func loadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is validated by caller
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	return nil
}

// loadEnv overlays environment variables onto cfg.
// Only non-empty env values override the current config.
func loadEnv(cfg *Config) {
	setString(&cfg.Server.Port, "VENDRA_PORT")
	setString(&cfg.Server.CORSOrigin, "VENDRA_CORS_ORIGIN")
	setDuration(&cfg.Server.RequestTimeout, "VENDRA_REQUEST_TIMEOUT")
	setInt64(&cfg.Server.BodyLimit, "VENDRA_BODY_LIMIT")
	setString(&cfg.Postgres.DSN, "DATABASE_URL")
	setInt32(&cfg.Postgres.MaxConns, "VENDRA_PG_MAX_CONNS")
	setInt32(&cfg.Postgres.MinConns, "VENDRA_PG_MIN_CONNS")
	setDuration(&cfg.Postgres.MaxConnLifetime, "VENDRA_PG_MAX_CONN_LIFETIME")
	setDuration(&cfg.Postgres.MaxConnIdleTime, "VENDRA_PG_MAX_CONN_IDLE_TIME")
	setDuration(&cfg.Postgres.HealthCheck, "VENDRA_PG_HEALTH_CHECK")
	setBool(&cfg.NATS.Enabled, "VENDRA_NATS_ENABLED")
	setString(&cfg.NATS.URL, "NATS_URL")
	setInt64(&cfg.Cache.MaxSizeMB, "VENDRA_CACHE_SIZE_MB")
	setDuration(&cfg.Cache.TenantTTL, "VENDRA_CACHE_TENANT_TTL")
	setString(&cfg.Auth.JWTSecret, "VENDRA_JWT_SECRET")
	setDuration(&cfg.Auth.AccessTokenExpiry, "VENDRA_ACCESS_TOKEN_EXPIRY")
	setDuration(&cfg.Auth.RefreshTokenExpiry, "VENDRA_REFRESH_TOKEN_EXPIRY")
	setInt(&cfg.Auth.BcryptCost, "VENDRA_BCRYPT_COST")
	setString(&cfg.Marketplace.BaseDomain, "VENDRA_BASE_DOMAIN")
	setString(&cfg.Marketplace.AdminPath, "VENDRA_ADMIN_PATH")
	setString(&cfg.Logging.Level, "VENDRA_LOG_LEVEL")
	setString(&cfg.Logging.Service, "VENDRA_LOG_SERVICE")
	setFloat64(&cfg.Rate.RequestsPerSecond, "VENDRA_RATE_RPS")
	setInt(&cfg.Rate.Burst, "VENDRA_RATE_BURST")
}

// validate checks that required fields are set. The process fails fast at
// boot when any of these is missing.
func validate(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server.port is required")
	}
	if cfg.Postgres.DSN == "" {
		return errors.New("postgres.dsn is required")
	}
	if cfg.Postgres.MaxConns < 1 {
		return errors.New("postgres.max_conns must be >= 1")
	}
	if cfg.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret is required (set VENDRA_JWT_SECRET)")
	}
	if len(cfg.Auth.JWTSecret) < 32 {
		return errors.New("auth.jwt_secret must be at least 32 characters")
	}
	if cfg.NATS.Enabled && cfg.NATS.URL == "" {
		return errors.New("nats.url is required when nats.enabled is true")
	}
	if cfg.Marketplace.BaseDomain == "" {
		return errors.New("marketplace.base_domain is required")
	}
	if cfg.Rate.Burst < 1 {
		return errors.New("rate.burst must be >= 1")
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setInt32(dst *int32, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 32); err == nil {
			*dst = int32(n)
		}
	}
}

func setInt64(dst *int64, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}

func setFloat64(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
