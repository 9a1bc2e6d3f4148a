package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv   string `env:"APP_ENV" envDefault:"development"`
	AppPort  string `env:"APP_PORT" envDefault:"8080"`
	// LogLevel overrides the per-environment default when set.
	LogLevel string `env:"LOG_LEVEL"`

	DBHost         string `env:"DB_HOST"`
	DBUser         string `env:"DB_USER"`
	DBPassword     string `env:"DB_PASSWORD"`
	DBName         string `env:"DB_NAME"`
	DBPort         string `env:"DB_PORT" envDefault:"5432"`
	DBSSLMode      string `env:"DB_SSLMODE" envDefault:"disable"`
	DBMaxOpenConns int    `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	DBMaxIdleConns int    `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	MigrationsDir  string `env:"MIGRATIONS_DIR" envDefault:"./migrations"`

	JWTSecret         string `env:"JWT_SECRET"`
	InternalSecretKey string `env:"INTERNAL_SECRET_KEY"`

	// Empty RedisAddr keeps checkout idempotency keys in process memory.
	RedisAddr      string        `env:"REDIS_ADDR"`
	RedisPassword  string        `env:"REDIS_PASSWORD"`
	RedisDB        int           `env:"REDIS_DB" envDefault:"0"`
	IdempotencyTTL time.Duration `env:"IDEMPOTENCY_TTL" envDefault:"10m"`

	CompensationMaxRetries uint64 `env:"COMPENSATION_MAX_RETRIES" envDefault:"5"`
	DefaultCurrency        string `env:"DEFAULT_CURRENCY" envDefault:"USD"`
	RequireVerifiedReviews bool   `env:"REQUIRE_VERIFIED_REVIEWS" envDefault:"false"`
}

var ErrMissingDBHost = errors.New("DB_HOST is not set")

// LoadConfig reads .env (if present) and the process environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if cfg.DBHost == "" {
		return nil, ErrMissingDBHost
	}
	if len(cfg.DefaultCurrency) != 3 {
		return nil, fmt.Errorf("DEFAULT_CURRENCY must be a three-letter code, got %q", cfg.DefaultCurrency)
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
