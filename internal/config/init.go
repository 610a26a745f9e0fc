package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const (
	defaultPort             = "8080"
	defaultSessionTTL       = 24 * time.Hour
	defaultQuotaMaxAttempts = 5
)

// Config is everything the app reads from the environment.
type Config struct {
	AppPort string

	DBDriver string // mysql or sqlite
	DBDSN    string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret  string
	SessionTTL time.Duration

	QuotaMaxAttempts int

	// Bootstrap admin; skipped when username or password is empty.
	AdminUsername string
	AdminPassword string
	AdminEmail    string
	AdminFullName string
}

// Load reads .env (if present) and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppPort:       getEnv("APP_PORT", defaultPort),
		DBDriver:      getEnv("DB_DRIVER", "mysql"),
		DBDSN:         os.Getenv("DB_DSN"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		AdminUsername: os.Getenv("ADMIN_USERNAME"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminFullName: getEnv("ADMIN_FULL_NAME", "Administrator"),
	}

	if cfg.DBDSN == "" {
		return nil, errors.New("DB_DSN is not set")
	}
	if cfg.DBDriver != "mysql" && cfg.DBDriver != "sqlite" {
		return nil, fmt.Errorf("DB_DRIVER must be mysql or sqlite, got %q", cfg.DBDriver)
	}
	if cfg.RedisAddr == "" {
		return nil, errors.New("REDIS_ADDR is not set")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}

	redisDB, err := getInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}
	cfg.RedisDB = redisDB

	attempts, err := getInt("QUOTA_MAX_ATTEMPTS", defaultQuotaMaxAttempts)
	if err != nil {
		return nil, err
	}
	if attempts <= 0 {
		return nil, errors.New("QUOTA_MAX_ATTEMPTS must be positive")
	}
	cfg.QuotaMaxAttempts = attempts

	cfg.SessionTTL = defaultSessionTTL
	if raw := os.Getenv("SESSION_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil || ttl <= 0 {
			return nil, fmt.Errorf("invalid SESSION_TTL %q", raw)
		}
		cfg.SessionTTL = ttl
	}

	if cfg.AdminEmail == "" && cfg.AdminUsername != "" {
		cfg.AdminEmail = cfg.AdminUsername + "@localhost"
	}
	return cfg, nil
}

// Init is Load for main: any problem is fatal.
func Init() *Config {
	cfg, err := Load()
	if err != nil {
		Logger.Fatal("Invalid configuration", zap.Error(err))
	}
	return cfg
}

// HasBootstrapAdmin reports whether an admin account should be seeded.
func (c *Config) HasBootstrapAdmin() bool {
	return c.AdminUsername != "" && c.AdminPassword != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}
