// Package config loads application configuration from environment
// variables. The JWT signing secret lives here and is handed to the token
// service at construction; nothing reads it from ambient state later.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/taskvault/taskvault/pkg/store"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database store.Config
	Auth     AuthConfig

	// LogLevel is a logrus level name (debug, info, warn, error).
	LogLevel string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// Health/metrics server (separate port for k8s probes)
	HealthPort string
}

// AuthConfig holds token signing and password hashing settings.
type AuthConfig struct {
	// JWTSecret signs issued tokens. Required; the process refuses to
	// start without it.
	JWTSecret string

	// TokenTTL bounds token validity. Expiry is the only invalidation
	// mechanism, so this is also the maximum exposure window for a
	// leaked token.
	TokenTTL time.Duration

	// TokenIssuer is stamped into the iss claim.
	TokenIssuer string

	// BcryptCost tunes password hashing. Zero selects the bcrypt
	// default.
	BcryptCost int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Server:   loadServerConfig(),
		Database: loadDatabaseConfig(),
		Auth:     loadAuthConfig(),
		LogLevel: getEnv("TASKVAULT_LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Host:            getEnv("TASKVAULT_HOST", "0.0.0.0"),
		Port:            getEnv("TASKVAULT_PORT", "8080"),
		ReadTimeout:     getEnvDuration("TASKVAULT_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:    getEnvDuration("TASKVAULT_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:     getEnvDuration("TASKVAULT_IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout: getEnvDuration("TASKVAULT_SHUTDOWN_TIMEOUT", 30*time.Second),
		HealthPort:      getEnv("TASKVAULT_HEALTH_PORT", "9090"),
	}
}

func loadDatabaseConfig() store.Config {
	cfg := store.DefaultConfig()
	cfg.URL = getEnv("TASKVAULT_POSTGRES_URL", "")

	if maxConns := getEnvInt("TASKVAULT_POSTGRES_MAX_CONNS", 0); maxConns > 0 {
		cfg.MaxConns = maxConns
	}
	if minConns := getEnvInt("TASKVAULT_POSTGRES_MIN_CONNS", 0); minConns > 0 {
		cfg.MinConns = minConns
	}
	if timeout := getEnvDuration("TASKVAULT_POSTGRES_TIMEOUT", 0); timeout > 0 {
		cfg.Timeout = timeout
	}

	return cfg
}

func loadAuthConfig() AuthConfig {
	return AuthConfig{
		JWTSecret:   getEnv("TASKVAULT_JWT_SECRET", ""),
		TokenTTL:    getEnvDuration("TASKVAULT_TOKEN_TTL", 24*time.Hour),
		TokenIssuer: getEnv("TASKVAULT_TOKEN_ISSUER", "taskvault"),
		BcryptCost:  getEnvInt("TASKVAULT_BCRYPT_COST", 0),
	}
}

// Validate checks the configuration for missing or inconsistent values.
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("TASKVAULT_POSTGRES_URL is required")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("TASKVAULT_JWT_SECRET is required")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("token TTL must be positive")
	}
	return nil
}

// Addr returns the API listen address.
func (c ServerConfig) Addr() string {
	return c.Host + ":" + c.Port
}

// HealthAddr returns the health/metrics listen address.
func (c ServerConfig) HealthAddr() string {
	return c.Host + ":" + c.HealthPort
}

// getEnv returns an environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable or a default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration returns a duration environment variable or a default
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
