package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerPort  string
	ServerHost  string
	CORSOrigins []string

	// Database configuration
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string
	EventsChannel string

	// JWT configuration
	JWTSecret string

	// Ledger configuration
	AdminAddress   string
	PlatformFeeBps uint64
	FeeRecipient   string

	// Token metadata storage
	S3Bucket  string
	AWSRegion string

	// RateLimitPerMinute caps commands per caller address; 0 disables it
	RateLimitPerMinute int
}

// LoadConfig creates a new Config from environment variables and secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()

	if env == Development {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load .env: %w", err)
		}
	}

	cfg := &Config{
		Environment:   env,
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		ServerHost:    getEnv("SERVER_HOST", "0.0.0.0"),
		CORSOrigins:   splitList(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		DBDriver:      getEnv("DB_DRIVER", "postgres"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBName:        getEnv("DB_NAME", "recipemint"),
		DBSSLMode:     getEnv("DB_SSL_MODE", "disable"),
		SQLitePath:    getEnv("SQLITE_PATH", "recipemint.db"),
		RedisHost:     os.Getenv("REDIS_HOST"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		EventsChannel: getEnv("EVENTS_CHANNEL", "recipemint:events"),
		AdminAddress:  os.Getenv("ADMIN_ADDRESS"),
		FeeRecipient:  os.Getenv("FEE_RECIPIENT"),
		S3Bucket:      os.Getenv("S3_BUCKET_NAME"),
		AWSRegion:     os.Getenv("AWS_REGION"),
	}

	var err error
	if cfg.PlatformFeeBps, err = getEnvUint("PLATFORM_FEE_BPS", 250); err != nil {
		return nil, err
	}
	if cfg.RateLimitPerMinute, err = getEnvInt("RATE_LIMIT_PER_MINUTE", 60); err != nil {
		return nil, err
	}
	if cfg.RedisDB, err = getEnvInt("REDIS_DB", 0); err != nil {
		return nil, err
	}

	// Sensitive values
	cfg.DBUser = sensitive(env, "db_user", "DB_USER")
	cfg.DBPassword = sensitive(env, "db_password", "DB_PASSWORD")
	cfg.JWTSecret = sensitive(env, "jwt_secret", "JWT_SECRET")
	cfg.RedisPassword = sensitive(env, "redis_password", "REDIS_PASSWORD")
	cfg.RedisURL = sensitive(env, "redis_url", "REDIS_URL")

	if env.AllowsDefaults() && cfg.DBDriver == "postgres" && cfg.DBUser == "" {
		cfg.DBUser = "postgres"
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Addr returns the listen address
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// sensitive reads a secret. Production only trusts Docker secrets; other
// environments fall back to the environment variable.
func sensitive(env Environment, secret, envVar string) string {
	if v := readSecret(secret); v != "" {
		return v
	}
	if env.UsesSecretFiles() {
		return ""
	}
	return os.Getenv(envVar)
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	data, err := os.ReadFile(filepath.Join(secretsDir, name))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Printf("Failed to read secret %s: %v", name, err)
		}
		return ""
	}
	return strings.TrimSpace(string(data))
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, ValidationError{Field: key, Message: "must be an integer"}
	}
	return v, nil
}

func getEnvUint(key string, defaultValue uint64) (uint64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, ValidationError{Field: key, Message: "must be a non-negative integer"}
	}
	return v, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
