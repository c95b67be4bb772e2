package config

import (
	"fmt"
	"strings"

	"github.com/pageza/recipemint/backend/internal/address"
)

// maxPlatformFeeBps mirrors the ledger's ceiling so a bad value fails at startup
const maxPlatformFeeBps = 1000

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks the configuration against the rules of its environment
func ValidateConfig(cfg *Config) error {
	var errs []string
	add := func(field, msg string) {
		errs = append(errs, ValidationError{Field: field, Message: msg}.Error())
	}

	if cfg.JWTSecret == "" {
		add("jwt_secret", "is required")
	}

	if _, err := address.Normalize(cfg.AdminAddress); err != nil {
		add("ADMIN_ADDRESS", "must be a 0x-prefixed 20-byte hex address")
	}
	if cfg.FeeRecipient != "" {
		if _, err := address.Normalize(cfg.FeeRecipient); err != nil {
			add("FEE_RECIPIENT", "must be a 0x-prefixed 20-byte hex address")
		}
	} else if cfg.Environment == Production {
		add("FEE_RECIPIENT", "is required in production")
	}
	if cfg.PlatformFeeBps > maxPlatformFeeBps {
		add("PLATFORM_FEE_BPS", fmt.Sprintf("must be at most %d", maxPlatformFeeBps))
	}

	switch cfg.DBDriver {
	case "postgres", "postgresql":
		if cfg.DBHost == "" || cfg.DBName == "" {
			add("DB_HOST", "host and database name are required")
		}
		if cfg.DBUser == "" {
			add("db_user", "is required")
		}
		if cfg.DBPassword == "" && !cfg.Environment.AllowsDefaults() {
			add("db_password", "is required")
		}
	case "sqlite":
		if cfg.Environment == Production {
			add("DB_DRIVER", "sqlite is not supported in production")
		}
		if cfg.SQLitePath == "" {
			add("SQLITE_PATH", "is required")
		}
	default:
		add("DB_DRIVER", fmt.Sprintf("unsupported driver %q", cfg.DBDriver))
	}

	if cfg.Environment == Production && cfg.RedisURL == "" && cfg.RedisHost == "" {
		add("redis_url", "is required in production")
	}
	if cfg.RateLimitPerMinute < 0 {
		add("RATE_LIMIT_PER_MINUTE", "must not be negative")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errs, "\n"))
	}

	return nil
}
