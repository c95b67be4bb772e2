package config

import (
	"os"
)

// Environment represents the current runtime environment
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

// GetEnvironment determines the current environment
func GetEnvironment() Environment {
	// CI environment is automatically detected
	if os.Getenv("CI") == "true" {
		return CI
	}

	// Other environments are set via ENV variable
	switch env := os.Getenv("ENV"); env {
	case "production":
		return Production
	case "test":
		return Test
	default:
		return Development
	}
}

// UsesSecretFiles reports whether sensitive values come from Docker secrets
func (e Environment) UsesSecretFiles() bool {
	return e == Production
}

// AllowsDefaults reports whether missing settings may fall back to local defaults
func (e Environment) AllowsDefaults() bool {
	return e == Development || e == Test
}
