package config

import (
	"fmt"
	"time"
)

// AuthConfig holds JWT signing configuration.
type AuthConfig struct {
	// JWTSecret is the shared HMAC secret for token signing.
	JWTSecret string
	// AccessTTL is the access token lifetime.
	AccessTTL time.Duration
	// RefreshTTL is the refresh token lifetime.
	RefreshTTL time.Duration
}

// LoadAuthConfigFromEnv loads auth configuration from environment variables.
func LoadAuthConfigFromEnv() AuthConfig {
	return AuthConfig{
		JWTSecret:  GetEnv("JWT_SECRET", "dev-secret-change-me"),
		AccessTTL:  GetEnvDuration("JWT_ACCESS_TTL", 15*time.Minute),
		RefreshTTL: GetEnvDuration("JWT_REFRESH_TTL", 7*24*time.Hour),
	}
}

// Validate validates auth configuration.
func (c AuthConfig) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	if c.AccessTTL <= 0 {
		return fmt.Errorf("AccessTTL must be greater than 0")
	}
	if c.RefreshTTL <= 0 {
		return fmt.Errorf("RefreshTTL must be greater than 0")
	}
	if c.RefreshTTL < c.AccessTTL {
		return fmt.Errorf("RefreshTTL must not be shorter than AccessTTL")
	}
	return nil
}
