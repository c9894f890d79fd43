package config

import (
	"fmt"
	"strings"
)

// ValidateConfig checks that values required for the current environment
// are present. Development and test get permissive defaults so the server
// can start without secrets; production does not.
func ValidateConfig(cfg *Config) error {
	var errors []string

	if cfg.DBHost == "" {
		errors = append(errors, "DB_HOST is required")
	}
	if cfg.DBName == "" {
		errors = append(errors, "DB_NAME is required")
	}

	if IsProduction() {
		if cfg.DBPassword == "" {
			errors = append(errors, "DB_PASSWORD (or db_password secret) is required in production")
		}
		if cfg.JWTSecret == "" {
			errors = append(errors, "JWT_SECRET (or jwt_secret secret) is required in production")
		}
	} else if cfg.JWTSecret == "" {
		cfg.JWTSecret = "dev-insecure-jwt-secret"
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}

	return nil
}
