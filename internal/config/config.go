package config

import (
	"errors"
	"fmt"
)

// ConfigurationErr is returned when required settings are missing at startup.
// Missing credentials are never surfaced as a per-request failure.
var ConfigurationErr = errors.New("missing required configuration")

type Config interface {
	EnvConfig
	OAuthConfig
	SecurityConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetBaseURL() string
	GetEnv() string
}

type mainConfig struct {
	EnvVars
	OAuth
	Security
}

func New() Config {
	return mainConfig{}
}

// Validate checks the settings the OAuth flow cannot run without.
// Called once at startup, before the server accepts requests.
func Validate(c Config) error {
	if c.GetClientID() == "" {
		return fmt.Errorf("[config Validate] GOOGLE_CLIENT_ID: %w", ConfigurationErr)
	}
	if c.GetClientSecret() == "" {
		return fmt.Errorf("[config Validate] GOOGLE_CLIENT_SECRET: %w", ConfigurationErr)
	}
	if c.GetRedirectURL() == "" {
		return fmt.Errorf("[config Validate] redirect URL: %w", ConfigurationErr)
	}
	if len(c.GetSessionSecret()) < 32 {
		return fmt.Errorf("[config Validate] SESSION_SECRET must be at least 32 bytes: %w", ConfigurationErr)
	}
	return nil
}
