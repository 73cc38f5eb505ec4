package config

import "time"

type SecurityConfig interface {
	GetSessionSecret() []byte
	GetSessionCookieName() string
	GetDefaultSessionExpiry() time.Duration
	GetDashboardURL() string
}

type Security struct{}

var _ SecurityConfig = Security{}

func (Security) GetSessionSecret() []byte {
	return []byte(GetEnv("SESSION_SECRET", ""))
}

func (Security) GetSessionCookieName() string {
	return GetEnv("SESSION_COOKIE_NAME", "session")
}

// GetDefaultSessionExpiry is used when the provider omits expires_in.
func (Security) GetDefaultSessionExpiry() time.Duration {
	return 1 * time.Hour
}

func (Security) GetDashboardURL() string {
	return GetEnv("DASHBOARD_URL", "/dashboard")
}
