package config

import (
	"strings"
	"time"
)

type OAuthConfig interface {
	GetClientID() string
	GetClientSecret() string
	GetRedirectURL() string
	GetScopes() []string
	GetOIDCIssuer() string
	GetStateTTL() time.Duration
	GetStateTokenLength() int
	GetExchangeTimeout() time.Duration
}

type OAuth struct{}

var _ OAuthConfig = OAuth{}

func (OAuth) GetClientID() string {
	return GetEnv("GOOGLE_CLIENT_ID", "")
}

func (OAuth) GetClientSecret() string {
	return GetEnv("GOOGLE_CLIENT_SECRET", "")
}

// GetRedirectURL returns the registered OAuth redirect URL. Defaults to the
// callback route under BASE_URL so a single env var covers the common case.
func (o OAuth) GetRedirectURL() string {
	redirectURL := GetEnv("GOOGLE_REDIRECT_URL", "")
	if redirectURL != "" {
		return redirectURL
	}
	return strings.TrimSuffix(EnvVars{}.GetBaseURL(), "/") + "/auth/google/callback"
}

func (OAuth) GetScopes() []string {
	scopes := GetEnv("GOOGLE_SCOPES", "openid profile email")
	return strings.Fields(scopes)
}

// GetOIDCIssuer returns the OIDC issuer used for ID token verification.
// Empty disables verification (useful for local development and tests).
func (OAuth) GetOIDCIssuer() string {
	return GetEnv("OIDC_ISSUER", "")
}

func (OAuth) GetStateTTL() time.Duration {
	return 10 * time.Minute
}

func (OAuth) GetStateTokenLength() int {
	return 32 // 32 bytes = 256 bits
}

func (OAuth) GetExchangeTimeout() time.Duration {
	return 10 * time.Second
}
