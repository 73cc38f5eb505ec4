package googleauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/jrsteele09/go-google-signin/internal/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://openidconnect.googleapis.com/v1/userinfo"

// TokenSet is the outcome of a successful code exchange. Only the access
// token outlives the callback request; everything else is transient.
type TokenSet struct {
	AccessToken string
	TokenType   string
	Expiry      time.Time // zero when the provider omitted expires_in
	IDToken     string    // raw id_token, empty when the provider omitted it
}

// Profile is the subset of the userinfo response rendered on the dashboard.
type Profile struct {
	Subject       string `json:"sub"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Picture       string `json:"picture"`
}

// Client performs the provider-facing half of the authorization code flow:
// building the consent URL, exchanging the code, and fetching userinfo.
type Client struct {
	oauth2Config    oauth2.Config
	userInfoURL     string
	issuer          string
	exchangeTimeout time.Duration

	verifierLock sync.Mutex
	verifier     *oidc.IDTokenVerifier
}

// New creates a client against Google's endpoints.
func New(cfg config.Config) *Client {
	return NewWithEndpoint(cfg, google.Endpoint, googleUserInfoURL)
}

// NewWithEndpoint creates a client against a caller-supplied token endpoint
// and userinfo URL. Tests point this at an httptest server.
func NewWithEndpoint(cfg config.Config, endpoint oauth2.Endpoint, userInfoURL string) *Client {
	return &Client{
		oauth2Config: oauth2.Config{
			ClientID:     cfg.GetClientID(),
			ClientSecret: cfg.GetClientSecret(),
			RedirectURL:  cfg.GetRedirectURL(),
			Endpoint:     endpoint,
			Scopes:       cfg.GetScopes(),
		},
		userInfoURL:     userInfoURL,
		issuer:          cfg.GetOIDCIssuer(),
		exchangeTimeout: cfg.GetExchangeTimeout(),
	}
}

// AuthCodeURL builds the provider authorization URL. Pure URL construction,
// no network call.
func (c *Client) AuthCodeURL(state, nonce string) string {
	return c.oauth2Config.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("nonce", nonce),
	)
}

// Exchange swaps the authorization code for tokens at the provider token
// endpoint. Authorization codes are single-use, so nothing here retries: a
// transport error, timeout, or non-2xx response is terminal and reported as
// TokenExchangeFailedErr carrying the provider error body for logging.
func (c *Client) Exchange(ctx context.Context, code string) (*TokenSet, error) {
	ctx, cancel := context.WithTimeout(ctx, c.exchangeTimeout)
	defer cancel()

	token, err := c.oauth2Config.Exchange(ctx, code)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			return nil, fmt.Errorf("[googleauth Exchange] provider returned %d: %s: %w",
				retrieveErr.Response.StatusCode, string(retrieveErr.Body), TokenExchangeFailedErr)
		}
		// The oauth2 package reports a 2xx response without an access_token
		// as a plain error rather than a RetrieveError.
		if strings.Contains(err.Error(), "missing access_token") {
			return nil, fmt.Errorf("[googleauth Exchange] %v: %w", err, MalformedTokenResponseErr)
		}
		return nil, fmt.Errorf("[googleauth Exchange] %v: %w", err, TokenExchangeFailedErr)
	}

	if token.AccessToken == "" {
		return nil, fmt.Errorf("[googleauth Exchange] empty access_token: %w", MalformedTokenResponseErr)
	}

	tokenSet := &TokenSet{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		Expiry:      token.Expiry,
	}
	if rawIDToken, ok := token.Extra("id_token").(string); ok {
		tokenSet.IDToken = rawIDToken
	}
	return tokenSet, nil
}

// VerifyIDToken verifies the ID token signature and claims and matches its
// nonce against the login attempt's nonce. Verification is skipped when no
// OIDC issuer is configured.
func (c *Client) VerifyIDToken(ctx context.Context, rawIDToken, nonce string) error {
	if c.issuer == "" {
		return nil
	}
	if rawIDToken == "" {
		return fmt.Errorf("[googleauth VerifyIDToken] no id_token in response: %w", IDTokenVerificationErr)
	}

	verifier, err := c.idTokenVerifier(ctx)
	if err != nil {
		return fmt.Errorf("[googleauth VerifyIDToken] %v: %w", err, IDTokenVerificationErr)
	}

	idToken, err := verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return fmt.Errorf("[googleauth VerifyIDToken] %v: %w", err, IDTokenVerificationErr)
	}

	var claims struct {
		Nonce string `json:"nonce"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return fmt.Errorf("[googleauth VerifyIDToken] claims: %v: %w", err, IDTokenVerificationErr)
	}
	if claims.Nonce != nonce {
		return NonceMismatchErr
	}
	return nil
}

// idTokenVerifier lazily initialises the OIDC verifier. Provider discovery
// is a network call, so it is deferred until the first verification and the
// result is cached.
func (c *Client) idTokenVerifier(ctx context.Context) (*oidc.IDTokenVerifier, error) {
	c.verifierLock.Lock()
	defer c.verifierLock.Unlock()
	if c.verifier != nil {
		return c.verifier, nil
	}

	provider, err := oidc.NewProvider(ctx, c.issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to create OIDC provider: %w", err)
	}
	c.verifier = provider.Verifier(&oidc.Config{ClientID: c.oauth2Config.ClientID})
	return c.verifier, nil
}

// FetchProfile retrieves the user's profile from the userinfo endpoint using
// the bearer token from an established session.
func (c *Client) FetchProfile(ctx context.Context, accessToken string) (*Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, c.exchangeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.userInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("[googleauth FetchProfile] %v: %w", err, ProfileFetchFailedErr)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("[googleauth FetchProfile] %v: %w", err, ProfileFetchFailedErr)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("[googleauth FetchProfile] userinfo returned %d: %s: %w",
			resp.StatusCode, string(body), ProfileFetchFailedErr)
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("[googleauth FetchProfile] decode: %v: %w", err, ProfileFetchFailedErr)
	}
	return &profile, nil
}
