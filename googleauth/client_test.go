package googleauth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/jrsteele09/go-google-signin/googleauth"
	"github.com/jrsteele09/go-google-signin/internal/config"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

const (
	testClientID     = "test-client-id.apps.googleusercontent.com"
	testClientSecret = "test-client-secret"
	testRedirectURL  = "http://localhost:8080/auth/google/callback"
	testState        = "random-state-value"
	testNonce        = "random-nonce-value"
)

// testConfig overrides the env-backed settings the client reads.
type testConfig struct {
	config.EnvVars
	config.OAuth
	config.Security
}

func (testConfig) GetClientID() string     { return testClientID }
func (testConfig) GetClientSecret() string { return testClientSecret }
func (testConfig) GetRedirectURL() string  { return testRedirectURL }
func (testConfig) GetOIDCIssuer() string   { return "" }

func (testConfig) GetExchangeTimeout() time.Duration { return 2 * time.Second }

func newTestClient(t *testing.T, tokenHandler, userinfoHandler http.HandlerFunc) *googleauth.Client {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/token", tokenHandler)
	mux.HandleFunc("/userinfo", userinfoHandler)
	provider := httptest.NewServer(mux)
	t.Cleanup(provider.Close)

	endpoint := oauth2.Endpoint{
		AuthURL:   provider.URL + "/auth",
		TokenURL:  provider.URL + "/token",
		AuthStyle: oauth2.AuthStyleInParams,
	}
	return googleauth.NewWithEndpoint(testConfig{}, endpoint, provider.URL+"/userinfo")
}

func noHandler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request to %s", r.URL.Path)
	}
}

func TestAuthCodeURLContainsFlowParameters(t *testing.T) {
	client := googleauth.New(testConfig{})

	authURL := client.AuthCodeURL(testState, testNonce)

	parsed, err := url.Parse(authURL)
	require.NoError(t, err)

	query := parsed.Query()
	require.Equal(t, "code", query.Get("response_type"))
	require.Equal(t, testClientID, query.Get("client_id"))
	require.Equal(t, testRedirectURL, query.Get("redirect_uri"))
	require.Equal(t, testState, query.Get("state"))
	require.Equal(t, testNonce, query.Get("nonce"))
	require.Equal(t, "offline", query.Get("access_type"))
	require.Contains(t, query.Get("scope"), "email")
}

func TestExchangeSuccess(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		require.Equal(t, "authorization_code", r.FormValue("grant_type"))
		require.Equal(t, "test-code", r.FormValue("code"))
		require.Equal(t, testClientID, r.FormValue("client_id"))
		require.Equal(t, testRedirectURL, r.FormValue("redirect_uri"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"tok1","token_type":"Bearer","expires_in":3600,"scope":"openid email","id_token":"raw-id-token"}`))
	}, noHandler(t))

	tokens, err := client.Exchange(context.Background(), "test-code")
	require.NoError(t, err)
	require.Equal(t, "tok1", tokens.AccessToken)
	require.Equal(t, "Bearer", tokens.TokenType)
	require.Equal(t, "raw-id-token", tokens.IDToken)
	require.WithinDuration(t, time.Now().Add(time.Hour), tokens.Expiry, time.Minute)
}

func TestExchangeProviderError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid_grant"}`))
	}, noHandler(t))

	_, err := client.Exchange(context.Background(), "used-code")
	require.ErrorIs(t, err, googleauth.TokenExchangeFailedErr)
	// The provider body is preserved for logging
	require.Contains(t, err.Error(), "invalid_grant")
}

func TestExchangeMissingAccessToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token_type":"Bearer","expires_in":3600}`))
	}, noHandler(t))

	_, err := client.Exchange(context.Background(), "test-code")
	require.ErrorIs(t, err, googleauth.MalformedTokenResponseErr)
}

func TestExchangeUnreachableProvider(t *testing.T) {
	provider := httptest.NewServer(http.NotFoundHandler())
	endpoint := oauth2.Endpoint{
		AuthURL:   provider.URL + "/auth",
		TokenURL:  provider.URL + "/token",
		AuthStyle: oauth2.AuthStyleInParams,
	}
	client := googleauth.NewWithEndpoint(testConfig{}, endpoint, provider.URL+"/userinfo")
	provider.Close() // connection refused from here on

	_, err := client.Exchange(context.Background(), "test-code")
	require.ErrorIs(t, err, googleauth.TokenExchangeFailedErr)
}

func TestVerifyIDTokenSkippedWithoutIssuer(t *testing.T) {
	client := googleauth.New(testConfig{})

	require.NoError(t, client.VerifyIDToken(context.Background(), "anything", testNonce))
	require.NoError(t, client.VerifyIDToken(context.Background(), "", testNonce))
}

func TestFetchProfileSuccess(t *testing.T) {
	client := newTestClient(t, noHandler(t), func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok1", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"sub":"1234","name":"John Doe","email":"john.doe@example.com","email_verified":true,"picture":"https://example.com/p.jpg"}`))
	})

	profile, err := client.FetchProfile(context.Background(), "tok1")
	require.NoError(t, err)
	require.Equal(t, "1234", profile.Subject)
	require.Equal(t, "John Doe", profile.Name)
	require.Equal(t, "john.doe@example.com", profile.Email)
	require.True(t, profile.EmailVerified)
}

func TestFetchProfileRejectedToken(t *testing.T) {
	client := newTestClient(t, noHandler(t), func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid_token"}`))
	})

	_, err := client.FetchProfile(context.Background(), "stale")
	require.ErrorIs(t, err, googleauth.ProfileFetchFailedErr)
}
