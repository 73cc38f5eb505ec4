package session_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/go-google-signin/session"
	"github.com/stretchr/testify/require"
)

const (
	testAccessToken = "ya29.test-access-token"
	testSecret      = "0123456789abcdef0123456789abcdef"
)

func TestIssueParseRoundTrip(t *testing.T) {
	manager := session.NewManager([]byte(testSecret))

	issuedAt := time.Now()
	expiresAt := issuedAt.Add(time.Hour)

	value, err := manager.Issue(testAccessToken, expiresAt)
	require.NoError(t, err)
	require.NotEmpty(t, value)

	parsed, err := manager.Parse(value)
	require.NoError(t, err)
	require.Equal(t, testAccessToken, parsed.AccessToken)
	require.WithinDuration(t, issuedAt, parsed.IssuedAt, time.Second)
	require.WithinDuration(t, expiresAt, parsed.ExpiresAt, time.Second)
}

func TestParseRejectsExpiredSession(t *testing.T) {
	manager := session.NewManager([]byte(testSecret))

	value, err := manager.Issue(testAccessToken, time.Now().Add(-time.Minute))
	require.NoError(t, err)

	_, err = manager.Parse(value)
	require.ErrorIs(t, err, session.SessionExpiredErr)
}

func TestParseRejectsTamperedSignature(t *testing.T) {
	manager := session.NewManager([]byte(testSecret))

	value, err := manager.Issue(testAccessToken, time.Now().Add(time.Hour))
	require.NoError(t, err)

	otherManager := session.NewManager([]byte("another-secret-another-secret-!!"))
	_, err = otherManager.Parse(value)
	require.ErrorIs(t, err, session.InvalidSessionErr)
}

func TestParseRejectsGarbage(t *testing.T) {
	manager := session.NewManager([]byte(testSecret))

	_, err := manager.Parse("not-a-jwt")
	require.ErrorIs(t, err, session.InvalidSessionErr)

	_, err = manager.Parse("")
	require.ErrorIs(t, err, session.InvalidSessionErr)
}
