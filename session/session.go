package session

import (
	"errors"
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

var (
	InvalidSessionErr = errors.New("invalid session")
	SessionExpiredErr = errors.New("session expired")
)

// Session is an authenticated browser session. The signed cookie IS the
// session: no server-side copy is held, so the cookie value is untrusted
// input and must pass signature and expiry checks before any privileged use.
type Session struct {
	AccessToken string
	IssuedAt    time.Time
	ExpiresAt   time.Time
}

// Manager signs and verifies session cookie values.
type Manager struct {
	secret []byte
}

func NewManager(secret []byte) *Manager {
	return &Manager{secret: secret}
}

// Issue signs a session carrying the provider access token, expiring at
// expiresAt.
func (m *Manager) Issue(accessToken string, expiresAt time.Time) (string, error) {
	now := NowTimeFunc()
	claims := jwtlib.MapClaims{
		"tok": accessToken,
		"iat": now.Unix(),
		"exp": expiresAt.Unix(),
		"jti": uuid.New().String(),
	}

	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("[session Issue] failed to sign session: %w", err)
	}
	return signed, nil
}

// Parse verifies a cookie value and returns the session it carries.
// Expired sessions return SessionExpiredErr; anything else that fails
// verification returns InvalidSessionErr.
func (m *Manager) Parse(value string) (*Session, error) {
	parsed, err := jwtlib.Parse(value,
		func(token *jwtlib.Token) (any, error) { return m.secret, nil },
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return nil, SessionExpiredErr
		}
		return nil, fmt.Errorf("%v: %w", err, InvalidSessionErr)
	}

	claims, ok := parsed.Claims.(jwtlib.MapClaims)
	if !ok {
		return nil, InvalidSessionErr
	}

	accessToken, _ := claims["tok"].(string)
	if accessToken == "" {
		return nil, InvalidSessionErr
	}

	issuedAt, err := claims.GetIssuedAt()
	if err != nil || issuedAt == nil {
		return nil, InvalidSessionErr
	}
	expiresAt, err := claims.GetExpirationTime()
	if err != nil || expiresAt == nil {
		return nil, InvalidSessionErr
	}

	return &Session{
		AccessToken: accessToken,
		IssuedAt:    issuedAt.Time,
		ExpiresAt:   expiresAt.Time,
	}, nil
}
