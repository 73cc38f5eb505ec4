package loginattempt

import (
	"errors"
	"time"
)

// LoginAttempt is a pending login initiated at /auth/google. The Token is the
// anti-forgery state parameter round-tripped through the provider; the Nonce
// is bound into the ID token request so the callback can detect replays of a
// previously issued token response.
type LoginAttempt struct {
	Token     string
	Nonce     string
	CreatedAt time.Time
	ExpiresAt time.Time
	Consumed  bool
}

var (
	UnknownStateErr  = errors.New("unknown state token")
	ExpiredStateErr  = errors.New("expired state token")
	ReplayedStateErr = errors.New("state token already consumed")
)

type Repo interface {
	// Issue creates and stores a new pending attempt.
	Issue() (*LoginAttempt, error)

	// Validate consumes the attempt identified by the received state
	// parameter. It succeeds exactly once per token: later calls return
	// ReplayedStateErr, tokens past their TTL return ExpiredStateErr even
	// on first use, and anything else returns UnknownStateErr.
	Validate(state string) (*LoginAttempt, error)
}
