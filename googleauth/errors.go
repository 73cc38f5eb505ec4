package googleauth

import "errors"

var (
	TokenExchangeFailedErr    = errors.New("token exchange failed")
	MalformedTokenResponseErr = errors.New("malformed token response")
	IDTokenVerificationErr    = errors.New("id token verification failed")
	NonceMismatchErr          = errors.New("nonce mismatch")
	ProfileFetchFailedErr     = errors.New("profile fetch failed")
)
