package server

import (
	"errors"
	"net/http"

	"github.com/jrsteele09/go-google-signin/googleauth"
	"github.com/jrsteele09/go-google-signin/server/loginattempt"
)

var (
	MissingCodeErr  = errors.New("missing code parameter")
	MissingStateErr = errors.New("missing state parameter")
)

// authErrorStatus maps a callback failure to the status returned to the
// browser. The browser only ever sees the status and a generic body; the
// detailed error kind and any provider payload stay in the logs.
func authErrorStatus(err error) int {
	switch {
	case errors.Is(err, MissingCodeErr),
		errors.Is(err, MissingStateErr),
		errors.Is(err, loginattempt.UnknownStateErr),
		errors.Is(err, loginattempt.ExpiredStateErr),
		errors.Is(err, loginattempt.ReplayedStateErr):
		return http.StatusBadRequest
	case errors.Is(err, googleauth.TokenExchangeFailedErr),
		errors.Is(err, googleauth.MalformedTokenResponseErr):
		return http.StatusBadGateway
	case errors.Is(err, googleauth.IDTokenVerificationErr),
		errors.Is(err, googleauth.NonceMismatchErr):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
