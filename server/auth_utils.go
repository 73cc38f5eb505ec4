package server

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

func (s *Server) SetSessionCookie(w http.ResponseWriter, r *http.Request, value string, expiresAt time.Time) {
	isSecure := getScheme(r) == "https"

	http.SetCookie(w, &http.Cookie{
		Name:     s.config.GetSessionCookieName(),
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(time.Until(expiresAt).Seconds()),
	})
}

func (s *Server) ClearSessionCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.config.GetSessionCookieName(),
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   getScheme(r) == "https",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// failAuth logs the detailed failure and answers the browser with a generic
// body. Provider error payloads and error kinds never reach the client.
func (s *Server) failAuth(w http.ResponseWriter, r *http.Request, err error) {
	status := authErrorStatus(err)
	log.Err(err).
		Int("status", status).
		Str("path", r.URL.Path).
		Str("request_id", requestIDFrom(r.Context())).
		Msg("Authentication failed")
	http.Error(w, "authentication failed", status)
}
