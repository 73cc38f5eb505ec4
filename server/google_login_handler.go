package server

import (
	"fmt"
	"net/http"
)

// GoogleLoginHandler starts a login: it records a fresh login attempt and
// 302-redirects the browser to Google's consent screen with the attempt's
// state and nonce embedded. No cookie is set here; the state lives only
// server-side until the callback returns it.
func (s *Server) GoogleLoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		attempt, err := s.attempts.Issue()
		if err != nil {
			s.failAuth(w, r, fmt.Errorf("[GoogleLoginHandler] %w", err))
			return
		}

		authURL := s.google.AuthCodeURL(attempt.Token, attempt.Nonce)
		http.Redirect(w, r, authURL, http.StatusFound)
	}
}
