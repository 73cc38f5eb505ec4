package server

import (
	"fmt"
	"net/http"
	"time"
)

// OAuthCallbackHandler finishes a login. The state parameter is validated
// and consumed before anything else happens: no request reaches Google's
// token endpoint unless it carries a state token this server issued, and
// each token passes at most once. Every failure is terminal for the request;
// authorization codes are single-use, so a retry would fail regardless, and
// the remedy is restarting from /auth/google.
func (s *Server) OAuthCallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// The user may have denied consent; Google reports that back as an
		// error parameter instead of a code.
		if errorParam := r.FormValue("error"); errorParam != "" {
			s.failAuth(w, r, fmt.Errorf("provider declined authorization (%s): %w", errorParam, MissingCodeErr))
			return
		}

		code := r.FormValue("code")
		if code == "" {
			s.failAuth(w, r, MissingCodeErr)
			return
		}
		state := r.FormValue("state")
		if state == "" {
			s.failAuth(w, r, MissingStateErr)
			return
		}

		attempt, err := s.attempts.Validate(state)
		if err != nil {
			s.failAuth(w, r, err)
			return
		}

		tokens, err := s.google.Exchange(r.Context(), code)
		if err != nil {
			s.failAuth(w, r, err)
			return
		}

		if err := s.google.VerifyIDToken(r.Context(), tokens.IDToken, attempt.Nonce); err != nil {
			s.failAuth(w, r, err)
			return
		}

		expiresAt := tokens.Expiry
		if expiresAt.IsZero() {
			// Provider omitted expires_in; fall back to a conservative TTL
			expiresAt = time.Now().Add(s.config.GetDefaultSessionExpiry())
		}

		cookieValue, err := s.sessions.Issue(tokens.AccessToken, expiresAt)
		if err != nil {
			s.failAuth(w, r, fmt.Errorf("[OAuthCallbackHandler] %w", err))
			return
		}

		s.SetSessionCookie(w, r, cookieValue, expiresAt)
		http.Redirect(w, r, s.config.GetDashboardURL(), http.StatusFound)
	}
}
