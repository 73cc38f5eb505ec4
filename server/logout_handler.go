package server

import "net/http"

// LogoutHandler clears the session cookie and sends the browser home.
// The provider-side grant is left alone; only the local session ends.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.ClearSessionCookie(w, r)
		http.Redirect(w, r, RouteIndex, http.StatusFound)
	}
}
