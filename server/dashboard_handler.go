package server

import (
	"html/template"
	"net/http"

	"github.com/rs/zerolog/log"
)

const dashboardTemplate = `<!DOCTYPE html>
<html>
<head><title>{{.AppName}} - Dashboard</title></head>
<body>
	<h1>Welcome{{if .Name}}, {{.Name}}{{end}}</h1>
	{{if .Picture}}<img src="{{.Picture}}" alt="profile picture" width="96" height="96">{{end}}
	<p>{{.Email}}</p>
	<p><a href="/auth/logout">Sign out</a></p>
</body>
</html>`

// DashboardPageData contains data for rendering the dashboard page
type DashboardPageData struct {
	AppName string
	Name    string
	Email   string
	Picture string
}

// DashboardHandler is the downstream consumer of the session cookie. The
// cookie is untrusted input: the session must pass signature and expiry
// checks before its access token is used against the profile endpoint.
func (s *Server) DashboardHandler() http.HandlerFunc {
	dashboardTmpl := template.Must(template.New("dashboard").Parse(dashboardTemplate))

	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(s.config.GetSessionCookieName())
		if err != nil || cookie.Value == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		userSession, err := s.sessions.Parse(cookie.Value)
		if err != nil {
			log.Err(err).
				Str("request_id", requestIDFrom(r.Context())).
				Msg("Rejected session cookie")
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		profile, err := s.google.FetchProfile(r.Context(), userSession.AccessToken)
		if err != nil {
			log.Err(err).
				Str("request_id", requestIDFrom(r.Context())).
				Msg("Profile fetch failed")
			http.Error(w, "failed to load profile", http.StatusBadGateway)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = dashboardTmpl.Execute(w, DashboardPageData{
			AppName: s.config.GetAppName(),
			Name:    profile.Name,
			Email:   profile.Email,
			Picture: profile.Picture,
		})
	}
}
