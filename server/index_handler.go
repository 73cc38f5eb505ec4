package server

import (
	"html/template"
	"net/http"
)

const indexTemplate = `<!DOCTYPE html>
<html>
<head><title>{{.AppName}}</title></head>
<body>
	<h1>{{.AppName}}</h1>
	<p><a href="/auth/google">Sign in with Google</a></p>
</body>
</html>`

// IndexPageData contains data for rendering the landing page
type IndexPageData struct {
	AppName string
}

func (s *Server) IndexHandler() http.HandlerFunc {
	indexTmpl := template.Must(template.New("index").Parse(indexTemplate))

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_ = indexTmpl.Execute(w, IndexPageData{AppName: s.config.GetAppName()})
	}
}
