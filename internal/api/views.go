package api

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"job-intake/internal/storage"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	viewHome        = "home.html"
	viewInformation = "information.html"
	viewJobForm     = "jobform.html"
	viewStatus      = "status.html"
	viewAdminLogin  = "admin-login.html"
	viewAdmin       = "admin.html"
)

type views struct {
	tmpl *template.Template
}

func mustParseViews() *views {
	return &views{tmpl: template.Must(template.ParseFS(templateFS, "templates/*.html"))}
}

// render executes view completely before anything is written to w.
func (v *views) render(w http.ResponseWriter, status int, view string, data interface{}) error {
	var buf bytes.Buffer
	if err := v.tmpl.ExecuteTemplate(&buf, view, data); err != nil {
		http.Error(w, "Server error while rendering page, try again later.", http.StatusInternalServerError)
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// message writes a plain-text answer.
func message(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(text))
}

type emailView struct {
	Email string
}

type statusView struct {
	Application *storage.Application
	Message     string
}

type adminLoginView struct {
	Error string
}

type adminView struct {
	Applications []*storage.Application
	Search       string
	Statuses     []storage.Status
}
