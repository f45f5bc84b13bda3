package api

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"

	"job-intake/internal/auth"
	"job-intake/internal/lifecycle"
	"job-intake/internal/middleware"
	"job-intake/internal/session"
)

// ChatContacts are the targets of the chat redirects.
type ChatContacts struct {
	WhatsApp string
	Email    string
}

// Deps are the collaborators an API serves requests with.
type Deps struct {
	Lifecycle    *lifecycle.Manager
	Sessions     *session.Manager
	Gate         *auth.Gate
	LoginLimiter *middleware.RateLimiter
	Chat         ChatContacts
	Logger       logrus.FieldLogger
}

type API struct {
	lifecycle    *lifecycle.Manager
	sessions     *session.Manager
	gate         *auth.Gate
	loginLimiter *middleware.RateLimiter
	chat         ChatContacts
	views        *views
	log          logrus.FieldLogger
}

func NewAPI(deps Deps) *API {
	log := deps.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &API{
		lifecycle:    deps.Lifecycle,
		sessions:     deps.Sessions,
		gate:         deps.Gate,
		loginLimiter: deps.LoginLimiter,
		chat:         deps.Chat,
		views:        mustParseViews(),
		log:          log,
	}
}

// HealthHandler reports that the process is serving
// @Summary Health check
// @Tags ops
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (a *API) HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
}

// saveSession persists s; on failure it answers 500 and returns false.
func (a *API) saveSession(w http.ResponseWriter, r *http.Request, s *session.Session, component string) bool {
	if err := a.sessions.Save(r.Context(), s); err != nil {
		a.log.WithError(err).Errorf("[%s] saving session failed", component)
		http.Error(w, "Server error while saving session, try again later.", http.StatusInternalServerError)
		return false
	}
	return true
}

// renewSession moves s to a fresh id and cookie; on failure it answers 500
// and returns false.
func (a *API) renewSession(w http.ResponseWriter, r *http.Request, s *session.Session, component string) bool {
	if err := a.sessions.Renew(r.Context(), w, s); err != nil {
		a.log.WithError(err).Errorf("[%s] renewing session failed", component)
		http.Error(w, "Server error while saving session, try again later.", http.StatusInternalServerError)
		return false
	}
	return true
}

// parseForm fills r.PostForm from a urlencoded or JSON body.
// JSON objects are flattened one level: strings are kept, numbers and
// booleans are formatted and null or nested values are skipped.
func parseForm(r *http.Request) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		return r.ParseForm()
	}

	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	var body map[string]interface{}
	if err := dec.Decode(&body); err != nil {
		return err
	}

	form := url.Values{}
	for k, v := range body {
		switch v := v.(type) {
		case string:
			form.Set(k, v)
		case bool, json.Number:
			form.Set(k, fmt.Sprint(v))
		}
	}
	r.PostForm = form
	r.Form = r.URL.Query()
	for k, vs := range form {
		r.Form[k] = append(append([]string(nil), vs...), r.Form[k]...)
	}
	return nil
}

func statusURL(email string) string {
	return "/status?email=" + url.QueryEscape(email)
}
