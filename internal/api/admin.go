package api

import (
	"net/http"
	"strings"

	"github.com/juju/errors"
	"github.com/sirupsen/logrus"

	"job-intake/internal/auth"
	"job-intake/internal/lifecycle"
	"job-intake/internal/metrics"
	"job-intake/internal/middleware"
	"job-intake/internal/session"
)

const (
	invalidCredentialsMessage = "Invalid credentials. Please try again."
	throttledLoginMessage     = "Too many login attempts. Please wait a minute and try again."
)

// AdminLoginPageHandler renders the admin login form
// @Summary Admin login page
// @Tags admin
// @Produce html
// @Success 200 {string} string "HTML page"
// @Router /admin/login [get]
func (a *API) AdminLoginPageHandler(w http.ResponseWriter, r *http.Request) {
	a.renderLogin(w, http.StatusOK, "")
}

// AdminLoginHandler checks admin credentials and marks the session as admin
// @Summary Admin login
// @Tags admin
// @Accept x-www-form-urlencoded,json
// @Param username formData string true "Admin username"
// @Param password formData string true "Admin password"
// @Success 302 {string} string "Redirect to /admin"
// @Success 200 {string} string "Login page with error"
// @Failure 429 {string} string "Login page with throttling error"
// @Router /admin/login [post]
func (a *API) AdminLoginHandler(w http.ResponseWriter, r *http.Request) {
	if !a.loginLimiter.Allow(middleware.ClientKey(r)) {
		metrics.RecordAdminLogin("throttled")
		a.log.WithField("client", middleware.ClientKey(r)).Warn("[AdminLogin] throttled")
		a.renderLogin(w, http.StatusTooManyRequests, throttledLoginMessage)
		return
	}
	if err := parseForm(r); err != nil {
		a.renderLogin(w, http.StatusBadRequest, invalidCredentialsMessage)
		return
	}

	s := session.FromContext(r.Context())
	if err := a.gate.Login(s, r.PostFormValue("username"), r.PostFormValue("password")); err != nil {
		a.log.WithField("client", middleware.ClientKey(r)).Info("[AdminLogin] rejected credentials")
		a.renderLogin(w, http.StatusOK, invalidCredentialsMessage)
		return
	}
	if !a.renewSession(w, r, s, "AdminLogin") {
		return
	}
	http.Redirect(w, r, "/admin", http.StatusFound)
}

func (a *API) renderLogin(w http.ResponseWriter, status int, errMsg string) {
	if err := a.views.render(w, status, viewAdminLogin, adminLoginView{Error: errMsg}); err != nil {
		a.log.WithError(err).Error("[AdminLogin] render failed")
	}
}

// AdminPanelHandler lists applications, optionally filtered by email
// @Summary Admin panel
// @Tags admin
// @Produce html
// @Param search query string false "Case-insensitive email substring"
// @Success 200 {string} string "HTML page"
// @Success 302 {string} string "Redirect to /admin/login without an admin session"
// @Failure 500 {string} string "Error loading admin panel."
// @Router /admin [get]
func (a *API) AdminPanelHandler(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")

	apps, err := a.lifecycle.FindBySearch(r.Context(), search)
	if err != nil {
		a.log.WithError(err).WithField("search", search).Error("[AdminPanel] listing applications failed")
		message(w, http.StatusInternalServerError, "Error loading admin panel.")
		return
	}

	data := adminView{
		Applications: apps,
		Search:       search,
		Statuses:     lifecycle.Statuses,
	}
	if err := a.views.render(w, http.StatusOK, viewAdmin, data); err != nil {
		a.log.WithError(err).Error("[AdminPanel] render failed")
	}
}

// UpdateApplicationHandler moves an application to a new status
// @Summary Update application status
// @Description Omitting adminMessage keeps the stored message; an empty value clears it.
// @Tags admin
// @Accept x-www-form-urlencoded,json
// @Param id formData string true "Application id"
// @Param status formData string true "Pending, Applied or Declined"
// @Param adminMessage formData string false "Message shown to the applicant"
// @Success 302 {string} string "Redirect to /admin"
// @Failure 400 {string} string "Missing required fields."
// @Failure 404 {string} string "Application not found."
// @Failure 500 {string} string "Error updating application."
// @Router /admin/update-application [post]
func (a *API) UpdateApplicationHandler(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		message(w, http.StatusBadRequest, "Invalid form submission.")
		return
	}
	id := strings.TrimSpace(r.PostFormValue("id"))
	status := strings.TrimSpace(r.PostFormValue("status"))

	var adminMessage *string
	if _, ok := r.PostForm["adminMessage"]; ok {
		v := r.PostFormValue("adminMessage")
		adminMessage = &v
	}

	app, err := a.lifecycle.Transition(r.Context(), id, status, adminMessage)
	switch {
	case errors.Is(err, errors.NotValid):
		if id == "" || status == "" {
			message(w, http.StatusBadRequest, "Missing required fields.")
		} else {
			message(w, http.StatusBadRequest, "Invalid application id or status.")
		}
		return
	case errors.Is(err, errors.NotFound):
		message(w, http.StatusNotFound, "Application not found.")
		return
	case err != nil:
		a.log.WithError(err).WithField("id", id).Error("[AdminPanel] updating application failed")
		message(w, http.StatusInternalServerError, "Error updating application.")
		return
	}

	a.log.WithFields(logrus.Fields{"id": app.ID, "status": app.Status}).Info("[AdminPanel] application updated")
	http.Redirect(w, r, "/admin", http.StatusFound)
}

// AdminLogoutHandler clears the admin flag of the session
// @Summary Admin logout
// @Tags admin
// @Success 302 {string} string "Redirect to /admin/login"
// @Router /admin/logout [get]
func (a *API) AdminLogoutHandler(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	a.gate.Logout(s)
	if !a.renewSession(w, r, s, "AdminLogout") {
		return
	}
	http.Redirect(w, r, auth.LoginPath, http.StatusFound)
}
