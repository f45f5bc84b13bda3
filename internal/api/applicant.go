package api

import (
	"net/http"
	"strings"

	"github.com/juju/errors"
	"github.com/sirupsen/logrus"

	"job-intake/internal/lifecycle"
	"job-intake/internal/session"
	"job-intake/internal/storage"
)

const noApplicationMessage = "No application found for this email, kindly use another email to apply again."

// HomeHandler renders the landing page
// @Summary Landing page
// @Tags applicant
// @Produce html
// @Success 200 {string} string "HTML page"
// @Router / [get]
func (a *API) HomeHandler(w http.ResponseWriter, r *http.Request) {
	if err := a.views.render(w, http.StatusOK, viewHome, nil); err != nil {
		a.log.WithError(err).Error("[Home] render failed")
	}
}

// SubmitEmailHandler registers an applicant email
// @Summary Submit applicant email
// @Description New emails continue to /information; known emails go straight to their status page.
// @Tags applicant
// @Accept x-www-form-urlencoded,json
// @Param email formData string true "Applicant email"
// @Success 302 {string} string "Redirect to /information or /status"
// @Failure 400 {string} string "Email is required."
// @Failure 500 {string} string "Server error"
// @Router /submit-email [post]
func (a *API) SubmitEmailHandler(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		message(w, http.StatusBadRequest, "Invalid form submission.")
		return
	}
	email := strings.TrimSpace(r.PostFormValue("email"))

	existing, err := a.lifecycle.SubmitEmail(r.Context(), email)
	switch {
	case errors.Is(err, errors.NotValid):
		message(w, http.StatusBadRequest, "Email is required.")
		return
	case err != nil:
		a.log.WithError(err).WithField("email", email).Error("[SubmitEmail] failed")
		message(w, http.StatusInternalServerError, "Server error while submitting email, try again later.")
		return
	}

	if existing {
		http.Redirect(w, r, statusURL(email), http.StatusFound)
		return
	}

	s := session.FromContext(r.Context())
	s.Email = email
	if !a.saveSession(w, r, s, "SubmitEmail") {
		return
	}
	http.Redirect(w, r, "/information", http.StatusFound)
}

// InformationPageHandler renders the terms page
// @Summary Terms and conditions page
// @Tags applicant
// @Produce html
// @Success 200 {string} string "HTML page"
// @Router /information [get]
func (a *API) InformationPageHandler(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	if err := a.views.render(w, http.StatusOK, viewInformation, emailView{Email: s.Email}); err != nil {
		a.log.WithError(err).Error("[Information] render failed")
	}
}

// InformationSubmitHandler records agreement to the terms
// @Summary Agree to terms
// @Tags applicant
// @Accept x-www-form-urlencoded,json
// @Param agree formData string true "Any non-empty value"
// @Param email formData string false "Applicant email"
// @Success 200 {string} string "You must agree to the terms and conditions."
// @Success 302 {string} string "Redirect to /jobform"
// @Router /information [post]
func (a *API) InformationSubmitHandler(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		message(w, http.StatusBadRequest, "Invalid form submission.")
		return
	}
	if r.PostFormValue("agree") == "" {
		message(w, http.StatusOK, "You must agree to the terms and conditions.")
		return
	}

	s := session.FromContext(r.Context())
	if email := strings.TrimSpace(r.PostFormValue("email")); email != "" {
		s.Email = email
	}
	if !a.saveSession(w, r, s, "Information") {
		return
	}
	http.Redirect(w, r, "/jobform", http.StatusFound)
}

// JobFormPageHandler renders the application form
// @Summary Job application form
// @Tags applicant
// @Produce html
// @Success 200 {string} string "HTML page"
// @Router /jobform [get]
func (a *API) JobFormPageHandler(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	if err := a.views.render(w, http.StatusOK, viewJobForm, emailView{Email: s.Email}); err != nil {
		a.log.WithError(err).Error("[JobForm] render failed")
	}
}

// JobFormSubmitHandler creates an application for the session email
// @Summary Submit job application
// @Tags applicant
// @Accept x-www-form-urlencoded,json
// @Param fullName formData string false "Full name"
// @Param email formData string false "Contact email"
// @Param whatsapp formData string false "WhatsApp number"
// @Param contact formData string false "Phone number"
// @Param country formData string false "Country"
// @Param companyNames formData string false "Company names"
// @Param companyLocation formData string false "Company location (Online for remote work)"
// @Param position formData string false "Position"
// @Param jobType formData string false "Job type"
// @Success 302 {string} string "Redirect to /status"
// @Failure 400 {string} string "No applicant email in session"
// @Failure 500 {string} string "Server error"
// @Router /jobform [post]
func (a *API) JobFormSubmitHandler(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		message(w, http.StatusBadRequest, "Invalid form submission.")
		return
	}
	s := session.FromContext(r.Context())

	personal := storage.PersonalDetails{
		FullName: r.PostFormValue("fullName"),
		Email:    r.PostFormValue("email"),
		WhatsApp: r.PostFormValue("whatsapp"),
		Contact:  r.PostFormValue("contact"),
		Country:  r.PostFormValue("country"),
	}
	job := storage.JobDetails{
		CompanyNames:    r.PostFormValue("companyNames"),
		CompanyLocation: r.PostFormValue("companyLocation"),
		Position:        r.PostFormValue("position"),
		JobType:         r.PostFormValue("jobType"),
	}

	app, err := a.lifecycle.Create(r.Context(), s.Email, personal, job)
	switch {
	case errors.Is(err, errors.NotValid):
		message(w, http.StatusBadRequest, "Please submit your email before filling the job form.")
		return
	case err != nil:
		a.log.WithError(err).WithField("email", s.Email).Error("[JobForm] creating application failed")
		message(w, http.StatusInternalServerError, "Server error while submitting job form, try again later.")
		return
	}

	a.log.WithFields(logrus.Fields{"id": app.ID, "email": app.Email}).Info("[JobForm] application created")
	http.Redirect(w, r, statusURL(s.Email), http.StatusFound)
}

// StatusHandler shows the application submitted under an email
// @Summary Application status
// @Tags applicant
// @Produce html
// @Param email query string true "Applicant email"
// @Success 200 {string} string "HTML page"
// @Failure 400 {string} string "Email is required."
// @Failure 500 {string} string "Server error"
// @Router /status [get]
func (a *API) StatusHandler(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.URL.Query().Get("email"))

	app, err := a.lifecycle.FindByEmail(r.Context(), email)
	switch {
	case errors.Is(err, errors.NotValid):
		message(w, http.StatusBadRequest, "Email is required.")
		return
	case errors.Is(err, errors.NotFound):
		message(w, http.StatusOK, noApplicationMessage)
		return
	case err != nil:
		a.log.WithError(err).WithField("email", email).Error("[Status] lookup failed")
		message(w, http.StatusInternalServerError, "Server error while loading application status, try again later.")
		return
	}

	data := statusView{
		Application: app,
		Message:     lifecycle.StatusMessage(app.Status, app.JobDetails.CompanyLocation),
	}
	if err := a.views.render(w, http.StatusOK, viewStatus, data); err != nil {
		a.log.WithError(err).Error("[Status] render failed")
	}
}

// ChatWhatsAppHandler redirects to the support WhatsApp chat
// @Summary WhatsApp chat
// @Tags applicant
// @Success 302 {string} string "Redirect to wa.me"
// @Router /chat/whatsapp [get]
func (a *API) ChatWhatsAppHandler(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "https://wa.me/"+a.chat.WhatsApp, http.StatusFound)
}

// ChatEmailHandler redirects to a mail draft for support
// @Summary Email support
// @Tags applicant
// @Success 302 {string} string "Redirect to mailto"
// @Router /chat/email [get]
func (a *API) ChatEmailHandler(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "mailto:"+a.chat.Email, http.StatusFound)
}
