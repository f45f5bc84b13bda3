package api

import (
	"net/http"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"

	"job-intake/internal/metrics"
	"job-intake/internal/middleware"
)

func NewRouter(a *API) http.Handler {
	r := mux.NewRouter()

	// Swagger documentation
	r.PathPrefix("/swagger/").Handler(httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// Health check and metrics stay outside the session layer
	r.HandleFunc("/health", a.HealthHandler).Methods(http.MethodGet)
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	app := r.NewRoute().Subrouter()
	app.Use(middleware.Logging(a.log), middleware.Metrics(), a.sessions.Middleware)

	// Applicant flow
	app.HandleFunc("/", a.HomeHandler).Methods(http.MethodGet)
	app.HandleFunc("/submit-email", a.SubmitEmailHandler).Methods(http.MethodPost)
	app.HandleFunc("/information", a.InformationPageHandler).Methods(http.MethodGet)
	app.HandleFunc("/information", a.InformationSubmitHandler).Methods(http.MethodPost)
	app.HandleFunc("/jobform", a.JobFormPageHandler).Methods(http.MethodGet)
	app.HandleFunc("/jobform", a.JobFormSubmitHandler).Methods(http.MethodPost)
	app.HandleFunc("/status", a.StatusHandler).Methods(http.MethodGet)
	app.HandleFunc("/chat/whatsapp", a.ChatWhatsAppHandler).Methods(http.MethodGet)
	app.HandleFunc("/chat/email", a.ChatEmailHandler).Methods(http.MethodGet)

	// Admin login is reachable without an admin session
	app.HandleFunc("/admin/login", a.AdminLoginPageHandler).Methods(http.MethodGet)
	app.HandleFunc("/admin/login", a.AdminLoginHandler).Methods(http.MethodPost)

	admin := app.NewRoute().Subrouter()
	admin.Use(a.gate.RequireAdmin)
	admin.HandleFunc("/admin", a.AdminPanelHandler).Methods(http.MethodGet)
	admin.HandleFunc("/admin/update-application", a.UpdateApplicationHandler).Methods(http.MethodPost)
	admin.HandleFunc("/admin/logout", a.AdminLogoutHandler).Methods(http.MethodGet)

	return r
}
